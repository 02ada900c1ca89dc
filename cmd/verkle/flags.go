package main

import (
	"flag"
	"fmt"
	"strconv"
)

// flagSet wraps flag.FlagSet to track which flags were set explicitly, so
// they can be laid over values loaded from a config file.
type flagSet struct {
	*flag.FlagSet
	overrides []func()
}

// newCustomFlagSet creates a flagSet with ContinueOnError behavior.
func newCustomFlagSet(name string) *flagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return &flagSet{FlagSet: fs}
}

// overlayString defines a string flag that, when set, is copied into *dst
// by apply.
func (fs *flagSet) overlayString(dst *string, name string, value string, usage string) {
	v := &stringValue{s: value}
	fs.Var(v, name, usage)
	fs.overrides = append(fs.overrides, func() {
		if v.set {
			*dst = v.s
		}
	})
}

// overlayInt defines an int flag that, when set, is copied into *dst by
// apply.
func (fs *flagSet) overlayInt(dst *int, name string, value int, usage string) {
	v := &intValue{n: value}
	fs.Var(v, name, usage)
	fs.overrides = append(fs.overrides, func() {
		if v.set {
			*dst = v.n
		}
	})
}

// overlayBool defines a boolean flag that, when set, is copied into *dst
// by apply.
func (fs *flagSet) overlayBool(dst *bool, name string, value bool, usage string) {
	v := &boolValue{b: value}
	fs.Var(v, name, usage)
	fs.overrides = append(fs.overrides, func() {
		if v.set {
			*dst = v.b
		}
	})
}

// apply copies every explicitly set overlay flag into its destination.
func (fs *flagSet) apply() {
	for _, f := range fs.overrides {
		f()
	}
}

type stringValue struct {
	s   string
	set bool
}

func (v *stringValue) String() string { return v.s }

func (v *stringValue) Set(s string) error {
	v.s, v.set = s, true
	return nil
}

type intValue struct {
	n   int
	set bool
}

func (v *intValue) String() string { return strconv.Itoa(v.n) }

func (v *intValue) Set(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid int value %q", s)
	}
	v.n, v.set = n, true
	return nil
}

type boolValue struct {
	b   bool
	set bool
}

func (v *boolValue) String() string { return strconv.FormatBool(v.b) }

func (v *boolValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid bool value %q", s)
	}
	v.b, v.set = b, true
	return nil
}

// IsBoolFlag lets the flag be given without a value.
func (v *boolValue) IsBoolFlag() bool { return true }
