package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/eth2030/verkleipa/config"
)

func TestParseFlags_Defaults(t *testing.T) {
	var out, errOut bytes.Buffer
	cfg, opts, exit, code := parseFlags([]string{}, &out, &errOut)
	if exit {
		t.Fatalf("unexpected exit with code %d: %s", code, errOut.String())
	}
	if cfg != config.DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if opts.index != 11 {
		t.Errorf("index = %d, want 11", opts.index)
	}
	if opts.configFile != "" || opts.dataFile != "" {
		t.Errorf("unexpected files: %+v", opts)
	}
}

func TestParseFlags_AllFlags(t *testing.T) {
	args := []string{
		"-group", "p384",
		"-exponent", "1",
		"-basis", "hashed",
		"-parallelism", "2",
		"-cache", "0",
		"-loglevel", "debug",
		"-metrics",
		"-index", "3",
	}
	var out, errOut bytes.Buffer
	cfg, opts, exit, _ := parseFlags(args, &out, &errOut)
	if exit {
		t.Fatalf("unexpected exit: %s", errOut.String())
	}
	if cfg.Group != "p384" {
		t.Errorf("Group = %q, want p384", cfg.Group)
	}
	if cfg.Exponent != 1 {
		t.Errorf("Exponent = %d, want 1", cfg.Exponent)
	}
	if cfg.Basis != "hashed" {
		t.Errorf("Basis = %q, want hashed", cfg.Basis)
	}
	if cfg.Parallelism != 2 {
		t.Errorf("Parallelism = %d, want 2", cfg.Parallelism)
	}
	if cfg.ProofCacheSize != 0 {
		t.Errorf("ProofCacheSize = %d, want 0", cfg.ProofCacheSize)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if !cfg.Metrics {
		t.Error("Metrics should be enabled")
	}
	if opts.index != 3 {
		t.Errorf("index = %d, want 3", opts.index)
	}
}

func TestParseFlags_OverlayConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verkle.yaml")
	if err := os.WriteFile(path, []byte("exponent: 1\nbasis: hashed\nproofCacheSize: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	cfg, _, exit, _ := parseFlags([]string{"-config", path, "-exponent", "4"}, &out, &errOut)
	if exit {
		t.Fatalf("unexpected exit: %s", errOut.String())
	}
	if cfg.Exponent != 4 {
		t.Errorf("Exponent = %d, want flag value 4", cfg.Exponent)
	}
	if cfg.Basis != "hashed" {
		t.Errorf("Basis = %q, want file value hashed", cfg.Basis)
	}
	if cfg.ProofCacheSize != 7 {
		t.Errorf("ProofCacheSize = %d, want file value 7", cfg.ProofCacheSize)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		args []string
		code int
	}{
		{[]string{"-nosuchflag"}, 2},
		{[]string{"-exponent", "two"}, 2},
		{[]string{"-basis", "trusted"}, 1},
		{[]string{"-group", "secp256k1"}, 1},
		{[]string{"-config", "/nonexistent/verkle.yaml"}, 1},
	}
	for _, tc := range tests {
		var out, errOut bytes.Buffer
		_, _, exit, code := parseFlags(tc.args, &out, &errOut)
		if !exit || code != tc.code {
			t.Errorf("%v: exit=%v code=%d, want exit with %d", tc.args, exit, code, tc.code)
		}
	}
}

func TestVersion(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := runWith([]string{"-version"}, &out, &errOut); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.Contains(out.String(), version) {
		t.Errorf("output %q does not contain version %q", out.String(), version)
	}
}

func TestRunSample(t *testing.T) {
	var out, errOut bytes.Buffer
	code := runWith([]string{"-loglevel", "error", "-metrics"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut.String())
	}
	got := out.String()
	for _, want := range []string{
		"data[11]:         zpw91dg",
		"verkle levels:    2 (width 4)",
		"verkle verified:  true",
		"merkle siblings:  4",
		"merkle verified:  true",
		`verkle_proofs_verified_total{result="valid"} 1`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.txt")
	if err := os.WriteFile(path, []byte("a\nb\n\nc\nd\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	code := runWith([]string{"-data", path, "-exponent", "1", "-index", "2", "-loglevel", "error"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "data[2]:          c") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunIndexOutOfRange(t *testing.T) {
	var out, errOut bytes.Buffer
	if code := runWith([]string{"-index", "16", "-loglevel", "error"}, &out, &errOut); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestRunInvalidShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocks.txt")
	if err := os.WriteFile(path, []byte("a\nb\nc\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var out, errOut bytes.Buffer
	if code := runWith([]string{"-data", path, "-loglevel", "error"}, &out, &errOut); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}
