// Prime-order group provider for the polynomial commitment scheme.
//
// Group adapts a circl prime-order group to the operations the IPA engine
// and the Verkle tree consume:
//   - construction of small-integer scalars and the identity point
//   - uniform sampling of scalars and points from crypto/rand
//   - domain-separated hashing to scalars and to points
//
// Hashing follows the hash-to-curve construction of the underlying group,
// with the caller's domain tag used as the DST. Every use site in the
// module passes its own tag so that leaf hashing, LR challenges and the
// zero-knowledge opening challenge can never collide.

package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"strings"

	"github.com/cloudflare/circl/group"
	"github.com/pkg/errors"
)

// Supported group names.
const (
	Ristretto255 = "ristretto255"
	P256         = "p256"
	P384         = "p384"
	P521         = "p521"
)

var (
	// ErrArithmeticDegenerate is returned when inverting the additive identity.
	ErrArithmeticDegenerate = errors.New("crypto: inverse of zero")

	// ErrUnknownGroup is returned by NewGroup for an unsupported name.
	ErrUnknownGroup = errors.New("crypto: unknown group")
)

// Group is a prime-order group together with its scalar field.
// A Group is safe for concurrent use.
type Group struct {
	name string
	g    group.Group
	rand io.Reader
}

// NewGroup returns the group registered under name. An empty name selects
// ristretto255.
func NewGroup(name string) (*Group, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	var g group.Group
	switch name {
	case "", Ristretto255:
		name, g = Ristretto255, group.Ristretto255
	case P256:
		g = group.P256
	case P384:
		g = group.P384
	case P521:
		g = group.P521
	default:
		return nil, errors.Wrapf(ErrUnknownGroup, "%q", name)
	}
	return &Group{name: name, g: g, rand: rand.Reader}, nil
}

// DefaultGroup returns ristretto255.
func DefaultGroup() *Group {
	g, _ := NewGroup(Ristretto255)
	return g
}

// Name returns the canonical group name.
func (g *Group) Name() string { return g.name }

// Scalar returns v as a field element.
func (g *Group) Scalar(v uint64) Scalar {
	s := g.g.NewScalar()
	s.SetUint64(v)
	return Scalar{grp: g, s: s}
}

// Zero returns the additive identity of the scalar field.
func (g *Group) Zero() Scalar { return g.Scalar(0) }

// One returns the multiplicative identity of the scalar field.
func (g *Group) One() Scalar { return g.Scalar(1) }

// Identity returns the group identity.
func (g *Group) Identity() Point {
	return Point{grp: g, p: g.g.Identity()}
}

// Generator returns the standard group generator.
func (g *Group) Generator() Point {
	return Point{grp: g, p: g.g.Generator()}
}

// RandomScalar samples a uniform scalar.
func (g *Group) RandomScalar() Scalar {
	return Scalar{grp: g, s: g.g.RandomScalar(g.rand)}
}

// RandomPoint samples a uniform group element. Its discrete logarithm with
// respect to any other basis point is unknown to the caller.
func (g *Group) RandomPoint() Point {
	return Point{grp: g, p: g.g.RandomElement(g.rand)}
}

// HashToScalar hashes items under the domain tag to a scalar.
func (g *Group) HashToScalar(tag string, items ...Encodable) Scalar {
	return Scalar{grp: g, s: g.g.HashToScalar(frame(items), []byte(tag))}
}

// HashToPoint hashes items under the domain tag to a group element.
func (g *Group) HashToPoint(tag string, items ...Encodable) Point {
	return Point{grp: g, p: g.g.HashToElement(frame(items), []byte(tag))}
}

// Frame returns the framed concatenation of items as hashed by
// HashToScalar and HashToPoint.
func Frame(items ...Encodable) []byte { return frame(items) }

// frame concatenates the encodings of items, each prefixed with its
// big-endian length, so distinct item sequences map to distinct messages.
func frame(items []Encodable) []byte {
	var buf []byte
	var size [8]byte
	for _, it := range items {
		enc := it.Encode()
		binary.BigEndian.PutUint64(size[:], uint64(len(enc)))
		buf = append(buf, size[:]...)
		buf = append(buf, enc...)
	}
	return buf
}
