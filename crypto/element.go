package crypto

import (
	"encoding/binary"

	"github.com/cloudflare/circl/group"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Encodable values can be absorbed by HashToScalar and HashToPoint.
type Encodable interface {
	Encode() []byte
}

// Bytes is raw data passed through to a hash unchanged.
type Bytes []byte

// Encode returns b.
func (b Bytes) Encode() []byte { return b }

// Uint64 is an integer hashed as 8 big-endian bytes.
type Uint64 uint64

// Encode returns the big-endian encoding of u.
func (u Uint64) Encode() []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(u))
	return buf[:]
}

// Scalar is an element of the group's scalar field. Scalars are immutable:
// every operation returns a fresh value. The zero Scalar is not usable;
// obtain scalars from a Group.
type Scalar struct {
	grp *Group
	s   group.Scalar
}

// Group returns the group the scalar belongs to.
func (a Scalar) Group() *Group { return a.grp }

// In reports whether a is a usable scalar of g.
func (a Scalar) In(g *Group) bool {
	return a.grp != nil && a.s != nil && g != nil && a.grp.name == g.name
}

func (a Scalar) fresh() group.Scalar { return a.grp.g.NewScalar() }

// Add returns a + b.
func (a Scalar) Add(b Scalar) Scalar {
	return Scalar{grp: a.grp, s: a.fresh().Add(a.s, b.s)}
}

// Sub returns a - b.
func (a Scalar) Sub(b Scalar) Scalar {
	return Scalar{grp: a.grp, s: a.fresh().Sub(a.s, b.s)}
}

// Mul returns a * b.
func (a Scalar) Mul(b Scalar) Scalar {
	return Scalar{grp: a.grp, s: a.fresh().Mul(a.s, b.s)}
}

// Square returns a * a.
func (a Scalar) Square() Scalar { return a.Mul(a) }

// Neg returns -a.
func (a Scalar) Neg() Scalar {
	return Scalar{grp: a.grp, s: a.fresh().Neg(a.s)}
}

// Inv returns 1/a, or ErrArithmeticDegenerate when a is zero.
func (a Scalar) Inv() (Scalar, error) {
	if a.IsZero() {
		return Scalar{}, ErrArithmeticDegenerate
	}
	return Scalar{grp: a.grp, s: a.fresh().Inv(a.s)}, nil
}

// IsZero reports whether a is the additive identity.
func (a Scalar) IsZero() bool {
	return a.s.IsEqual(a.fresh())
}

// Equal reports whether a and b are the same field element.
func (a Scalar) Equal(b Scalar) bool {
	if a.s == nil || b.s == nil {
		return a.s == b.s
	}
	return a.s.IsEqual(b.s)
}

// Encode returns the canonical byte encoding of a.
func (a Scalar) Encode() []byte {
	b, _ := a.s.MarshalBinary()
	return b
}

// String returns the hex encoding of a.
func (a Scalar) String() string {
	if a.s == nil {
		return "<nil>"
	}
	return hexutil.Encode(a.Encode())
}

// Point is a group element. Points are immutable.
type Point struct {
	grp *Group
	p   group.Element
}

// Group returns the group the point belongs to.
func (p Point) Group() *Group { return p.grp }

// In reports whether p is a usable element of g.
func (p Point) In(g *Group) bool {
	return p.grp != nil && p.p != nil && g != nil && p.grp.name == g.name
}

func (p Point) fresh() group.Element { return p.grp.g.NewElement() }

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{grp: p.grp, p: p.fresh().Add(p.p, q.p)}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return p.Add(q.Neg()) }

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{grp: p.grp, p: p.fresh().Neg(p.p)}
}

// Mul returns s·p.
func (p Point) Mul(s Scalar) Point {
	return Point{grp: p.grp, p: p.fresh().Mul(p.p, s.s)}
}

// IsIdentity reports whether p is the group identity.
func (p Point) IsIdentity() bool { return p.p.IsIdentity() }

// Equal reports whether p and q are the same group element.
func (p Point) Equal(q Point) bool {
	if p.p == nil || q.p == nil {
		return p.p == q.p
	}
	return p.p.IsEqual(q.p)
}

// Encode returns the canonical byte encoding of p.
func (p Point) Encode() []byte {
	b, _ := p.p.MarshalBinary()
	return b
}

// String returns the hex encoding of p.
func (p Point) String() string {
	if p.p == nil {
		return "<nil>"
	}
	return hexutil.Encode(p.Encode())
}
