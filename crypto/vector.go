package crypto

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// ScalarVector is an ordered sequence of scalars. Sub-ranges are taken with
// ordinary slicing. Binary operations panic on a length mismatch, which is
// always a programming error.
type ScalarVector []Scalar

// PointVector is an ordered sequence of points.
type PointVector []Point

func mustMatch(a, b int) {
	if a != b {
		panic(errors.Errorf("crypto: vector length mismatch (%d != %d)", a, b))
	}
}

// Add returns the component-wise sum v + w.
func (v ScalarVector) Add(w ScalarVector) ScalarVector {
	mustMatch(len(v), len(w))
	out := make(ScalarVector, len(v))
	for i := range v {
		out[i] = v[i].Add(w[i])
	}
	return out
}

// Scale returns s·v.
func (v ScalarVector) Scale(s Scalar) ScalarVector {
	out := make(ScalarVector, len(v))
	for i := range v {
		out[i] = v[i].Mul(s)
	}
	return out
}

// Inner returns Σ v[i]·w[i]. Both vectors must be non-empty.
func (v ScalarVector) Inner(w ScalarVector) Scalar {
	mustMatch(len(v), len(w))
	acc := v[0].Mul(w[0])
	for i := 1; i < len(v); i++ {
		acc = acc.Add(v[i].Mul(w[i]))
	}
	return acc
}

// MultiExp returns Σ v[i]·ps[i]. Both vectors must be non-empty.
func (v ScalarVector) MultiExp(ps PointVector) Point {
	mustMatch(len(v), len(ps))
	acc := ps[0].Mul(v[0])
	for i := 1; i < len(v); i++ {
		acc = acc.Add(ps[i].Mul(v[i]))
	}
	return acc
}

// Square returns the element-wise square of v.
func (v ScalarVector) Square() ScalarVector {
	out := make(ScalarVector, len(v))
	for i := range v {
		out[i] = v[i].Square()
	}
	return out
}

// Invert returns the element-wise inverse of v.
func (v ScalarVector) Invert() (ScalarVector, error) {
	out := make(ScalarVector, len(v))
	for i := range v {
		inv, err := v[i].Inv()
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		out[i] = inv
	}
	return out, nil
}

// Clone returns a copy of v.
func (v ScalarVector) Clone() ScalarVector {
	return append(ScalarVector(nil), v...)
}

// Encode returns the count followed by each length-prefixed element.
func (v ScalarVector) Encode() []byte {
	items := make([]Encodable, len(v))
	for i := range v {
		items[i] = v[i]
	}
	return encodeSeq(items)
}

// Add returns the component-wise sum v + w.
func (v PointVector) Add(w PointVector) PointVector {
	mustMatch(len(v), len(w))
	out := make(PointVector, len(v))
	for i := range v {
		out[i] = v[i].Add(w[i])
	}
	return out
}

// Scale returns s·v.
func (v PointVector) Scale(s Scalar) PointVector {
	out := make(PointVector, len(v))
	for i := range v {
		out[i] = v[i].Mul(s)
	}
	return out
}

// Equal reports whether v and w hold the same points in the same order.
func (v PointVector) Equal(w PointVector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if !v[i].Equal(w[i]) {
			return false
		}
	}
	return true
}

// Encode returns the count followed by each length-prefixed element.
func (v PointVector) Encode() []byte {
	items := make([]Encodable, len(v))
	for i := range v {
		items[i] = v[i]
	}
	return encodeSeq(items)
}

func encodeSeq(items []Encodable) []byte {
	var count [8]byte
	binary.BigEndian.PutUint64(count[:], uint64(len(items)))
	return append(count[:], frame(items)...)
}
