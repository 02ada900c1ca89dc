// Package polynomial implements evaluation, multiplication and Lagrange
// interpolation of polynomials over the scalar field of a crypto.Group.
// A polynomial is its coefficient vector, lowest degree first.
package polynomial

import (
	"github.com/pkg/errors"

	"github.com/eth2030/verkleipa/crypto"
)

// ErrEmpty is returned when interpolating zero points.
var ErrEmpty = errors.New("polynomial: no coordinates")

// Coord is an interpolation point (X, Y).
type Coord struct {
	X, Y crypto.Scalar
}

// Powers returns [x^0, x^1, ..., x^n].
func Powers(x crypto.Scalar, n int) crypto.ScalarVector {
	out := make(crypto.ScalarVector, n+1)
	out[0] = x.Group().One()
	for i := 1; i <= n; i++ {
		out[i] = out[i-1].Mul(x)
	}
	return out
}

// Evaluate returns Σ coeffs[i]·x^i using Horner's rule.
func Evaluate(x crypto.Scalar, coeffs crypto.ScalarVector) crypto.Scalar {
	acc := x.Group().Zero()
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(coeffs[i])
	}
	return acc
}

// Multiply returns the product of a and b. Both must be non-empty.
func Multiply(a, b crypto.ScalarVector) crypto.ScalarVector {
	zero := a[0].Group().Zero()
	prod := make(crypto.ScalarVector, len(a)+len(b)-1)
	for i := range prod {
		prod[i] = zero
	}
	for i := range a {
		for j := range b {
			prod[i+j] = prod[i+j].Add(a[i].Mul(b[j]))
		}
	}
	return prod
}

// Lagrange returns the unique polynomial of degree < len(coords) passing
// through every coordinate. The X values must be distinct; a repeated X
// yields crypto.ErrArithmeticDegenerate.
func Lagrange(coords []Coord) (crypto.ScalarVector, error) {
	if len(coords) == 0 {
		return nil, ErrEmpty
	}
	xs := make(crypto.ScalarVector, len(coords))
	for i, c := range coords {
		xs[i] = c.X
	}
	basis, err := basisPolynomials(xs)
	if err != nil {
		return nil, err
	}
	poly := basis[0].Scale(coords[0].Y)
	for i := 1; i < len(coords); i++ {
		poly = poly.Add(basis[i].Scale(coords[i].Y))
	}
	return poly, nil
}

// basisPolynomials returns, for every i, Π_{j≠i} (X - x_j)/(x_i - x_j).
func basisPolynomials(xs crypto.ScalarVector) ([]crypto.ScalarVector, error) {
	one := xs[0].Group().One()
	out := make([]crypto.ScalarVector, len(xs))
	for i := range xs {
		basis := crypto.ScalarVector{one}
		for j := range xs {
			if j == i {
				continue
			}
			inv, err := xs[i].Sub(xs[j]).Inv()
			if err != nil {
				return nil, errors.Wrapf(err, "polynomial: x[%d] == x[%d]", i, j)
			}
			basis = Multiply(basis, crypto.ScalarVector{xs[j].Neg(), one}).Scale(inv)
		}
		out[i] = basis
	}
	return out, nil
}
