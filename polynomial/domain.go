package polynomial

import (
	"github.com/pkg/errors"

	"github.com/eth2030/verkleipa/crypto"
)

// Domain is a fixed set of distinct evaluation points with their Lagrange
// basis polynomials precomputed, so that interpolating many value vectors
// over the same points costs one scaled sum each.
type Domain struct {
	xs    crypto.ScalarVector
	basis []crypto.ScalarVector
}

// NewDomain precomputes the basis for xs.
func NewDomain(xs crypto.ScalarVector) (*Domain, error) {
	if len(xs) == 0 {
		return nil, ErrEmpty
	}
	basis, err := basisPolynomials(xs)
	if err != nil {
		return nil, err
	}
	return &Domain{xs: xs.Clone(), basis: basis}, nil
}

// NewSequentialDomain returns the domain {1, 2, ..., n}.
func NewSequentialDomain(g *crypto.Group, n int) (*Domain, error) {
	xs := make(crypto.ScalarVector, n)
	for i := range xs {
		xs[i] = g.Scalar(uint64(i + 1))
	}
	return NewDomain(xs)
}

// Size returns the number of points in the domain.
func (d *Domain) Size() int { return len(d.xs) }

// Point returns the i-th evaluation point.
func (d *Domain) Point(i int) crypto.Scalar { return d.xs[i] }

// Interpolate returns the polynomial taking ys[i] at the i-th point.
func (d *Domain) Interpolate(ys crypto.ScalarVector) (crypto.ScalarVector, error) {
	if len(ys) != len(d.xs) {
		return nil, errors.Errorf("polynomial: %d values for a domain of %d points", len(ys), len(d.xs))
	}
	poly := d.basis[0].Scale(ys[0])
	for i := 1; i < len(ys); i++ {
		poly = poly.Add(d.basis[i].Scale(ys[i]))
	}
	return poly, nil
}
