package polynomial

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eth2030/verkleipa/crypto"
)

func scalars(g *crypto.Group, vs ...uint64) crypto.ScalarVector {
	out := make(crypto.ScalarVector, len(vs))
	for i, v := range vs {
		out[i] = g.Scalar(v)
	}
	return out
}

func TestPowers(t *testing.T) {
	g := crypto.DefaultGroup()
	p := Powers(g.Scalar(3), 4)
	require.Len(t, p, 5)
	for i, want := range []uint64{1, 3, 9, 27, 81} {
		assert.True(t, p[i].Equal(g.Scalar(want)), "3^%d", i)
	}
}

func TestEvaluate(t *testing.T) {
	g := crypto.DefaultGroup()
	// 2 + 3x + x^2 at x = 5 -> 2 + 15 + 25
	coeffs := scalars(g, 2, 3, 1)
	assert.True(t, Evaluate(g.Scalar(5), coeffs).Equal(g.Scalar(42)))

	// Horner must agree with the powers inner product.
	x := g.RandomScalar()
	rnd := crypto.ScalarVector{g.RandomScalar(), g.RandomScalar(), g.RandomScalar(), g.RandomScalar()}
	assert.True(t, Evaluate(x, rnd).Equal(Powers(x, len(rnd)-1).Inner(rnd)))
}

func TestMultiply(t *testing.T) {
	g := crypto.DefaultGroup()
	// (1 + x)(2 + 3x) = 2 + 5x + 3x^2
	prod := Multiply(scalars(g, 1, 1), scalars(g, 2, 3))
	require.Len(t, prod, 3)
	want := scalars(g, 2, 5, 3)
	for i := range want {
		assert.True(t, prod[i].Equal(want[i]))
	}
}

func TestLagrangeRoundTrip(t *testing.T) {
	g := crypto.DefaultGroup()
	for _, n := range []int{1, 2, 3, 4, 8} {
		coords := make([]Coord, n)
		for i := range coords {
			coords[i] = Coord{X: g.RandomScalar(), Y: g.RandomScalar()}
		}
		poly, err := Lagrange(coords)
		require.NoError(t, err)
		require.Len(t, poly, n)
		for _, c := range coords {
			assert.True(t, Evaluate(c.X, poly).Equal(c.Y), "n=%d", n)
		}
	}
}

func TestLagrangeNegativePoints(t *testing.T) {
	g := crypto.DefaultGroup()
	coords := []Coord{
		{X: g.One().Neg(), Y: g.RandomScalar()},
		{X: g.Zero(), Y: g.RandomScalar()},
		{X: g.One(), Y: g.RandomScalar()},
	}
	poly, err := Lagrange(coords)
	require.NoError(t, err)
	for _, c := range coords {
		assert.True(t, Evaluate(c.X, poly).Equal(c.Y))
	}
}

func TestLagrangeDuplicateX(t *testing.T) {
	g := crypto.DefaultGroup()
	coords := []Coord{
		{X: g.Scalar(1), Y: g.Scalar(5)},
		{X: g.Scalar(1), Y: g.Scalar(6)},
	}
	_, err := Lagrange(coords)
	require.True(t, errors.Is(err, crypto.ErrArithmeticDegenerate))

	_, err = Lagrange(nil)
	require.True(t, errors.Is(err, ErrEmpty))
}

func TestDomainMatchesLagrange(t *testing.T) {
	g := crypto.DefaultGroup()
	d, err := NewSequentialDomain(g, 4)
	require.NoError(t, err)
	require.Equal(t, 4, d.Size())

	ys := crypto.ScalarVector{g.RandomScalar(), g.RandomScalar(), g.RandomScalar(), g.RandomScalar()}
	got, err := d.Interpolate(ys)
	require.NoError(t, err)

	coords := make([]Coord, len(ys))
	for i := range ys {
		coords[i] = Coord{X: g.Scalar(uint64(i + 1)), Y: ys[i]}
		assert.True(t, d.Point(i).Equal(g.Scalar(uint64(i+1))))
	}
	want, err := Lagrange(coords)
	require.NoError(t, err)
	for i := range want {
		assert.True(t, got[i].Equal(want[i]))
	}

	_, err = d.Interpolate(ys[:3])
	require.Error(t, err)

	_, err = NewDomain(scalars(g, 2, 2))
	require.True(t, errors.Is(err, crypto.ErrArithmeticDegenerate))
}
