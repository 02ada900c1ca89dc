// Package ipa implements a zero-knowledge polynomial commitment scheme
// built from an inner product argument made non-interactive with
// Fiat-Shamir.
//
// A prover holding coefficients a and blinding r for the Pedersen
// commitment P = <a, G> + r·H convinces a verifier that the polynomial
// with coefficients a evaluates to v at x. The proof carries log2(n)
// pairs of cross-term commitments (L, R) and a Schnorr-style opening of
// the final folded scalar, so its size is O(log n) and it reveals nothing
// about a beyond v.
package ipa

import (
	"math/bits"

	"github.com/pkg/errors"

	"github.com/eth2030/verkleipa/crypto"
)

// Domain tags for every hash use site of the protocol.
const (
	TagU      = "U Fiat-Shamir hash"
	TagLR     = "LR Fiat-Shamir hash"
	TagZKOpen = "ZKopen Fiat-Shamir hash"

	tagBasisG = "IPA basis G"
	tagBasisH = "IPA blinding base H"
)

var (
	// ErrInvalidShape is returned for vectors whose length is not a power
	// of two of at least 2, or does not match the basis.
	ErrInvalidShape = errors.New("ipa: invalid vector shape")

	// ErrMalformedProof is returned by Proof.Validate.
	ErrMalformedProof = errors.New("ipa: malformed proof")
)

// Params holds the public basis of the commitment scheme: the vector G
// the coefficients are committed against and the blinding base H.
type Params struct {
	Group *crypto.Group
	G     crypto.PointVector
	H     crypto.Point
}

// NewParams derives a basis of n points and H by hashing to the group, so
// anyone can recompute and audit it.
func NewParams(g *crypto.Group, n int) (*Params, error) {
	if err := checkShape(n); err != nil {
		return nil, err
	}
	gv := make(crypto.PointVector, n)
	for i := range gv {
		gv[i] = g.HashToPoint(tagBasisG, crypto.Uint64(i))
	}
	return &Params{Group: g, G: gv, H: g.HashToPoint(tagBasisH)}, nil
}

// NewRandomParams samples a basis of n points and H uniformly.
func NewRandomParams(g *crypto.Group, n int) (*Params, error) {
	if err := checkShape(n); err != nil {
		return nil, err
	}
	gv := make(crypto.PointVector, n)
	for i := range gv {
		gv[i] = g.RandomPoint()
	}
	return &Params{Group: g, G: gv, H: g.RandomPoint()}, nil
}

// Size returns the length of the basis.
func (p *Params) Size() int { return len(p.G) }

// Rounds returns the number of halving rounds of a proof over this basis.
func (p *Params) Rounds() int { return log2(len(p.G)) }

// Commit returns the Pedersen commitment <a, G> + r·H.
func (p *Params) Commit(a crypto.ScalarVector, r crypto.Scalar) (crypto.Point, error) {
	if len(a) != len(p.G) {
		return crypto.Point{}, errors.Wrapf(ErrInvalidShape, "%d coefficients for a basis of %d", len(a), len(p.G))
	}
	return a.MultiExp(p.G).Add(p.H.Mul(r)), nil
}

func checkShape(n int) error {
	if n < 2 || n&(n-1) != 0 {
		return errors.Wrapf(ErrInvalidShape, "length %d is not a power of two >= 2", n)
	}
	return nil
}

func log2(n int) int { return bits.TrailingZeros(uint(n)) }
