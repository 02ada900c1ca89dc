package ipa

import (
	"github.com/pkg/errors"

	"github.com/eth2030/verkleipa/crypto"
)

// Statement is the public claim of a proof: the polynomial committed in P
// over basis G evaluates to V at X.
type Statement struct {
	P crypto.Point
	X crypto.Scalar
	V crypto.Scalar
	G crypto.PointVector
}

// Encode returns the framed encoding of (P, X, V, G).
func (s Statement) Encode() []byte {
	return crypto.Frame(s.P, s.X, s.V, s.G)
}

// Round holds the cross-term commitments of one halving round.
type Round struct {
	L crypto.Point
	R crypto.Point
}

// ZKOpen is the Schnorr-style proof of knowledge of the final folded
// coefficient and blinding.
type ZKOpen struct {
	R  crypto.Point
	Z1 crypto.Scalar
	Z2 crypto.Scalar
}

// Proof is a non-interactive evaluation proof. Proofs are immutable once
// produced.
type Proof struct {
	Statement Statement
	Rounds    []Round
	Open      ZKOpen
}

// L returns the left cross-term commitments in round order.
func (p *Proof) L() crypto.PointVector {
	out := make(crypto.PointVector, len(p.Rounds))
	for i, r := range p.Rounds {
		out[i] = r.L
	}
	return out
}

// R returns the right cross-term commitments in round order.
func (p *Proof) R() crypto.PointVector {
	out := make(crypto.PointVector, len(p.Rounds))
	for i, r := range p.Rounds {
		out[i] = r.R
	}
	return out
}

// Validate checks that the proof is structurally sound for params: every
// element belongs to the params group, the statement basis is params.G,
// and there is one round per halving of the basis.
func (p *Proof) Validate(params *Params) error {
	if p == nil {
		return errors.Wrap(ErrMalformedProof, "nil proof")
	}
	if params == nil || params.Group == nil {
		return errors.Wrap(ErrMalformedProof, "nil params")
	}
	g := params.Group
	st := p.Statement
	if !st.P.In(g) || !st.X.In(g) || !st.V.In(g) {
		return errors.Wrap(ErrMalformedProof, "statement element outside group")
	}
	if !st.G.Equal(params.G) {
		return errors.Wrap(ErrMalformedProof, "statement basis differs from params")
	}
	if len(p.Rounds) != params.Rounds() {
		return errors.Wrapf(ErrMalformedProof, "%d rounds, want %d", len(p.Rounds), params.Rounds())
	}
	for i, r := range p.Rounds {
		if !r.L.In(g) || !r.R.In(g) {
			return errors.Wrapf(ErrMalformedProof, "round %d element outside group", i)
		}
	}
	if !p.Open.R.In(g) || !p.Open.Z1.In(g) || !p.Open.Z2.In(g) {
		return errors.Wrap(ErrMalformedProof, "opening element outside group")
	}
	return nil
}

// challenge derives the LR challenge after the given rounds. Every
// challenge binds the statement and all cross terms sent so far.
func challenge(g *crypto.Group, st crypto.Bytes, rounds []Round) crypto.Scalar {
	items := make([]crypto.Encodable, 0, 1+2*len(rounds))
	items = append(items, st)
	for _, r := range rounds {
		items = append(items, r.L, r.R)
	}
	return g.HashToScalar(TagLR, items...)
}
