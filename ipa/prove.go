package ipa

import (
	"github.com/pkg/errors"

	"github.com/eth2030/verkleipa/crypto"
	"github.com/eth2030/verkleipa/polynomial"
)

// Prove produces a proof that the polynomial with coefficients a, committed
// as P = <a, G> + r·H, evaluates to v at x.
//
// len(a) must equal the basis size, which is a power of two of at least 2.
// Consistency of P and v with a is not checked: a wrong P or v yields a
// proof that fails verification.
func Prove(params *Params, P crypto.Point, x, v crypto.Scalar, a crypto.ScalarVector, r crypto.Scalar) (*Proof, error) {
	n := len(a)
	if err := checkShape(n); err != nil {
		return nil, err
	}
	if n != len(params.G) {
		return nil, errors.Wrapf(ErrInvalidShape, "%d coefficients for a basis of %d", n, len(params.G))
	}
	g := params.Group
	st := Statement{P: P, X: x, V: v, G: params.G}
	stEnc := crypto.Bytes(st.Encode())

	// U has no known discrete log relation to G or H and is bound to the
	// statement.
	u := g.HashToPoint(TagU, stEnc)

	aPrm := a.Clone()
	bPrm := polynomial.Powers(x, n-1)
	gPrm := append(crypto.PointVector(nil), params.G...)

	rounds := log2(n)
	proof := &Proof{Statement: st, Rounds: make([]Round, 0, rounds)}
	lBlind := make(crypto.ScalarVector, 0, rounds)
	rBlind := make(crypto.ScalarVector, 0, rounds)
	chals := make(crypto.ScalarVector, 0, rounds)
	chalsInv := make(crypto.ScalarVector, 0, rounds)

	for m := n; m > 1; m /= 2 {
		half := m / 2
		aLo, aHi := aPrm[:half], aPrm[half:]
		bLo, bHi := bPrm[:half], bPrm[half:]
		gLo, gHi := gPrm[:half], gPrm[half:]

		lj, rj := g.RandomScalar(), g.RandomScalar()
		L := aLo.MultiExp(gHi).Add(params.H.Mul(lj)).Add(u.Mul(aLo.Inner(bHi)))
		R := aHi.MultiExp(gLo).Add(params.H.Mul(rj)).Add(u.Mul(aHi.Inner(bLo)))
		proof.Rounds = append(proof.Rounds, Round{L: L, R: R})

		uj := challenge(g, stEnc, proof.Rounds)
		ujInv, err := uj.Inv()
		if err != nil {
			return nil, errors.Wrapf(err, "ipa: round %d challenge", len(chals))
		}

		aPrm = aLo.Scale(uj).Add(aHi.Scale(ujInv))
		bPrm = bLo.Scale(ujInv).Add(bHi.Scale(uj))
		gPrm = gLo.Scale(ujInv).Add(gHi.Scale(uj))

		lBlind = append(lBlind, lj)
		rBlind = append(rBlind, rj)
		chals = append(chals, uj)
		chalsInv = append(chalsInv, ujInv)
	}

	// r' = <l, u^2> + r + <r, u^-2>
	rPrm := lBlind.Inner(chals.Square()).Add(r).Add(rBlind.Inner(chalsInv.Square()))

	base := gPrm[0].Add(u.Mul(bPrm[0]))
	q := base.Mul(aPrm[0]).Add(params.H.Mul(rPrm))

	d, s := g.RandomScalar(), g.RandomScalar()
	rOpen := base.Mul(d).Add(params.H.Mul(s))
	c := g.HashToScalar(TagZKOpen, q, rOpen)

	proof.Open = ZKOpen{
		R:  rOpen,
		Z1: aPrm[0].Mul(c).Add(d),
		Z2: c.Mul(rPrm).Add(s),
	}
	return proof, nil
}
