package ipa

import (
	"github.com/eth2030/verkleipa/crypto"
	"github.com/eth2030/verkleipa/polynomial"
)

// Verify reports whether proof is a valid evaluation proof under params.
// Challenges are always recomputed from the transcript. A malformed proof
// is rejected like any other invalid one.
func Verify(params *Params, proof *Proof) bool {
	if err := proof.Validate(params); err != nil {
		return false
	}
	g := params.Group
	st := proof.Statement
	stEnc := crypto.Bytes(st.Encode())
	n := len(st.G)
	rounds := len(proof.Rounds)

	chals := make(crypto.ScalarVector, rounds)
	for j := range proof.Rounds {
		chals[j] = challenge(g, stEnc, proof.Rounds[:j+1])
	}
	chalsInv, err := chals.Invert()
	if err != nil {
		return false
	}

	// s[i] is the coefficient of G[i] in the prover's fully folded basis:
	// round j contributes u_j when bit (rounds-1-j) of i is set, u_j^-1
	// otherwise.
	s := make(crypto.ScalarVector, n)
	for i := 0; i < n; i++ {
		acc := g.One()
		for j := 0; j < rounds; j++ {
			if (i>>(rounds-1-j))&1 == 1 {
				acc = acc.Mul(chals[j])
			} else {
				acc = acc.Mul(chalsInv[j])
			}
		}
		s[i] = acc
	}

	gFinal := s.MultiExp(st.G)
	bFinal := s.Inner(polynomial.Powers(st.X, n-1))

	u := g.HashToPoint(TagU, stEnc)
	pPrm := st.P.Add(u.Mul(st.V))
	q := chals.Square().MultiExp(proof.L()).
		Add(pPrm).
		Add(chalsInv.Square().MultiExp(proof.R()))

	c := g.HashToScalar(TagZKOpen, q, proof.Open.R)
	base := gFinal.Add(u.Mul(bFinal))

	lhs := q.Mul(c).Add(proof.Open.R)
	rhs := base.Mul(proof.Open.Z1).Add(params.H.Mul(proof.Open.Z2))
	return lhs.Equal(rhs)
}
