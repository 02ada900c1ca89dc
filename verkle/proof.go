package verkle

import (
	"github.com/eth2030/verkleipa/crypto"
	"github.com/eth2030/verkleipa/ipa"
)

// ProofChain is a membership proof: one IPA evaluation proof per level,
// starting at the leaf's parent and ending at the root.
type ProofChain []*ipa.Proof

// Depth returns the number of levels the chain covers.
func (c ProofChain) Depth() int { return len(c) }

// Root returns the commitment the chain ends at, or false for an empty
// chain.
func (c ProofChain) Root() (crypto.Point, bool) {
	if len(c) == 0 || c[len(c)-1] == nil {
		return crypto.Point{}, false
	}
	return c[len(c)-1].Statement.P, true
}

// Clone returns a copy that shares no mutable state with c.
func (c ProofChain) Clone() ProofChain {
	if c == nil {
		return nil
	}
	out := make(ProofChain, len(c))
	for i, p := range c {
		if p == nil {
			continue
		}
		cp := *p
		cp.Statement.G = append(crypto.PointVector(nil), p.Statement.G...)
		cp.Rounds = append([]ipa.Round(nil), p.Rounds...)
		out[i] = &cp
	}
	return out
}
