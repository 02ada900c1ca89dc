package verkle

import (
	"math/bits"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/eth2030/verkleipa/crypto"
	"github.com/eth2030/verkleipa/ipa"
	"github.com/eth2030/verkleipa/metrics"
)

var errLevelRejected = errors.New("verkle: level proof rejected")

// VerifyProof reports whether chain proves that datum is the leaf at index
// of the tree committed to by root under params.
//
// Besides checking every level's IPA proof, the chain must start at
// hash(datum), end at root, open each level at the position given by the
// index digits, and have every level open to the hash of the commitment
// proven one level below.
func VerifyProof(params *ipa.Params, index int, datum []byte, chain ProofChain, root crypto.Point) bool {
	if params == nil || len(chain) == 0 {
		return false
	}
	for _, p := range chain {
		if p.Validate(params) != nil {
			return false
		}
	}
	g := params.Group
	if !root.In(g) {
		return false
	}

	exponent := params.Rounds()
	depth := len(chain)
	if index < 0 || depth*exponent >= bits.UintSize-1 || index >= 1<<(depth*exponent) {
		return false
	}

	if !chain[0].Statement.V.Equal(hashLeaf(g, datum)) {
		return false
	}
	if !chain[depth-1].Statement.P.Equal(root) {
		return false
	}

	mask := params.Size() - 1
	idx := index
	for level, p := range chain {
		if !p.Statement.X.Equal(g.Scalar(uint64(idx&mask) + 1)) {
			return false
		}
		if level > 0 && !p.Statement.V.Equal(hashNode(g, chain[level-1].Statement.P)) {
			return false
		}
		idx >>= exponent
	}

	// Levels are independent once chained; check them concurrently.
	var eg errgroup.Group
	for _, p := range chain {
		p := p
		eg.Go(func() error {
			if !ipa.Verify(params, p) {
				return errLevelRejected
			}
			return nil
		})
	}
	return eg.Wait() == nil
}

// Verifier checks proof chains against a fixed set of public parameters.
// It holds no prover data.
type Verifier struct {
	params  *ipa.Params
	metrics *metrics.Metrics
}

// NewVerifier returns a Verifier for params. m may be nil.
func NewVerifier(params *ipa.Params, m *metrics.Metrics) *Verifier {
	return &Verifier{params: params, metrics: m}
}

// Params returns the verifier's public parameters.
func (v *Verifier) Params() *ipa.Params { return v.params }

// VerifyProof is VerifyProof bound to the verifier's parameters.
func (v *Verifier) VerifyProof(index int, datum []byte, chain ProofChain, root crypto.Point) bool {
	start := time.Now()
	ok := VerifyProof(v.params, index, datum, chain, root)
	v.metrics.ObserveVerify(time.Since(start), ok)
	return ok
}
