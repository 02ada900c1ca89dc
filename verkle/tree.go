// Package verkle implements a multi-ary authenticated tree whose nodes are
// IPA polynomial commitments.
//
// Every node commits to the polynomial interpolating the hashes of its
// 2^exponent children at the points 1..2^exponent. A membership proof for
// a leaf is a chain of IPA evaluation proofs, one per level, from the
// leaf's parent up to the root; each level proves that its commitment
// opens to the hash of the level below at the child's position.
//
// The builder keeps every node's polynomial and blinding factor so it can
// answer future proof requests. That private data never leaves the Tree;
// verifiers only need the public Params and the root.
package verkle

import (
	"math/bits"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/eth2030/verkleipa/crypto"
	"github.com/eth2030/verkleipa/ipa"
	"github.com/eth2030/verkleipa/log"
	"github.com/eth2030/verkleipa/metrics"
	"github.com/eth2030/verkleipa/polynomial"
)

// Hash tags for leaf data and for child commitments. They differ so that
// no byte string can hash like an inner node.
const (
	leafTag = "verkle"
	nodeTag = "verkle node"
)

var (
	// ErrInvalidShape is returned when the leaf count is not
	// (2^exponent)^depth for some depth >= 1.
	ErrInvalidShape = errors.New("verkle: invalid tree shape")

	// ErrIndexOutOfRange is returned for a leaf index outside [0, leafCount).
	ErrIndexOutOfRange = errors.New("verkle: leaf index out of range")

	// ErrUnknownBasis is returned for an unsupported Config.Basis.
	ErrUnknownBasis = errors.New("verkle: unknown basis")
)

// nodeSecret is the prover-only opening of a node commitment.
type nodeSecret struct {
	poly     crypto.ScalarVector
	blinding crypto.Scalar
}

// Tree is a built Verkle tree together with the private data needed to
// prove membership of any leaf. A Tree is immutable after Build and safe
// for concurrent use.
type Tree struct {
	id       uuid.UUID
	params   *ipa.Params
	exponent int
	width    int
	depth    int

	leaves  [][]byte
	commits [][]crypto.Point // public, [level][block]
	secrets [][]nodeSecret   // private, [level][block]

	cache   *lru.Cache[int, ProofChain]
	log     *log.Logger
	metrics *metrics.Metrics
}

// Build commits to leaves level by level and returns the tree. The leaf
// count must be (2^cfg.Exponent)^depth for some depth >= 1.
func Build(g *crypto.Group, leaves [][]byte, cfg Config) (*Tree, error) {
	start := time.Now()
	depth, err := treeDepth(len(leaves), cfg.Exponent)
	if err != nil {
		return nil, err
	}
	width := 1 << cfg.Exponent

	params, err := newParams(g, width, cfg.Basis)
	if err != nil {
		return nil, err
	}
	domain, err := polynomial.NewSequentialDomain(g, width)
	if err != nil {
		return nil, errors.Wrap(err, "verkle: evaluation domain")
	}

	t := &Tree{
		id:       uuid.New(),
		params:   params,
		exponent: cfg.Exponent,
		width:    width,
		depth:    depth,
		leaves:   make([][]byte, len(leaves)),
		commits:  make([][]crypto.Point, 0, depth),
		secrets:  make([][]nodeSecret, 0, depth),
		metrics:  cfg.Metrics,
	}
	t.log = cfg.logger().With("tree", t.id.String())
	for i, leaf := range leaves {
		t.leaves[i] = append([]byte(nil), leaf...)
	}
	if cfg.ProofCacheSize > 0 {
		if t.cache, err = lru.New[int, ProofChain](cfg.ProofCacheSize); err != nil {
			return nil, errors.Wrap(err, "verkle: proof cache")
		}
	}

	hashes := make(crypto.ScalarVector, len(leaves))
	for i, leaf := range t.leaves {
		hashes[i] = hashLeaf(g, leaf)
	}

	nodes := 0
	for level := 0; level < depth; level++ {
		commits, secrets, err := t.commitLevel(domain, hashes, cfg.parallelism())
		if err != nil {
			return nil, errors.Wrapf(err, "verkle: level %d", level)
		}
		t.commits = append(t.commits, commits)
		t.secrets = append(t.secrets, secrets)
		nodes += len(commits)
		t.log.Debug("level committed", "level", level, "nodes", len(commits))

		hashes = make(crypto.ScalarVector, len(commits))
		for i, c := range commits {
			hashes[i] = hashNode(g, c)
		}
	}

	elapsed := time.Since(start)
	t.metrics.ObserveBuild(elapsed, nodes)
	t.log.Info("tree built",
		"group", g.Name(),
		"leaves", len(leaves),
		"width", width,
		"depth", depth,
		"root", t.Root().String(),
		"elapsed", elapsed,
	)
	return t, nil
}

// commitLevel interpolates and commits every block of width hashes.
// Blocks are independent and committed concurrently.
func (t *Tree) commitLevel(domain *polynomial.Domain, hashes crypto.ScalarVector, limit int) ([]crypto.Point, []nodeSecret, error) {
	blocks := len(hashes) / t.width
	commits := make([]crypto.Point, blocks)
	secrets := make([]nodeSecret, blocks)

	var eg errgroup.Group
	eg.SetLimit(limit)
	for b := 0; b < blocks; b++ {
		b := b
		eg.Go(func() error {
			poly, err := domain.Interpolate(hashes[b*t.width : (b+1)*t.width])
			if err != nil {
				return errors.Wrapf(err, "block %d", b)
			}
			blinding := t.params.Group.RandomScalar()
			c, err := t.params.Commit(poly, blinding)
			if err != nil {
				return errors.Wrapf(err, "block %d", b)
			}
			commits[b] = c
			secrets[b] = nodeSecret{poly: poly, blinding: blinding}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return commits, secrets, nil
}

// RequestProof returns the leaf at index and its proof chain, ordered from
// the leaf's parent up to the root.
func (t *Tree) RequestProof(index int) ([]byte, ProofChain, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, nil, errors.Wrapf(ErrIndexOutOfRange, "index %d not in [0, %d)", index, len(t.leaves))
	}
	datum := append([]byte(nil), t.leaves[index]...)

	if t.cache != nil {
		if chain, ok := t.cache.Get(index); ok {
			t.metrics.ObserveProof(0, true)
			return datum, chain.Clone(), nil
		}
	}

	start := time.Now()
	g := t.params.Group
	mask := t.width - 1
	chain := make(ProofChain, 0, t.depth)

	v := hashLeaf(g, datum)
	idx := index
	for level := 0; level < t.depth; level++ {
		x := g.Scalar(uint64(idx&mask) + 1)
		idx >>= t.exponent

		p := t.commits[level][idx]
		sec := t.secrets[level][idx]
		proof, err := ipa.Prove(t.params, p, x, v, sec.poly, sec.blinding)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "verkle: prove level %d", level)
		}
		chain = append(chain, proof)
		v = hashNode(g, p)
	}

	if t.cache != nil {
		t.cache.Add(index, chain.Clone())
	}
	elapsed := time.Since(start)
	t.metrics.ObserveProof(elapsed, false)
	t.log.Debug("proof generated", "index", index, "levels", len(chain), "elapsed", elapsed)
	return datum, chain, nil
}

// Root returns the root commitment.
func (t *Tree) Root() crypto.Point { return t.commits[t.depth-1][0] }

// Params returns the public commitment parameters of the tree.
func (t *Tree) Params() *ipa.Params { return t.params }

// Verifier returns a Verifier bound to the tree's public parameters.
func (t *Tree) Verifier() *Verifier { return NewVerifier(t.params, t.metrics) }

// ID returns the identifier used in the tree's log lines.
func (t *Tree) ID() string { return t.id.String() }

// Depth returns the number of committed levels above the leaves.
func (t *Tree) Depth() int { return t.depth }

// Exponent returns log2 of the node width.
func (t *Tree) Exponent() int { return t.exponent }

// Width returns the number of children per node.
func (t *Tree) Width() int { return t.width }

// LeafCount returns the number of leaves.
func (t *Tree) LeafCount() int { return len(t.leaves) }

// Commitments returns a copy of the public commitments at level, where
// level 0 holds the leaves' parents.
func (t *Tree) Commitments(level int) []crypto.Point {
	if level < 0 || level >= t.depth {
		return nil
	}
	return append([]crypto.Point(nil), t.commits[level]...)
}

// treeDepth returns depth such that count == (2^exponent)^depth.
func treeDepth(count, exponent int) (int, error) {
	if exponent < 1 || exponent > MaxExponent {
		return 0, errors.Wrapf(ErrInvalidShape, "exponent %d not in [1, %d]", exponent, MaxExponent)
	}
	if count < 2 || count&(count-1) != 0 {
		return 0, errors.Wrapf(ErrInvalidShape, "leaf count %d is not a power of two", count)
	}
	log2 := bits.TrailingZeros(uint(count))
	if log2%exponent != 0 {
		return 0, errors.Wrapf(ErrInvalidShape, "leaf count %d is not a power of %d", count, 1<<exponent)
	}
	return log2 / exponent, nil
}

func newParams(g *crypto.Group, width int, basis string) (*ipa.Params, error) {
	switch basis {
	case BasisRandom, "":
		return ipa.NewRandomParams(g, width)
	case BasisHashed:
		return ipa.NewParams(g, width)
	}
	return nil, errors.Wrapf(ErrUnknownBasis, "%q", basis)
}

func hashLeaf(g *crypto.Group, datum []byte) crypto.Scalar {
	return g.HashToScalar(leafTag, crypto.Bytes(datum))
}

func hashNode(g *crypto.Group, c crypto.Point) crypto.Scalar {
	return g.HashToScalar(nodeTag, c)
}
