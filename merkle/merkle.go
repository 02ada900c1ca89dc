// Package merkle implements a plain binary Keccak-256 Merkle tree. It is
// the baseline the Verkle tree is compared against: proofs grow with
// log2 of the leaf count instead of with the tree depth at a wider fan-out.
//
// An odd node at the end of a level has no sibling and is carried up to
// the next level unchanged. Leaf and node preimages carry distinct prefix
// bytes, so a data block can never hash like an inner node.
package merkle

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Preimage prefixes.
const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01
)

var (
	// ErrEmpty is returned when building a tree without blocks.
	ErrEmpty = errors.New("merkle: no blocks")

	// ErrIndexOutOfRange is returned for a block index outside the tree.
	ErrIndexOutOfRange = errors.New("merkle: block index out of range")
)

// Proof is the list of sibling hashes from a leaf up to the root. Levels
// where the node was carried up contribute no sibling.
type Proof struct {
	LeafCount int
	Siblings  []common.Hash
}

// Tree is an immutable binary Merkle tree over a list of data blocks.
type Tree struct {
	blocks [][]byte
	levels [][]common.Hash // levels[0] holds the leaf hashes
}

// New hashes blocks and builds every level up to the root.
func New(blocks [][]byte) (*Tree, error) {
	if len(blocks) == 0 {
		return nil, ErrEmpty
	}
	t := &Tree{blocks: make([][]byte, len(blocks))}
	leaves := make([]common.Hash, len(blocks))
	for i, b := range blocks {
		t.blocks[i] = append([]byte(nil), b...)
		leaves[i] = HashBlock(b)
	}
	t.levels = append(t.levels, leaves)
	for cur := leaves; len(cur) > 1; {
		next := make([]common.Hash, 0, (len(cur)+1)/2)
		for i := 0; i < len(cur); i += 2 {
			if i+1 == len(cur) {
				next = append(next, cur[i])
				continue
			}
			next = append(next, hashPair(cur[i], cur[i+1]))
		}
		t.levels = append(t.levels, next)
		cur = next
	}
	return t, nil
}

// Root returns the root hash.
func (t *Tree) Root() common.Hash {
	return t.levels[len(t.levels)-1][0]
}

// Depth returns the number of hashing levels above the leaves.
func (t *Tree) Depth() int { return len(t.levels) - 1 }

// Len returns the number of blocks.
func (t *Tree) Len() int { return len(t.blocks) }

// Proof returns the block at index and its membership proof.
func (t *Tree) Proof(index int) ([]byte, Proof, error) {
	if index < 0 || index >= len(t.blocks) {
		return nil, Proof{}, errors.Wrapf(ErrIndexOutOfRange, "index %d not in [0, %d)", index, len(t.blocks))
	}
	proof := Proof{LeafCount: len(t.blocks)}
	idx := index
	for _, level := range t.levels[:len(t.levels)-1] {
		if sib := idx ^ 1; sib < len(level) {
			proof.Siblings = append(proof.Siblings, level[sib])
		}
		idx >>= 1
	}
	return append([]byte(nil), t.blocks[index]...), proof, nil
}

// Find returns the index of the block whose leaf hash is h.
func (t *Tree) Find(h common.Hash) (int, bool) {
	for i, leaf := range t.levels[0] {
		if leaf == h {
			return i, true
		}
	}
	return -1, false
}

// Verify reports whether proof shows block sits at index under root.
func Verify(block []byte, index int, proof Proof, root common.Hash) bool {
	if index < 0 || index >= proof.LeafCount {
		return false
	}
	cur := HashBlock(block)
	size := proof.LeafCount
	used := 0
	for idx := index; size > 1; idx, size = idx>>1, (size+1)/2 {
		sib := idx ^ 1
		if sib >= size {
			continue
		}
		if used == len(proof.Siblings) {
			return false
		}
		if idx&1 == 0 {
			cur = hashPair(cur, proof.Siblings[used])
		} else {
			cur = hashPair(proof.Siblings[used], cur)
		}
		used++
	}
	return used == len(proof.Siblings) && cur == root
}

// HashBlock returns the leaf hash of a data block.
func HashBlock(b []byte) common.Hash {
	return keccak([]byte{leafPrefix}, b)
}

func hashPair(l, r common.Hash) common.Hash {
	return keccak([]byte{nodePrefix}, l[:], r[:])
}

func keccak(data ...[]byte) common.Hash {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return common.BytesToHash(d.Sum(nil))
}
