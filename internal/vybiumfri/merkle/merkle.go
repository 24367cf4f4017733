// Package merkle implements the batched, deduplicated-opening Merkle tree
// the query phase needs (spec §4.4/§4.5/§6). It is adapted from the
// teacher's internal/.../core/merkle.go, which only ever opened a single
// index at a time; here the tree is rebuilt over hash.Digest leaves from
// vybium-crypto and the opening algorithm is generalized to a whole index
// set, sharing internal nodes the way the original Rust
// PartialAuthenticationPath (enqueue_auth_pairs / dequeue_and_authenticate
// in original_source/src/shared_math/fri.rs) does.
package merkle

import (
	"fmt"
	"sort"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
)

// Tree is a binary Merkle tree over hash.Digest leaves. levels[0] holds
// the leaves; levels[len(levels)-1] holds the single root.
type Tree struct {
	levels [][]hash.Digest
}

// New builds a tree over leaves. len(leaves) must be a power of two.
func New(leaves []hash.Digest) (*Tree, error) {
	n := len(leaves)
	if n == 0 || n&(n-1) != 0 {
		return nil, fmt.Errorf("merkle: leaf count %d must be a positive power of two", n)
	}

	levels := make([][]hash.Digest, 0, log2(n)+1)
	levels = append(levels, append([]hash.Digest(nil), leaves...))

	for len(levels[len(levels)-1]) > 1 {
		cur := levels[len(levels)-1]
		next := make([]hash.Digest, len(cur)/2)
		for i := range next {
			next[i] = hashNode(cur[2*i], cur[2*i+1])
		}
		levels = append(levels, next)
	}

	return &Tree{levels: levels}, nil
}

// Root returns the tree's single root digest.
func (t *Tree) Root() hash.Digest {
	return t.levels[len(t.levels)-1][0]
}

// AuthStructure is a deduplicated, level-ordered list of sibling digests:
// exactly the nodes a verifier cannot recompute from the disclosed leaves
// and each other, in the order VerifyAuthenticationStructure expects to
// consume them.
type AuthStructure struct {
	Siblings [][]hash.Digest // Siblings[level] = extra nodes needed at that level, sorted by index
}

// AuthenticationStructure builds the batched opening for the given
// (unsorted, possibly-duplicate) leaf indices.
func (t *Tree) AuthenticationStructure(indices []int) (AuthStructure, error) {
	n := len(t.levels[0])
	known := dedupSorted(indices)
	for _, i := range known {
		if i < 0 || i >= n {
			return AuthStructure{}, fmt.Errorf("merkle: index %d out of range [0,%d)", i, n)
		}
	}

	var out AuthStructure
	for level := 0; level+1 < len(t.levels); level++ {
		var siblings []hash.Digest
		knownSet := toSet(known)
		nextSet := map[int]bool{}
		siblingIdx := make([]int, 0, len(known))
		for _, idx := range known {
			sib := idx ^ 1
			nextSet[idx/2] = true
			if !knownSet[sib] {
				siblingIdx = append(siblingIdx, sib)
			}
		}
		sort.Ints(siblingIdx)
		siblingIdx = dedupSortedInts(siblingIdx)
		for _, sib := range siblingIdx {
			siblings = append(siblings, t.levels[level][sib])
		}
		out.Siblings = append(out.Siblings, siblings)
		known = sortedKeys(nextSet)
	}

	return out, nil
}

// VerifyAuthenticationStructure checks that leafDigests (aligned with
// indices) are consistent with root, given the opening produced by
// AuthenticationStructure for the same index set.
func VerifyAuthenticationStructure(root hash.Digest, indices []int, leafDigests []hash.Digest, opening AuthStructure) bool {
	if len(indices) != len(leafDigests) {
		return false
	}

	known := dedupSorted(indices)
	knownValues := map[int]hash.Digest{}
	for i, idx := range indices {
		knownValues[idx] = leafDigests[i]
	}

	for level := 0; level < len(opening.Siblings); level++ {
		knownSet := toSet(known)
		siblingValues := map[int]hash.Digest{}
		siblingIdx := make([]int, 0, len(known))
		for _, idx := range known {
			sib := idx ^ 1
			if !knownSet[sib] {
				siblingIdx = append(siblingIdx, sib)
			}
		}
		sort.Ints(siblingIdx)
		siblingIdx = dedupSortedInts(siblingIdx)

		if len(siblingIdx) != len(opening.Siblings[level]) {
			return false
		}
		for i, sib := range siblingIdx {
			siblingValues[sib] = opening.Siblings[level][i]
		}

		nextValues := map[int]hash.Digest{}
		for _, idx := range known {
			parent := idx / 2
			if _, done := nextValues[parent]; done {
				continue
			}
			var left, right hash.Digest
			if idx%2 == 0 {
				left = knownValues[idx]
				if v, ok := knownValues[idx+1]; ok {
					right = v
				} else {
					right = siblingValues[idx+1]
				}
			} else {
				right = knownValues[idx]
				if v, ok := knownValues[idx-1]; ok {
					left = v
				} else {
					left = siblingValues[idx-1]
				}
			}
			nextValues[parent] = hashNode(left, right)
		}

		known = sortedKeys(toBoolSet(nextValues))
		knownValues = nextValues
	}

	if len(known) != 1 {
		return false
	}
	return digestsEqual(knownValues[known[0]], root)
}

// HashValue hashes a base-field element sequence into a leaf digest. FRI
// leaves are codeword values; callers pass XFieldElement.ToSequence().
func HashValue(sequence []field.Element) hash.Digest {
	return hash.HashVarlen(sequence)
}

func hashNode(left, right hash.Digest) hash.Digest {
	combined := make([]field.Element, 0, 2*hash.DigestLen)
	combined = append(combined, left[:]...)
	combined = append(combined, right[:]...)
	return hash.HashVarlen(combined)
}

func digestsEqual(a, b hash.Digest) bool {
	for i := 0; i < hash.DigestLen; i++ {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func dedupSorted(indices []int) []int {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	return dedupSortedInts(sorted)
}

func dedupSortedInts(sorted []int) []int {
	out := sorted[:0:0]
	for i, v := range sorted {
		if i == 0 || v != sorted[i-1] {
			out = append(out, v)
		}
	}
	return out
}

func toSet(indices []int) map[int]bool {
	m := make(map[int]bool, len(indices))
	for _, i := range indices {
		m[i] = true
	}
	return m
}

func toBoolSet(m map[int]hash.Digest) map[int]bool {
	out := make(map[int]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func log2(n int) int {
	r := 0
	for n > 1 {
		n >>= 1
		r++
	}
	return r
}
