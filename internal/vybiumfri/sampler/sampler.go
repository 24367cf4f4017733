// Package sampler implements Component B (spec §4.2): the deterministic,
// Fiat-Shamir-driven index sampler that draws the query-phase positions
// from a transcript seed. It is grounded directly in
// Fri::sample_indices in original_source/src/shared_math/fri.rs, which
// hashes seed||counter on every draw and uses a rejection ("not power of
// two") sampler for the last-layer indices and a single biased bit for
// the per-round lift.
package sampler

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
)

// Indices holds the sampled last-layer indices and their lift to the
// top-layer (layer 0) domain. len(Last) == len(Top) == q.
type Indices struct {
	Last []int
	Top  []int
}

// Sample draws q distinct indices in [0, lastLayerLength) and lifts each
// through numRounds-1 doubling steps to a layer-0 index in [0, N/2), where
// N = lastLayerLength << numRounds.
//
// seed is a domain-separated digest freshly squeezed from the transcript
// (see transcript.ProofStream.DeriveIndexSeed); numRounds and
// lastLayerLength are the (R, L=N/2^R) pair the caller already derived
// from the FRI config via the round-count formula in §4.3.
func Sample(seed hash.Digest, numRounds, lastLayerLength, q int) (Indices, error) {
	if q > lastLayerLength {
		return Indices{}, fmt.Errorf("sampler: colinearity checks count %d exceeds last layer length %d", q, lastLayerLength)
	}

	pool := make([]int, lastLayerLength)
	for i := range pool {
		pool[i] = i
	}

	counter := uint32(0)
	last := make([]int, 0, q)
	for i := 0; i < q; i++ {
		h := hashSeedCounter(seed, counter)
		counter++
		k := sampleIndexNotPowerOfTwo(h, len(pool))
		last = append(last, pool[k])
		pool = append(pool[:k], pool[k+1:]...)
	}

	indices := append([]int(nil), last...)
	for r := 1; r < numRounds; r++ {
		codewordLength := lastLayerLength << uint(r)
		next := make([]int, len(indices))
		for j, idx := range indices {
			h := hashSeedCounter(seed, counter)
			counter++
			if sampleBit(h) {
				next[j] = idx + codewordLength/2
			} else {
				next[j] = idx
			}
		}
		indices = next
	}

	return Indices{Last: last, Top: indices}, nil
}

func hashSeedCounter(seed hash.Digest, counter uint32) hash.Digest {
	elements := make([]field.Element, 0, hash.DigestLen+1)
	elements = append(elements, seed[:]...)
	elements = append(elements, field.New(uint64(counter)))
	return hash.HashVarlen(elements)
}

// sampleBit draws a single biased-but-acceptable bit from a digest, used
// only for n=2 (the per-round lift), matching spec §4.2 step 4 and the
// External Interfaces note that a plain sample_index(digest, 2) is safe
// because a single fair coin never needs the unbiased rejection sampler.
func sampleBit(h hash.Digest) bool {
	return h[0].Value()&1 == 0
}

// sampleIndexNotPowerOfTwo draws an unbiased index in [0, upperBound) from
// a digest by bit-slicing with rejection: for each of the digest's field
// elements in turn it tries the two lowest ceil(log2(upperBound))-bit
// windows of its 64-bit value, discarding any draw that falls outside the
// range.
// Plain modulo here would bias small indices whenever upperBound is not a
// power of two, weakening the soundness of the last-layer index draw —
// see spec §9, "Index sampler bias".
func sampleIndexNotPowerOfTwo(h hash.Digest, upperBound int) int {
	if upperBound == 1 {
		return 0
	}

	bits := bitsNeeded(upperBound)
	mask := uint64(1)<<bits - 1

	words := make([]uint64, hash.DigestLen)
	for i := 0; i < hash.DigestLen; i++ {
		words[i] = h[i].Value()
	}

	// Try the two lowest `bits`-sized windows of each word, retrying the
	// draw (by re-deriving a fresh stream from a counter-perturbed word)
	// until an in-range value is found. With upperBound a small power-ish
	// bound and bits <= 32 in every configuration this spec supports, the
	// expected number of draws before acceptance is under 2.
	attempt := uint64(0)
	for {
		for _, w := range words {
			candidate := w & mask
			if uint64(candidate) < uint64(upperBound) {
				return int(candidate)
			}
			w >>= bits
			candidate = w & mask
			if uint64(candidate) < uint64(upperBound) {
				return int(candidate)
			}
		}
		attempt++
		for i := range words {
			words[i] = splitmix64(words[i] ^ attempt)
		}
	}
}

func bitsNeeded(n int) uint {
	bits := uint(0)
	for (1 << bits) < n {
		bits++
	}
	if bits == 0 {
		bits = 1
	}
	return bits
}

// splitmix64 is a fixed-point bit mixer used only to reshuffle digest
// words on the rare rejection-sampling retry path; it carries no
// Fiat-Shamir security weight of its own (the seed material is already
// committed to the transcript).
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
