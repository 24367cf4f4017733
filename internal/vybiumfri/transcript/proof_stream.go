// Package transcript implements the Fiat-Shamir proof stream the FRI core
// sends its messages through. It is a direct generalization of the
// teacher's internal/.../protocols/proof_stream.go: the same
// Items/ItemsIndex/Sponge shape and the same enqueue-absorbs /
// dequeue-absorbs discipline, narrowed to the message kinds FRI actually
// needs (Merkle roots, length-prepended codewords, and query bundles)
// instead of the teacher's full STARK proof-item enum.
package transcript

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/hash"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"

	"github.com/vybium/vybium-fri/internal/vybiumfri/merkle"
)

// ItemKind tags the payload a Item carries.
type ItemKind int

const (
	KindMerkleRoot ItemKind = iota
	KindCodeword
	KindQueryBundle
)

// Item is one message on the wire. Every item is absorbed into the
// Fiat-Shamir sponge on both enqueue and dequeue — FRI has no masked,
// transcript-exempt messages the way a full STARK's Claim does.
type Item struct {
	Kind     ItemKind
	Root     hash.Digest
	Codeword []xfield.XFieldElement
	Bundle   QueryBundle
}

// QueryBundle is a disclosed value set plus its batched Merkle opening.
type QueryBundle struct {
	Values []xfield.XFieldElement
	AuthStructure merkle.AuthStructure
}

// ProofStream carries the append-only item log and the Tip5 sponge that
// produces every Fiat-Shamir challenge from it.
type ProofStream struct {
	Items      []Item
	ItemsIndex int
	Sponge     *hash.Tip5
}

// New returns an empty proof stream with a freshly initialized sponge.
func New() *ProofStream {
	return &ProofStream{Sponge: hash.Init()}
}

// FromItems builds a verifier-side ProofStream positioned at the start of
// a received item sequence. Its sponge starts empty, exactly like the
// prover's did before its first Enqueue — items are absorbed one at a
// time as the verifier dequeues them, so the two sponges stay in
// lockstep at every point in the exchange (mirroring the teacher's
// ProofStreamFromProof/Dequeue pairing).
func FromItems(items []Item) *ProofStream {
	ps := New()
	ps.Items = items
	return ps
}

func (ps *ProofStream) enqueue(item Item) {
	ps.Sponge.PadAndAbsorbAll(encode(item))
	ps.Items = append(ps.Items, item)
}

func (ps *ProofStream) dequeue() (Item, error) {
	if ps.ItemsIndex >= len(ps.Items) {
		return Item{}, fmt.Errorf("transcript: proof stream exhausted")
	}
	item := ps.Items[ps.ItemsIndex]
	ps.ItemsIndex++
	ps.Sponge.PadAndAbsorbAll(encode(item))
	return item, nil
}

// EnqueueMerkleRoot appends a layer root.
func (ps *ProofStream) EnqueueMerkleRoot(root hash.Digest) {
	ps.enqueue(Item{Kind: KindMerkleRoot, Root: root})
}

// DequeueMerkleRoot reads the next layer root.
func (ps *ProofStream) DequeueMerkleRoot() (hash.Digest, error) {
	item, err := ps.dequeue()
	if err != nil {
		return hash.Digest{}, err
	}
	if item.Kind != KindMerkleRoot {
		return hash.Digest{}, fmt.Errorf("transcript: expected MerkleRoot item, got kind %d", item.Kind)
	}
	return item.Root, nil
}

// EnqueueCodeword appends a length-prepended final codeword.
func (ps *ProofStream) EnqueueCodeword(codeword []xfield.XFieldElement) {
	ps.enqueue(Item{Kind: KindCodeword, Codeword: codeword})
}

// DequeueCodeword reads the final codeword.
func (ps *ProofStream) DequeueCodeword() ([]xfield.XFieldElement, error) {
	item, err := ps.dequeue()
	if err != nil {
		return nil, err
	}
	if item.Kind != KindCodeword {
		return nil, fmt.Errorf("transcript: expected Codeword item, got kind %d", item.Kind)
	}
	return item.Codeword, nil
}

// EnqueueQueryBundle appends a disclosed value set and its authentication
// structure.
func (ps *ProofStream) EnqueueQueryBundle(bundle QueryBundle) {
	ps.enqueue(Item{Kind: KindQueryBundle, Bundle: bundle})
}

// DequeueQueryBundle reads the next query bundle.
func (ps *ProofStream) DequeueQueryBundle() (QueryBundle, error) {
	item, err := ps.dequeue()
	if err != nil {
		return QueryBundle{}, err
	}
	if item.Kind != KindQueryBundle {
		return QueryBundle{}, fmt.Errorf("transcript: expected QueryBundle item, got kind %d", item.Kind)
	}
	return item.Bundle, nil
}

// SampleChallenge squeezes the next Fiat-Shamir challenge α ∈ X from the
// sponge. It must only be called after enqueuing (prover) or dequeuing
// (verifier) the round's Merkle root, so both sides absorb the identical
// prefix before sampling — matching prover_fiat_shamir/verifier_fiat_shamir
// in original_source/src/shared_math/fri.rs.
func (ps *ProofStream) SampleChallenge() (xfield.XFieldElement, error) {
	scalars, err := ps.Sponge.SampleScalars(1)
	if err != nil {
		return xfield.XFieldElement{}, fmt.Errorf("transcript: sampling challenge: %w", err)
	}
	return scalars[0], nil
}

// DeriveIndexSeed produces a fresh 256-bit-class seed for the index
// sampler (spec §4.2) by squeezing one scalar from the sponge and hashing
// its coordinate sequence down to a single digest. This keeps the index
// draw bound to the transcript without requiring a lower-level "give me a
// raw sponge digest" primitive beyond what vybium-crypto's Sponge exposes.
func (ps *ProofStream) DeriveIndexSeed() (hash.Digest, error) {
	scalars, err := ps.Sponge.SampleScalars(1)
	if err != nil {
		return hash.Digest{}, fmt.Errorf("transcript: deriving index seed: %w", err)
	}
	return hash.HashVarlen(scalars[0].ToSequence()), nil
}

func encode(item Item) []field.Element {
	switch item.Kind {
	case KindMerkleRoot:
		return append([]field.Element(nil), item.Root[:]...)
	case KindCodeword:
		out := []field.Element{field.New(uint64(len(item.Codeword)))}
		for _, v := range item.Codeword {
			out = append(out, v.ToSequence()...)
		}
		return out
	case KindQueryBundle:
		out := []field.Element{field.New(uint64(len(item.Bundle.Values)))}
		for _, v := range item.Bundle.Values {
			out = append(out, v.ToSequence()...)
		}
		for _, level := range item.Bundle.AuthStructure.Siblings {
			out = append(out, field.New(uint64(len(level))))
			for _, d := range level {
				out = append(out, d[:]...)
			}
		}
		return out
	default:
		return nil
	}
}

// Fingerprint returns a debug/logging-only sha3-256 checksum of the whole
// transcript — not part of the Fiat-Shamir security boundary (that is
// entirely Tip5, via Sponge), but a convenient way to compare two proofs
// byte-for-byte in logs and tests. This is the one remaining home for
// golang.org/x/crypto in this repo once the teacher's legacy sha3-based
// Channel (superseded by the Tip5 sponge) was retired.
func Fingerprint(items []Item) string {
	h := sha3.New256()
	for _, item := range items {
		for _, e := range encode(item) {
			var buf [8]byte
			v := e.Value()
			for i := 0; i < 8; i++ {
				buf[i] = byte(v >> (8 * i))
			}
			h.Write(buf[:])
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
