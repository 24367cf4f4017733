package vybiumfri

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"

	"github.com/vybium/vybium-fri/internal/vybiumfri/config"
	internalfri "github.com/vybium/vybium-fri/internal/vybiumfri/fri"
	"github.com/vybium/vybium-fri/internal/vybiumfri/transcript"
)

// Config is the public configuration type for a Fri instance.
type Config = config.Config

// Evaluation is a disclosed (index, value) pair from the query phase's
// first round, returned by Verify for an outer protocol to cross-check
// against its own claimed trace values.
type Evaluation = internalfri.Evaluation

// ProofStream carries the Fiat-Shamir transcript a Prove/Verify pair is
// exchanged through.
type ProofStream = transcript.ProofStream

// Item is one message on a ProofStream.
type Item = transcript.Item

// ItemKind tags the payload an Item carries.
type ItemKind = transcript.ItemKind

const (
	KindMerkleRoot  = transcript.KindMerkleRoot
	KindCodeword    = transcript.KindCodeword
	KindQueryBundle = transcript.KindQueryBundle
)

// NewProofStream returns an empty, prover-side proof stream.
func NewProofStream() *ProofStream {
	return transcript.New()
}

// ProofStreamFromItems builds a verifier-side proof stream from a prover's
// recorded Items, ready for Verify.
func ProofStreamFromItems(items []Item) *ProofStream {
	return transcript.FromItems(items)
}

// Fingerprint returns a debug-only checksum of a proof stream's items,
// useful for comparing two proofs for byte-identical equality in tests
// and logs.
func Fingerprint(items []Item) string {
	return transcript.Fingerprint(items)
}

// DefaultConfig returns a Config sized for a small demonstration domain:
// N=1024, ρ=4, q=32, over the coset 7·⟨ω⟩ for a primitive 1024th root of
// unity ω.
func DefaultConfig() Config {
	omega := field.PrimitiveRootOfUnity(1024)
	return config.New(7, omega.Value(), 1024, 4, 32)
}

// Fri is a single FRI instance: a fixed evaluation domain plus the two
// protocol knobs (expansion factor, colinearity check count).
type Fri struct {
	inner *internalfri.Fri
}

// New builds a Fri instance from cfg, validating its structural
// preconditions and constructing its evaluation domain.
func New(cfg Config) (*Fri, error) {
	inner, err := internalfri.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Fri{inner: inner}, nil
}

// NumRounds returns (R, δ): the number of folding rounds and the degree
// slack the last codeword is allowed, per the configured (N, ρ, q).
func (f *Fri) NumRounds() (rounds, delta int) {
	return f.inner.NumRounds()
}

// Prove runs the commit phase and the query phase over codeword,
// appending every message to ps, and returns the sampled top-layer query
// indices.
func (f *Fri) Prove(codeword []xfield.XFieldElement, ps *ProofStream) ([]int, error) {
	indices, err := f.inner.Prove(codeword, ps)
	if err != nil {
		return nil, wrapInternalError(err)
	}
	return indices, nil
}

// Verify replays a transcript produced by Prove, checking every Merkle
// opening, the per-round colinearity relation, and the last layer's degree
// bound. It returns the (index, value) pairs disclosed at layer 0, or a
// *VerificationError describing why the proof was rejected.
func (f *Fri) Verify(ps *ProofStream) ([]Evaluation, error) {
	evaluations, err := f.inner.Verify(ps)
	if err != nil {
		return nil, wrapInternalError(err)
	}
	return evaluations, nil
}
