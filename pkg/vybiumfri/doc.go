// Package vybiumfri provides a standalone FRI (Fast Reed-Solomon IOP of
// Proximity) prover and verifier.
//
// FRI lets a prover convince a verifier that a committed codeword is close
// to a low-degree Reed-Solomon codeword, in time and proof size
// logarithmic in the domain size, without the verifier ever reading the
// codeword in full. This package implements the commit phase (repeated
// folding with Merkle commitments), the Fiat-Shamir-driven query phase,
// and the round-trip prover/verifier pair, independent of any outer STARK
// constraint system.
//
// # Quick Start
//
//	cfg := vybiumfri.DefaultConfig()
//	f, err := vybiumfri.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ps := vybiumfri.NewProofStream()
//	_, err = f.Prove(codeword, ps)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	verifierPs := vybiumfri.ProofStreamFromItems(ps.Items)
//	evaluations, err := f.Verify(verifierPs)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
//   - pkg/vybiumfri/: public API (this package)
//   - internal/vybiumfri/: private implementation (not importable)
//
// internal/vybiumfri/fri holds the round-count formula and the
// commit/query logic; internal/vybiumfri/domain, ntt, sampler, merkle, and
// transcript hold the coset-evaluation, Fiat-Shamir index sampling,
// batched Merkle authentication, and proof-stream layers it is built on.
//
// # Non-goals
//
// This package does not implement an AIR constraint system, full STARK
// proof composition, zero-knowledge masking of the codeword, or recursive
// IOP-to-SNARK composition. It is a proximity proof for one codeword.
//
// # References
//
//   - FRI Paper: https://eccc.weizmann.ac.il/report/2017/134/
package vybiumfri
