// Command vybiumfri-prove runs a FRI prove/verify round trip over a
// synthetic codeword described by a single JSON line on stdin, in the
// same line-oriented stdin/stdout convention as the teacher's
// vybium-vm-prover command.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"

	"github.com/vybium/vybium-fri/pkg/vybiumfri"
)

// RunRequest describes the FRI instance and the codeword to prove
// proximity for.
type RunRequest struct {
	Offset            uint64 `json:"offset"`
	Generator         uint64 `json:"generator,omitempty"` // 0 means: derive the primitive DomainLength-th root
	DomainLength      int    `json:"domain_length"`
	ExpansionFactor   int    `json:"expansion_factor"`
	ColinearityChecks int    `json:"colinearity_checks"`
	CodewordDegree    uint32 `json:"codeword_degree"`
}

// RunResult reports the shape of the generated proof and whether it
// verified, without serializing the field-element payload itself.
type RunResult struct {
	Rounds        int    `json:"rounds"`
	Delta         int    `json:"delta"`
	QueryIndices  []int  `json:"query_indices"`
	ItemCount     int    `json:"item_count"`
	Fingerprint   string `json:"fingerprint"`
	Verified      bool   `json:"verified"`
	Evaluations   int    `json:"evaluations_disclosed"`
	FailureReason string `json:"failure_reason,omitempty"`
}

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	if !scanner.Scan() {
		fatal("failed to read request")
	}
	var req RunRequest
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		fatal(fmt.Sprintf("failed to parse request: %v", err))
	}

	cfg := vybiumfri.DefaultConfig()
	if req.Offset != 0 {
		cfg.Offset = req.Offset
	}
	if req.DomainLength != 0 {
		cfg.DomainLength = req.DomainLength
	}
	if req.ExpansionFactor != 0 {
		cfg.ExpansionFactor = req.ExpansionFactor
	}
	if req.ColinearityChecks != 0 {
		cfg.ColinearityChecks = req.ColinearityChecks
	}
	if req.Generator != 0 {
		cfg.Generator = req.Generator
	} else {
		cfg.Generator = field.PrimitiveRootOfUnity(uint64(cfg.DomainLength)).Value()
	}

	logStderr("building FRI instance...")
	f, err := vybiumfri.New(cfg)
	if err != nil {
		fatal(fmt.Sprintf("failed to build FRI instance: %v", err))
	}

	rounds, delta := f.NumRounds()
	logStderr(fmt.Sprintf("rounds=%d delta=%d", rounds, delta))

	codeword := syntheticCodeword(cfg.Offset, cfg.Generator, cfg.DomainLength, req.CodewordDegree)

	logStderr("proving...")
	proverStream := vybiumfri.NewProofStream()
	indices, err := f.Prove(codeword, proverStream)
	if err != nil {
		fatal(fmt.Sprintf("prove failed: %v", err))
	}

	result := RunResult{
		Rounds:       rounds,
		Delta:        delta,
		QueryIndices: indices,
		ItemCount:    len(proverStream.Items),
		Fingerprint:  vybiumfri.Fingerprint(proverStream.Items),
	}

	logStderr("verifying...")
	verifierStream := vybiumfri.ProofStreamFromItems(proverStream.Items)
	evaluations, err := f.Verify(verifierStream)
	if err != nil {
		result.FailureReason = err.Error()
	} else {
		result.Verified = true
		result.Evaluations = len(evaluations)
	}

	out, err := json.Marshal(result)
	if err != nil {
		fatal(fmt.Sprintf("failed to serialize result: %v", err))
	}
	os.Stdout.Write(out)
	os.Stdout.Write([]byte("\n"))
}

// syntheticCodeword evaluates x^degree over the coset offset*<generator>,
// lifted to X, so the command has something degree-bounded to prove
// proximity for without needing an outer trace/AIR to supply one.
func syntheticCodeword(offset, generator uint64, length int, degree uint32) []xfield.XFieldElement {
	out := make([]xfield.XFieldElement, length)
	point := field.New(offset)
	gen := field.New(generator)
	for i := 0; i < length; i++ {
		p := field.One
		for k := uint32(0); k < degree; k++ {
			p = p.Mul(point)
		}
		out[i] = xfield.Lift(p)
		point = point.Mul(gen)
	}
	return out
}

func logStderr(msg string) {
	fmt.Fprintln(os.Stderr, "vybiumfri-prove:", msg)
}

func fatal(msg string) {
	logStderr("ERROR: " + msg)
	os.Exit(1)
}
