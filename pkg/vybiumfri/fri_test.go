package vybiumfri_test

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"

	"github.com/vybium/vybium-fri/pkg/vybiumfri"
)

func codewordOfDegree(f *vybiumfri.Fri, n uint32) []xfield.XFieldElement {
	cfg := vybiumfri.DefaultConfig()
	omega := field.PrimitiveRootOfUnity(uint64(cfg.DomainLength))
	values := make([]xfield.XFieldElement, cfg.DomainLength)
	point := field.New(cfg.Offset)
	for i := 0; i < cfg.DomainLength; i++ {
		p := field.One
		for k := uint32(0); k < n; k++ {
			p = p.Mul(point)
		}
		values[i] = xfield.Lift(p)
		point = point.Mul(omega)
	}
	return values
}

func TestProveVerifyRoundTrip(t *testing.T) {
	cfg := vybiumfri.DefaultConfig()
	f, err := vybiumfri.New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	codeword := codewordOfDegree(f, 2)

	ps := vybiumfri.NewProofStream()
	if _, err := f.Prove(codeword, ps); err != nil {
		t.Fatalf("Prove: %v", err)
	}

	verifierPs := vybiumfri.ProofStreamFromItems(ps.Items)
	evaluations, err := f.Verify(verifierPs)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if len(evaluations) == 0 {
		t.Fatal("expected at least one disclosed evaluation")
	}
}

func TestVerifyRejectsEmptyTranscript(t *testing.T) {
	f, err := vybiumfri.New(vybiumfri.DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = f.Verify(vybiumfri.NewProofStream())
	if err == nil {
		t.Fatal("expected an error verifying an empty transcript")
	}
	ve, ok := err.(*vybiumfri.VerificationError)
	if !ok {
		t.Fatalf("expected *vybiumfri.VerificationError, got %T", err)
	}
	if ve.Code != vybiumfri.ErrBadSizedProof {
		t.Fatalf("expected ErrBadSizedProof, got %s", ve.Code)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := vybiumfri.DefaultConfig()
	cfg.DomainLength = 3 // not a power of two
	if _, err := vybiumfri.New(cfg); err == nil {
		t.Fatal("expected New to reject a non-power-of-two domain length")
	}
}
