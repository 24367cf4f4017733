package ntt

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"
)

func TestForwardInverseRoundTrip(t *testing.T) {
	const n = 16
	omega := field.PrimitiveRootOfUnity(n)

	coeffs := make([]field.Element, n)
	for i := range coeffs {
		coeffs[i] = field.New(uint64(i + 1))
	}

	values := append([]field.Element(nil), coeffs...)
	if err := Forward(values, omega); err != nil {
		t.Fatalf("Forward: %v", err)
	}

	recovered := append([]field.Element(nil), values...)
	if err := Inverse(recovered, omega); err != nil {
		t.Fatalf("Inverse: %v", err)
	}

	for i := range coeffs {
		if recovered[i] != coeffs[i] {
			t.Fatalf("coefficient %d: got %v, want %v", i, recovered[i], coeffs[i])
		}
	}
}

func TestForwardXInverseXRoundTrip(t *testing.T) {
	const n = 8
	omega := field.PrimitiveRootOfUnity(n)

	coeffs := make([]xfield.XFieldElement, n)
	for i := range coeffs {
		coeffs[i] = xfield.Lift(field.New(uint64(2*i + 1)))
	}

	values := append([]xfield.XFieldElement(nil), coeffs...)
	if err := ForwardX(values, omega); err != nil {
		t.Fatalf("ForwardX: %v", err)
	}

	recovered := append([]xfield.XFieldElement(nil), values...)
	if err := InverseX(recovered, omega); err != nil {
		t.Fatalf("InverseX: %v", err)
	}

	for i := range coeffs {
		if recovered[i] != coeffs[i] {
			t.Fatalf("coefficient %d: got %v, want %v", i, recovered[i], coeffs[i])
		}
	}
}

func TestForwardRejectsNonPowerOfTwo(t *testing.T) {
	a := make([]field.Element, 10)
	if err := Forward(a, field.One); err == nil {
		t.Fatal("expected error for non-power-of-two length")
	}
}
