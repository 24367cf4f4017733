package domain

import (
	"testing"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"
)

func testDomain(t *testing.T, length int) Domain {
	t.Helper()
	omega := field.PrimitiveRootOfUnity(uint64(length))
	d, err := New(field.New(7), omega, length)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return d
}

func TestValuesMatchValue(t *testing.T) {
	d := testDomain(t, 16)
	values := d.Values()
	for i := 0; i < d.Length; i++ {
		if values[i] != d.Value(i) {
			t.Fatalf("Values()[%d] = %v, Value(%d) = %v", i, values[i], i, d.Value(i))
		}
	}
}

func TestEvaluateInterpolateRoundTripB(t *testing.T) {
	d := testDomain(t, 32)
	coeffs := []field.Element{field.New(1), field.New(2), field.New(3), field.New(4)}

	values, err := d.EvaluateB(coeffs)
	if err != nil {
		t.Fatalf("EvaluateB: %v", err)
	}
	if len(values) != d.Length {
		t.Fatalf("EvaluateB returned %d values, want %d", len(values), d.Length)
	}

	recovered, err := d.InterpolateB(values)
	if err != nil {
		t.Fatalf("InterpolateB: %v", err)
	}
	if len(recovered) != len(coeffs) {
		t.Fatalf("InterpolateB returned %d coefficients, want %d", len(recovered), len(coeffs))
	}
	for i := range coeffs {
		if recovered[i] != coeffs[i] {
			t.Fatalf("coefficient %d: got %v, want %v", i, recovered[i], coeffs[i])
		}
	}
}

func TestEvaluateInterpolateRoundTripX(t *testing.T) {
	d := testDomain(t, 16)
	coeffs := []xfield.XFieldElement{
		xfield.Lift(field.New(5)),
		xfield.Lift(field.New(6)),
		xfield.Lift(field.New(7)),
	}

	values, err := d.EvaluateX(coeffs)
	if err != nil {
		t.Fatalf("EvaluateX: %v", err)
	}

	recovered, err := d.InterpolateX(values)
	if err != nil {
		t.Fatalf("InterpolateX: %v", err)
	}
	if len(recovered) != len(coeffs) {
		t.Fatalf("InterpolateX returned %d coefficients, want %d", len(recovered), len(coeffs))
	}
	for i := range coeffs {
		if recovered[i] != coeffs[i] {
			t.Fatalf("coefficient %d: got %v, want %v", i, recovered[i], coeffs[i])
		}
	}
}

func TestHalve(t *testing.T) {
	d := testDomain(t, 64)
	h, err := d.Halve()
	if err != nil {
		t.Fatalf("Halve: %v", err)
	}
	if h.Length != d.Length/2 {
		t.Fatalf("Halve length = %d, want %d", h.Length, d.Length/2)
	}
	if h.Generator != d.Generator.Mul(d.Generator) {
		t.Fatalf("Halve generator mismatch")
	}
}
