// Package domain implements Component A (spec §4.1): a coset g·⟨ω⟩ of a
// power-of-two order N, with coset-NTT evaluation and interpolation over
// both the base field and its cubic extension. It generalizes the
// teacher's protocols.ArithmeticDomain (which evaluated by direct
// polynomial evaluation, "NTT would be more efficient but requires
// implementation") by backing evaluate/interpolate with the ntt package,
// following the shape of FriDomain.{b,x}_evaluate/_interpolate in the
// original fri.rs.
package domain

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"

	"github.com/vybium/vybium-fri/internal/vybiumfri/mathutil"
	"github.com/vybium/vybium-fri/internal/vybiumfri/ntt"
)

// Domain is the coset {offset * generator^i : i = 0..length-1}.
type Domain struct {
	Offset    field.Element
	Generator field.Element
	Length    int
}

// New validates and builds a Domain. Generator must have order exactly
// Length; Offset must not lie in the subgroup generated by Generator
// (callers typically pass the field's canonical non-residue generator).
func New(offset, generator field.Element, length int) (Domain, error) {
	if !mathutil.IsPowerOfTwo(length) {
		return Domain{}, fmt.Errorf("domain: length %d must be a power of two", length)
	}
	if !pow(generator, length).Equal(field.One) || (length > 1 && pow(generator, length/2).Equal(field.One)) {
		return Domain{}, fmt.Errorf("domain: generator does not have order %d", length)
	}
	if pow(offset, length).Equal(field.One) {
		return Domain{}, fmt.Errorf("domain: offset lies in the subgroup of order %d", length)
	}
	return Domain{Offset: offset, Generator: generator, Length: length}, nil
}

// Value returns the i-th domain point g*ω^i.
func (d Domain) Value(i int) field.Element {
	return d.Offset.Mul(pow(d.Generator, i))
}

// Values enumerates the whole domain, g, g·ω, g·ω², ….
func (d Domain) Values() []field.Element {
	out := make([]field.Element, d.Length)
	current := d.Offset
	for i := 0; i < d.Length; i++ {
		out[i] = current
		current = current.Mul(d.Generator)
	}
	return out
}

// Halve returns the domain of half the length obtained by squaring both
// the offset and the generator — the domain the FRI folding step moves to.
func (d Domain) Halve() (Domain, error) {
	if d.Length < 2 {
		return Domain{}, fmt.Errorf("domain: cannot halve a domain of length %d", d.Length)
	}
	return Domain{
		Offset:    d.Offset.Mul(d.Offset),
		Generator: d.Generator.Mul(d.Generator),
		Length:    d.Length / 2,
	}, nil
}

// EvaluateB evaluates a base-field polynomial (coefficients, low degree
// first) over the domain via coset NTT: scale coefficients by offset^k,
// zero-pad to Length, then NTT with root Generator.
func (d Domain) EvaluateB(coefficients []field.Element) ([]field.Element, error) {
	if len(coefficients) > d.Length {
		return nil, fmt.Errorf("domain: polynomial of degree %d does not fit in domain of length %d", len(coefficients)-1, d.Length)
	}
	padded := make([]field.Element, d.Length)
	scale := field.One
	for i, c := range coefficients {
		padded[i] = c.Mul(scale)
		scale = scale.Mul(d.Offset)
	}
	if err := ntt.Forward(padded, d.Generator); err != nil {
		return nil, err
	}
	return padded, nil
}

// InterpolateB inverts EvaluateB: given Length values, recovers the
// coefficients of the unique polynomial of degree < Length they came from,
// with trailing zero coefficients trimmed.
func (d Domain) InterpolateB(values []field.Element) ([]field.Element, error) {
	if len(values) != d.Length {
		return nil, fmt.Errorf("domain: expected %d values, got %d", d.Length, len(values))
	}
	coeffs := append([]field.Element(nil), values...)
	if err := ntt.Inverse(coeffs, d.Generator); err != nil {
		return nil, err
	}
	offsetInv := d.Offset.Inv()
	scale := field.One
	for i := range coeffs {
		coeffs[i] = coeffs[i].Mul(scale)
		scale = scale.Mul(offsetInv)
	}
	return trimB(coeffs), nil
}

// EvaluateX is EvaluateB lifted to the cubic extension.
func (d Domain) EvaluateX(coefficients []xfield.XFieldElement) ([]xfield.XFieldElement, error) {
	if len(coefficients) > d.Length {
		return nil, fmt.Errorf("domain: polynomial of degree %d does not fit in domain of length %d", len(coefficients)-1, d.Length)
	}
	padded := make([]xfield.XFieldElement, d.Length)
	scale := field.One
	for i, c := range coefficients {
		padded[i] = c.Mul(xfield.Lift(scale))
		scale = scale.Mul(d.Offset)
	}
	if err := ntt.ForwardX(padded, d.Generator); err != nil {
		return nil, err
	}
	return padded, nil
}

// InterpolateX inverts EvaluateX.
func (d Domain) InterpolateX(values []xfield.XFieldElement) ([]xfield.XFieldElement, error) {
	if len(values) != d.Length {
		return nil, fmt.Errorf("domain: expected %d values, got %d", d.Length, len(values))
	}
	coeffs := append([]xfield.XFieldElement(nil), values...)
	if err := ntt.InverseX(coeffs, d.Generator); err != nil {
		return nil, err
	}
	offsetInv := d.Offset.Inv()
	scale := field.One
	for i := range coeffs {
		coeffs[i] = coeffs[i].Mul(xfield.Lift(scale))
		scale = scale.Mul(offsetInv)
	}
	return trimX(coeffs), nil
}

func trimB(coeffs []field.Element) []field.Element {
	n := len(coeffs)
	for n > 1 && coeffs[n-1].Equal(field.Zero) {
		n--
	}
	return coeffs[:n]
}

func trimX(coeffs []xfield.XFieldElement) []xfield.XFieldElement {
	n := len(coeffs)
	zero := xfield.Lift(field.Zero)
	for n > 1 && coeffs[n-1].Equal(zero) {
		n--
	}
	return coeffs[:n]
}

func pow(base field.Element, exp int) field.Element {
	result := field.One
	b := base
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(b)
		}
		b = b.Mul(b)
		exp >>= 1
	}
	return result
}
