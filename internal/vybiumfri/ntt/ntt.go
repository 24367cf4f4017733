// Package ntt implements the radix-2 Cooley-Tukey number-theoretic
// transform the evaluation domain package needs for coset evaluation and
// interpolation. No dependency in the retrieval pack exposes an NTT over
// the vybium-crypto Goldilocks-family field or its cubic extension — the
// pack's one gnark-crypto fft package is hard-wired to pairing-curve
// scalar fields and cannot be retargeted without a fabricated adapter, so
// the transform is hand-written here on top of vybium-crypto's field and
// xfield arithmetic. See DESIGN.md.
package ntt

import (
	"fmt"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/xfield"
)

// bitReverse permutes a slice of length 2^logN into bit-reversed order.
func bitReverse[T any](a []T, logN uint) {
	n := len(a)
	for i := 1; i < n; i++ {
		j := reverseBits(uint(i), logN)
		if j > uint(i) {
			a[i], a[j] = a[j], a[i]
		}
	}
}

func reverseBits(x uint, bits uint) uint {
	var r uint
	for i := uint(0); i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

func log2Exact(n int) (uint, error) {
	if n <= 0 || n&(n-1) != 0 {
		return 0, fmt.Errorf("ntt: length %d is not a power of two", n)
	}
	logN := uint(0)
	for 1<<logN < n {
		logN++
	}
	return logN, nil
}

// Forward runs an in-place radix-2 NTT over the base field: a, with
// length a power of two, is rewritten to hold the evaluation of its
// coefficients at the powers of omega, an N-th root of unity.
func Forward(a []field.Element, omega field.Element) error {
	logN, err := log2Exact(len(a))
	if err != nil {
		return err
	}
	n := len(a)
	bitReverse(a, logN)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		stepOmega := pow(omega, n/size)
		for start := 0; start < n; start += size {
			w := field.One
			for i := 0; i < half; i++ {
				u := a[start+i]
				v := a[start+i+half].Mul(w)
				a[start+i] = u.Add(v)
				a[start+i+half] = u.Sub(v)
				w = w.Mul(stepOmega)
			}
		}
	}
	return nil
}

// Inverse runs the inverse NTT: a (an evaluation vector) is rewritten to
// hold coefficients, using the same root omega that produced it.
func Inverse(a []field.Element, omega field.Element) error {
	n := len(a)
	if err := Forward(a, omega.Inv()); err != nil {
		return err
	}
	nInv := field.New(uint64(n)).Inv()
	for i := range a {
		a[i] = a[i].Mul(nInv)
	}
	return nil
}

// ForwardX is Forward lifted to the cubic extension field: the values are
// xfield.XFieldElement, the twiddles stay in the base field and are lifted
// once per use.
func ForwardX(a []xfield.XFieldElement, omega field.Element) error {
	logN, err := log2Exact(len(a))
	if err != nil {
		return err
	}
	n := len(a)
	bitReverse(a, logN)

	for size := 2; size <= n; size <<= 1 {
		half := size / 2
		stepOmega := pow(omega, n/size)
		for start := 0; start < n; start += size {
			w := field.One
			for i := 0; i < half; i++ {
				wx := xfield.Lift(w)
				u := a[start+i]
				v := a[start+i+half].Mul(wx)
				a[start+i] = u.Add(v)
				a[start+i+half] = u.Sub(v)
				w = w.Mul(stepOmega)
			}
		}
	}
	return nil
}

// InverseX is the cubic-extension counterpart of Inverse.
func InverseX(a []xfield.XFieldElement, omega field.Element) error {
	n := len(a)
	if err := ForwardX(a, omega.Inv()); err != nil {
		return err
	}
	nInv := xfield.Lift(field.New(uint64(n)).Inv())
	for i := range a {
		a[i] = a[i].Mul(nInv)
	}
	return nil
}

// pow computes base^exp in the base field by repeated squaring; exp is a
// small non-negative int (domain lengths and their quotients), so a plain
// square-and-multiply loop is all the core ever needs.
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
