package mp

import "github.com/pkg/errors"

// ReduceMod2To reduces x modulo 2^k in place. Counts at or beyond the
// capacity leave x unchanged.
func (x *Int) ReduceMod2To(k uint) {
	if k >= x.bits {
		return
	}
	word := int(k / wordBits)
	if r := k % wordBits; r != 0 {
		x.w[word] &= (1 << r) - 1
		word++
	}
	for ; word < len(x.w); word++ {
		x.w[word] = 0
	}
}

// InvertMod2To returns b with a*b == 1 (mod 2^k) for odd a, by Newton
// iteration: each step doubles the number of correct low bits, so the step
// count depends only on k. Fails with ErrInvalidArgument when a is even.
func InvertMod2To(a *Int, k uint) (*Int, error) {
	if a.Bit(0) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "inversion mod 2^k of an even value")
	}
	x := New(k)
	if k == 0 {
		return x, nil
	}
	x.w[0] = 1 // correct mod 2
	two := New(k)
	CopyInto(two, FromUint64(2))
	t := New(k)
	u := New(k)
	for have := uint(1); have < k; have <<= 1 {
		MulInto(t, a, x)   // a*x mod 2^k
		SubInto(u, two, t) // 2 - a*x
		MulInto(x, x, u)
	}
	return x, nil
}

// Invert returns the inverse of x modulo m. Fails with ErrNotInvertible when
// gcd(x, m) != 1.
//
// The algorithm is the extended Euclidean method run for a data-independent
// number of rounds (2*capacity+1 covers the Fibonacci worst case), each round
// using the constant-time division above; once the remainder chain reaches
// zero the state is frozen by masked selection, so timing depends only on the
// capacity of m. A binary-GCD formulation was rejected because its
// coefficient-halving step needs an odd modulus, and this contract admits any
// modulus coprime to x.
func Invert(x, m *Int) (*Int, error) {
	if m.nonZero() == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "zero modulus")
	}
	one := FromUint64(1)
	r0 := New(m.bits)
	CopyInto(r0, m)
	r1, err := Mod(x, m)
	if err != nil {
		return nil, err
	}
	t0 := New(m.bits)
	t1, err := Mod(one, m)
	if err != nil {
		return nil, err
	}
	padDiv := New(m.bits)
	CopyInto(padDiv, one)
	q := New(m.bits)
	rem := New(m.bits)
	divisor := New(m.bits)
	rounds := 2*m.bits + 1
	for i := uint(0); i < rounds; i++ {
		done := 1 - r1.nonZero()
		SelectInto(divisor, r1, padDiv, done)
		if err := DivModInto(q, rem, r0, divisor); err != nil {
			return nil, err
		}
		qt, err := ModMul(q, t1, m)
		if err != nil {
			return nil, err
		}
		tNext, err := ModSub(t0, qt, m)
		if err != nil {
			return nil, err
		}
		// Advance the chains unless frozen.
		nr0 := New(m.bits)
		SelectInto(nr0, r1, r0, done)
		nr1 := New(m.bits)
		SelectInto(nr1, rem, r1, done)
		nt0 := New(m.bits)
		SelectInto(nt0, t1, t0, done)
		nt1 := New(m.bits)
		SelectInto(nt1, tNext, t1, done)
		r0, r1, t0, t1 = nr0, nr1, nt0, nt1
	}
	if EqUint64(r0, 1) == 0 {
		return nil, errors.Wrap(ErrNotInvertible, "gcd of operand and modulus is not 1")
	}
	return t0, nil
}
