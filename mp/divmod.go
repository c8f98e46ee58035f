package mp

import (
	"math/bits"

	"github.com/pkg/errors"
)

// DivModInto computes n / d and n mod d into q and r, each truncated to its
// own capacity. Classic shift-and-subtract long division: the loop runs once
// per bit of n's capacity and every subtraction is conditional via masks, so
// timing depends only on the capacities. q and r must not alias n or d; q may
// be nil when only the remainder is wanted. Fails with ErrDivisionByZero when
// d holds zero.
func DivModInto(q, r, n, d *Int) error {
	if d.nonZero() == 0 {
		return errors.Wrap(ErrDivisionByZero, "zero divisor")
	}
	if q != nil {
		for i := range q.w {
			q.w[i] = 0
		}
	}
	// The working remainder needs one bit more than the divisor capacity:
	// before each conditional subtraction it is below 2d.
	rem := New(d.bits + 1)
	for i := int(n.bits) - 1; i >= 0; i-- {
		LShiftFixedInto(rem, rem, 1)
		rem.w[0] |= uint64(n.Bit(uint(i)))
		ge := Hs(rem, d)
		CondSubInto(rem, rem, d, ge)
		if q != nil && uint(i) < q.bits {
			q.w[uint(i)/wordBits] |= uint64(ge) << (uint(i) % wordBits)
		}
	}
	if r != nil {
		CopyInto(r, rem)
	}
	return nil
}

// DivMod returns the quotient (capacity of n) and remainder (capacity of d)
// of n / d.
func DivMod(n, d *Int) (*Int, *Int, error) {
	q := New(n.bits)
	r := New(d.bits)
	if err := DivModInto(q, r, n, d); err != nil {
		return nil, nil, err
	}
	return q, r, nil
}

// Div returns n / d in a fresh Int with n's capacity.
func Div(n, d *Int) (*Int, error) {
	q := New(n.bits)
	if err := DivModInto(q, nil, n, d); err != nil {
		return nil, err
	}
	return q, nil
}

// Mod returns n mod d in a fresh Int with d's capacity.
func Mod(n, d *Int) (*Int, error) {
	r := New(d.bits)
	if err := DivModInto(nil, r, n, d); err != nil {
		return nil, err
	}
	return r, nil
}

// divModWord divides n by a non-zero single-word divisor using the hardware
// divider. Used only for radix conversion; not constant-time.
func divModWord(n *Int, d uint64) (*Int, uint64) {
	q := New(n.bits)
	var rem uint64
	for i := len(n.w) - 1; i >= 0; i-- {
		q.w[i], rem = bits.Div64(rem, n.w[i], d)
	}
	return q, rem
}
