package mp

import "math/bits"

// Eq returns 1 if a and b hold the same value and 0 otherwise. Operands of
// different capacities compare as non-negative integers padded with leading
// zeros. Constant time in the capacities.
func Eq(a, b *Int) uint {
	n := len(a.w)
	if len(b.w) > n {
		n = len(b.w)
	}
	var diff uint64
	for i := 0; i < n; i++ {
		diff |= a.word(i) ^ b.word(i)
	}
	return 1 - ctNonZero64(diff)
}

// Hs returns 1 if a >= b ("higher or same") and 0 otherwise. Constant time in
// the capacities.
func Hs(a, b *Int) uint {
	n := len(a.w)
	if len(b.w) > n {
		n = len(b.w)
	}
	var borrow uint64
	for i := 0; i < n; i++ {
		_, borrow = bits.Sub64(a.word(i), b.word(i), borrow)
	}
	return uint(borrow ^ 1)
}

// EqUint64 returns 1 if a holds exactly the value n.
func EqUint64(a *Int, n uint64) uint {
	diff := a.word(0) ^ n
	for i := 1; i < len(a.w); i++ {
		diff |= a.w[i]
	}
	return 1 - ctNonZero64(diff)
}

// HsUint64 returns 1 if a >= n.
func HsUint64(a *Int, n uint64) uint {
	var borrow uint64
	_, borrow = bits.Sub64(a.word(0), n, 0)
	for i := 1; i < len(a.w); i++ {
		_, borrow = bits.Sub64(a.w[i], 0, borrow)
	}
	return uint(borrow ^ 1)
}

// Min returns the numeric minimum of a and b in a fresh Int wide enough for
// either operand.
func Min(a, b *Int) *Int {
	w := a.bits
	if b.bits > w {
		w = b.bits
	}
	dst := New(w)
	MinInto(dst, a, b)
	return dst
}

// MinInto sets dst to the numeric minimum of a and b, truncated to dst's
// capacity.
func MinInto(dst, a, b *Int) {
	SelectInto(dst, a, b, Hs(a, b))
}
