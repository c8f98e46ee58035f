package mp

import "math/bits"

// The conditional primitives below take a 0/1 selector and are implemented
// with arithmetic masks. Neither the control flow nor the memory access
// pattern depends on the selector or on the operand values.

// SelectInto sets dst to a if flag is 0 and to b if flag is 1, truncated to
// dst's capacity. dst may alias a or b.
func SelectInto(dst, a, b *Int, flag uint) {
	mask := ctMask(flag)
	for i := range dst.w {
		dst.w[i] = (a.word(i) &^ mask) | (b.word(i) & mask)
	}
	dst.clampTop()
}

// CondAddInto sets dst to a + (flag ? b : 0), truncated to dst's capacity.
func CondAddInto(dst, a, b *Int, flag uint) {
	mask := ctMask(flag)
	var carry uint64
	for i := range dst.w {
		dst.w[i], carry = bits.Add64(a.word(i), b.word(i)&mask, carry)
	}
	dst.clampTop()
}

// CondSubInto sets dst to a - (flag ? b : 0), truncated to dst's capacity
// (wrapping on underflow).
func CondSubInto(dst, a, b *Int, flag uint) {
	mask := ctMask(flag)
	var borrow uint64
	for i := range dst.w {
		dst.w[i], borrow = bits.Sub64(a.word(i), b.word(i)&mask, borrow)
	}
	dst.clampTop()
}

// CondSwap exchanges the values of a and b iff flag is 1. The operands must
// have the same capacity; a mismatch is a programming error and panics.
func CondSwap(a, b *Int, flag uint) {
	if a.bits != b.bits {
		panic("mp: CondSwap operands must have equal capacity")
	}
	mask := ctMask(flag)
	for i := range a.w {
		t := (a.w[i] ^ b.w[i]) & mask
		a.w[i] ^= t
		b.w[i] ^= t
	}
}

// CondClear zeroes a iff flag is 1.
func CondClear(a *Int, flag uint) {
	keep := ^ctMask(flag)
	for i := range a.w {
		a.w[i] &= keep
	}
}
