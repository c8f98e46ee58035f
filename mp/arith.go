package mp

import "math/bits"

// Add returns a + b in a fresh Int wide enough for the true sum.
func Add(a, b *Int) *Int {
	w := a.bits
	if b.bits > w {
		w = b.bits
	}
	dst := New(w + 1)
	AddInto(dst, a, b)
	return dst
}

// AddInto sets dst to a + b truncated to dst's capacity. Overflow wraps
// silently; that is the contract, not a failure.
func AddInto(dst, a, b *Int) {
	var carry uint64
	for i := range dst.w {
		dst.w[i], carry = bits.Add64(a.word(i), b.word(i), carry)
	}
	dst.clampTop()
}

// Sub returns a - b modulo 2^w, where w is the larger operand capacity.
// Underflow wraps, mirroring fixed-width registers.
func Sub(a, b *Int) *Int {
	w := a.bits
	if b.bits > w {
		w = b.bits
	}
	dst := New(w)
	SubInto(dst, a, b)
	return dst
}

// SubInto sets dst to a - b truncated to dst's capacity, wrapping on
// underflow.
func SubInto(dst, a, b *Int) {
	var borrow uint64
	for i := range dst.w {
		dst.w[i], borrow = bits.Sub64(a.word(i), b.word(i), borrow)
	}
	dst.clampTop()
}

// Mul returns a * b in a fresh Int wide enough for the true product.
func Mul(a, b *Int) *Int {
	dst := New(a.bits + b.bits)
	MulInto(dst, a, b)
	return dst
}

// MulInto sets dst to a * b truncated to dst's capacity. Schoolbook
// multiplication over the limbs; partial products above dst's capacity are
// never formed. dst may alias a or b.
func MulInto(dst, a, b *Int) {
	dlen := len(dst.w)
	acc := make([]uint64, dlen)
	for i := 0; i < len(a.w) && i < dlen; i++ {
		ai := a.w[i]
		var carry uint64
		for j := 0; i+j < dlen; j++ {
			hi, lo := bits.Mul64(ai, b.word(j))
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			lo, c = bits.Add64(lo, acc[i+j], 0)
			hi += c
			acc[i+j] = lo
			carry = hi
		}
	}
	copy(dst.w, acc)
	dst.clampTop()
}

// mulAddWord sets x to x*m + a in place, truncated to x's capacity. Helper
// for radix conversion.
func (x *Int) mulAddWord(m, a uint64) {
	carry := a
	for i := range x.w {
		hi, lo := bits.Mul64(x.w[i], m)
		var c uint64
		lo, c = bits.Add64(lo, carry, 0)
		x.w[i] = lo
		carry = hi + c
	}
	x.clampTop()
}
