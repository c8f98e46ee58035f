package mp

// Shift counts for the *Fixed* operations are treated as public quantities:
// the work done depends on the count, which must not be secret. RShiftSafe is
// the variant for secret or out-of-range counts.

// LShiftFixed returns x << n in a fresh Int of capacity x.MaxBits()+n.
func LShiftFixed(x *Int, n uint) *Int {
	dst := New(x.bits + n)
	LShiftFixedInto(dst, x, n)
	return dst
}

// LShiftFixedInto sets dst to x << n truncated to dst's capacity. dst may
// alias x.
func LShiftFixedInto(dst, x *Int, n uint) {
	words := int(n / wordBits)
	s := n % wordBits
	for i := len(dst.w) - 1; i >= 0; i-- {
		// The second term is 0 when s is 0: Go defines over-wide shifts as 0.
		dst.w[i] = x.word(i-words)<<s | x.word(i-words-1)>>(wordBits-s)
	}
	dst.clampTop()
}

// RShiftFixed returns x >> n in a fresh Int with x's capacity. Counts at or
// beyond the capacity give 0.
func RShiftFixed(x *Int, n uint) *Int {
	dst := New(x.bits)
	RShiftFixedInto(dst, x, n)
	return dst
}

// RShiftFixedInto sets dst to x >> n truncated to dst's capacity. dst may
// alias x.
func RShiftFixedInto(dst, x *Int, n uint) {
	words := int(n / wordBits)
	s := n % wordBits
	for i := 0; i < len(dst.w); i++ {
		dst.w[i] = x.word(i+words)>>s | x.word(i+words+1)<<(wordBits-s)
	}
	dst.clampTop()
}

// RShiftSafe returns x >> n for a count that may be secret and may exceed the
// capacity (the result is then 0). It composes fixed shifts by each power of
// two, selecting each with a mask, so timing depends only on the capacity.
func RShiftSafe(x *Int, n uint) *Int {
	res := x.Clone()
	for k := uint(0); k < wordBits; k++ {
		t := RShiftFixed(res, uint(1)<<k)
		SelectInto(res, res, t, uint(n>>k)&1)
	}
	return res
}
