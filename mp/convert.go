package mp

import (
	"strconv"

	"github.com/pkg/errors"
)

// FromBytesBE returns an Int of capacity 8*len(b) holding the big-endian
// value of b.
func FromBytesBE(b []byte) *Int {
	x := New(uint(len(b)) * 8)
	for i, c := range b {
		pos := uint(len(b)-1-i) * 8
		x.w[pos/wordBits] |= uint64(c) << (pos % wordBits)
	}
	return x
}

// FromBytesLE returns an Int of capacity 8*len(b) holding the little-endian
// value of b.
func FromBytesLE(b []byte) *Int {
	x := New(uint(len(b)) * 8)
	for i, c := range b {
		pos := uint(i) * 8
		x.w[pos/wordBits] |= uint64(c) << (pos % wordBits)
	}
	return x
}

// BytesBE returns the value as MaxBytes() big-endian bytes, zero-padded to
// the capacity.
func (x *Int) BytesBE() []byte {
	n := x.MaxBytes()
	out := make([]byte, n)
	for i := uint(0); i < n; i++ {
		out[n-1-i] = x.byteAt(i)
	}
	return out
}

// BytesLE returns the value as MaxBytes() little-endian bytes, zero-padded to
// the capacity.
func (x *Int) BytesLE() []byte {
	n := x.MaxBytes()
	out := make([]byte, n)
	for i := uint(0); i < n; i++ {
		out[i] = x.byteAt(i)
	}
	return out
}

// FromDecimal parses a decimal string. The capacity is determined by the
// string length (10/3 bits per digit, rounded up), so equal-length inputs get
// equal capacities regardless of value. Fails with ErrMalformedInput on
// anything but ASCII digits.
func FromDecimal(s string) (*Int, error) {
	if len(s) == 0 {
		return nil, errors.Wrap(ErrMalformedInput, "empty decimal string")
	}
	x := New((uint(len(s))*10 + 2) / 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return nil, errors.Wrapf(ErrMalformedInput, "invalid decimal digit %q at index %d", c, i)
		}
		x.mulAddWord(10, uint64(c-'0'))
	}
	return x, nil
}

// FromHex parses a hex string, accepting both digit cases. The capacity is 4
// bits per digit. Fails with ErrMalformedInput on non-hex characters.
func FromHex(s string) (*Int, error) {
	if len(s) == 0 {
		return nil, errors.Wrap(ErrMalformedInput, "empty hex string")
	}
	x := New(uint(len(s)) * 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		var v uint64
		switch {
		case c >= '0' && c <= '9':
			v = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			v = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			v = uint64(c-'A') + 10
		default:
			return nil, errors.Wrapf(ErrMalformedInput, "invalid hex digit %q at index %d", c, i)
		}
		pos := uint(len(s)-1-i) * 4
		x.w[pos/wordBits] |= v << (pos % wordBits)
	}
	return x, nil
}

// Decimal formats the value in decimal with no leading zeros ("0" for zero).
// Radix conversion divides by word-sized constants and is not constant-time;
// formatting reveals the value by definition.
func (x *Int) Decimal() string {
	// 10^19 is the largest power of ten in a 64-bit word.
	const chunk = uint64(10_000_000_000_000_000_000)
	rem := x.Clone()
	var groups []uint64
	for {
		q, r := divModWord(rem, chunk)
		groups = append(groups, r)
		if q.nonZero() == 0 {
			break
		}
		rem = q
	}
	s := strconv.FormatUint(groups[len(groups)-1], 10)
	for i := len(groups) - 2; i >= 0; i-- {
		g := strconv.FormatUint(groups[i], 10)
		s += "0000000000000000000"[:19-len(g)] + g
	}
	return s
}

const hexLower = "0123456789abcdef"
const hexUpper = "0123456789ABCDEF"

func (x *Int) hex(digits string) string {
	b := x.BytesBE()
	out := make([]byte, 0, len(b)*2)
	for _, c := range b {
		out = append(out, digits[c>>4], digits[c&0xf])
	}
	for len(out) > 1 && out[0] == '0' {
		out = out[1:]
	}
	if len(out) == 0 {
		return "0"
	}
	return string(out)
}

// Hex formats the value in lowercase hex with no leading zeros ("0" for
// zero). Not constant-time, like Decimal.
func (x *Int) Hex() string { return x.hex(hexLower) }

// HexUpper is Hex with uppercase digits.
func (x *Int) HexUpper() string { return x.hex(hexUpper) }
