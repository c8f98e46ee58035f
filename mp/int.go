// Package mp implements fixed-capacity arbitrary-precision unsigned integers
// with constant-time semantics: every operation's running time and memory
// access pattern depend only on the capacities of its operands, never on the
// values they hold. Capacities are chosen at creation and never change;
// "into" operations write into an existing destination and silently truncate
// to its capacity, mirroring fixed-width hardware registers.
package mp

import (
	"github.com/pkg/errors"
)

const (
	wordBits  = 64
	wordBytes = 8
)

// Int is a fixed-capacity unsigned integer. The zero capacity is legal and
// holds only the value 0. Ints are created by the constructors in this
// package and mutated only through the *Into operations.
type Int struct {
	// w holds the value in little-endian 64-bit limbs. Bits at or above the
	// capacity are always zero; every mutating operation re-masks the top
	// limb to maintain this.
	w    []uint64
	bits uint
}

func limbCount(bitLen uint) int {
	return int((bitLen + wordBits - 1) / wordBits)
}

// New returns an all-zero Int with the given capacity in bits.
func New(bitLen uint) *Int {
	return &Int{w: make([]uint64, limbCount(bitLen)), bits: bitLen}
}

// FromUint64 returns an Int of the native word width holding n.
func FromUint64(n uint64) *Int {
	x := New(wordBits)
	x.w[0] = n
	return x
}

// PowerOf2 returns an Int of capacity k+1 holding 2^k.
func PowerOf2(k uint) *Int {
	x := New(k + 1)
	x.w[k/wordBits] = 1 << (k % wordBits)
	return x
}

// Clone returns an independent copy of x with the same capacity.
func (x *Int) Clone() *Int {
	c := New(x.bits)
	copy(c.w, x.w)
	return c
}

// CopyInto sets dst to src truncated to dst's capacity.
func CopyInto(dst, src *Int) {
	for i := range dst.w {
		dst.w[i] = src.word(i)
	}
	dst.clampTop()
}

// MaxBits returns the fixed capacity in bits, independent of the value held.
func (x *Int) MaxBits() uint { return x.bits }

// MaxBytes returns the fixed capacity in bytes, rounded up.
func (x *Int) MaxBytes() uint { return (x.bits + 7) / 8 }

// word returns limb i, reading zero beyond either end. Keeping reads total
// lets operations combine operands of unequal capacity.
func (x *Int) word(i int) uint64 {
	if i < 0 || i >= len(x.w) {
		return 0
	}
	return x.w[i]
}

// clampTop zeroes the bits of the top limb above the capacity.
func (x *Int) clampTop() {
	if r := x.bits % wordBits; r != 0 {
		x.w[len(x.w)-1] &= (1 << r) - 1
	}
}

// Bit returns bit i of x, or 0 when i is at or beyond the capacity. It is the
// non-failing accessor used by loops whose bounds already respect capacities.
func (x *Int) Bit(i uint) uint {
	if i >= x.bits {
		return 0
	}
	return uint(x.w[i/wordBits]>>(i%wordBits)) & 1
}

// GetBit returns bit i of x. Fails with ErrIndexOutOfRange when i is at or
// beyond the capacity.
func (x *Int) GetBit(i uint) (uint, error) {
	if i >= x.bits {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "bit %d of a %d-bit value", i, x.bits)
	}
	return x.Bit(i), nil
}

// SetBit sets bit i of x to b. Fails with ErrIndexOutOfRange when i is at or
// beyond the capacity and with ErrInvalidArgument when b is not 0 or 1.
func (x *Int) SetBit(i, b uint) error {
	if i >= x.bits {
		return errors.Wrapf(ErrIndexOutOfRange, "bit %d of a %d-bit value", i, x.bits)
	}
	if b > 1 {
		return errors.Wrapf(ErrInvalidArgument, "bit value %d", b)
	}
	mask := uint64(1) << (i % wordBits)
	x.w[i/wordBits] = (x.w[i/wordBits] &^ mask) | (uint64(b) << (i % wordBits))
	return nil
}

// GetByte returns byte i of x (byte 0 is least significant), zero-padded
// above the held value but within capacity. Fails with ErrIndexOutOfRange
// when i is at or beyond the byte capacity.
func (x *Int) GetByte(i uint) (byte, error) {
	if i >= x.MaxBytes() {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "byte %d of a %d-bit value", i, x.bits)
	}
	return x.byteAt(i), nil
}

func (x *Int) byteAt(i uint) byte {
	return byte(x.w[i*8/wordBits] >> ((i * 8) % wordBits))
}

// nonZero returns 1 if x holds a non-zero value and 0 otherwise, in time
// depending only on the capacity.
func (x *Int) nonZero() uint {
	var acc uint64
	for _, w := range x.w {
		acc |= w
	}
	return ctNonZero64(acc)
}

// NBits returns the number of bits needed to represent the value of x (0 for
// the value 0). The search halves the candidate window instead of scanning
// bits linearly, so the running time depends only on the capacity.
func (x *Int) NBits() uint {
	if x.bits == 0 {
		return 0
	}
	w := x.Clone()
	// Start at the largest power of two strictly below the capacity. The
	// invariant is that after the step for shift s, w < 2^s.
	s := uint(1)
	for s < x.bits {
		s <<= 1
	}
	var total uint
	for s >>= 1; s > 0; s >>= 1 {
		t := RShiftFixed(w, s)
		nz := t.nonZero()
		SelectInto(w, w, t, nz)
		total += s * nz
	}
	return total + uint(w.word(0)&1)
}

// ctNonZero64 returns 1 if w != 0 and 0 otherwise, without branching.
func ctNonZero64(w uint64) uint {
	return uint((w | -w) >> 63)
}

// ctMask expands the low bit of flag to an all-ones or all-zero word.
func ctMask(flag uint) uint64 {
	return -(uint64(flag) & 1)
}
