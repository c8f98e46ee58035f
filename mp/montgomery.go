package mp

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Montgomery is a modular-multiplication domain bound to an odd modulus.
// A value is either in plain or Montgomery representation; Import and Export
// convert. The context is immutable after construction and may be shared
// read-only between operations.
type Montgomery struct {
	m    *Int
	nw   int    // limb count of the modulus capacity
	mInv uint64 // -m^-1 mod 2^64
	r1   *Int   // R mod m, the domain representation of 1
	r2   *Int   // R^2 mod m, the import multiplier
}

// NewMontgomery builds a context for the odd modulus m. Fails with
// ErrInvalidArgument when m is even.
func NewMontgomery(m *Int) (*Montgomery, error) {
	if m.Bit(0) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "Montgomery modulus must be odd")
	}
	mc := &Montgomery{m: m.Clone(), nw: len(m.w)}
	// Newton iteration on the low limb: an odd word is its own inverse mod
	// 8, and five doublings take those 3 correct low bits to all 64.
	inv := mc.m.w[0]
	for i := 0; i < 5; i++ {
		inv *= 2 - mc.m.w[0]*inv
	}
	mc.mInv = -inv
	rbits := uint(mc.nw) * wordBits
	var err error
	if mc.r1, err = Mod(PowerOf2(rbits), m); err != nil {
		return nil, err
	}
	if mc.r2, err = Mod(PowerOf2(2*rbits), m); err != nil {
		return nil, err
	}
	return mc, nil
}

// Modulus returns a copy of the modulus.
func (mc *Montgomery) Modulus() *Int { return mc.m.Clone() }

// Identity returns the domain representation of 1.
func (mc *Montgomery) Identity() *Int { return mc.r1.Clone() }

// norm re-homes a domain value onto the modulus capacity. Domain values are
// always below m, so the copy never truncates.
func (mc *Montgomery) norm(x *Int) *Int {
	if x.bits == mc.m.bits {
		return x
	}
	t := New(mc.m.bits)
	CopyInto(t, x)
	return t
}

// montMul returns a*b/R mod m for a, b < m, by word-by-word (CIOS)
// Montgomery reduction with a single final conditional subtraction.
func (mc *Montgomery) montMul(a, b *Int) *Int {
	a = mc.norm(a)
	b = mc.norm(b)
	nw := mc.nw
	t := make([]uint64, nw+2)
	for i := 0; i < nw; i++ {
		ai := a.word(i)
		var carry uint64
		for j := 0; j < nw; j++ {
			hi, lo := bits.Mul64(ai, b.word(j))
			var c uint64
			lo, c = bits.Add64(lo, t[j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			t[j] = lo
			carry = hi
		}
		var c uint64
		t[nw], c = bits.Add64(t[nw], carry, 0)
		t[nw+1] += c

		u := t[0] * mc.mInv
		carry = 0
		for j := 0; j < nw; j++ {
			hi, lo := bits.Mul64(u, mc.m.w[j])
			var c2 uint64
			lo, c2 = bits.Add64(lo, t[j], 0)
			hi += c2
			lo, c2 = bits.Add64(lo, carry, 0)
			hi += c2
			t[j] = lo
			carry = hi
		}
		t[nw], c = bits.Add64(t[nw], carry, 0)
		t[nw+1] += c
		copy(t, t[1:])
		t[nw+1] = 0
	}
	// t < 2m here.
	wide := New(uint(nw+1) * wordBits)
	copy(wide.w, t[:nw+1])
	flag := Hs(wide, mc.m)
	CondSubInto(wide, wide, mc.m, flag)
	out := New(mc.m.bits)
	CopyInto(out, wide)
	return out
}

// Import converts a plain value (of any capacity) into the domain.
func (mc *Montgomery) Import(x *Int) *Int {
	r, err := Mod(x, mc.m)
	if err != nil {
		// The modulus is odd, hence non-zero.
		panic(err)
	}
	return mc.montMul(r, mc.r2)
}

// Export converts a domain value back to its plain representation.
func (mc *Montgomery) Export(a *Int) *Int {
	one := New(mc.m.bits)
	one.w[0] = 1
	return mc.montMul(a, one)
}

// Mul returns a*b within the domain.
func (mc *Montgomery) Mul(a, b *Int) *Int { return mc.montMul(a, b) }

// Add returns a+b mod m; operands and result stay in whichever
// representation the operands share.
func (mc *Montgomery) Add(a, b *Int) *Int {
	t := New(mc.m.bits + 1)
	AddInto(t, a, b)
	CondSubInto(t, t, mc.m, Hs(t, mc.m))
	out := New(mc.m.bits)
	CopyInto(out, t)
	return out
}

// Sub returns a-b mod m, in the operands' shared representation.
func (mc *Montgomery) Sub(a, b *Int) *Int {
	t := New(mc.m.bits + 1)
	AddInto(t, a, mc.m)
	SubInto(t, t, b)
	CondSubInto(t, t, mc.m, Hs(t, mc.m))
	out := New(mc.m.bits)
	CopyInto(out, t)
	return out
}

// Pow returns a^e within the domain, by square-and-multiply-always over
// every bit of e's capacity, selecting each step's result with a mask.
func (mc *Montgomery) Pow(a, e *Int) *Int {
	a = mc.norm(a)
	x := mc.Identity()
	for i := int(e.bits) - 1; i >= 0; i-- {
		x = mc.montMul(x, x)
		t := mc.montMul(x, a)
		SelectInto(x, x, t, e.Bit(uint(i)))
	}
	return x
}

// Invert returns the domain representation of a's modular inverse. Fails
// with ErrNotInvertible when gcd(a, m) != 1.
func (mc *Montgomery) Invert(a *Int) (*Int, error) {
	inv, err := Invert(mc.Export(a), mc.m)
	if err != nil {
		return nil, err
	}
	return mc.Import(inv), nil
}

// ModAdd returns (a+b) mod m without a Montgomery context. Fails with
// ErrDivisionByZero when m is zero.
func ModAdd(a, b, m *Int) (*Int, error) {
	am, err := Mod(a, m)
	if err != nil {
		return nil, err
	}
	bm, err := Mod(b, m)
	if err != nil {
		return nil, err
	}
	t := New(m.bits + 1)
	AddInto(t, am, bm)
	CondSubInto(t, t, m, Hs(t, m))
	out := New(m.bits)
	CopyInto(out, t)
	return out, nil
}

// ModSub returns (a-b) mod m without a Montgomery context.
func ModSub(a, b, m *Int) (*Int, error) {
	am, err := Mod(a, m)
	if err != nil {
		return nil, err
	}
	bm, err := Mod(b, m)
	if err != nil {
		return nil, err
	}
	t := New(m.bits + 1)
	AddInto(t, am, m)
	SubInto(t, t, bm)
	CondSubInto(t, t, m, Hs(t, m))
	out := New(m.bits)
	CopyInto(out, t)
	return out, nil
}

// ModMul returns (a*b) mod m without a Montgomery context.
func ModMul(a, b, m *Int) (*Int, error) {
	return Mod(Mul(a, b), m)
}

// ModPow returns a^e mod m for odd m, importing into a throwaway Montgomery
// domain, exponentiating and exporting. Fails with ErrInvalidArgument when m
// is even.
func ModPow(a, e, m *Int) (*Int, error) {
	mc, err := NewMontgomery(m)
	if err != nil {
		return nil, err
	}
	return mc.Export(mc.Pow(mc.Import(a), e)), nil
}
