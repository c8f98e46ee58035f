package mp

import "github.com/pkg/errors"

// ModSqrt computes square roots modulo a fixed odd prime p, using a
// caller-supplied quadratic non-residue z to walk the 2-Sylow subgroup.
// Construction factors p-1 = q * 2^s once; Root then runs a Tonelli-Shanks
// ladder whose shape depends only on s and the capacity of p, handling
// p == 1 and p == 3 (mod 4) uniformly. Immutable after construction.
type ModSqrt struct {
	p  *Int
	mc *Montgomery
	s  uint
	e1 *Int // (q-1)/2
	zq *Int // z^q in the domain: a generator of the 2-Sylow subgroup
}

// NewModSqrt builds a square-root context for the odd prime p with
// non-residue z. Fails with ErrInvalidArgument when p is even. Primality and
// non-residuosity of z are the caller's responsibility.
func NewModSqrt(p, z *Int) (*ModSqrt, error) {
	mc, err := NewMontgomery(p)
	if err != nil {
		return nil, errors.Wrap(err, "modsqrt modulus")
	}
	sc := &ModSqrt{p: p.Clone(), mc: mc}
	one := FromUint64(1)
	pm1 := New(p.bits)
	SubInto(pm1, p, one)
	// p is public: a plain scan for the 2-adic valuation of p-1 is fine.
	for sc.s < p.bits && pm1.Bit(sc.s) == 0 {
		sc.s++
	}
	q := RShiftFixed(pm1, sc.s)
	qm1 := New(p.bits)
	SubInto(qm1, q, one)
	sc.e1 = RShiftFixed(qm1, 1)
	sc.zq = mc.Pow(mc.Import(z), q)
	return sc, nil
}

// Root returns (r, true) with r*r == x (mod p) when x is a quadratic residue
// mod p, and (_, false) otherwise. A non-residue input is an expected
// outcome, not an error.
func (sc *ModSqrt) Root(x *Int) (*Int, bool) {
	mc := sc.mc
	xm := mc.Import(x)
	w := mc.Pow(xm, sc.e1) // x^((q-1)/2)
	v := mc.Mul(xm, w)     // x^((q+1)/2), the candidate root
	t := mc.Mul(w, v)      // x^q, order dividing 2^(s-1) for residues
	b := sc.zq.Clone()
	id := mc.Identity()
	for i := sc.s; i >= 2; i-- {
		c := t.Clone()
		for j := uint(0); j < i-2; j++ {
			c = mc.Mul(c, c)
		}
		adjust := 1 - Eq(c, id)
		vb := mc.Mul(v, b)
		SelectInto(v, v, vb, adjust)
		b = mc.Mul(b, b)
		tb := mc.Mul(t, b)
		SelectInto(t, t, tb, adjust)
	}
	root := mc.Export(v)
	sq, err := ModMul(root, root, sc.p)
	if err != nil {
		panic(err)
	}
	xr, err := Mod(x, sc.p)
	if err != nil {
		panic(err)
	}
	return root, Eq(sq, xr) == 1
}
