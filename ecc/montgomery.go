package ecc

import (
	"github.com/pkg/errors"

	"mpecc.dev/mp"
)

// MontgomeryCurve represents by^2 = x^3 + ax^2 + x over GF(p), used purely
// for x-only arithmetic, so b never enters the formulas.
type MontgomeryCurve struct {
	mc   *mp.Montgomery
	a, b *mp.Int // Montgomery domain
	a24  *mp.Int // (a+2)/4, the ladder constant
}

// NewMontgomeryCurve builds a curve context from the odd prime modulus p and
// the coefficients a, b.
func NewMontgomeryCurve(p, a, b *mp.Int) (*MontgomeryCurve, error) {
	mc, err := mp.NewMontgomery(p)
	if err != nil {
		return nil, err
	}
	inv4, err := mc.Invert(mc.Import(mp.FromUint64(4)))
	if err != nil {
		return nil, err
	}
	am := mc.Import(a)
	two := mc.Import(mp.FromUint64(2))
	return &MontgomeryCurve{
		mc:  mc,
		a:   am,
		b:   mc.Import(b),
		a24: mc.Mul(mc.Add(am, two), inv4),
	}, nil
}

// Modulus returns the field prime.
func (cv *MontgomeryCurve) Modulus() *mp.Int { return cv.mc.Modulus() }

// MontgomeryPoint is a point on a MontgomeryCurve in projective x-only
// (X : Z) form over the Montgomery domain. Z = 0 encodes the identity.
type MontgomeryPoint struct {
	cv   *MontgomeryCurve
	x, z *mp.Int
}

// NewPoint returns the point with affine x coordinate x. The y coordinate
// never participates, so there is nothing to validate.
func (cv *MontgomeryCurve) NewPoint(x *mp.Int) *MontgomeryPoint {
	return &MontgomeryPoint{cv: cv, x: cv.mc.Import(x), z: cv.mc.Identity()}
}

// NewIdentity returns the group identity (1 : 0).
func (cv *MontgomeryCurve) NewIdentity() *MontgomeryPoint {
	return &MontgomeryPoint{
		cv: cv,
		x:  cv.mc.Identity(),
		z:  mp.New(cv.mc.Modulus().MaxBits()),
	}
}

// IsIdentity reports whether p is the group identity.
func (p *MontgomeryPoint) IsIdentity() uint {
	return 1 - ctBool(p.z)
}

// Affine returns the affine x coordinate, X/Z. Fails with
// ErrInvalidArgument on the identity.
func (p *MontgomeryPoint) Affine() (*mp.Int, error) {
	if p.IsIdentity() == 1 {
		return nil, errors.Wrap(mp.ErrInvalidArgument,
			"identity has no affine coordinates")
	}
	zinv, err := p.cv.mc.Invert(p.z)
	if err != nil {
		return nil, err
	}
	return p.cv.mc.Export(p.cv.mc.Mul(p.x, zinv)), nil
}

// DiffAdd returns p + q given their known difference p - q. None of the
// three operands may be the identity, and p != q is required; the ladder
// arranges for both.
func (p *MontgomeryPoint) DiffAdd(q, diff *MontgomeryPoint) *MontgomeryPoint {
	mc := p.cv.mc
	pl := mc.Add(p.x, p.z)
	pm := mc.Sub(p.x, p.z)
	ql := mc.Add(q.x, q.z)
	qm := mc.Sub(q.x, q.z)
	da := mc.Mul(qm, pl)
	cb := mc.Mul(ql, pm)
	t1 := mc.Add(da, cb)
	t2 := mc.Sub(da, cb)
	return &MontgomeryPoint{
		cv: p.cv,
		x:  mc.Mul(diff.z, mc.Mul(t1, t1)),
		z:  mc.Mul(diff.x, mc.Mul(t2, t2)),
	}
}

// Double returns 2p.
func (p *MontgomeryPoint) Double() *MontgomeryPoint {
	mc := p.cv.mc
	pl := mc.Add(p.x, p.z)
	pm := mc.Sub(p.x, p.z)
	aa := mc.Mul(pl, pl)
	bb := mc.Mul(pm, pm)
	e := mc.Sub(aa, bb)
	return &MontgomeryPoint{
		cv: p.cv,
		x:  mc.Mul(aa, bb),
		z:  mc.Mul(e, mc.Add(bb, mc.Mul(p.cv.a24, e))),
	}
}

// Multiply returns n*p by a Montgomery ladder over every bit of n's
// capacity, with a single conditional swap per step. Fails with
// ErrInvalidArgument when n holds zero.
func (p *MontgomeryPoint) Multiply(n *mp.Int) (*MontgomeryPoint, error) {
	if mp.EqUint64(n, 0) == 1 {
		return nil, errors.Wrap(mp.ErrInvalidArgument, "zero scalar")
	}
	r0 := p.cv.NewIdentity()
	r1 := &MontgomeryPoint{p.cv, p.x.Clone(), p.z.Clone()}

	// The swap mask is the xor of adjacent scalar bits, so each iteration
	// leaves (r0, r1) ordered for the next one and the ladder invariant
	// r1 - r0 = p holds throughout.
	prev := uint(0)
	for i := int(n.MaxBits()) - 1; i >= 0; i-- {
		bit := n.Bit(uint(i))
		swap := bit ^ prev
		mp.CondSwap(r0.x, r1.x, swap)
		mp.CondSwap(r0.z, r1.z, swap)
		r1 = r0.DiffAdd(r1, p)
		r0 = r0.Double()
		prev = bit
	}
	mp.CondSwap(r0.x, r1.x, prev)
	mp.CondSwap(r0.z, r1.z, prev)
	return r0, nil
}
