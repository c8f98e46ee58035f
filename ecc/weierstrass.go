// Package ecc implements elliptic-curve group arithmetic over prime fields
// in three curve shapes: short Weierstrass, Montgomery and twisted Edwards.
// Field elements live in the Montgomery multiplication domain of mp, and all
// operations on secret data run in constant time.
package ecc

import (
	"github.com/pkg/errors"

	"mpecc.dev/mp"
)

// WeierstrassCurve represents y^2 = x^3 + ax + b over GF(p).
type WeierstrassCurve struct {
	mc   *mp.Montgomery
	a, b *mp.Int // Montgomery domain
	sqrt *mp.ModSqrt
}

// NewWeierstrassCurve builds a curve context from the odd prime modulus p
// and the coefficients a, b. nonsquare, if non-nil, must be a quadratic
// non-residue mod p and enables NewPointFromX.
func NewWeierstrassCurve(p, a, b, nonsquare *mp.Int) (*WeierstrassCurve, error) {
	mc, err := mp.NewMontgomery(p)
	if err != nil {
		return nil, err
	}
	wc := &WeierstrassCurve{mc: mc, a: mc.Import(a), b: mc.Import(b)}
	if nonsquare != nil {
		wc.sqrt, err = mp.NewModSqrt(p, nonsquare)
		if err != nil {
			return nil, err
		}
	}
	return wc, nil
}

// Modulus returns the field prime.
func (wc *WeierstrassCurve) Modulus() *mp.Int { return wc.mc.Modulus() }

// WeierstrassPoint is a point on a WeierstrassCurve, held in Jacobian
// coordinates (X/Z^2, Y/Z^3) over the Montgomery domain. The identity is any
// representative with Z = 0.
type WeierstrassPoint struct {
	wc      *WeierstrassCurve
	x, y, z *mp.Int
}

// NewPoint returns the affine point (x, y). The coordinates are not checked
// against the curve equation; use Valid for that.
func (wc *WeierstrassCurve) NewPoint(x, y *mp.Int) *WeierstrassPoint {
	return &WeierstrassPoint{
		wc: wc,
		x:  wc.mc.Import(x),
		y:  wc.mc.Import(y),
		z:  wc.mc.Identity(),
	}
}

// NewIdentity returns the group identity.
func (wc *WeierstrassCurve) NewIdentity() *WeierstrassPoint {
	return &WeierstrassPoint{
		wc: wc,
		x:  wc.mc.Identity(),
		y:  wc.mc.Identity(),
		z:  mp.New(wc.mc.Modulus().MaxBits()),
	}
}

// NewPointFromX recovers a point from its x coordinate, choosing the y whose
// low bit equals parity. The curve must have been built with a non-residue.
// Fails with ErrPointNotOnCurve when x^3 + ax + b is not a square.
func (wc *WeierstrassCurve) NewPointFromX(x *mp.Int, parity uint) (*WeierstrassPoint, error) {
	if wc.sqrt == nil {
		return nil, errors.Wrap(mp.ErrInvalidArgument,
			"curve built without a non-residue")
	}
	mc := wc.mc
	xm := mc.Import(x)
	rhs := mc.Mul(xm, mc.Mul(xm, xm))
	rhs = mc.Add(rhs, mc.Mul(wc.a, xm))
	rhs = mc.Add(rhs, wc.b)

	root, ok := wc.sqrt.Root(mc.Export(rhs))
	if !ok {
		return nil, errors.Wrapf(ErrPointNotOnCurve,
			"no point with x coordinate %s", x.Hex())
	}
	// Replace the root by its negative if the parities disagree.
	neg, err := mp.ModSub(mc.Modulus(), root, mc.Modulus())
	if err != nil {
		return nil, err
	}
	y := root.Clone()
	mp.SelectInto(y, root, neg, root.Bit(0)^(parity&1))
	return wc.NewPoint(x, y), nil
}

func (p *WeierstrassPoint) clone() *WeierstrassPoint {
	return &WeierstrassPoint{p.wc, p.x.Clone(), p.y.Clone(), p.z.Clone()}
}

// selectInto overwrites p with a if flag is 0 and with b if flag is 1.
func (p *WeierstrassPoint) selectInto(a, b *WeierstrassPoint, flag uint) {
	mp.SelectInto(p.x, a.x, b.x, flag)
	mp.SelectInto(p.y, a.y, b.y, flag)
	mp.SelectInto(p.z, a.z, b.z, flag)
}

// IsIdentity reports whether p is the group identity.
func (p *WeierstrassPoint) IsIdentity() uint {
	return 1 - ctBool(p.z)
}

// ctBool returns 1 iff x is non-zero.
func ctBool(x *mp.Int) uint {
	return 1 - mp.EqUint64(x, 0)
}

// Valid reports whether p's coordinates satisfy the Jacobian form of the
// curve equation, Y^2 = X^3 + aXZ^4 + bZ^6. Identity representatives
// satisfy it trivially.
func (p *WeierstrassPoint) Valid() bool {
	mc := p.wc.mc
	z2 := mc.Mul(p.z, p.z)
	z4 := mc.Mul(z2, z2)
	z6 := mc.Mul(z4, z2)
	rhs := mc.Mul(p.x, mc.Mul(p.x, p.x))
	rhs = mc.Add(rhs, mc.Mul(p.wc.a, mc.Mul(p.x, z4)))
	rhs = mc.Add(rhs, mc.Mul(p.wc.b, z6))
	lhs := mc.Mul(p.y, p.y)
	return mp.Eq(lhs, rhs) == 1
}

// Affine returns the affine coordinates of p. Fails with ErrInvalidArgument
// on the identity, which has none.
func (p *WeierstrassPoint) Affine() (x, y *mp.Int, err error) {
	mc := p.wc.mc
	if p.IsIdentity() == 1 {
		return nil, nil, errors.Wrap(mp.ErrInvalidArgument,
			"identity has no affine coordinates")
	}
	zinv, err := mc.Invert(p.z)
	if err != nil {
		return nil, nil, err
	}
	zinv2 := mc.Mul(zinv, zinv)
	x = mc.Export(mc.Mul(p.x, zinv2))
	y = mc.Export(mc.Mul(p.y, mc.Mul(zinv2, zinv)))
	return x, y, nil
}

// Add returns p + q by the Jacobian chord formula. The caller must ensure
// that neither operand is the identity and that p != +-q; AddGeneral lifts
// those restrictions.
func (p *WeierstrassPoint) Add(q *WeierstrassPoint) *WeierstrassPoint {
	out, _, _ := p.addInner(q)
	return out
}

// addInner computes the chord sum and also reports whether the operands
// share an affine x coordinate and a y coordinate, which AddGeneral needs
// to pick out the degenerate cases.
func (p *WeierstrassPoint) addInner(q *WeierstrassPoint) (out *WeierstrassPoint, sameX, sameY uint) {
	mc := p.wc.mc
	z1z1 := mc.Mul(p.z, p.z)
	z2z2 := mc.Mul(q.z, q.z)
	u1 := mc.Mul(p.x, z2z2)
	u2 := mc.Mul(q.x, z1z1)
	s1 := mc.Mul(p.y, mc.Mul(q.z, z2z2))
	s2 := mc.Mul(q.y, mc.Mul(p.z, z1z1))

	h := mc.Sub(u2, u1)
	r := mc.Sub(s2, s1)
	hh := mc.Mul(h, h)
	hhh := mc.Mul(h, hh)
	v := mc.Mul(u1, hh)

	x3 := mc.Mul(r, r)
	x3 = mc.Sub(x3, hhh)
	x3 = mc.Sub(x3, mc.Add(v, v))
	y3 := mc.Mul(r, mc.Sub(v, x3))
	y3 = mc.Sub(y3, mc.Mul(s1, hhh))
	z3 := mc.Mul(h, mc.Mul(p.z, q.z))

	out = &WeierstrassPoint{p.wc, x3, y3, z3}
	sameX = 1 - ctBool(h)
	sameY = 1 - ctBool(r)
	return
}

// Double returns 2p. Unlike Add it has no excluded cases: doubling the
// identity or a point with y = 0 yields the identity.
func (p *WeierstrassPoint) Double() *WeierstrassPoint {
	mc := p.wc.mc
	xx := mc.Mul(p.x, p.x)
	yy := mc.Mul(p.y, p.y)
	yyyy := mc.Mul(yy, yy)
	zz := mc.Mul(p.z, p.z)

	s := mc.Mul(p.x, yy)
	s = mc.Add(s, s)
	s = mc.Add(s, s)
	m := mc.Add(xx, mc.Add(xx, xx))
	m = mc.Add(m, mc.Mul(p.wc.a, mc.Mul(zz, zz)))

	x3 := mc.Sub(mc.Mul(m, m), mc.Add(s, s))
	y8 := mc.Add(yyyy, yyyy)
	y8 = mc.Add(y8, y8)
	y8 = mc.Add(y8, y8)
	y3 := mc.Sub(mc.Mul(m, mc.Sub(s, x3)), y8)
	z3 := mc.Mul(p.y, p.z)
	z3 = mc.Add(z3, z3)

	return &WeierstrassPoint{p.wc, x3, y3, z3}
}

// AddGeneral returns p + q with no restrictions on the operands, selecting
// among the chord sum, the doubling and the operands themselves with masks
// rather than branches.
func (p *WeierstrassPoint) AddGeneral(q *WeierstrassPoint) *WeierstrassPoint {
	sum, sameX, sameY := p.addInner(q)
	dbl := p.Double()

	pID := 1 - ctBool(p.z)
	qID := 1 - ctBool(q.z)

	// The chord formula degenerates exactly when both operands are finite
	// with the same affine x. Same y as well means doubling; opposite y
	// means the sum is the identity, which the chord formula already
	// produced (Z3 = 0).
	dblFlag := sameX & sameY & (1 - pID) & (1 - qID)
	out := sum.clone()
	out.selectInto(sum, dbl, dblFlag)
	out.selectInto(out, q, pID)
	out.selectInto(out, p, qID)

	// Normalize any identity result to the canonical (1, 1, 0)
	// representative so that its coordinates stay on-curve.
	out.selectInto(out, p.wc.NewIdentity(), 1-ctBool(out.z))
	return out
}

// Multiply returns n*p by double-and-add-always over every bit of n's
// capacity. Fails with ErrInvalidArgument when n holds zero.
func (p *WeierstrassPoint) Multiply(n *mp.Int) (*WeierstrassPoint, error) {
	if mp.EqUint64(n, 0) == 1 {
		return nil, errors.Wrap(mp.ErrInvalidArgument, "zero scalar")
	}
	acc := p.wc.NewIdentity()
	for i := int(n.MaxBits()) - 1; i >= 0; i-- {
		acc = acc.Double()
		sum := acc.AddGeneral(p)
		acc.selectInto(acc, sum, n.Bit(uint(i)))
	}
	return acc, nil
}
