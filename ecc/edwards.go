package ecc

import (
	"github.com/pkg/errors"

	"mpecc.dev/mp"
)

// EdwardsCurve represents the twisted Edwards curve
// ax^2 + y^2 = 1 + dx^2y^2 over GF(p).
type EdwardsCurve struct {
	mc   *mp.Montgomery
	d, a *mp.Int // Montgomery domain
	sqrt *mp.ModSqrt
}

// NewEdwardsCurve builds a curve context from the odd prime modulus p and
// the coefficients d, a. nonsquare, if non-nil, must be a quadratic
// non-residue mod p and enables NewPointFromY.
func NewEdwardsCurve(p, d, a, nonsquare *mp.Int) (*EdwardsCurve, error) {
	mc, err := mp.NewMontgomery(p)
	if err != nil {
		return nil, err
	}
	ec := &EdwardsCurve{mc: mc, d: mc.Import(d), a: mc.Import(a)}
	if nonsquare != nil {
		ec.sqrt, err = mp.NewModSqrt(p, nonsquare)
		if err != nil {
			return nil, err
		}
	}
	return ec, nil
}

// Modulus returns the field prime.
func (ec *EdwardsCurve) Modulus() *mp.Int { return ec.mc.Modulus() }

// EdwardsPoint is a point on an EdwardsCurve in projective (X : Y : Z)
// coordinates over the Montgomery domain, with x = X/Z and y = Y/Z. The
// identity is (0 : 1 : 1).
type EdwardsPoint struct {
	ec      *EdwardsCurve
	x, y, z *mp.Int
}

// NewPoint returns the affine point (x, y). The coordinates are not checked
// against the curve equation; use Valid for that.
func (ec *EdwardsCurve) NewPoint(x, y *mp.Int) *EdwardsPoint {
	return &EdwardsPoint{
		ec: ec,
		x:  ec.mc.Import(x),
		y:  ec.mc.Import(y),
		z:  ec.mc.Identity(),
	}
}

// NewIdentity returns the group identity (0, 1).
func (ec *EdwardsCurve) NewIdentity() *EdwardsPoint {
	return &EdwardsPoint{
		ec: ec,
		x:  mp.New(ec.mc.Modulus().MaxBits()),
		y:  ec.mc.Identity(),
		z:  ec.mc.Identity(),
	}
}

// NewPointFromY recovers a point from its y coordinate, choosing the x whose
// low bit equals parity, using x^2 = (y^2 - 1) / (dy^2 - a). The curve must
// have been built with a non-residue. Fails with ErrPointNotOnCurve when no
// such point exists, including the x = 0 points paired with parity 1.
func (ec *EdwardsCurve) NewPointFromY(y *mp.Int, parity uint) (*EdwardsPoint, error) {
	if ec.sqrt == nil {
		return nil, errors.Wrap(mp.ErrInvalidArgument,
			"curve built without a non-residue")
	}
	mc := ec.mc
	ym := mc.Import(y)
	yy := mc.Mul(ym, ym)
	num := mc.Sub(yy, mc.Identity())
	den := mc.Sub(mc.Mul(ec.d, yy), ec.a)
	denInv, err := mc.Invert(den)
	if err != nil {
		return nil, errors.Wrapf(ErrPointNotOnCurve,
			"no point with y coordinate %s", y.Hex())
	}
	xx := mc.Mul(num, denInv)

	root, ok := ec.sqrt.Root(mc.Export(xx))
	if !ok {
		return nil, errors.Wrapf(ErrPointNotOnCurve,
			"no point with y coordinate %s", y.Hex())
	}
	if mp.EqUint64(root, 0) == 1 && parity&1 == 1 {
		return nil, errors.Wrapf(ErrPointNotOnCurve,
			"no odd point with y coordinate %s", y.Hex())
	}
	neg, err := mp.ModSub(mc.Modulus(), root, mc.Modulus())
	if err != nil {
		return nil, err
	}
	x := root.Clone()
	mp.SelectInto(x, root, neg, root.Bit(0)^(parity&1))
	return ec.NewPoint(x, y), nil
}

func (p *EdwardsPoint) clone() *EdwardsPoint {
	return &EdwardsPoint{p.ec, p.x.Clone(), p.y.Clone(), p.z.Clone()}
}

func (p *EdwardsPoint) selectInto(a, b *EdwardsPoint, flag uint) {
	mp.SelectInto(p.x, a.x, b.x, flag)
	mp.SelectInto(p.y, a.y, b.y, flag)
	mp.SelectInto(p.z, a.z, b.z, flag)
}

// IsIdentity reports whether p is the group identity, i.e. X = 0 and Y = Z.
func (p *EdwardsPoint) IsIdentity() uint {
	return (1 - ctBool(p.x)) & mp.Eq(p.y, p.z)
}

// Equal reports whether p and q are the same group element, comparing the
// cross-multiplied coordinates so differing Z denominators do not matter.
func (p *EdwardsPoint) Equal(q *EdwardsPoint) uint {
	mc := p.ec.mc
	return mp.Eq(mc.Mul(p.x, q.z), mc.Mul(q.x, p.z)) &
		mp.Eq(mc.Mul(p.y, q.z), mc.Mul(q.y, p.z))
}

// Valid reports whether p's coordinates satisfy the projective curve
// equation, (aX^2 + Y^2)Z^2 = Z^4 + dX^2Y^2.
func (p *EdwardsPoint) Valid() bool {
	mc := p.ec.mc
	xx := mc.Mul(p.x, p.x)
	yy := mc.Mul(p.y, p.y)
	zz := mc.Mul(p.z, p.z)
	lhs := mc.Mul(mc.Add(mc.Mul(p.ec.a, xx), yy), zz)
	rhs := mc.Add(mc.Mul(zz, zz), mc.Mul(p.ec.d, mc.Mul(xx, yy)))
	return mp.Eq(lhs, rhs) == 1
}

// Affine returns the affine coordinates of p.
func (p *EdwardsPoint) Affine() (x, y *mp.Int, err error) {
	mc := p.ec.mc
	zinv, err := mc.Invert(p.z)
	if err != nil {
		return nil, nil, err
	}
	return mc.Export(mc.Mul(p.x, zinv)), mc.Export(mc.Mul(p.y, zinv)), nil
}

// Add returns p + q. The formula is unified: it is correct for all inputs,
// including p = q and either operand the identity.
func (p *EdwardsPoint) Add(q *EdwardsPoint) *EdwardsPoint {
	mc := p.ec.mc
	a := mc.Mul(p.z, q.z)
	b := mc.Mul(a, a)
	c := mc.Mul(p.x, q.x)
	d := mc.Mul(p.y, q.y)
	e := mc.Mul(p.ec.d, mc.Mul(c, d))
	f := mc.Sub(b, e)
	g := mc.Add(b, e)

	t := mc.Mul(mc.Add(p.x, p.y), mc.Add(q.x, q.y))
	t = mc.Sub(mc.Sub(t, c), d)
	x3 := mc.Mul(a, mc.Mul(f, t))
	y3 := mc.Mul(a, mc.Mul(g, mc.Sub(d, mc.Mul(p.ec.a, c))))
	z3 := mc.Mul(f, g)
	return &EdwardsPoint{p.ec, x3, y3, z3}
}

// Multiply returns n*p by double-and-add-always over every bit of n's
// capacity; the unified Add doubles as the doubling. Fails with
// ErrInvalidArgument when n holds zero.
func (p *EdwardsPoint) Multiply(n *mp.Int) (*EdwardsPoint, error) {
	if mp.EqUint64(n, 0) == 1 {
		return nil, errors.Wrap(mp.ErrInvalidArgument, "zero scalar")
	}
	acc := p.ec.NewIdentity()
	for i := int(n.MaxBits()) - 1; i >= 0; i-- {
		acc = acc.Add(acc)
		sum := acc.Add(p)
		acc.selectInto(acc, sum, n.Bit(uint(i)))
	}
	return acc, nil
}
