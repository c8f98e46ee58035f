package ecc

import (
	"fmt"
	"math/big"

	"mpecc.dev/mp"
)

// Plain affine big.Int reference implementations of the three curve shapes,
// with none of the constant-time machinery, used as the oracle the real
// code is checked against.

func refFromBig(n *big.Int) *mp.Int {
	x, err := mp.FromHex(fmt.Sprintf("%x", n))
	if err != nil {
		panic(err)
	}
	return x
}

func refToBig(x *mp.Int) *big.Int {
	return new(big.Int).SetBytes(x.BytesBE())
}

func refNonResidue(p *big.Int) *big.Int {
	for z := int64(2); ; z++ {
		if big.Jacobi(big.NewInt(z), p) == -1 {
			return big.NewInt(z)
		}
	}
}

// refWPoint is an affine Weierstrass point; infinite marks the identity.
type refWPoint struct {
	x, y     *big.Int
	infinite bool
}

type refWCurve struct {
	p, a, b *big.Int
}

func (c *refWCurve) point(x, y int64) refWPoint {
	return refWPoint{big.NewInt(x), big.NewInt(y), false}
}

func (c *refWCurve) add(p1, p2 refWPoint) refWPoint {
	if p1.infinite {
		return p2
	}
	if p2.infinite {
		return p1
	}
	var lam *big.Int
	if p1.x.Cmp(p2.x) == 0 {
		if new(big.Int).Add(p1.y, p2.y).Mod(new(big.Int).Add(p1.y, p2.y), c.p).Sign() == 0 {
			return refWPoint{infinite: true}
		}
		// Tangent slope (3x^2 + a) / 2y.
		num := new(big.Int).Mul(p1.x, p1.x)
		num.Mul(num, big.NewInt(3))
		num.Add(num, c.a)
		den := new(big.Int).Lsh(p1.y, 1)
		lam = num.Mul(num, den.ModInverse(den, c.p))
	} else {
		num := new(big.Int).Sub(p2.y, p1.y)
		den := new(big.Int).Sub(p2.x, p1.x)
		den.Mod(den, c.p)
		lam = num.Mul(num, den.ModInverse(den, c.p))
	}
	lam.Mod(lam, c.p)
	x3 := new(big.Int).Mul(lam, lam)
	x3.Sub(x3, p1.x)
	x3.Sub(x3, p2.x)
	x3.Mod(x3, c.p)
	y3 := new(big.Int).Sub(p1.x, x3)
	y3.Mul(y3, lam)
	y3.Sub(y3, p1.y)
	y3.Mod(y3, c.p)
	return refWPoint{x3, y3, false}
}

func (c *refWCurve) multiply(p refWPoint, n *big.Int) refWPoint {
	acc := refWPoint{infinite: true}
	for i := n.BitLen() - 1; i >= 0; i-- {
		acc = c.add(acc, acc)
		if n.Bit(i) == 1 {
			acc = c.add(acc, p)
		}
	}
	return acc
}

// refMPoint is an affine point on a Montgomery curve with both coordinates,
// so the reference can use ordinary chord-and-tangent addition even though
// the code under test is x-only.
type refMPoint struct {
	x, y     *big.Int
	infinite bool
}

type refMCurve struct {
	p, a, b *big.Int
}

// cpoint recovers a point with the given x coordinate, taking either square
// root of (x^3 + ax^2 + x) / b.
func (c *refMCurve) cpoint(x int64) refMPoint {
	xv := big.NewInt(x)
	rhs := new(big.Int).Add(xv, c.a)
	rhs.Mul(rhs, xv)
	rhs.Add(rhs, big.NewInt(1))
	rhs.Mul(rhs, xv)
	rhs.Mul(rhs, new(big.Int).ModInverse(c.b, c.p))
	rhs.Mod(rhs, c.p)
	y := new(big.Int).ModSqrt(rhs, c.p)
	if y == nil {
		panic("test point x has no y")
	}
	return refMPoint{xv, y, false}
}

func (c *refMCurve) add(p1, p2 refMPoint) refMPoint {
	if p1.infinite {
		return p2
	}
	if p2.infinite {
		return p1
	}
	var lam *big.Int
	if p1.x.Cmp(p2.x) == 0 {
		if new(big.Int).Add(p1.y, p2.y).Mod(new(big.Int).Add(p1.y, p2.y), c.p).Sign() == 0 {
			return refMPoint{infinite: true}
		}
		// Tangent slope (3x^2 + 2ax + 1) / 2by.
		num := new(big.Int).Mul(p1.x, p1.x)
		num.Mul(num, big.NewInt(3))
		t := new(big.Int).Mul(c.a, p1.x)
		num.Add(num, t.Lsh(t, 1))
		num.Add(num, big.NewInt(1))
		den := new(big.Int).Mul(c.b, p1.y)
		den.Lsh(den, 1)
		den.Mod(den, c.p)
		lam = num.Mul(num, den.ModInverse(den, c.p))
	} else {
		num := new(big.Int).Sub(p2.y, p1.y)
		den := new(big.Int).Sub(p2.x, p1.x)
		den.Mod(den, c.p)
		lam = num.Mul(num, den.ModInverse(den, c.p))
	}
	lam.Mod(lam, c.p)
	x3 := new(big.Int).Mul(lam, lam)
	x3.Mul(x3, c.b)
	x3.Sub(x3, c.a)
	x3.Sub(x3, p1.x)
	x3.Sub(x3, p2.x)
	x3.Mod(x3, c.p)
	y3 := new(big.Int).Sub(p1.x, x3)
	y3.Mul(y3, lam)
	y3.Sub(y3, p1.y)
	y3.Mod(y3, c.p)
	return refMPoint{x3, y3, false}
}

func (c *refMCurve) multiply(p refMPoint, n *big.Int) refMPoint {
	acc := refMPoint{infinite: true}
	for i := n.BitLen() - 1; i >= 0; i-- {
		acc = c.add(acc, acc)
		if n.Bit(i) == 1 {
			acc = c.add(acc, p)
		}
	}
	return acc
}

// refEPoint is an affine twisted Edwards point; (0, 1) is the identity, so
// no separate infinity flag is needed.
type refEPoint struct {
	x, y *big.Int
}

type refECurve struct {
	p, d, a *big.Int
}

func (c *refECurve) point(x, y *big.Int) refEPoint {
	return refEPoint{new(big.Int).Mod(x, c.p), new(big.Int).Mod(y, c.p)}
}

func (c *refECurve) add(p1, p2 refEPoint) refEPoint {
	xx := new(big.Int).Mul(p1.x, p2.x)
	yy := new(big.Int).Mul(p1.y, p2.y)
	dxy := new(big.Int).Mul(xx, yy)
	dxy.Mul(dxy, c.d)
	dxy.Mod(dxy, c.p)

	xnum := new(big.Int).Mul(p1.x, p2.y)
	xnum.Add(xnum, new(big.Int).Mul(p1.y, p2.x))
	xden := new(big.Int).Add(big.NewInt(1), dxy)
	x3 := xnum.Mul(xnum, xden.ModInverse(xden, c.p))
	x3.Mod(x3, c.p)

	ynum := new(big.Int).Mul(c.a, xx)
	ynum.Sub(yy, ynum)
	yden := new(big.Int).Sub(big.NewInt(1), dxy)
	yden.Mod(yden, c.p)
	y3 := ynum.Mul(ynum, yden.ModInverse(yden, c.p))
	y3.Mod(y3, c.p)
	return refEPoint{x3, y3}
}

func (c *refECurve) multiply(p refEPoint, n *big.Int) refEPoint {
	acc := refEPoint{big.NewInt(0), big.NewInt(1)}
	for i := n.BitLen() - 1; i >= 0; i-- {
		acc = c.add(acc, acc)
		if n.Bit(i) == 1 {
			acc = c.add(acc, p)
		}
	}
	return acc
}

// scatteredScalars returns Fibonacci numbers of power-of-two index reduced
// mod m, without zero and without duplicates.
func scatteredScalars(n int, m *big.Int) []*big.Int {
	seen := map[string]bool{}
	var out []*big.Int
	a, b, c := big.NewInt(0), big.NewInt(1), big.NewInt(1)
	for ; n > 0; n-- {
		v := new(big.Int).Mod(b, m)
		if v.Sign() != 0 && !seen[v.String()] {
			seen[v.String()] = true
			out = append(out, v)
		}
		a2 := new(big.Int).Mul(a, a)
		b2 := new(big.Int).Mul(b, b)
		c2 := new(big.Int).Mul(c, c)
		ac := new(big.Int).Add(a, c)
		a, b, c = a2.Add(a2, b2), ac.Mul(ac, b), b2.Add(b2, c2)
	}
	return out
}
