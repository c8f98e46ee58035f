package ecc

import (
	"sync"

	"mpecc.dev/mp"
)

// A handful of standard curves, each with its conventional generator and
// group order. The contexts are built once on first use and shared, so the
// Montgomery and square-root precomputation is paid a single time.

// NamedWeierstrass bundles a Weierstrass curve with its generator and order.
type NamedWeierstrass struct {
	Curve *WeierstrassCurve
	G     *WeierstrassPoint
	Order *mp.Int
}

// NamedMontgomery bundles a Montgomery curve with its generator and order.
type NamedMontgomery struct {
	Curve *MontgomeryCurve
	G     *MontgomeryPoint
	Order *mp.Int
}

// NamedEdwards bundles an Edwards curve with its generator, its order and
// the base-2 log of its cofactor.
type NamedEdwards struct {
	Curve       *EdwardsCurve
	G           *EdwardsPoint
	Order       *mp.Int
	LogCofactor uint
}

func mustHex(s string) *mp.Int {
	x, err := mp.FromHex(s)
	if err != nil {
		panic(err)
	}
	return x
}

var (
	secp256k1Once  sync.Once
	secp256k1Curve *NamedWeierstrass

	p256Once  sync.Once
	p256Curve *NamedWeierstrass

	curve25519Once  sync.Once
	curve25519Curve *NamedMontgomery

	ed25519Once  sync.Once
	ed25519Curve *NamedEdwards
)

// Secp256k1 returns the SEC 2 curve secp256k1 used by Bitcoin.
func Secp256k1() *NamedWeierstrass {
	secp256k1Once.Do(func() {
		p := mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
		cv, err := NewWeierstrassCurve(
			p, mp.New(1), mp.FromUint64(7), mp.FromUint64(3))
		if err != nil {
			panic(err)
		}
		secp256k1Curve = &NamedWeierstrass{
			Curve: cv,
			G: cv.NewPoint(
				mustHex("79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"),
				mustHex("483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8")),
			Order: mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"),
		}
	})
	return secp256k1Curve
}

// P256 returns the NIST curve P-256 (secp256r1).
func P256() *NamedWeierstrass {
	p256Once.Do(func() {
		p := mustHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff")
		a, err := mp.ModSub(p, mp.FromUint64(3), p)
		if err != nil {
			panic(err)
		}
		cv, err := NewWeierstrassCurve(p, a,
			mustHex("5ac635d8aa3a93e7b3ebbd55769886bc651d06b0cc53b0f63bce3c3e27d2604b"),
			mp.FromUint64(3))
		if err != nil {
			panic(err)
		}
		p256Curve = &NamedWeierstrass{
			Curve: cv,
			G: cv.NewPoint(
				mustHex("6b17d1f2e12c4247f8bce6e563a440f277037d812deb33a0f4a13945d898c296"),
				mustHex("4fe342e2fe1a7f9b8ee7eb4a7c0f9e162bce33576b315ececbb6406837bf51f5")),
			Order: mustHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551"),
		}
	})
	return p256Curve
}

// Curve25519 returns the x-only Montgomery curve from RFC 7748.
func Curve25519() *NamedMontgomery {
	curve25519Once.Do(func() {
		p := mustHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")
		cv, err := NewMontgomeryCurve(
			p, mp.FromUint64(486662), mp.FromUint64(1))
		if err != nil {
			panic(err)
		}
		curve25519Curve = &NamedMontgomery{
			Curve: cv,
			G:     cv.NewPoint(mp.FromUint64(9)),
			Order: mustHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"),
		}
	})
	return curve25519Curve
}

// Ed25519 returns the twisted Edwards curve from RFC 8032, with a = -1.
func Ed25519() *NamedEdwards {
	ed25519Once.Do(func() {
		p := mustHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")
		a, err := mp.ModSub(p, mp.FromUint64(1), p)
		if err != nil {
			panic(err)
		}
		cv, err := NewEdwardsCurve(p,
			mustHex("52036cee2b6ffe738cc740797779e89800700a4d4141d8ab75eb4dca135978a3"),
			a, mp.FromUint64(2))
		if err != nil {
			panic(err)
		}
		ed25519Curve = &NamedEdwards{
			Curve: cv,
			G: cv.NewPoint(
				mustHex("216936d3cd6e53fec0a4e231fdd6dc5c692cc7609525a7b2c9562d608f25d51a"),
				mustHex("6666666666666666666666666666666666666666666666666666666666666658")),
			Order:       mustHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"),
			LogCofactor: 3,
		}
	})
	return ed25519Curve
}
