// Package eddsa implements deterministic Edwards-curve signatures in the
// style of RFC 8032, parameterized over a Scheme that names the curve, the
// hash and the key sizes. The only scheme registered today is ssh-ed25519.
package eddsa

import (
	"crypto/sha512"
	"hash"

	"github.com/pkg/errors"

	"mpecc.dev/ecc"
	"mpecc.dev/mp"
)

// Scheme describes one EdDSA instantiation.
type Scheme struct {
	// Name is the wire identifier, e.g. "ssh-ed25519".
	Name string

	curve       *ecc.NamedEdwards
	fieldBytes  uint
	logCofactor uint
	newHash     func() hash.Hash
}

var schemes = map[string]*Scheme{
	"ssh-ed25519": {
		Name:        "ssh-ed25519",
		curve:       ecc.Ed25519(),
		fieldBytes:  32,
		logCofactor: 3,
		newHash:     sha512.New,
	},
}

// Lookup returns the Scheme registered under name. Fails with
// ErrInvalidArgument for unknown names.
func Lookup(name string) (*Scheme, error) {
	s, ok := schemes[name]
	if !ok {
		return nil, errors.Wrapf(mp.ErrInvalidArgument,
			"unknown signature scheme %q", name)
	}
	return s, nil
}

// PublicKey is a point on the scheme's curve together with its canonical
// encoding.
type PublicKey struct {
	scheme *Scheme
	point  *ecc.EdwardsPoint
	enc    []byte
}

// NewPublicKey builds a public key from the raw point encoding, without any
// wire framing. Fails like decodePoint on a bad encoding.
func NewPublicKey(s *Scheme, enc []byte) (*PublicKey, error) {
	point, err := s.decodePoint(enc)
	if err != nil {
		return nil, err
	}
	return &PublicKey{
		scheme: s,
		point:  point,
		enc:    append([]byte(nil), enc...),
	}, nil
}

// PrivateKey holds the seed, the clamped secret scalar derived from it, the
// nonce prefix and the matching public key.
type PrivateKey struct {
	PublicKey
	seed   []byte
	a      *mp.Int
	prefix []byte
}

// encodePoint produces the standard encoding: y little-endian over the field
// size, with the parity of x in the top bit.
func (s *Scheme) encodePoint(p *ecc.EdwardsPoint) ([]byte, error) {
	x, y, err := p.Affine()
	if err != nil {
		return nil, err
	}
	wide := mp.New(s.fieldBytes * 8)
	mp.CopyInto(wide, y)
	enc := wide.BytesLE()
	enc[s.fieldBytes-1] |= byte(x.Bit(0)) << 7
	return enc, nil
}

// decodePoint inverts encodePoint. Fails with ErrMalformedInput on a bad
// length or a y outside the field, and with ecc.ErrPointNotOnCurve when no
// point has the encoded y.
func (s *Scheme) decodePoint(enc []byte) (*ecc.EdwardsPoint, error) {
	if uint(len(enc)) != s.fieldBytes {
		return nil, errors.Wrapf(mp.ErrMalformedInput,
			"point encoding is %d bytes, want %d", len(enc), s.fieldBytes)
	}
	b := make([]byte, len(enc))
	copy(b, enc)
	parity := uint(b[s.fieldBytes-1] >> 7)
	b[s.fieldBytes-1] &= 0x7f

	y := mp.FromBytesLE(b)
	p := s.curve.Curve.Modulus()
	if mp.Hs(y, p) == 1 {
		return nil, errors.Wrap(mp.ErrMalformedInput,
			"y coordinate out of field range")
	}
	return s.curve.Curve.NewPointFromY(y, parity)
}

// clampScalar turns the low half of the seed hash into the secret scalar:
// the cofactor bits are cleared, the top bit of the field is cleared and the
// bit below it is set.
func (s *Scheme) clampScalar(b []byte) *mp.Int {
	half := make([]byte, s.fieldBytes)
	copy(half, b[:s.fieldBytes])
	half[0] &= byte(0xff << s.logCofactor)
	half[s.fieldBytes-1] &= 0x7f
	half[s.fieldBytes-1] |= 0x40
	le := mp.New(s.fieldBytes * 8)
	mp.CopyInto(le, mp.FromBytesLE(half))
	return le
}

// hashToScalar hashes the concatenation of the given byte strings and
// reduces the little-endian digest mod the group order.
func (s *Scheme) hashToScalar(parts ...[]byte) (*mp.Int, error) {
	h := s.newHash()
	for _, p := range parts {
		h.Write(p)
	}
	return mp.Mod(mp.FromBytesLE(h.Sum(nil)), s.curve.Order)
}

// mulOrIdentity returns n*p, tolerating a zero n, which the point multiply
// itself rejects.
func mulOrIdentity(c *ecc.NamedEdwards, p *ecc.EdwardsPoint, n *mp.Int) (*ecc.EdwardsPoint, error) {
	pt, err := p.Multiply(n)
	if err == nil {
		return pt, nil
	}
	if mp.EqUint64(n, 0) == 1 {
		return c.Curve.NewIdentity(), nil
	}
	return nil, err
}

// NewPrivateKey derives a key pair from a seed of the scheme's field size,
// expanding it with the scheme hash and clamping the low half into the
// secret scalar.
func NewPrivateKey(s *Scheme, seed []byte) (*PrivateKey, error) {
	if uint(len(seed)) != s.fieldBytes {
		return nil, errors.Wrapf(mp.ErrMalformedInput,
			"seed is %d bytes, want %d", len(seed), s.fieldBytes)
	}
	h := s.newHash()
	h.Write(seed)
	expanded := h.Sum(nil)

	a := s.clampScalar(expanded)
	pub, err := s.curve.G.Multiply(a)
	if err != nil {
		return nil, err
	}
	enc, err := s.encodePoint(pub)
	if err != nil {
		return nil, err
	}
	k := &PrivateKey{
		PublicKey: PublicKey{scheme: s, point: pub, enc: enc},
		seed:      append([]byte(nil), seed...),
		a:         a,
		prefix:    append([]byte(nil), expanded[s.fieldBytes:]...),
	}
	return k, nil
}

// GenerateKey draws a fresh seed from src and derives a key pair from it.
func GenerateKey(s *Scheme, src mp.RandomSource) (*PrivateKey, error) {
	seed, err := src.ReadRandom(int(s.fieldBytes))
	if err != nil {
		return nil, err
	}
	return NewPrivateKey(s, seed)
}

// Scheme returns the scheme the key belongs to.
func (k *PublicKey) Scheme() *Scheme { return k.scheme }

// Bytes returns the canonical point encoding of the public key.
func (k *PublicKey) Bytes() []byte {
	return append([]byte(nil), k.enc...)
}

// Seed returns the private seed the key was derived from.
func (k *PrivateKey) Seed() []byte {
	return append([]byte(nil), k.seed...)
}

// Sign produces the deterministic signature R || S over msg: the nonce r is
// the hash of the key prefix and the message, R = r*G, and
// S = r + hash(R, A, msg)*a mod the group order.
func (k *PrivateKey) Sign(msg []byte) ([]byte, error) {
	s := k.scheme
	r, err := s.hashToScalar(k.prefix, msg)
	if err != nil {
		return nil, err
	}
	rPoint, err := mulOrIdentity(s.curve, s.curve.G, r)
	if err != nil {
		return nil, err
	}
	rEnc, err := s.encodePoint(rPoint)
	if err != nil {
		return nil, err
	}

	c, err := s.hashToScalar(rEnc, k.enc, msg)
	if err != nil {
		return nil, err
	}
	ca, err := mp.ModMul(c, k.a, s.curve.Order)
	if err != nil {
		return nil, err
	}
	sum, err := mp.ModAdd(r, ca, s.curve.Order)
	if err != nil {
		return nil, err
	}
	sEnc := mp.New(s.fieldBytes * 8)
	mp.CopyInto(sEnc, sum)
	return append(rEnc, sEnc.BytesLE()...), nil
}

// Verify reports whether sig is a valid signature over msg: S must be
// strictly below the group order, R must decode to a curve point, and
// S*G must equal R + hash(R, A, msg)*A.
func (k *PublicKey) Verify(msg, sig []byte) bool {
	s := k.scheme
	if uint(len(sig)) != 2*s.fieldBytes {
		return false
	}
	rEnc := sig[:s.fieldBytes]
	sVal := mp.FromBytesLE(sig[s.fieldBytes:])
	if mp.Hs(sVal, s.curve.Order) == 1 {
		return false
	}
	rPoint, err := s.decodePoint(rEnc)
	if err != nil {
		return false
	}

	c, err := s.hashToScalar(rEnc, k.enc, msg)
	if err != nil {
		return false
	}
	lhs, err := mulOrIdentity(s.curve, s.curve.G, sVal)
	if err != nil {
		return false
	}
	ca, err := mulOrIdentity(s.curve, k.point, c)
	if err != nil {
		return false
	}
	return rPoint.Add(ca).Equal(lhs) == 1
}
