package eddsa

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"mpecc.dev/mp"
)

// SSH wire framing: every field is a string with a 4-byte big-endian length
// prefix. A public key blob is the scheme name followed by the encoded
// point, a signature blob is the scheme name followed by the signature, and
// a private key blob is just the seed.

func appendString(dst, s []byte) []byte {
	dst = binary.BigEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}

func readString(b []byte) (s, rest []byte, err error) {
	if len(b) < 4 {
		return nil, nil, errors.Wrap(mp.ErrMalformedInput,
			"truncated length prefix")
	}
	n := binary.BigEndian.Uint32(b)
	if uint32(len(b)-4) < n {
		return nil, nil, errors.Wrapf(mp.ErrMalformedInput,
			"string length %d exceeds remaining %d bytes", n, len(b)-4)
	}
	return b[4 : 4+n], b[4+n:], nil
}

// Blob returns the public key blob.
func (k *PublicKey) Blob() []byte {
	b := appendString(nil, []byte(k.scheme.Name))
	return appendString(b, k.enc)
}

// PrivateBlob returns the private key blob.
func (k *PrivateKey) PrivateBlob() []byte {
	return appendString(nil, k.seed)
}

// ParsePublicKey decodes a public key blob, checking the embedded scheme
// name against s and the point against the curve.
func ParsePublicKey(s *Scheme, blob []byte) (*PublicKey, error) {
	name, rest, err := readString(blob)
	if err != nil {
		return nil, err
	}
	if string(name) != s.Name {
		return nil, errors.Wrapf(mp.ErrMalformedInput,
			"public key names scheme %q, want %q", name, s.Name)
	}
	enc, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(mp.ErrMalformedInput,
			"%d trailing bytes after public key", len(rest))
	}
	return NewPublicKey(s, enc)
}

// ParsePrivateKey decodes a private key blob and rederives the key pair,
// checking the result against the accompanying public blob.
func ParsePrivateKey(s *Scheme, pubBlob, privBlob []byte) (*PrivateKey, error) {
	pub, err := ParsePublicKey(s, pubBlob)
	if err != nil {
		return nil, err
	}
	seed, rest, err := readString(privBlob)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(mp.ErrMalformedInput,
			"%d trailing bytes after private key", len(rest))
	}
	k, err := NewPrivateKey(s, seed)
	if err != nil {
		return nil, err
	}
	if string(k.enc) != string(pub.enc) {
		return nil, errors.Wrap(mp.ErrMalformedInput,
			"private key does not match public blob")
	}
	return k, nil
}

// ParseSignatureBlob unwraps a signature blob, checking the scheme name, and
// returns the raw signature.
func ParseSignatureBlob(s *Scheme, blob []byte) ([]byte, error) {
	name, rest, err := readString(blob)
	if err != nil {
		return nil, err
	}
	if string(name) != s.Name {
		return nil, errors.Wrapf(mp.ErrMalformedInput,
			"signature names scheme %q, want %q", name, s.Name)
	}
	sig, rest, err := readString(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, errors.Wrapf(mp.ErrMalformedInput,
			"%d trailing bytes after signature", len(rest))
	}
	return sig, nil
}

// SignBlob signs msg and wraps the signature in a signature blob.
func (k *PrivateKey) SignBlob(msg []byte) ([]byte, error) {
	sig, err := k.Sign(msg)
	if err != nil {
		return nil, err
	}
	b := appendString(nil, []byte(k.scheme.Name))
	return appendString(b, sig), nil
}

// VerifyBlob unwraps a signature blob and verifies it over msg.
func (k *PublicKey) VerifyBlob(msg, blob []byte) bool {
	sig, err := ParseSignatureBlob(k.scheme, blob)
	if err != nil {
		return false
	}
	return k.Verify(msg, sig)
}
