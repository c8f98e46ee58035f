package signer

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/pkg/errors"

	"mpecc.dev/mp"
)

// Ed25519Signer implements the I interface over the standard library's
// crypto/ed25519, as a reference backend the native one is checked against.
type Ed25519Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewEd25519Signer creates an uninitialized signer.
func NewEd25519Signer() *Ed25519Signer {
	return &Ed25519Signer{}
}

// Generate creates a fresh key pair from system entropy.
func (s *Ed25519Signer) Generate() error {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	s.priv, s.pub = priv, pub
	return nil
}

// InitSec initializes the signer from a 32-byte seed.
func (s *Ed25519Signer) InitSec(sec []byte) error {
	if len(sec) != ed25519.SeedSize {
		return errors.Wrapf(mp.ErrMalformedInput,
			"seed is %d bytes, want %d", len(sec), ed25519.SeedSize)
	}
	s.priv = ed25519.NewKeyFromSeed(sec)
	s.pub = s.priv.Public().(ed25519.PublicKey)
	return nil
}

// InitPub initializes a verify-only signer from a 32-byte public key.
func (s *Ed25519Signer) InitPub(pub []byte) error {
	if len(pub) != ed25519.PublicKeySize {
		return errors.Wrapf(mp.ErrMalformedInput,
			"public key is %d bytes, want %d", len(pub), ed25519.PublicKeySize)
	}
	s.priv = nil
	s.pub = append(ed25519.PublicKey(nil), pub...)
	return nil
}

// Sec returns the seed, or nil for a verify-only signer.
func (s *Ed25519Signer) Sec() []byte {
	if s.priv == nil {
		return nil
	}
	return s.priv.Seed()
}

// Pub returns the raw public key.
func (s *Ed25519Signer) Pub() []byte {
	return append([]byte(nil), s.pub...)
}

// Sign signs the message.
func (s *Ed25519Signer) Sign(msg []byte) ([]byte, error) {
	if s.priv == nil {
		return nil, errors.Wrap(mp.ErrInvalidArgument, "no secret key")
	}
	return ed25519.Sign(s.priv, msg), nil
}

// Verify checks a signature over the message.
func (s *Ed25519Signer) Verify(msg, sig []byte) (bool, error) {
	if s.pub == nil {
		return false, errors.Wrap(mp.ErrInvalidArgument, "no public key")
	}
	if len(sig) != ed25519.SignatureSize {
		return false, nil
	}
	return ed25519.Verify(s.pub, msg, sig), nil
}

// Zero wipes the secret key material.
func (s *Ed25519Signer) Zero() {
	for i := range s.priv {
		s.priv[i] = 0
	}
	s.priv = nil
}
