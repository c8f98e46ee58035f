package signer

import (
	"github.com/pkg/errors"

	"mpecc.dev/eddsa"
	"mpecc.dev/mp"
)

// EdDSASigner implements the I interface over the native eddsa package.
type EdDSASigner struct {
	scheme *eddsa.Scheme
	priv   *eddsa.PrivateKey
	pub    *eddsa.PublicKey
}

// NewEdDSASigner creates an uninitialized signer for the ssh-ed25519 scheme.
func NewEdDSASigner() *EdDSASigner {
	s, err := eddsa.Lookup("ssh-ed25519")
	if err != nil {
		panic(err)
	}
	return &EdDSASigner{scheme: s}
}

// Generate creates a fresh key pair from system entropy.
func (s *EdDSASigner) Generate() error {
	k, err := eddsa.GenerateKey(s.scheme, mp.SystemSource{})
	if err != nil {
		return err
	}
	s.priv = k
	s.pub = &k.PublicKey
	return nil
}

// InitSec initializes the signer from a 32-byte seed.
func (s *EdDSASigner) InitSec(sec []byte) error {
	k, err := eddsa.NewPrivateKey(s.scheme, sec)
	if err != nil {
		return err
	}
	s.priv = k
	s.pub = &k.PublicKey
	return nil
}

// InitPub initializes a verify-only signer from a 32-byte public key.
func (s *EdDSASigner) InitPub(pub []byte) error {
	k, err := eddsa.NewPublicKey(s.scheme, pub)
	if err != nil {
		return err
	}
	s.priv = nil
	s.pub = k
	return nil
}

// Sec returns the seed, or nil for a verify-only signer.
func (s *EdDSASigner) Sec() []byte {
	if s.priv == nil {
		return nil
	}
	return s.priv.Seed()
}

// Pub returns the raw public key.
func (s *EdDSASigner) Pub() []byte {
	if s.pub == nil {
		return nil
	}
	return s.pub.Bytes()
}

// Sign signs the message with the deterministic scheme.
func (s *EdDSASigner) Sign(msg []byte) ([]byte, error) {
	if s.priv == nil {
		return nil, errors.Wrap(mp.ErrInvalidArgument, "no secret key")
	}
	return s.priv.Sign(msg)
}

// Verify checks a signature over the message.
func (s *EdDSASigner) Verify(msg, sig []byte) (bool, error) {
	if s.pub == nil {
		return false, errors.Wrap(mp.ErrInvalidArgument, "no public key")
	}
	return s.pub.Verify(msg, sig), nil
}

// Zero drops the secret key material.
func (s *EdDSASigner) Zero() {
	s.priv = nil
}
