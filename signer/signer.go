// Package signer abstracts the signature backend behind a small interface,
// so callers can swap between the native implementation and the standard
// library without caring which produced a key or a signature. Both backends
// implement the same deterministic scheme and produce identical bytes.
package signer

// I is the signing interface. A signer initialized with only a public key
// can verify but not sign.
type I interface {
	// Generate creates a fresh key pair from system entropy.
	Generate() error

	// InitSec initializes the signer from a raw seed, deriving the public
	// key.
	InitSec(sec []byte) error

	// InitPub initializes a verify-only signer from a raw public key.
	InitPub(pub []byte) error

	// Sec returns the raw seed, or nil for a verify-only signer.
	Sec() []byte

	// Pub returns the raw public key.
	Pub() []byte

	// Sign signs the message. It fails if the signer has no secret key.
	Sign(msg []byte) ([]byte, error)

	// Verify checks a signature over the message.
	Verify(msg, sig []byte) (bool, error)

	// Zero wipes the secret key material.
	Zero()
}
