package eddsa

import (
	"encoding/base64"

	"github.com/minio/sha256-simd"
)

// Fingerprint returns the OpenSSH-style fingerprint of the public key:
// "SHA256:" followed by the unpadded base64 of the SHA-256 digest of the
// public key blob.
func (k *PublicKey) Fingerprint() string {
	sum := sha256.Sum256(k.Blob())
	return "SHA256:" + base64.RawStdEncoding.EncodeToString(sum[:])
}
