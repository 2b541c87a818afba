// Package hashing wraps the fixed-output hash function shared by every
// component. Commitments, key-derivation input material, and the external
// on-chain verifier all speak SHA-256, so the digest size is part of the wire
// contract.
package hashing

import "crypto/sha256"

// Size is the digest length in bytes.
const Size = sha256.Size

// Digest hashes arbitrary byte input into a fixed 32-byte array. It is total:
// every input, including the empty string, hashes successfully.
func Digest(in []byte) [Size]byte {
	return sha256.Sum256(in)
}
