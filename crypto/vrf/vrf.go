// Package vrf defines the interface to the seed-derived verifiable random
// function and the error taxonomy shared with its callers.
//
// The construction is a deterministic pairing signature: the keypair is
// derived from the seed, the signature over the seed is both the randomness
// and its own unforgeability proof. It is weaker than a formal VRF (no
// uniqueness proof beyond signature unforgeability).
package vrf

import "errors"

// Proof bundles the pseudorandom output with the public key that verifies it.
// The public key must be the counterpart of the secret key that produced
// Output, or verification fails.
type Proof struct {
	Output    []byte // the randomness (signature)
	PublicKey []byte // the proof
}

// Scheme is the interface implemented by each supported VRF construction.
//
// Implementations are stateless: every call is a pure function of its inputs,
// safe for unbounded concurrent use, and independently retryable.
type Scheme interface {
	// Generate derives a keypair from seed and returns the signature over
	// seed together with the public key. Identical seeds yield byte-identical
	// proofs.
	Generate(seed []byte) (*Proof, error)

	// Verify checks output against seed and publicKey. It returns nil on
	// success and one of the sentinel errors below otherwise.
	Verify(seed, output, publicKey []byte) error
}

var (
	// ErrInvalidSignature means the output bytes do not decode to a curve
	// point.
	ErrInvalidSignature = errors.New("invalid signature encoding")

	// ErrInvalidPublicKey means the public key bytes do not decode to a curve
	// point.
	ErrInvalidPublicKey = errors.New("invalid public key encoding")

	// ErrInvalidCommitment is reserved for commitment parse failures. No
	// current path returns it.
	ErrInvalidCommitment = errors.New("invalid commitment")

	// ErrDeserialization means secret key derivation from the input keying
	// material failed.
	ErrDeserialization = errors.New("key derivation failed")

	// ErrVerificationFailed means the inputs were well formed but the pairing
	// check did not pass.
	ErrVerificationFailed = errors.New("verification failed")
)
