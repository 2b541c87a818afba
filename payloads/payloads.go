// Package payloads builds commit-reveal test fixtures for the on-chain
// verifier.
//
// Fixtures follow the verifier's min-pk convention: public keys on G1 and
// signatures on G2, both serialized uncompressed. This is intentionally a
// different configuration than crypto/vrf/bls, which signs on G1, and the
// two derivation paths are not interchangeable.
package payloads

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	blst "github.com/supranational/blst/bindings/go"

	"github.com/nebulavrf/nebulavrf/crypto/commitments"
)

// dst is the domain separation tag the contract verifies under.
var dst = []byte("NEBULA-VRF-V01-BLS12381G2")

const (
	// PublicKeySize is the length of an uncompressed G1 public key.
	PublicKeySize = 96
	// SignatureSize is the length of an uncompressed G2 signature.
	SignatureSize = 192

	// DefaultLen is the number of random bytes drawn for the seed and the
	// salt when the caller doesn't choose otherwise.
	DefaultLen = 8
	// MaxFieldLen bounds the seed and salt lengths accepted from callers.
	MaxFieldLen = 1024
)

type publicKey = blst.P1Affine
type signature = blst.P2Affine

// Payload is a complete input set for one commit-reveal exchange: a random
// seed and salt, their commitment, and a BLS public key with a signature
// over the commitment. Payloads are immutable once built and the secret key
// is not retained; it can be re-derived from the commitment if needed.
type Payload struct {
	seed       []byte
	salt       []byte
	commitment [commitments.Size]byte
	publicKey  []byte
	signature  []byte
}

// Generate draws seedLen and saltLen bytes from rand and builds a payload
// from them. Zero lengths are valid.
func Generate(rand io.Reader, seedLen, saltLen int) (*Payload, error) {
	if seedLen < 0 || seedLen > MaxFieldLen {
		return nil, fmt.Errorf("seed length out of range: %v", seedLen)
	} else if saltLen < 0 || saltLen > MaxFieldLen {
		return nil, fmt.Errorf("salt length out of range: %v", saltLen)
	}

	seed := make([]byte, seedLen)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, fmt.Errorf("reading seed: %w", err)
	}
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand, salt); err != nil {
		return nil, fmt.Errorf("reading salt: %w", err)
	}

	return FromSeedSalt(seed, salt)
}

// FromSeedSalt builds a payload from a caller-provided seed and salt. The
// commitment hash doubles as the keypair's input key material and as the
// signed message, matching the contract's reveal check.
func FromSeedSalt(seed, salt []byte) (*Payload, error) {
	commitment := commitments.SaltedCommit(seed, salt)

	sk := blst.KeyGen(commitment[:])
	if sk == nil {
		return nil, fmt.Errorf("deriving secret key from commitment")
	}
	pk := new(publicKey).From(sk)
	sig := new(signature).Sign(sk, commitment[:], dst)

	return &Payload{
		seed:       dup(seed),
		salt:       dup(salt),
		commitment: commitment,
		publicKey:  pk.Serialize(),
		signature:  sig.Serialize(),
	}, nil
}

// Verify checks that the payload's signature is valid for its commitment
// under the contract's domain separation tag.
func (p *Payload) Verify() error {
	pk := new(publicKey).Deserialize(p.publicKey)
	if pk == nil {
		return fmt.Errorf("invalid public key")
	}
	sig := new(signature).Deserialize(p.signature)
	if sig == nil {
		return fmt.Errorf("invalid signature")
	}
	if !sig.Verify(true, pk, true, p.commitment[:], dst) {
		return fmt.Errorf("signature does not verify against commitment")
	}
	return nil
}

// Seed returns a copy of the payload's seed.
func (p *Payload) Seed() []byte { return dup(p.seed) }

// Salt returns a copy of the payload's salt.
func (p *Payload) Salt() []byte { return dup(p.salt) }

// Commitment returns the commitment hash over seed and salt.
func (p *Payload) Commitment() [commitments.Size]byte { return p.commitment }

// PublicKey returns a copy of the uncompressed G1 public key.
func (p *Payload) PublicKey() []byte { return dup(p.publicKey) }

// Signature returns a copy of the uncompressed G2 signature.
func (p *Payload) Signature() []byte { return dup(p.signature) }

// Encoding selects the textual representation produced by Encode.
type Encoding int

const (
	// Hex encodes fields as lowercase hexadecimal, for CLI arguments.
	Hex Encoding = iota
	// Base64 encodes fields with the standard padded alphabet, for
	// submission forms.
	Base64
)

// EncodedPayload is the textual form of a Payload, ready for printing or
// JSON serialization. The secret key is deliberately absent.
type EncodedPayload struct {
	Seed       string `json:"seed"`
	Salt       string `json:"salt"`
	Commitment string `json:"commitment"`
	Pubkey     string `json:"pubkey"`
	Signature  string `json:"signature"`
}

// Encode renders every field of the payload in the requested encoding.
func (p *Payload) Encode(enc Encoding) *EncodedPayload {
	return &EncodedPayload{
		Seed:       encode(enc, p.seed),
		Salt:       encode(enc, p.salt),
		Commitment: encode(enc, p.commitment[:]),
		Pubkey:     encode(enc, p.publicKey),
		Signature:  encode(enc, p.signature),
	}
}

func encode(enc Encoding, raw []byte) string {
	if enc == Base64 {
		return base64.StdEncoding.EncodeToString(raw)
	}
	return hex.EncodeToString(raw)
}

func dup(in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	return out
}
