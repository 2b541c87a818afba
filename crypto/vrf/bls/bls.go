// Package bls implements the verifiable random function as a deterministic
// BLS12-381 signature in the min-sig groups: public keys in G2, signatures in
// G1, both serialized in their standard compressed encodings.
package bls

import (
	blst "github.com/supranational/blst/bindings/go"

	"github.com/nebulavrf/nebulavrf/crypto/hashing"
	"github.com/nebulavrf/nebulavrf/crypto/vrf"
)

const (
	// OutputSize is the byte length of a compressed G1 signature.
	OutputSize = 48

	// PublicKeySize is the byte length of a compressed G2 public key.
	PublicKeySize = 96
)

// dst is the domain-separation tag mixed into every signature. It is part of
// the wire contract shared with the external verifier: changing it breaks
// cross-system verification without any local error signal.
var dst = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

type (
	publicKey = blst.P2Affine
	signature = blst.P1Affine
)

// Scheme derives keys and signatures from caller-supplied seeds. It holds no
// state; the zero value is ready to use.
type Scheme struct{}

var _ vrf.Scheme = Scheme{}

// Generate derives a keypair from the seed's digest and signs the raw seed
// with it. The secret key lives only for the duration of the call; the entire
// unpredictability of the output comes from the seed, which the caller is
// responsible for keeping secret.
func (Scheme) Generate(seed []byte) (*vrf.Proof, error) {
	ikm := hashing.Digest(seed)
	sk := blst.KeyGen(ikm[:])
	if sk == nil {
		return nil, vrf.ErrDeserialization
	}

	sig := new(signature).Sign(sk, seed, dst)
	pk := new(publicKey).From(sk)

	return &vrf.Proof{
		Output:    sig.Compress(),
		PublicKey: pk.Compress(),
	}, nil
}

// Verify checks that output is the signature over seed under the public key.
// Both group elements are subgroup-checked before the pairing runs.
func (Scheme) Verify(seed, output, publicKeyBytes []byte) error {
	pk, err := parsePublicKey(publicKeyBytes)
	if err != nil {
		return err
	}
	sig, err := parseSignature(output)
	if err != nil {
		return err
	}

	if !sig.Verify(true, pk, true, seed, dst) {
		return vrf.ErrVerificationFailed
	}
	return nil
}

// parsePublicKey decodes a G2 public key. The top bit of the first byte
// selects between the compressed (96 byte) and uncompressed (192 byte)
// encodings.
func parsePublicKey(in []byte) (*publicKey, error) {
	if len(in) == 0 {
		return nil, vrf.ErrInvalidPublicKey
	}
	var pk *publicKey
	if in[0]&0x80 != 0 {
		pk = new(publicKey).Uncompress(in)
	} else {
		pk = new(publicKey).Deserialize(in)
	}
	if pk == nil {
		return nil, vrf.ErrInvalidPublicKey
	}
	return pk, nil
}

// parseSignature decodes a G1 signature, dispatching on the compression bit
// the same way parsePublicKey does (48 byte compressed, 96 byte uncompressed).
func parseSignature(in []byte) (*signature, error) {
	if len(in) == 0 {
		return nil, vrf.ErrInvalidSignature
	}
	var sig *signature
	if in[0]&0x80 != 0 {
		sig = new(signature).Uncompress(in)
	} else {
		sig = new(signature).Deserialize(in)
	}
	if sig == nil {
		return nil, vrf.ErrInvalidSignature
	}
	return sig, nil
}
