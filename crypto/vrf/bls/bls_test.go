package bls

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/nebulavrf/nebulavrf/crypto/hashing"
	"github.com/nebulavrf/nebulavrf/crypto/vrf"
)

func TestGenerateAndVerify(t *testing.T) {
	seed := []byte("secure-seed-xyz")
	proof, err := Scheme{}.Generate(seed)
	if err != nil {
		t.Fatal(err)
	}

	if len(proof.Output) != OutputSize {
		t.Errorf("output length: %v, want %v", len(proof.Output), OutputSize)
	}
	if len(proof.PublicKey) != PublicKeySize {
		t.Errorf("public key length: %v, want %v", len(proof.PublicKey), PublicKeySize)
	}

	if err := (Scheme{}).Verify(seed, proof.Output, proof.PublicKey); err != nil {
		t.Errorf("proof must verify for the generating seed: %v", err)
	}

	err = Scheme{}.Verify([]byte("wrong-seed"), proof.Output, proof.PublicKey)
	if !errors.Is(err, vrf.ErrVerificationFailed) {
		t.Errorf("verification with wrong seed: %v, want %v", err, vrf.ErrVerificationFailed)
	}
}

func TestDeterminism(t *testing.T) {
	seed := []byte("repeatable-seed-999")

	proof1, err := Scheme{}.Generate(seed)
	if err != nil {
		t.Fatal(err)
	}
	proof2, err := Scheme{}.Generate(seed)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(proof1.Output, proof2.Output) {
		t.Error("output must be deterministic")
	}
	if !bytes.Equal(proof1.PublicKey, proof2.PublicKey) {
		t.Error("public key must be deterministic")
	}
}

func TestUniqueness(t *testing.T) {
	proof1, err := Scheme{}.Generate([]byte("unique-seed-1"))
	if err != nil {
		t.Fatal(err)
	}
	proof2, err := Scheme{}.Generate([]byte("unique-seed-2"))
	if err != nil {
		t.Fatal(err)
	}

	if bytes.Equal(proof1.Output, proof2.Output) {
		t.Error("distinct seeds must produce distinct outputs")
	}
}

func TestCorruptedSignature(t *testing.T) {
	seed := []byte("test-seed")
	proof, err := Scheme{}.Generate(seed)
	if err != nil {
		t.Fatal(err)
	}

	corrupted := append([]byte(nil), proof.Output...)
	corrupted[0] ^= 0xff

	err = Scheme{}.Verify(seed, corrupted, proof.PublicKey)
	if !errors.Is(err, vrf.ErrVerificationFailed) && !errors.Is(err, vrf.ErrInvalidSignature) {
		t.Errorf("corrupt signature must not verify, got %v", err)
	}
}

func TestCorruptedPublicKey(t *testing.T) {
	seed := []byte("test-seed")
	proof, err := Scheme{}.Generate(seed)
	if err != nil {
		t.Fatal(err)
	}

	corrupted := append([]byte(nil), proof.PublicKey...)
	corrupted[1] ^= 0xff

	err = Scheme{}.Verify(seed, proof.Output, corrupted)
	if !errors.Is(err, vrf.ErrVerificationFailed) && !errors.Is(err, vrf.ErrInvalidPublicKey) {
		t.Errorf("corrupt public key must not verify, got %v", err)
	}
}

// Flipping a single bit anywhere in the output or the public key must fail
// verification, either at decode time or in the pairing check.
func TestTamperSweep(t *testing.T) {
	seed := []byte("tamper-sweep")
	proof, err := Scheme{}.Generate(seed)
	if err != nil {
		t.Fatal(err)
	}

	for i := range proof.Output {
		mutated := append([]byte(nil), proof.Output...)
		mutated[i] ^= 0x01
		if err := (Scheme{}).Verify(seed, mutated, proof.PublicKey); err == nil {
			t.Errorf("verification passed with output byte %v flipped", i)
		}
	}
	for i := range proof.PublicKey {
		mutated := append([]byte(nil), proof.PublicKey...)
		mutated[i] ^= 0x01
		if err := (Scheme{}).Verify(seed, proof.Output, mutated); err == nil {
			t.Errorf("verification passed with public key byte %v flipped", i)
		}
	}
}

func TestEmptySeed(t *testing.T) {
	proof, err := Scheme{}.Generate(nil)
	if err != nil {
		t.Fatalf("generation must handle an empty seed: %v", err)
	}
	if err := (Scheme{}).Verify(nil, proof.Output, proof.PublicKey); err != nil {
		t.Errorf("empty-seed proof must verify: %v", err)
	}
}

func TestFixedSizes(t *testing.T) {
	for _, n := range []int{0, 1, 32, 1024, 65536} {
		seed := bytes.Repeat([]byte{0xa5}, n)
		proof, err := Scheme{}.Generate(seed)
		if err != nil {
			t.Fatalf("Generate with %v byte seed: %v", n, err)
		}
		if len(proof.Output) != OutputSize || len(proof.PublicKey) != PublicKeySize {
			t.Errorf("sizes for %v byte seed: %v/%v, want %v/%v",
				n, len(proof.Output), len(proof.PublicKey), OutputSize, PublicKeySize)
		}
	}
}

func TestParseErrors(t *testing.T) {
	seed := []byte("parse-errors")
	proof, err := Scheme{}.Generate(seed)
	if err != nil {
		t.Fatal(err)
	}
	other, err := Scheme{}.Generate([]byte("a-different-seed"))
	if err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		name      string
		output    []byte
		publicKey []byte
		want      error
	}{
		{"empty public key", proof.Output, nil, vrf.ErrInvalidPublicKey},
		{"truncated public key", proof.Output, proof.PublicKey[:PublicKeySize-1], vrf.ErrInvalidPublicKey},
		{"zeroed public key", proof.Output, make([]byte, PublicKeySize), vrf.ErrInvalidPublicKey},
		{"empty signature", nil, proof.PublicKey, vrf.ErrInvalidSignature},
		{"truncated signature", proof.Output[:OutputSize-1], proof.PublicKey, vrf.ErrInvalidSignature},
		{"zeroed signature", make([]byte, OutputSize), proof.PublicKey, vrf.ErrInvalidSignature},
		{"mismatched public key", proof.Output, other.PublicKey, vrf.ErrVerificationFailed},
		{"mismatched signature", other.Output, proof.PublicKey, vrf.ErrVerificationFailed},
	} {
		err := Scheme{}.Verify(seed, tc.output, tc.publicKey)
		if !errors.Is(err, tc.want) {
			t.Errorf("%v: %v, want %v", tc.name, err, tc.want)
		}
	}
}

// Uniformity check on the output distribution: hash every output and count
// byte frequencies, then compare the chi-square statistic against the 99%
// confidence critical value for 255 degrees of freedom.
func TestOutputUniformity(t *testing.T) {
	const samples = 5000
	const critical = 310.457

	var bins [256]uint64
	for i := 0; i < samples; i++ {
		proof, err := Scheme{}.Generate([]byte(fmt.Sprintf("seed-%d", i)))
		if err != nil {
			t.Fatal(err)
		}
		digest := hashing.Digest(proof.Output)
		for _, b := range digest {
			bins[b]++
		}
	}

	expected := float64(samples*hashing.Size) / 256
	chi := 0.0
	for _, obs := range bins {
		diff := float64(obs) - expected
		chi += diff * diff / expected
	}

	if chi > critical {
		t.Errorf("chi-square statistic %.2f exceeds %.2f, output bytes not uniform", chi, critical)
	}
}
