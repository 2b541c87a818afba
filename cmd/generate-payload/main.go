// Command generate-payload outputs a fresh contract-test payload.
package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"

	"github.com/nebulavrf/nebulavrf/payloads"
)

var (
	seedLen = flag.Int("seed-len", payloads.DefaultLen, "Length of the random seed in bytes.")
	saltLen = flag.Int("salt-len", payloads.DefaultLen, "Length of the random salt in bytes.")
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	flag.Parse()

	payload, err := payloads.Generate(rand.Reader, *seedLen, *saltLen)
	if err != nil {
		log.Fatal(err)
	}
	if err := payload.Verify(); err != nil {
		log.Fatalf("Generated payload failed verification: %v", err)
	}

	h := payload.Encode(payloads.Hex)
	fmt.Printf("Seed (hex):       %s\n", h.Seed)
	fmt.Printf("Salt (hex):       %s\n", h.Salt)
	fmt.Printf("Commitment (hex): %s\n", h.Commitment)
	fmt.Printf("Pubkey (hex):     %s\n", h.Pubkey)
	fmt.Printf("Signature (hex):  %s\n", h.Signature)

	fmt.Println()

	b := payload.Encode(payloads.Base64)
	fmt.Printf("Seed (base64):       %s\n", b.Seed)
	fmt.Printf("Salt (base64):       %s\n", b.Salt)
	fmt.Printf("Commitment (base64): %s\n", b.Commitment)
	fmt.Printf("Pubkey (base64):     %s\n", b.Pubkey)
	fmt.Printf("Signature (base64):  %s\n", b.Signature)
}
