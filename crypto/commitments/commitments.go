// Package commitments implements the hash commitments behind the
// commit-reveal protocol: a party pledges a seed by publishing its digest and
// later discloses the seed for anyone to check.
package commitments

import (
	"crypto/hmac"

	"github.com/nebulavrf/nebulavrf/crypto/hashing"
)

// Size is the commitment length in bytes.
const Size = hashing.Size

// Commit returns the commitment to `seed`.
func Commit(seed []byte) [Size]byte {
	return hashing.Digest(seed)
}

// SaltedCommit returns the commitment binding `salt` into `seed`: the digest
// of the two concatenated with no separator or length prefix. The seed/salt
// boundary is not recoverable from the commitment, so callers must carry the
// split out of band.
func SaltedCommit(seed, salt []byte) [Size]byte {
	combined := make([]byte, 0, len(seed)+len(salt))
	combined = append(combined, seed...)
	combined = append(combined, salt...)
	return hashing.Digest(combined)
}

// Verify reports whether `commitment` opens to `seed`. The comparison runs in
// constant time.
func Verify(seed []byte, commitment [Size]byte) bool {
	cand := Commit(seed)
	return hmac.Equal(cand[:], commitment[:])
}
