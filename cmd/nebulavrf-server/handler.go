package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/nebulavrf/nebulavrf/crypto/commitments"
	"github.com/nebulavrf/nebulavrf/crypto/vrf"
	"github.com/nebulavrf/nebulavrf/payloads"
)

// seedSize is the number of random bytes drawn for a fresh seed.
const seedSize = 32

type Handler struct {
	config *APIConfig
	scheme vrf.Scheme
	rand   io.Reader
}

// statusRecorder captures the status code written to a ResponseWriter so that
// requests can be counted by outcome.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HandleAPI wraps an API handler with shared bookkeeping: the response
// content type and per-path request counting.
func HandleAPI(handler http.HandlerFunc) http.HandlerFunc {
	return func(rw http.ResponseWriter, req *http.Request) {
		rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		rec.Header().Set("Content-Type", "application/json")
		handler(rec, req)
		requestCtr.WithLabelValues(req.URL.Path, strconv.Itoa(rec.status)).Inc()
	}
}

func writeJSON(rw http.ResponseWriter, res interface{}) {
	if err := json.NewEncoder(rw).Encode(res); err != nil {
		log.Println(err)
	}
}

func writeErr(rw http.ResponseWriter, status int, format string, args ...interface{}) {
	rw.WriteHeader(status)
	writeJSON(rw, map[string]string{"error": fmt.Sprintf(format, args...)})
}

// decodeHex decodes a hex-encoded request field, answering 400 with the field
// name when the encoding is malformed.
func decodeHex(rw http.ResponseWriter, field, value string) ([]byte, bool) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		writeErr(rw, http.StatusBadRequest, "invalid hex in field: %v", field)
		return nil, false
	}
	return raw, true
}

func decodeBody(rw http.ResponseWriter, req *http.Request, body interface{}) bool {
	if err := json.NewDecoder(req.Body).Decode(body); err != nil {
		writeErr(rw, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func boolParam(req *http.Request, name string) bool {
	val, err := strconv.ParseBool(req.URL.Query().Get(name))
	return err == nil && val
}

// lengthParam parses an optional byte-length query parameter, answering 400
// when it is not a number in [0, MaxFieldLen].
func lengthParam(rw http.ResponseWriter, req *http.Request, name string, fallback int) (int, bool) {
	param := req.URL.Query().Get(name)
	if param == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(param)
	if err != nil || n < 0 || n > payloads.MaxFieldLen {
		writeErr(rw, http.StatusBadRequest, "invalid value for %v: %q", name, param)
		return 0, false
	}
	return n, true
}

// randomSeed returns the caller's seed when the `seed` parameter decodes to
// exactly 32 bytes, and a freshly drawn 32-byte seed otherwise.
func (h *Handler) randomSeed(req *http.Request) ([]byte, error) {
	if param := req.URL.Query().Get("seed"); param != "" {
		if seed, err := hex.DecodeString(param); err == nil && len(seed) == seedSize {
			return seed, nil
		}
	}
	seed := make([]byte, seedSize)
	if _, err := io.ReadFull(h.rand, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

type RandomResponse struct {
	Seed       string `json:"seed"`
	Randomness string `json:"randomness"`
	PublicKey  string `json:"public_key,omitempty"`
	Commitment string `json:"commitment,omitempty"`
}

// GetRandom derives verifiable randomness from a fresh seed. The `proof` and
// `commit` parameters additionally return the public key needed to verify the
// output and a commitment to the seed.
func (h *Handler) GetRandom(rw http.ResponseWriter, req *http.Request) {
	seed, err := h.randomSeed(req)
	if err != nil {
		log.Println(err)
		writeErr(rw, http.StatusInternalServerError, "failed to draw random seed")
		return
	}

	proof, err := h.scheme.Generate(seed)
	vrfOps.WithLabelValues("generate", fmt.Sprint(err == nil)).Inc()
	if err != nil {
		log.Println(err)
		writeErr(rw, http.StatusInternalServerError, "randomness generation failed")
		return
	}

	res := RandomResponse{
		Seed:       hex.EncodeToString(seed),
		Randomness: hex.EncodeToString(proof.Output),
	}
	if boolParam(req, "proof") {
		res.PublicKey = hex.EncodeToString(proof.PublicKey)
	}
	if boolParam(req, "commit") {
		commitment := commitments.Commit(seed)
		res.Commitment = hex.EncodeToString(commitment[:])
	}
	writeJSON(rw, res)
}

type VerifyRandomRequest struct {
	Seed      string `json:"seed"`
	Output    string `json:"output"`
	PublicKey string `json:"public_key"`
}

type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// VerifyRandom checks a previously returned output against its seed and
// public key.
func (h *Handler) VerifyRandom(rw http.ResponseWriter, req *http.Request) {
	var body VerifyRandomRequest
	if !decodeBody(rw, req, &body) {
		return
	}
	seed, ok := decodeHex(rw, "seed", body.Seed)
	if !ok {
		return
	}
	output, ok := decodeHex(rw, "output", body.Output)
	if !ok {
		return
	}
	publicKey, ok := decodeHex(rw, "public_key", body.PublicKey)
	if !ok {
		return
	}

	err := h.scheme.Verify(seed, output, publicKey)
	vrfOps.WithLabelValues("verify", fmt.Sprint(err == nil)).Inc()
	writeJSON(rw, VerifyResponse{Valid: err == nil})
}

type CommitRequest struct {
	Seed string `json:"seed"`
}

type CommitResponse struct {
	Commitment string `json:"commitment"`
}

// Commit returns the commitment hash of the given seed.
func (h *Handler) Commit(rw http.ResponseWriter, req *http.Request) {
	var body CommitRequest
	if !decodeBody(rw, req, &body) {
		return
	}
	seed, ok := decodeHex(rw, "seed", body.Seed)
	if !ok {
		return
	}

	commitment := commitments.Commit(seed)
	writeJSON(rw, CommitResponse{Commitment: hex.EncodeToString(commitment[:])})
}

type VerifyCommitRequest struct {
	Seed       string `json:"seed"`
	Commitment string `json:"commitment"`
}

// VerifyCommit checks whether a seed opens the given commitment.
func (h *Handler) VerifyCommit(rw http.ResponseWriter, req *http.Request) {
	var body VerifyCommitRequest
	if !decodeBody(rw, req, &body) {
		return
	}
	seed, ok := decodeHex(rw, "seed", body.Seed)
	if !ok {
		return
	}
	raw, ok := decodeHex(rw, "commitment", body.Commitment)
	if !ok {
		return
	} else if len(raw) != commitments.Size {
		writeErr(rw, http.StatusBadRequest, "commitment must be %v bytes, got %v", commitments.Size, len(raw))
		return
	}
	var commitment [commitments.Size]byte
	copy(commitment[:], raw)

	writeJSON(rw, VerifyResponse{Valid: commitments.Verify(seed, commitment)})
}

type PayloadResponse struct {
	Hex    *payloads.EncodedPayload `json:"hex"`
	Base64 *payloads.EncodedPayload `json:"base64"`
}

// Payloads generates a contract-test payload. The `seed_len` and `salt_len`
// parameters override the configured defaults.
func (h *Handler) Payloads(rw http.ResponseWriter, req *http.Request) {
	seedLen, ok := lengthParam(rw, req, "seed_len", h.config.SeedLen)
	if !ok {
		return
	}
	saltLen, ok := lengthParam(rw, req, "salt_len", h.config.SaltLen)
	if !ok {
		return
	}

	start := time.Now()
	payload, err := payloads.Generate(h.rand, seedLen, saltLen)
	payloadDur.Observe(float64(time.Since(start).Microseconds()))
	if err != nil {
		log.Println(err)
		writeErr(rw, http.StatusInternalServerError, "payload generation failed")
		return
	}

	writeJSON(rw, PayloadResponse{
		Hex:    payload.Encode(payloads.Hex),
		Base64: payload.Encode(payloads.Base64),
	})
}
