// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package ledger

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// Argon2Params tunes the argon2id cost of auth code hashing.
type Argon2Params struct {
	Time    uint32 // iterations
	Memory  uint32 // KiB
	Threads uint8  // parallelism
	SaltLen uint32 // salt length in bytes
	KeyLen  uint32 // output length in bytes
}

// DefaultArgon2Params returns the OWASP-recommended argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		SaltLen: 16,
		KeyLen:  32,
	}
}

// CodeHasher hashes and verifies auth codes.
type CodeHasher interface {
	// Hash produces an encoded hash of the code.
	Hash(code string) (string, error)

	// Verify checks if the code matches the hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or error on invalid hash.
	Verify(code, hash string) (bool, error)
}

// Argon2idHasher implements CodeHasher using argon2id.
type Argon2idHasher struct {
	params Argon2Params
}

// NewArgon2idHasher creates an Argon2idHasher with the default parameters.
func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{params: DefaultArgon2Params()}
}

// NewArgon2idHasherWithParams creates an Argon2idHasher with custom parameters.
func NewArgon2idHasherWithParams(params Argon2Params) (*Argon2idHasher, error) {
	if params.Time == 0 || params.Threads == 0 || params.SaltLen == 0 || params.KeyLen == 0 {
		return nil, oops.Code("LEDGER_INVALID_HASH_PARAMS").
			With("params", params).
			Errorf("argon2 time, threads, salt and key length must be positive")
	}
	if params.Memory < 8*uint32(params.Threads) {
		return nil, oops.Code("LEDGER_INVALID_HASH_PARAMS").
			With("memory_kib", params.Memory).
			Errorf("argon2 memory must be at least 8 KiB per thread")
	}
	return &Argon2idHasher{params: params}, nil
}

// Hash produces an argon2id hash of the code in PHC string format.
func (h *Argon2idHasher) Hash(code string) (string, error) {
	if code == "" {
		return "", oops.Code("LEDGER_EMPTY_CODE").Errorf("code cannot be empty")
	}

	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("LEDGER_SALT_FAILED").Wrap(err)
	}

	key := argon2.IDKey([]byte(code), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks if the code matches the encoded hash.
func (h *Argon2idHasher) Verify(code, encodedHash string) (bool, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return false, oops.Code("LEDGER_INVALID_HASH").Errorf("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, oops.Code("LEDGER_INVALID_HASH").Errorf("unsupported hash algorithm: %s", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, oops.Code("LEDGER_INVALID_HASH").Wrap(err)
	}

	var memory, iterations, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, oops.Code("LEDGER_INVALID_HASH").Wrap(err)
	}
	if threads == 0 || threads > 255 {
		return false, oops.Code("LEDGER_INVALID_HASH").Errorf("threads value %d out of range", threads)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, oops.Code("LEDGER_INVALID_HASH").Wrap(err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, oops.Code("LEDGER_INVALID_HASH").Wrap(err)
	}
	keyLen := len(expected)
	if keyLen == 0 || keyLen > 1<<30 {
		return false, oops.Code("LEDGER_INVALID_HASH").Errorf("invalid hash key length: %d", keyLen)
	}

	computed := argon2.IDKey([]byte(code), salt, iterations, memory, uint8(threads), uint32(keyLen))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// digestKeyword computes the SHA-256 hex digest stored for a reset keyword.
func digestKeyword(keyword string) string {
	sum := sha256.Sum256([]byte(keyword))
	return hex.EncodeToString(sum[:])
}

// matchKeyword compares a candidate against a stored digest in constant time.
func matchKeyword(candidate, digest string) bool {
	if candidate == "" || digest == "" {
		return false
	}
	computed := digestKeyword(candidate)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
