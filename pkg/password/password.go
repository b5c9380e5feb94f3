// Package password hashes and verifies staff credentials.
//
// New hashes are Argon2id PHC strings. Verification also understands bcrypt
// hashes and legacy plain-text values so older rows keep working; both report
// NeedsRehash so callers can upgrade the stored value after a successful login.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Params tunes the Argon2id cost.
type Params struct {
	Memory     uint32
	Iterations uint32
	Threads    uint8
	SaltLength uint32
	KeyLength  uint32
}

// DefaultParams mirrors the parameters used by the web client's hashing library.
var DefaultParams = Params{
	Memory:     19456,
	Iterations: 2,
	Threads:    1,
	SaltLength: 16,
	KeyLength:  32,
}

var (
	// ErrMismatch is returned when the password does not match the stored value.
	ErrMismatch = errors.New("password mismatch")
	// ErrMalformedHash is returned for an Argon2id string that cannot be parsed.
	ErrMalformedHash = errors.New("malformed argon2id hash")
)

// Result describes a successful verification.
type Result struct {
	NeedsRehash bool
}

// Hasher hashes passwords with fixed parameters.
type Hasher struct {
	params Params
	dummy  string
}

// NewHasher builds a Hasher. Zero-valued params fall back to DefaultParams.
func NewHasher(params Params) *Hasher {
	if params.Memory == 0 {
		params = DefaultParams
	}
	h := &Hasher{params: params}
	// Verified against unknown usernames so both login failure paths cost the same.
	h.dummy, _ = h.Hash("dummy-password-for-timing")
	return h
}

// Hash returns an Argon2id PHC string for plain.
func (h *Hasher) Hash(plain string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plain), salt, h.params.Iterations, h.params.Memory, h.params.Threads, h.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.Memory,
		h.params.Iterations,
		h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks plain against stored.
func (h *Hasher) Verify(stored, plain string) (Result, error) {
	switch {
	case strings.HasPrefix(stored, "$argon2id$"):
		ok, err := verifyArgon2id(stored, plain)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{}, ErrMismatch
		}
		return Result{}, nil
	case isBcrypt(stored):
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)); err != nil {
			return Result{}, ErrMismatch
		}
		return Result{NeedsRehash: true}, nil
	case stored == "":
		return Result{}, ErrMismatch
	default:
		// Legacy rows stored the password verbatim.
		if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) != 1 {
			return Result{}, ErrMismatch
		}
		return Result{NeedsRehash: true}, nil
	}
}

// VerifyDummy burns the same work as a real Argon2id check and always fails.
func (h *Hasher) VerifyDummy(plain string) {
	_, _ = verifyArgon2id(h.dummy, plain)
}

func isBcrypt(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

func verifyArgon2id(encoded, plain string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false, ErrMalformedHash
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, ErrMalformedHash
	}
	// argon2.IDKey panics on zero rounds or lanes.
	if iterations < 1 || threads < 1 {
		return false, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}

	got := argon2.IDKey([]byte(plain), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
