package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/notevault/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2Params are the argon2id cost settings recorded in every digest.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultArgon2Params matches the key derivation used for vault master keys.
var DefaultArgon2Params = Argon2Params{Time: 1, Memory: 64 * 1024, Threads: 4, SaltLen: 16, KeyLen: 32}

// upper bounds accepted when reading a digest back
const (
	maxMemory  = 1 << 20
	maxTime    = 16
	maxKeySize = 128
)

// PasswordHasher produces salted argon2id digests in PHC string format:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// The salt and parameters travel inside the digest, so Verify needs nothing else.
type PasswordHasher struct {
	params Argon2Params
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{params: DefaultArgon2Params}
}

// NewPasswordHasherWithParams is mainly for tests that want cheap hashing.
func NewPasswordHasherWithParams(p Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: p}
}

// Hash derives a digest from plaintext with a fresh random salt.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", common.ErrEmptyPassword
	}

	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches digest. Malformed digests simply
// do not match.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	p, salt, key, ok := decodeDigest(digest)
	if !ok {
		return false
	}
	candidate := argon2.IDKey([]byte(plaintext), salt, p.Time, p.Memory, p.Threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(key, candidate) == 1
}

func decodeDigest(digest string) (Argon2Params, []byte, []byte, bool) {
	var p Argon2Params

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return p, nil, nil, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, false
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, false
	}
	if p.Memory == 0 || p.Memory > maxMemory || p.Time == 0 || p.Time > maxTime || p.Threads == 0 {
		return p, nil, nil, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, false
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxKeySize {
		return p, nil, nil, false
	}
	return p, salt, key, true
}
