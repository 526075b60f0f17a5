// Package auth holds the credential primitives: argon2id password digests
// and HS256-signed identity tokens.
package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC key TokenService accepts, in bytes.
const MinSecretLength = 32

const nonceLength = 16

// Claims is the token payload: subject, issued-at, expiry and a random nonce.
// The nonce keeps two tokens issued within one second apart; it is never
// checked.
type Claims struct {
	jwt.RegisteredClaims
	Nonce string `json:"nonce,omitempty"`
}

// TokenService issues and validates stateless identity tokens. It holds no
// mutable state after construction and is safe for concurrent use.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// TokenOption customises a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService copies secret and fails if it is shorter than
// MinSecretLength or if validity is not positive.
func NewTokenService(secret []byte, validity time.Duration, opts ...TokenOption) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, common.ErrWeakSecret
	}
	if validity <= 0 {
		return nil, errors.New("token validity must be positive")
	}
	s := &TokenService{
		secret:   append([]byte(nil), secret...),
		validity: validity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue returns a compact signed token for identity.
func (s *TokenService) Issue(identity string) (string, error) {
	if identity == "" {
		return "", errors.New("empty identity")
	}
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("token nonce: %w", err)
	}

	// NumericDate keeps whole seconds. Expiry is rounded up so the token
	// stays valid for the full validity period.
	now := s.now()
	expires := now.Add(s.validity)
	if t := expires.Truncate(time.Second); !t.Equal(expires) {
		expires = t.Add(time.Second)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now.Truncate(time.Second)),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
		Nonce: base64.RawURLEncoding.EncodeToString(nonce),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the token subject.
// Every failure matches common.ErrInvalidToken; the underlying reason stays
// wrapped for logging.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}
	return claims.Subject, nil
}
