// Package services contains server-side business logic: account
// registration and login, bearer token resolution, and owner-scoped note
// operations.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/notevault/internal/common"
	"github.com/dmitrijs2005/notevault/internal/logging"
	"github.com/dmitrijs2005/notevault/internal/server/models"
	"github.com/dmitrijs2005/notevault/internal/server/repositories/users"
)

const (
	MessageRegistered = "User registered successfully"
	MessageLoggedIn   = "Login successful"
)

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer mints identity tokens.
type TokenIssuer interface {
	Issue(identity string) (string, error)
}

// AuthResult is returned by a successful Register or Login.
type AuthResult struct {
	Message  string
	UserName string
	Token    string
}

// AuthService registers accounts and logs them in.
//
// Login reports a missing account and a wrong password with the same
// common.ErrorUnauthorized and spends the same hashing work on both.
type AuthService struct {
	users  users.Repository
	hasher PasswordHasher
	tokens TokenIssuer
	logger logging.Logger

	dummyMu     sync.Mutex
	dummyDigest string
}

func NewAuthService(u users.Repository, h PasswordHasher, t TokenIssuer, l logging.Logger) *AuthService {
	s := &AuthService{users: u, hasher: h, tokens: t, logger: l.With("module", "auth")}
	s.dummy()
	return s
}

// Register creates an account for the trimmed userName with role USER and
// returns a token for it. A taken name yields common.ErrAlreadyExists.
func (s *AuthService) Register(ctx context.Context, userName, password, displayName string) (*AuthResult, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	exists, err := s.users.ExistsByUserName(ctx, userName)
	if err != nil {
		return nil, fmt.Errorf("error checking user: %w", err)
	}
	if exists {
		s.logger.Warn(ctx, "registration rejected: username taken", "username", userName)
		return nil, common.ErrAlreadyExists
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		UserName:     userName,
		PasswordHash: digest,
		DisplayName:  strings.TrimSpace(displayName),
		Role:         models.RoleUser,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.logger.Warn(ctx, "registration rejected: username taken concurrently", "username", userName)
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	s.logger.Info(ctx, "user registered", "username", userName)

	return s.result(MessageRegistered, userName)
}

// Login checks the password of the trimmed userName and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, userName, password string) (*AuthResult, error) {
	userName = strings.TrimSpace(userName)

	user, err := s.users.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummy())
			s.logger.Warn(ctx, "login failed: user not found", "username", userName)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Warn(ctx, "login failed: wrong password", "username", userName)
		return nil, common.ErrorUnauthorized
	}
	s.logger.Info(ctx, "user logged in", "username", userName)

	return s.result(MessageLoggedIn, user.UserName)
}

func (s *AuthService) result(message, userName string) (*AuthResult, error) {
	token, err := s.tokens.Issue(userName)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}
	return &AuthResult{Message: message, UserName: userName, Token: token}, nil
}

// dummy returns a digest used to burn verification time for unknown users.
// It is prepared at construction; a failed attempt is retried on next use.
func (s *AuthService) dummy() string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyDigest == "" {
		d, err := s.hasher.Hash("notevault-dummy-password")
		if err != nil {
			s.logger.Error(context.Background(), "failed to prepare dummy digest", "error", err)
			return ""
		}
		s.dummyDigest = d
	}
	return s.dummyDigest
}
