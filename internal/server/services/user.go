// Package services contains server-side business logic: account
// registration and login, bearer credential checks, and the per-user file
// namespace that coordinates the blob store with file metadata.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/smartdrive/internal/common"
	"github.com/dmitrijs2005/smartdrive/internal/server/auth"
	"github.com/dmitrijs2005/smartdrive/internal/server/config"
	"github.com/dmitrijs2005/smartdrive/internal/server/models"
	"github.com/dmitrijs2005/smartdrive/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the user does not exist so that
// unknown users and wrong passwords take the same time to reject.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("smartdrive:no-such-user"), bcrypt.DefaultCost)
	return h
})

// UserService provides authentication-related operations:
// - Register: create users with a bcrypt password hash
// - Login: verify credentials and mint an access token
// - Authenticate: resolve a bearer header to a username
type UserService struct {
	users                       users.Repository
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	bcryptCost                  int
	now                         func() time.Time
}

// NewUserService constructs a UserService over the users repository and server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		users:                       repo,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		bcryptCost:                  bcrypt.DefaultCost,
		now:                         time.Now,
	}
}

// Register creates a new user. The username is trimmed; an empty username or
// password yields ErrInvalidInput, a taken username ErrAlreadyExists.
// Usernames prefix storage keys, so a '/' in one is ErrInvalidUsername.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return common.ErrInvalidInput
	}
	if strings.Contains(username, "/") {
		return common.ErrInvalidUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return common.ErrInvalidInput
		}
		return fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{UserName: username, PasswordHash: hash, CreatedAt: s.now().UTC()}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// Login verifies the password and returns a signed access token whose
// subject is the username. Unknown users and wrong passwords both yield
// ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return "", common.ErrInvalidInput
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Authenticate resolves an Authorization header value to the username it
// was issued for.
func (s *UserService) Authenticate(header string) (string, error) {
	token, err := auth.ParseBearer(header)
	if err != nil {
		return "", err
	}
	return auth.GetUsernameFromToken(token, s.jwtSecret)
}
