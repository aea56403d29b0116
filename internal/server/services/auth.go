// Package services contains the server-side business logic. AuthService
// drives the session lifecycle: register, login, refresh with rotation,
// logout and profile lookup.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

// Password length bounds in bytes. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLen = 6
	MaxPasswordLen = 72
)

// UserInfo is the only part of a user that leaves the service on auth paths.
type UserInfo struct {
	ID    string
	Email string
}

type Profile struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

type LoginResult struct {
	Tokens auth.TokenPair
	User   UserInfo
}

type AuthService struct {
	users  users.Repository
	tokens refreshtokens.Store
	issuer *auth.Issuer
	hasher *auth.PasswordHasher
	logger logging.Logger
}

func NewAuthService(u users.Repository, t refreshtokens.Store, i *auth.Issuer, h *auth.PasswordHasher, l logging.Logger) *AuthService {
	return &AuthService{
		users:  u,
		tokens: t,
		issuer: i,
		hasher: h,
		logger: l.With("module", "auth_service"),
	}
}

// VerifyCredentials returns the user when email and password match.
// An unknown email and a wrong password both yield
// common.ErrInvalidCredentials after one bcrypt comparison.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.CompareDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("compare password: %w", err)
	}
	return user, nil
}

// Register creates an account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, email, password string) (*UserInfo, error) {
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return &UserInfo{ID: user.ID, Email: user.Email}, nil
}

// Login verifies credentials, issues a pair and makes its refresh token the
// user's only valid one.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.VerifyCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if err := s.tokens.Save(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("save refresh token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{Tokens: pair, User: UserInfo{ID: user.ID, Email: user.Email}}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token stops
// being valid once the new one is stored; replaying it yields
// common.ErrInvalidToken.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := s.tokens.Validate(ctx, user.ID, refreshToken); err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			s.logger.Warn(ctx, "refresh token rejected", "user_id", user.ID)
		}
		return nil, err
	}

	pair, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	if err := s.tokens.Rotate(ctx, user.ID, refreshToken, pair.RefreshToken); err != nil {
		return nil, err
	}

	s.logger.Debug(ctx, "refresh token rotated", "user_id", user.ID)
	return &pair, nil
}

// Logout revokes the user's refresh token. Outstanding access tokens stay
// valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.tokens.Revoke(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	s.logger.Info(ctx, "user logged out", "user_id", userID)
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &Profile{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}, nil
}

// Authenticate resolves an access token to its user for transport
// middleware.
func (s *AuthService) Authenticate(accessToken string) (*UserInfo, error) {
	claims, err := s.issuer.ParseAccess(accessToken)
	if err != nil {
		return nil, err
	}
	return &UserInfo{ID: claims.UserID(), Email: claims.Email}, nil
}

func validateCredentials(email, password string) error {
	if email == "" || strings.TrimSpace(email) != email {
		return fmt.Errorf("%w: email is required", common.ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: malformed email", common.ErrInvalidInput)
	}
	if len(password) < MinPasswordLen || len(password) > MaxPasswordLen {
		return fmt.Errorf("%w: password must be %d to %d bytes", common.ErrInvalidInput, MinPasswordLen, MaxPasswordLen)
	}
	return nil
}
