// Package services contains the server-side business logic sitting between
// the transport layers (HTTP, websocket) and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/auth"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/users"
)

// RosterUser is a seed entry for the provisioned user roster.
type RosterUser struct {
	Name     string
	Password string
	Role     string
}

// LoginResult bundles the authenticated user with a freshly minted token.
type LoginResult struct {
	User  *models.User
	Token string
}

// UserService handles the roster: login, lookup, and one-time seeding.
// The database is the only roster; the fixed seed list exists solely to
// provision it on first start.
type UserService struct {
	repo          users.Repository
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewUserService(repo users.Repository, jwtSecret string, tokenValidity time.Duration) *UserService {
	return &UserService{
		repo:          repo,
		jwtSecret:     []byte(jwtSecret),
		tokenValidity: tokenValidity,
	}
}

// Login verifies name+password against the stored roster and returns the
// user together with a signed token. Unknown names, inactive users and bad
// passwords all map to ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, name, password string) (*LoginResult, error) {
	user, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}

	if !user.IsActive || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{User: user, Token: token}, nil
}

// Resolve turns a token previously issued by Login back into an active user.
// Any failure (bad signature, expiry, unknown or inactive user) is an
// ErrorUnauthorized; identity is asserted once and not retried.
func (s *UserService) Resolve(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}
	if !user.IsActive {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}
	return user, nil
}

// List returns the full roster.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}
	return list, nil
}

// EnsureRoster seeds missing roster users. Existing users are left untouched,
// so password or role changes made later in the database survive restarts.
func (s *UserService) EnsureRoster(ctx context.Context, roster []RosterUser) error {
	for _, entry := range roster {
		_, err := s.repo.GetByName(ctx, entry.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("%w: %s", common.ErrorStorage, err)
		}

		hash, err := auth.HashPassword(entry.Password)
		if err != nil {
			return fmt.Errorf("hashing roster password for %q: %w", entry.Name, err)
		}

		role := entry.Role
		if !models.ValidRole(role) {
			role = models.RoleImaging
		}

		user := &models.User{Name: entry.Name, PasswordHash: hash, Role: role, IsActive: true}
		if _, err := s.repo.Create(ctx, user); err != nil {
			return fmt.Errorf("%w: %s", common.ErrorStorage, err)
		}
	}
	return nil
}
