// Package services implements the application services sitting between the
// HTTP layer and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/luxopay/backend/internal/common"
	"github.com/luxopay/backend/internal/server/auth"
	"github.com/luxopay/backend/internal/server/config"
	"github.com/luxopay/backend/internal/server/models"
	"github.com/luxopay/backend/internal/server/repositories/users"
)

// bcryptCost matches what the accounts were originally hashed with.
const bcryptCost = 12

type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.JWTSecret),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates an account and signs a token for it. A duplicate email is
// reported as common.ErrorAlreadyExists; the pre-check keeps the common case
// cheap, the database unique constraint settles races.
func (s *UserService) Register(ctx context.Context, name *string, email, password string) (*models.User, string, error) {

	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrorAlreadyExists
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", fmt.Errorf("error checking existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies credentials and signs a fresh token. A missing account and a
// wrong password produce the same common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {

	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Profile returns the account behind an authenticated identity, password
// hash withheld.
func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(auth.Identity{ID: user.ID, Email: user.Email}, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		if errors.Is(err, common.ErrorNotConfigured) {
			return "", err
		}
		return "", fmt.Errorf("error signing token: %w", err)
	}
	return token, nil
}
