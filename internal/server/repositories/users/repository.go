// Package users provides persistence for user accounts and their password
// hashes. Accounts are created once and never updated or deleted.
package users

import (
	"context"

	"github.com/luxopay/backend/internal/server/models"
)

type Repository interface {
	// Create inserts a new user. The database unique constraint on email is
	// the authoritative guard against duplicate registrations; violations
	// come back as common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the full record including the password hash, or
	// common.ErrorNotFound. Only the login path may call this.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the record with the password hash withheld, or
	// common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
