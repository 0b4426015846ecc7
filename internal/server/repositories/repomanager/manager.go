// Package repomanager wires the PostgreSQL connection, schema migrations and
// repository constructors together behind one explicitly constructed object.
package repomanager

import (
	"context"

	"github.com/luxopay/backend/internal/server/repositories/payments"
	"github.com/luxopay/backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Payments() payments.Repository
	Close() error
}
