// Package payments provides the append-only ledger of payment events.
// Rows are inserted once and never mutated; nothing in this package updates
// or deletes.
package payments

import (
	"context"

	"github.com/luxopay/backend/internal/server/models"
)

type Repository interface {
	// Create appends one ledger row. No idempotency key is enforced: two
	// calls with different ids always produce two rows.
	Create(ctx context.Context, event *models.PaymentEvent) error

	// ListByUser returns all events owned by userID, most recent first.
	// An empty history is an empty slice, not an error. The returned events
	// carry no metadata; history responses never expose it.
	ListByUser(ctx context.Context, userID string) ([]*models.PaymentEvent, error)
}
