package payments

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/luxopay/backend/internal/dbx"
	"github.com/luxopay/backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, event *models.PaymentEvent) error {

	query :=
		`INSERT INTO payment_events
		   (id, provider, provider_reference, amount, currency, status, created_at, user_id, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Provider, event.ProviderReference, event.Amount,
		event.Currency, event.Status, event.CreatedAt, event.UserID,
		metadataValue(event.Metadata))

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// ListByUser orders by created_at descending with id as tiebreak so equal
// timestamps keep a stable relative order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.PaymentEvent, error) {
	query :=
		`SELECT id, provider, provider_reference, amount, currency, status, created_at
		 FROM payment_events
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.PaymentEvent, 0)
	for rows.Next() {
		item := &models.PaymentEvent{}
		var ref sql.NullString
		if err := rows.Scan(
			&item.ID, &item.Provider, &ref, &item.Amount,
			&item.Currency, &item.Status, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		if ref.Valid {
			item.ProviderReference = &ref.String
		}
		item.UserID = &userID
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// metadataValue stores the opaque blob as text; empty metadata stays NULL.
func metadataValue(metadata []byte) any {
	if len(metadata) == 0 {
		return nil
	}
	return string(metadata)
}
