package models

import (
	"encoding/json"
	"time"
)

// PaymentEvent is one append-only ledger row describing a payment attempt.
// Rows are written exactly once, after the provider confirmed the attempt,
// and are never updated or deleted.
//
// ProviderReference is the provider's own id for the attempt and is nil until
// known. UserID is nil for anonymous attempts. Metadata is an opaque JSON
// blob the provider client produced (client secret, approval links); the
// ledger does not interpret it.
type PaymentEvent struct {
	ID                string
	Provider          string
	ProviderReference *string
	Amount            int64
	Currency          string
	Status            string
	CreatedAt         time.Time
	UserID            *string
	Metadata          json.RawMessage
}
