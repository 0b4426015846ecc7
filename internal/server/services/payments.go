package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/luxopay/backend/internal/logging"
	"github.com/luxopay/backend/internal/server/models"
	"github.com/luxopay/backend/internal/server/providers"
	"github.com/luxopay/backend/internal/server/repositories/payments"
)

type PaymentService struct {
	repo    payments.Repository
	gateway providers.Gateway
	logger  logging.Logger
}

func NewPaymentService(repo payments.Repository, gateway providers.Gateway, logger logging.Logger) *PaymentService {
	return &PaymentService{
		repo:    repo,
		gateway: gateway,
		logger:  logger.With("module", "payment_service"),
	}
}

// Initiate asks the provider to create a payment attempt and, only on
// success, appends one ledger row attributed to userID (nil for anonymous
// attempts). Provider failures leave the ledger untouched.
//
// The ledger write is not a transaction spanning the provider call: if the
// write fails after the provider succeeded, the attempt exists only on the
// provider's side. The provider reference is logged so operators can
// reconcile through provider-side reporting.
func (s *PaymentService) Initiate(ctx context.Context, provider providers.Provider, userID *string, amount int64, currency string) (*models.PaymentEvent, *providers.Result, error) {

	res, err := s.gateway.Initiate(ctx, provider, amount, currency)
	if err != nil {
		return nil, nil, err
	}

	event := &models.PaymentEvent{
		ID:                uuid.NewString(),
		Provider:          string(provider),
		ProviderReference: &res.Reference,
		Amount:            amount,
		Currency:          currency,
		Status:            res.Status,
		CreatedAt:         time.Now().UTC(),
		UserID:            userID,
		Metadata:          res.Metadata,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.logger.Error(ctx, "payment confirmed by provider but not recorded",
			"provider", provider, "provider_reference", res.Reference, "error", err)
		return nil, nil, fmt.Errorf("error recording payment event: %w", err)
	}

	return event, res, nil
}

// History returns the caller's payment events, newest first. The identity
// must come from the verified token, never from client input.
func (s *PaymentService) History(ctx context.Context, userID string) ([]*models.PaymentEvent, error) {
	events, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing payment events: %w", err)
	}
	return events, nil
}
