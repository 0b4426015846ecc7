// Package providers abstracts the external payment providers behind one
// capability: initiate a payment attempt for an amount and currency. Each
// provider is a typed REST client over its public API; the gateway selects
// the variant by tag and validates the request before any network call.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/luxopay/backend/internal/common"
	"github.com/luxopay/backend/internal/server/config"
)

// Provider tags the closed set of supported external payment systems.
type Provider string

const (
	Stripe Provider = "stripe"
	PayPal Provider = "paypal"
)

// Result is the provider-agnostic outcome of a successful initiate call.
// Metadata is an opaque JSON blob (client secret, approval links) forwarded
// unchanged to the ledger and to the requester.
type Result struct {
	Reference string
	Status    string
	Metadata  json.RawMessage
}

// Gateway is the uniform "create a payment attempt" capability.
type Gateway interface {
	Initiate(ctx context.Context, provider Provider, amount int64, currency string) (*Result, error)
}

// ProviderGateway dispatches to the configured provider clients. Clients are
// constructed eagerly but check their credentials lazily on first use, so a
// deployment without PayPal credentials can still serve Stripe payments.
type ProviderGateway struct {
	stripe *StripeClient
	paypal *PayPalClient
}

func NewGateway(cfg *config.Config) *ProviderGateway {
	return &ProviderGateway{
		stripe: NewStripeClient(cfg.StripeSecretKey, cfg.StripeBaseURL),
		paypal: NewPayPalClient(cfg.PayPalClientID, cfg.PayPalClientSecret, cfg.PayPalEnv, cfg.PayPalBaseURL),
	}
}

// Initiate validates the request and dispatches on the provider tag. The
// amount and currency checks live here so no variant can be reached with an
// invalid request.
func (g *ProviderGateway) Initiate(ctx context.Context, provider Provider, amount int64, currency string) (*Result, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than 0", common.ErrorValidation)
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", common.ErrorValidation)
	}

	switch provider {
	case Stripe:
		return g.stripe.Initiate(ctx, amount, currency)
	case PayPal:
		return g.paypal.Initiate(ctx, amount, currency)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", common.ErrorValidation, provider)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// providerFailure wraps a provider-reported or transport failure so callers
// can match common.ErrorProvider while keeping the provider's message.
func providerFailure(provider Provider, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", common.ErrorProvider, provider, fmt.Sprintf(format, args...))
}
