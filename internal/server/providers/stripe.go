package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/luxopay/backend/internal/common"
)

const stripeAPIVersion = "2024-06-20"

// StripeClient creates payment intents through the card provider's REST API.
type StripeClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

func NewStripeClient(secretKey, baseURL string) *StripeClient {
	return &StripeClient{
		secretKey:  secretKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(),
	}
}

type stripePaymentIntent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
}

type stripeErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Initiate creates a payment intent with automatic payment methods enabled.
// The client secret comes back inside Result.Metadata; the requester needs it
// to confirm the payment on their side.
func (c *StripeClient) Initiate(ctx context.Context, amount int64, currency string) (*Result, error) {
	if c.secretKey == "" {
		return nil, fmt.Errorf("%w: STRIPE_SECRET_KEY is not set", common.ErrorNotConfigured)
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Stripe-Version", stripeAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providerFailure(Stripe, "request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providerFailure(Stripe, "failed to read response: %v", err)
	}

	if resp.StatusCode >= 400 {
		msg := http.StatusText(resp.StatusCode)
		var e stripeErrorResponse
		if json.Unmarshal(body, &e) == nil && e.Error.Message != "" {
			msg = e.Error.Message
		}
		return nil, providerFailure(Stripe, "%s", msg)
	}

	var intent stripePaymentIntent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, providerFailure(Stripe, "unexpected response: %v", err)
	}

	metadata, err := json.Marshal(struct {
		ClientSecret string `json:"clientSecret"`
	}{ClientSecret: intent.ClientSecret})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	return &Result{Reference: intent.ID, Status: intent.Status, Metadata: metadata}, nil
}
