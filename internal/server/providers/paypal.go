package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/luxopay/backend/internal/common"
)

const (
	paypalSandboxBaseURL = "https://api-m.sandbox.paypal.com"
	paypalLiveBaseURL    = "https://api-m.paypal.com"
)

// PayPalClient creates checkout orders through the wallet provider's REST
// API. Every initiate call fetches a fresh OAuth token; there is no token
// cache and therefore no state shared between in-flight calls.
type PayPalClient struct {
	clientID     string
	clientSecret string
	baseURL      string
	httpClient   *http.Client
}

// NewPayPalClient picks the endpoint from env ("live" or anything else for
// sandbox) unless baseURL overrides it.
func NewPayPalClient(clientID, clientSecret, env, baseURL string) *PayPalClient {
	if baseURL == "" {
		if env == "live" {
			baseURL = paypalLiveBaseURL
		} else {
			baseURL = paypalSandboxBaseURL
		}
	}
	return &PayPalClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   newHTTPClient(),
	}
}

type paypalAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type paypalPurchaseUnit struct {
	Amount paypalAmount `json:"amount"`
}

type paypalOrderRequest struct {
	Intent        string               `json:"intent"`
	PurchaseUnits []paypalPurchaseUnit `json:"purchase_units"`
}

type paypalLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method,omitempty"`
}

type paypalOrder struct {
	ID     string       `json:"id"`
	Status string       `json:"status"`
	Links  []paypalLink `json:"links"`
}

type paypalErrorResponse struct {
	Name             string `json:"name"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

// Initiate creates a CAPTURE order. The approval links come back inside
// Result.Metadata; the requester follows them to complete the payment.
func (c *PayPalClient) Initiate(ctx context.Context, amount int64, currency string) (*Result, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, fmt.Errorf("%w: PayPal credentials are not set", common.ErrorNotConfigured)
	}

	accessToken, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	order, err := c.createOrder(ctx, accessToken, amount, currency)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(struct {
		Links []paypalLink `json:"links"`
	}{Links: order.Links})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	return &Result{Reference: order.ID, Status: order.Status, Metadata: metadata}, nil
}

func (c *PayPalClient) accessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		return "", providerFailure(PayPal, "unexpected token response")
	}
	return token.AccessToken, nil
}

func (c *PayPalClient) createOrder(ctx context.Context, accessToken string, amount int64, currency string) (*paypalOrder, error) {
	reqBody, err := json.Marshal(paypalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []paypalPurchaseUnit{
			{Amount: paypalAmount{CurrencyCode: currency, Value: minorUnitsToDecimal(amount)}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v2/checkout/orders", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var order paypalOrder
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, providerFailure(PayPal, "unexpected response: %v", err)
	}
	return &order, nil
}

// do executes the request and returns the response body, converting transport
// failures and >= 400 responses into provider errors.
func (c *PayPalClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providerFailure(PayPal, "request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providerFailure(PayPal, "failed to read response: %v", err)
	}

	if resp.StatusCode >= 400 {
		msg := http.StatusText(resp.StatusCode)
		var e paypalErrorResponse
		if json.Unmarshal(body, &e) == nil {
			switch {
			case e.Message != "":
				msg = e.Message
			case e.ErrorDescription != "":
				msg = e.ErrorDescription
			case e.Name != "":
				msg = e.Name
			}
		}
		return nil, providerFailure(PayPal, "%s", msg)
	}

	return body, nil
}

// minorUnitsToDecimal renders an amount in the smallest currency unit as the
// decimal string the wallet provider expects: 500 -> "5.00".
func minorUnitsToDecimal(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
