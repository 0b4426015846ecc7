package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/luxopay/backend/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPayPalTestServer(t *testing.T, orderHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "cid", user)
		require.Equal(t, "csecret", pass)
		_, _ = w.Write([]byte(`{"access_token":"tok_abc","token_type":"Bearer"}`))
	})
	mux.HandleFunc("/v2/checkout/orders", orderHandler)
	return httptest.NewServer(mux)
}

func TestPayPalInitiate_Success(t *testing.T) {
	srv := newPayPalTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok_abc", r.Header.Get("Authorization"))
		require.Equal(t, "return=representation", r.Header.Get("Prefer"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req paypalOrderRequest
		require.NoError(t, json.Unmarshal(body, &req))
		require.Equal(t, "CAPTURE", req.Intent)
		require.Len(t, req.PurchaseUnits, 1)
		require.Equal(t, "USD", req.PurchaseUnits[0].Amount.CurrencyCode)
		require.Equal(t, "5.00", req.PurchaseUnits[0].Amount.Value)

		_, _ = w.Write([]byte(`{
			"id": "ord_123",
			"status": "CREATED",
			"links": [{"href":"https://example.test/approve","rel":"approve","method":"GET"}]
		}`))
	})
	defer srv.Close()

	c := NewPayPalClient("cid", "csecret", "sandbox", srv.URL)
	res, err := c.Initiate(context.Background(), 500, "USD")
	require.NoError(t, err)

	assert.Equal(t, "ord_123", res.Reference)
	assert.Equal(t, "CREATED", res.Status)

	var meta struct {
		Links []paypalLink `json:"links"`
	}
	require.NoError(t, json.Unmarshal(res.Metadata, &meta))
	require.Len(t, meta.Links, 1)
	assert.Equal(t, "approve", meta.Links[0].Rel)
}

func TestPayPalInitiate_OrderErrorPassthrough(t *testing.T) {
	srv := newPayPalTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"UNPROCESSABLE_ENTITY","message":"The requested action could not be performed."}`))
	})
	defer srv.Close()

	c := NewPayPalClient("cid", "csecret", "sandbox", srv.URL)
	_, err := c.Initiate(context.Background(), 500, "USD")

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorProvider)
	assert.Contains(t, err.Error(), "The requested action could not be performed.")
}

func TestPayPalInitiate_TokenError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Client Authentication failed"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewPayPalClient("cid", "wrong", "sandbox", srv.URL)
	_, err := c.Initiate(context.Background(), 500, "USD")

	assert.ErrorIs(t, err, common.ErrorProvider)
	assert.Contains(t, err.Error(), "Client Authentication failed")
}

func TestPayPalInitiate_MissingCredentials(t *testing.T) {
	c := NewPayPalClient("", "", "sandbox", "")
	_, err := c.Initiate(context.Background(), 500, "USD")
	assert.ErrorIs(t, err, common.ErrorNotConfigured)
}

func TestNewPayPalClient_EnvironmentSelection(t *testing.T) {
	assert.Equal(t, paypalSandboxBaseURL, NewPayPalClient("a", "b", "sandbox", "").baseURL)
	assert.Equal(t, paypalLiveBaseURL, NewPayPalClient("a", "b", "live", "").baseURL)
	assert.Equal(t, "http://override.test", NewPayPalClient("a", "b", "live", "http://override.test").baseURL)
}
