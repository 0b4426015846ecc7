package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luxopay/backend/internal/server/providers"
)

type initiateRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// paymentView is one history row. Neither the owning user id nor the stored
// metadata is exposed.
type paymentView struct {
	ID                string    `json:"id"`
	Provider          string    `json:"provider"`
	ProviderReference *string   `json:"providerReference"`
	Amount            int64     `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (s *Server) createStripeIntent(c echo.Context) error {
	var req initiateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	identity, ok := sessionIdentity(c)
	var userID *string
	if ok {
		userID = &identity.ID
	}

	_, res, err := s.payments.Initiate(c.Request().Context(), providers.Stripe, userID, req.Amount, req.Currency)
	if err != nil {
		return s.writeError(c, err)
	}

	// The client secret lives inside the opaque metadata blob; surface it
	// top-level the way card-payment clients expect.
	var meta struct {
		ClientSecret string `json:"clientSecret"`
	}
	_ = json.Unmarshal(res.Metadata, &meta)

	return c.JSON(http.StatusOK, echo.Map{
		"id":           res.Reference,
		"status":       res.Status,
		"clientSecret": meta.ClientSecret,
	})
}

func (s *Server) createPayPalOrder(c echo.Context) error {
	var req initiateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request body"})
	}
	if req.Currency == "" {
		req.Currency = "USD"
	}

	identity, ok := sessionIdentity(c)
	var userID *string
	if ok {
		userID = &identity.ID
	}

	_, res, err := s.payments.Initiate(c.Request().Context(), providers.PayPal, userID, req.Amount, req.Currency)
	if err != nil {
		return s.writeError(c, err)
	}

	var meta struct {
		Links json.RawMessage `json:"links"`
	}
	_ = json.Unmarshal(res.Metadata, &meta)

	return c.JSON(http.StatusOK, echo.Map{
		"id":     res.Reference,
		"status": res.Status,
		"links":  meta.Links,
	})
}

func (s *Server) history(c echo.Context) error {
	identity, ok := sessionIdentity(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Authentication required"})
	}

	// Only the authenticated id ever reaches the ledger query.
	events, err := s.payments.History(c.Request().Context(), identity.ID)
	if err != nil {
		return s.writeError(c, err)
	}

	views := make([]paymentView, 0, len(events))
	for _, e := range events {
		views = append(views, paymentView{
			ID:                e.ID,
			Provider:          e.Provider,
			ProviderReference: e.ProviderReference,
			Amount:            e.Amount,
			Currency:          e.Currency,
			Status:            e.Status,
			CreatedAt:         e.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"payments": views})
}
