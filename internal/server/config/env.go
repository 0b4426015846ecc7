package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment onto cfg. A .env file
// in the working directory is loaded first, without overriding variables that
// are already exported.
//
// Recognized variables:
//
//	PORT                  HTTP port (the bind address becomes ":" + PORT)
//	DATABASE_DSN          PostgreSQL DSN
//	JWT_SECRET            token signing secret
//	TOKEN_VALIDITY_HOURS  bearer token lifetime, hours
//	STRIPE_SECRET_KEY     card provider secret key
//	STRIPE_BASE_URL       card provider endpoint override
//	PAYPAL_CLIENT_ID      wallet provider client id
//	PAYPAL_CLIENT_SECRET  wallet provider client secret
//	PAYPAL_ENV            "sandbox" or "live"
//	PAYPAL_BASE_URL       wallet provider endpoint override
func parseEnv(cfg *Config) {
	// Missing .env is fine; exported variables win over file contents.
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		cfg.EndpointAddr = ":" + v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("TOKEN_VALIDITY_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.TokenValidityDuration = time.Duration(hours) * time.Hour
		}
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.StripeSecretKey = v
	}
	if v := os.Getenv("STRIPE_BASE_URL"); v != "" {
		cfg.StripeBaseURL = v
	}
	if v := os.Getenv("PAYPAL_CLIENT_ID"); v != "" {
		cfg.PayPalClientID = v
	}
	if v := os.Getenv("PAYPAL_CLIENT_SECRET"); v != "" {
		cfg.PayPalClientSecret = v
	}
	if v := os.Getenv("PAYPAL_ENV"); v != "" {
		cfg.PayPalEnv = v
	}
	if v := os.Getenv("PAYPAL_BASE_URL"); v != "" {
		cfg.PayPalBaseURL = v
	}
}
