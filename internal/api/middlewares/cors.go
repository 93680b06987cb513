package middlewares

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/babylonchain/staking-ledger-service/internal/config"
)

const (
	maxAge = 300
)

// CorsMiddleware lets browsers on the allowed origins call both the query
// and the mutating routes.
func CorsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         maxAge,
	})
	return c.Handler
}
