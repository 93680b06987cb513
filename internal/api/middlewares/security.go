package middlewares

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"
)

// The API only ever answers with JSON, so nothing may be loaded from it.
const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"

// The swagger UI pulls its scripts and styles from a CDN.
const swaggerContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com; " +
	"style-src 'self' 'unsafe-inline' https://cdnjs.cloudflare.com; " +
	"img-src 'self' data:; " +
	"object-src 'none'; frame-ancestors 'self'; base-uri 'self'"

func newSecure(csp string) *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: csp,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	})
}

// SecurityHeadersMiddleware sets security headers through unrolled/secure,
// with a locked down policy for API routes and a looser one for swagger.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	api := newSecure(apiContentSecurityPolicy)
	swagger := newSecure(swaggerContentSecurityPolicy)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sec := api
			if strings.HasPrefix(r.URL.Path, "/swagger/") {
				sec = swagger
			}
			if err := sec.Process(w, r); err != nil {
				log.Error().Err(err).Msg("error while applying security headers")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
