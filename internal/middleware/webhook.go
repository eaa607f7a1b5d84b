package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const webhookSecretHeader = "X-Webhook-Secret"

// WebhookSecret gates ingestion endpoints on a shared-secret header.
// Requests are rejected outright when no secret is configured.
func WebhookSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(secret) == "" {
				writeAuthError(w, http.StatusUnauthorized, "Webhook secret is not configured")
				return
			}
			provided := r.Header.Get(webhookSecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				writeAuthError(w, http.StatusUnauthorized, "Invalid webhook secret")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
