package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"veridev/pkg/domain"
)

// JWTValidator defines the interface for validating bearer tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator. Caller is
// the opaque marketplace identity the token was minted for; every mutating
// operation is attributed to it.
type JWTClaims struct {
	Caller domain.Identity
}

type contextKeyCaller struct{}

// ContextKeyCaller is exported for use in handler tests.
var ContextKeyCaller = contextKeyCaller{}

// GetCaller retrieves the authenticated caller identity from the context.
func GetCaller(ctx context.Context) domain.Identity {
	caller, ok := ctx.Value(ContextKeyCaller).(domain.Identity)
	if !ok {
		return ""
	}
	return caller
}

// RequireAuth resolves the caller identity from a bearer token and stores it
// in the request context. Requests without a valid token never reach mutating
// handlers; read-only query routes are mounted outside this middleware.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyCaller, claims.Caller)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
