package jwt

import (
	"context"
	"net/http"
	"strings"

	"chatfront/internal/pkg/errs"
	"chatfront/internal/pkg/logx"
	"chatfront/internal/pkg/resp"
)

type contextKey string

// ContextClaimsKey stores the verified *Claims in the request context.
const ContextClaimsKey contextKey = "auth_claims"

// AccessTokenParam is the query parameter carrying the token on websocket
// upgrades, where browsers cannot set an Authorization header.
const AccessTokenParam = "access_token"

// IdentityExtractorMiddleware verifies a Bearer token when one is present and
// stores its claims in the request context. It never rejects a request: a
// missing or invalid token leaves the caller anonymous.
func IdentityExtractorMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return identityMiddleware(secretKey, bearerToken)
}

// WebSocketIdentityMiddleware is IdentityExtractorMiddleware that also accepts
// the token in the access_token query parameter.
func WebSocketIdentityMiddleware(secretKey string) func(next http.Handler) http.Handler {
	return identityMiddleware(secretKey, func(r *http.Request) (string, bool) {
		if token, ok := bearerToken(r); ok {
			return token, true
		}

		token := strings.TrimSpace(r.URL.Query().Get(AccessTokenParam))
		return token, token != ""
	})
}

// RequireAdmin rejects requests that reached it without verified claims.
// It must run after one of the identity middlewares.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetClaimsFromContext(r) == nil {
			logx.Warn("Request rejected: admin token required.", "path", r.URL.Path)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func identityMiddleware(secretKey string, extract func(*http.Request) (string, bool)) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extract(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ParseToken(tokenString, secretKey)
			if err != nil {
				logx.Warn("Invalid or expired JWT provided, treating as anonymous", "error", err.Error())
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// GetClaimsFromContext returns the verified claims, or nil for anonymous callers.
func GetClaimsFromContext(r *http.Request) *Claims {
	claims, ok := r.Context().Value(ContextClaimsKey).(*Claims)
	if !ok {
		return nil
	}

	return claims
}
