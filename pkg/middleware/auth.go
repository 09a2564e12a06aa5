package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	apperrors "retreat/pkg/errors"
	httputil "retreat/pkg/http"
	"retreat/pkg/logger"
	"retreat/pkg/model"

	"github.com/golang-jwt/jwt/v5"
)

const principalKey contextKey = "principal"

// Claims carried by bearer tokens. Tokens are issued elsewhere and signed with
// the shared HS256 secret.
type Claims struct {
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// Authenticate requires a valid bearer token and puts the caller's Principal on
// the request context.
func Authenticate(secret []byte, log *logger.Logger) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) { return secret, nil }

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				rejectUnauthorized(w, log, r, "missing bearer token", nil)
				return
			}

			var claims Claims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
				rejectUnauthorized(w, log, r, "invalid token", err)
				return
			}

			userID := claims.UserID
			if userID == "" {
				userID = claims.Subject
			}
			if userID == "" {
				rejectUnauthorized(w, log, r, "token has no user id", nil)
				return
			}

			ctx := WithPrincipal(r.Context(), model.Principal{UserID: userID, IsAdmin: claims.IsAdmin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok || !principal.IsAdmin {
				log.Warn("Admin access denied",
					"request_id", RequestIDFrom(r.Context()),
					"user_id", principal.UserID,
					"path", r.URL.Path,
				)
				_ = httputil.WriteError(w, apperrors.Forbidden("Admin access required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithPrincipal(ctx context.Context, p model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

func PrincipalFrom(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(principalKey).(model.Principal)
	return p, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func rejectUnauthorized(w http.ResponseWriter, log *logger.Logger, r *http.Request, reason string, err error) {
	attrs := []any{
		"request_id", RequestIDFrom(r.Context()),
		"reason", reason,
		"path", r.URL.Path,
	}
	if err != nil {
		attrs = append(attrs, "error", err)
		if errors.Is(err, jwt.ErrTokenExpired) {
			reason = "token expired"
		}
	}
	log.Warn("Authentication failed", attrs...)
	_ = httputil.WriteError(w, apperrors.Unauthorized(reason))
}
