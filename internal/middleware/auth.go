package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/unclebandit/vakinha-backend/internal/auth"
	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/handler"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Authenticate rejects requests without a valid bearer token and stores the
// token subject in the request context.
func Authenticate(tokens auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				handler.RespondError(w, nil, err)
				return
			}
			userID, err := tokens.Verify(token)
			if err != nil {
				handler.RespondError(w, nil, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", appErrors.NewUnauthenticated("missing authorization header")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
		return "", appErrors.NewUnauthenticated("authorization header must be Bearer <token>")
	}
	return strings.TrimSpace(token), nil
}

func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
