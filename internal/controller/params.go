package controller

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/middleware"
)

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, appErrors.NewInvalidInput("%s must be a positive integer, got %q", name, raw)
	}
	return id, nil
}

// currentUser returns the id the auth middleware stored on the request.
func currentUser(r *http.Request) (int64, error) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return 0, appErrors.NewUnauthenticated("not authenticated")
	}
	return id, nil
}

func queryInt(r *http.Request, name string, def, min, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < min || (max > 0 && n > max) {
		if max > 0 {
			return 0, appErrors.NewInvalidInput("%s must be an integer between %d and %d", name, min, max)
		}
		return 0, appErrors.NewInvalidInput("%s must be an integer of at least %d", name, min)
	}
	return n, nil
}

func queryInt64Ptr(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, appErrors.NewInvalidInput("%s must be an integer", name)
	}
	return &n, nil
}

func queryBoolPtr(r *http.Request, name string) (*bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, appErrors.NewInvalidInput("%s must be true or false", name)
	}
	return &b, nil
}
