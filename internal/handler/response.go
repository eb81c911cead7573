// Package handler holds the JSON plumbing shared by every HTTP endpoint and
// the service-level endpoints (root, health, db check, stats).
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   appErrors.Kind `json:"error"`
	Message string         `json:"message"`
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind appErrors.Kind) int {
	switch kind {
	case appErrors.KindInvalidInput:
		return http.StatusBadRequest
	case appErrors.KindUnauthenticated:
		return http.StatusUnauthorized
	case appErrors.KindForbidden:
		return http.StatusForbidden
	case appErrors.KindNotFound:
		return http.StatusNotFound
	case appErrors.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes err as an ErrorResponse. Internal causes are logged and
// never sent to the client.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	kind := appErrors.KindOf(err)
	if kind == appErrors.KindInternal && logger != nil {
		logger.Error("request failed", "error", err)
	}
	if kind == appErrors.KindUnauthenticated {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	RespondJSON(w, StatusFor(kind), ErrorResponse{Error: kind, Message: appErrors.MessageOf(err)})
}

// DecodeJSON reads a single JSON object into dst. Unknown fields, trailing
// data and oversized bodies are InvalidInput.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return appErrors.Wrap(appErrors.KindInvalidInput, err, "%s", describeDecodeError(err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return appErrors.NewInvalidInput("request body must contain a single JSON object")
	}
	return nil
}

func describeDecodeError(err error) string {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON"
	case errors.As(err, &typeErr):
		return fmt.Sprintf("field %s has the wrong type", typeErr.Field)
	case errors.As(err, &maxErr):
		return "request body too large"
	default:
		// encoding/json reports unknown fields as `json: unknown field "x"`.
		return err.Error()
	}
}
