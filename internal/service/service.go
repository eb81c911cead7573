// Package service holds the business rules: validation, campaign lifecycle
// policy, ownership checks and the derived aggregates.
package service

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/queue"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

var defaultValidator = validation.New()

func validate(v *validation.Validator, in any) error {
	if v == nil {
		v = defaultValidator
	}
	return v.Struct(in)
}

func loggerOr(l *slog.Logger, component string) *slog.Logger {
	if l == nil {
		l = slog.Default()
	}
	return l.With("layer", "service", "component", component)
}

func nowOr(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}

// publish sends an event after the write it describes has committed. A
// failure is logged and never fails the request.
func publish(q queue.Queue, logger *slog.Logger, topic string, payload any) {
	if q == nil {
		return
	}
	if err := q.Publish(topic, payload); err != nil {
		logger.Warn("publish event failed", "topic", topic, "error", err)
	}
}

// checkAmount enforces min < amount <= max with at most two decimal places.
func checkAmount(field string, amount, min, max decimal.Decimal) error {
	if !amount.GreaterThan(min) {
		return appErrors.NewInvalidInput("%s must be greater than %s", field, min)
	}
	if amount.GreaterThan(max) {
		return appErrors.NewInvalidInput("%s must be at most %s", field, max)
	}
	if !amount.Equal(amount.Round(2)) {
		return appErrors.NewInvalidInput("%s must have at most 2 decimal places", field)
	}
	return nil
}
