package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
	codeNumericOutOfRange   = "22003"
)

var uniqueMessages = map[string]string{
	"users_email_key":      "email already registered",
	"campaigns_slug_key":   "slug already in use",
	"categories_title_key": "category title already exists",
}

var foreignKeyMessages = map[string]string{
	"campaigns_category_id_fkey": "category not found",
	"campaigns_user_id_fkey":     "user not found",
	"donations_campaign_id_fkey": "campaign not found",
	"updates_campaign_id_fkey":   "campaign not found",
}

// translate maps driver errors onto the error kinds. what names the entity
// for not-found messages.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NewNotFound("%s not found", what)
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return appErrors.NewInternal(err)
	}

	switch pqErr.Code {
	case codeUniqueViolation:
		msg, ok := uniqueMessages[pqErr.Constraint]
		if !ok {
			msg = what + " already exists"
		}
		return appErrors.Wrap(appErrors.KindConflict, err, "%s", msg)
	case codeForeignKeyViolation:
		msg, ok := foreignKeyMessages[pqErr.Constraint]
		if !ok {
			msg = "referenced record not found"
		}
		return appErrors.Wrap(appErrors.KindNotFound, err, "%s", msg)
	case codeCheckViolation, codeInvalidText, codeNumericOutOfRange:
		return appErrors.Wrap(appErrors.KindInvalidInput, err, "invalid %s", what)
	}
	return appErrors.NewInternal(err)
}
