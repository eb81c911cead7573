package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/unclebandit/vakinha-backend/internal/auth"
	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/metrics"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/repository"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type AuthService struct {
	Users     repository.UserRepositoryInterface
	Hasher    auth.PasswordHasher
	Tokens    auth.TokenService
	Validator *validation.Validator
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// errInvalidCredentials is returned for every login failure so callers cannot
// tell an unknown email from a wrong password.
func errInvalidCredentials() error {
	return appErrors.NewUnauthenticated("incorrect email or password")
}

// Register creates an active user. A taken email is a Conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	log := loggerOr(s.Logger, "auth")

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate(s.Validator, in); err != nil {
		return nil, err
	}

	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		log.Warn("register rejected", "reason", "email taken")
		return nil, appErrors.NewConflict("email already registered")
	} else if !appErrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		log.Error("hash password failed", "error", err)
		return nil, appErrors.NewInternal(err)
	}

	u := &model.User{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		IsActive:     true,
	}
	// The unique constraint still guards against a concurrent registration.
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login verifies the credentials and issues a bearer token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*TokenResponse, error) {
	log := loggerOr(s.Logger, "auth")

	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate(s.Validator, in); err != nil {
		return nil, err
	}

	u, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if appErrors.IsNotFound(err) {
			s.Metrics.ObserveLogin("failure")
			return nil, errInvalidCredentials()
		}
		return nil, err
	}
	if !s.Hasher.Verify(in.Password, u.PasswordHash) || !u.IsActive {
		s.Metrics.ObserveLogin("failure")
		log.Warn("login rejected", "user_id", u.ID)
		return nil, errInvalidCredentials()
	}

	token, err := s.Tokens.Issue(u.ID)
	if err != nil {
		log.Error("issue token failed", "user_id", u.ID, "error", err)
		return nil, appErrors.NewInternal(err)
	}

	s.Metrics.ObserveLogin("success")
	log.Info("user logged in", "user_id", u.ID)
	return &TokenResponse{AccessToken: token, TokenType: auth.TokenType}, nil
}

// Me returns the user a verified token belongs to.
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.NewUnauthenticated("user not found")
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, appErrors.NewUnauthenticated("inactive user")
	}
	return u, nil
}
