package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
)

// TokenType is returned alongside issued tokens.
const TokenType = "bearer"

// DefaultTokenLifetime applies when TokenConfig.Lifetime is zero.
const DefaultTokenLifetime = 30 * time.Minute

// TokenService issues and verifies bearer tokens whose subject is a user id.
type TokenService interface {
	Issue(userID int64) (string, error)
	Verify(token string) (int64, error)
}

// TokenConfig is loaded once at startup. Changing Secret invalidates every
// outstanding token.
type TokenConfig struct {
	Secret    string
	Algorithm string
	Lifetime  time.Duration
	Now       func() time.Time
}

type JWTIssuer struct {
	secret   []byte
	method   jwt.SigningMethod
	lifetime time.Duration
	now      func() time.Time
}

func NewJWTIssuer(cfg TokenConfig) (*JWTIssuer, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = jwt.SigningMethodHS256.Alg()
	}
	method, err := hmacMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if cfg.Lifetime == 0 {
		cfg.Lifetime = DefaultTokenLifetime
	}
	if cfg.Lifetime < 0 {
		return nil, fmt.Errorf("token lifetime must be positive, got %s", cfg.Lifetime)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &JWTIssuer{
		secret:   []byte(cfg.Secret),
		method:   method,
		lifetime: cfg.Lifetime,
		now:      cfg.Now,
	}, nil
}

func hmacMethod(alg string) (jwt.SigningMethod, error) {
	switch alg {
	case jwt.SigningMethodHS256.Alg():
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Alg():
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Alg():
		return jwt.SigningMethodHS512, nil
	}
	return nil, fmt.Errorf("unsupported token algorithm %q", alg)
}

// Lifetime is how long issued tokens stay valid.
func (s *JWTIssuer) Lifetime() time.Duration { return s.lifetime }

func (s *JWTIssuer) Issue(userID int64) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
	}
	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func (s *JWTIssuer) Verify(token string) (int64, error) {
	if token == "" {
		return 0, appErrors.NewUnauthenticated("missing token")
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return 0, mapJWTError(err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, appErrors.NewUnauthenticated("token subject is invalid")
	}
	return userID, nil
}

// mapJWTError folds every jwt failure into Unauthenticated with a short reason.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return appErrors.Wrap(appErrors.KindUnauthenticated, err, "token is expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return appErrors.Wrap(appErrors.KindUnauthenticated, err, "token signature is invalid")
	case errors.Is(err, jwt.ErrTokenMalformed):
		return appErrors.Wrap(appErrors.KindUnauthenticated, err, "token is malformed")
	default:
		return appErrors.Wrap(appErrors.KindUnauthenticated, err, "token is invalid")
	}
}
