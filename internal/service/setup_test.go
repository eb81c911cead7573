package service_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/unclebandit/vakinha-backend/internal/auth"
	"github.com/unclebandit/vakinha-backend/internal/metrics"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/queue"
	"github.com/unclebandit/vakinha-backend/internal/repository/memory"
	"github.com/unclebandit/vakinha-backend/internal/service"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

var fixedNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	users      *memory.UserRepository
	campaigns  *memory.CampaignRepository
	donations  *memory.DonationRepository
	updates    *memory.UpdateRepository
	categories *memory.CategoryRepository

	metrics *metrics.Metrics
	tokens  *auth.JWTIssuer
	events  []string

	auth     *service.AuthService
	campaign *service.CampaignService
	donation *service.DonationService
	update   *service.UpdateService
	category *service.CategoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:      memory.NewUserRepository(),
		donations:  &memory.DonationRepository{},
		updates:    &memory.UpdateRepository{},
		categories: &memory.CategoryRepository{},
		metrics:    metrics.New(),
	}
	f.campaigns = memory.NewCampaignRepository(f.donations)

	hasher, err := auth.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)
	f.tokens, err = auth.NewJWTIssuer(auth.TokenConfig{Secret: "test-secret", Now: func() time.Time { return fixedNow }})
	require.NoError(t, err)

	q := queue.NewInMemoryQueue()
	q.SubscribeAll(func(ev queue.Event) error {
		f.events = append(f.events, ev.Topic)
		return nil
	})

	v := validation.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return fixedNow }

	f.auth = &service.AuthService{
		Users:     f.users,
		Hasher:    hasher,
		Tokens:    f.tokens,
		Validator: v,
		Metrics:   f.metrics,
		Logger:    logger,
	}
	f.campaign = &service.CampaignService{
		CampaignRepo: f.campaigns,
		CategoryRepo: f.categories,
		DonationRepo: f.donations,
		UpdateRepo:   f.updates,
		UserRepo:     f.users,
		Queue:        q,
		Validator:    v,
		Metrics:      f.metrics,
		Logger:       logger,
		Now:          now,
	}
	f.donation = &service.DonationService{
		CampaignRepo: f.campaigns,
		DonationRepo: f.donations,
		Queue:        q,
		Validator:    v,
		Metrics:      f.metrics,
		Logger:       logger,
	}
	f.update = &service.UpdateService{
		CampaignRepo: f.campaigns,
		UpdateRepo:   f.updates,
		Queue:        q,
		Validator:    v,
		Logger:       logger,
	}
	f.category = &service.CategoryService{
		CategoryRepo: f.categories,
		Validator:    v,
		Logger:       logger,
	}
	return f
}

func (f *fixture) seedUser(t *testing.T, name string) int64 {
	t.Helper()
	u, err := f.auth.Register(context.Background(), service.RegisterInput{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "password123",
	})
	require.NoError(t, err)
	return u.ID
}

func (f *fixture) seedCampaign(t *testing.T, owner int64, title string, goal int64) *model.Campaign {
	t.Helper()
	c, err := f.campaign.CreateCampaign(context.Background(), owner, service.CreateCampaignInput{
		Title:      title,
		GoalAmount: decimal.NewFromInt(goal),
	})
	require.NoError(t, err)
	return c
}

func ptr[T any](v T) *T { return &v }
