package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/queue"
	"github.com/unclebandit/vakinha-backend/internal/service"
)

func TestCreateCampaignDefaults(t *testing.T) {
	f := newFixture(t)
	owner := f.seedUser(t, "ana")

	c := f.seedCampaign(t, owner, "  Ação Solidária para Ana  ", 100)

	assert.Equal(t, owner, c.UserID)
	assert.Equal(t, "Ação Solidária para Ana", c.Title)
	assert.Equal(t, "acao-solidaria-para-ana", c.Slug)
	assert.Equal(t, model.SourceWeb, c.Source)
	assert.Equal(t, model.StatusPending, c.Status)
	assert.Equal(t, model.ApprovalPending, c.ApprovalStatus)
	assert.Equal(t, fixedNow, c.CreatedAt)
	require.NotNil(t, c.EndDate)
	assert.Equal(t, fixedNow.Add(90*24*time.Hour), *c.EndDate)

	assert.Equal(t, []string{queue.TopicCampaignCreated}, f.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CampaignsCreated.WithLabelValues("web")))
}

func TestCreateCampaignExplicitFields(t *testing.T) {
	f := newFixture(t)
	owner := f.seedUser(t, "ana")
	cat, err := f.category.CreateCategory(context.Background(), service.CreateCategoryInput{Title: "Saúde", Icon: "heart"})
	require.NoError(t, err)
	end := fixedNow.Add(24 * time.Hour)

	c, err := f.campaign.CreateCampaign(context.Background(), owner, service.CreateCampaignInput{
		Title:      "Tratamento do Joao",
		Slug:       ptr("Joao Tratamento!"),
		GoalAmount: decimal.RequireFromString("5000.50"),
		CategoryID: &cat.ID,
		Source:     model.SourceWhatsApp,
		Status:     model.StatusActive,
		EndDate:    &end,
	})
	require.NoError(t, err)
	assert.Equal(t, "joao-tratamento", c.Slug)
	assert.Equal(t, model.StatusActive, c.Status)
	assert.Equal(t, model.SourceWhatsApp, c.Source)
	assert.Equal(t, end, *c.EndDate)
}

func TestCreateCampaignBlankSlugUsesTitle(t *testing.T) {
	f := newFixture(t)
	owner := f.seedUser(t, "ana")

	c, err := f.campaign.CreateCampaign(context.Background(), owner, service.CreateCampaignInput{
		Title:      "Reforma da escola",
		Slug:       ptr("   "),
		GoalAmount: decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Equal(t, "reforma-da-escola", c.Slug)
}

func TestCreateCampaignRejections(t *testing.T) {
	f := newFixture(t)
	owner := f.seedUser(t, "ana")
	past := fixedNow.Add(-time.Minute)
	now := fixedNow

	base := func() service.CreateCampaignInput {
		return service.CreateCampaignInput{Title: "Reforma da escola", GoalAmount: decimal.NewFromInt(100)}
	}
	tests := []struct {
		name   string
		mutate func(*service.CreateCampaignInput)
		kind   appErrors.Kind
	}{
		{"short title", func(in *service.CreateCampaignInput) { in.Title = "Curto" }, appErrors.KindInvalidInput},
		{"goal at minimum", func(in *service.CreateCampaignInput) { in.GoalAmount = decimal.NewFromInt(10) }, appErrors.KindInvalidInput},
		{"goal above maximum", func(in *service.CreateCampaignInput) { in.GoalAmount = decimal.NewFromInt(1_000_001) }, appErrors.KindInvalidInput},
		{"goal with cents fraction", func(in *service.CreateCampaignInput) { in.GoalAmount = decimal.RequireFromString("100.005") }, appErrors.KindInvalidInput},
		{"past end date", func(in *service.CreateCampaignInput) { in.EndDate = &past }, appErrors.KindInvalidInput},
		{"end date now", func(in *service.CreateCampaignInput) { in.EndDate = &now }, appErrors.KindInvalidInput},
		{"bad cover image", func(in *service.CreateCampaignInput) { in.CoverImage = ptr("ftp://x/y.png") }, appErrors.KindInvalidInput},
		{"unknown source", func(in *service.CreateCampaignInput) { in.Source = "fax" }, appErrors.KindInvalidInput},
		{"terminal status", func(in *service.CreateCampaignInput) { in.Status = model.StatusCompleted }, appErrors.KindInvalidInput},
		{"pre-approved", func(in *service.CreateCampaignInput) { in.ApprovalStatus = model.ApprovalApproved }, appErrors.KindInvalidInput},
		{"unknown category", func(in *service.CreateCampaignInput) { in.CategoryID = ptr(int64(99)) }, appErrors.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base()
			tt.mutate(&in)
			_, err := f.campaign.CreateCampaign(context.Background(), owner, in)
			assert.Equal(t, tt.kind, appErrors.KindOf(err), "got %v", err)
		})
	}
	assert.Empty(t, f.events, "rejected campaigns must not publish events")
}

func TestCreateCampaignSlugConflict(t *testing.T) {
	f := newFixture(t)
	owner := f.seedUser(t, "ana")
	f.seedCampaign(t, owner, "Reforma da escola", 100)

	_, err := f.campaign.CreateCampaign(context.Background(), owner, service.CreateCampaignInput{
		Title:      "Reforma da Escola!",
		GoalAmount: decimal.NewFromInt(200),
	})
	assert.True(t, appErrors.IsConflict(err), "got %v", err)
}

func TestCampaignDetailsAggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana")
	c := f.seedCampaign(t, owner, "Reforma da escola", 100)

	details, err := f.campaign.GetCampaignDetails(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, details.CurrentAmount.IsZero())
	assert.Equal(t, 0.0, details.ProgressPercent)
	assert.Equal(t, 0, details.TotalDonations)

	for _, amount := range []int64{30, 20} {
		_, err := f.donation.Donate(ctx, c.ID, service.CreateDonationInput{Amount: decimal.NewFromInt(amount), DonorName: "Bia"})
		require.NoError(t, err)
	}
	_, err = f.update.PostUpdate(ctx, owner, c.ID, service.CreateUpdateInput{Title: "Obra iniciada", Contents: "Compramos o cimento."})
	require.NoError(t, err)

	details, err = f.campaign.GetCampaignDetailsBySlug(ctx, c.Slug)
	require.NoError(t, err)
	assert.True(t, details.CurrentAmount.Equal(decimal.NewFromInt(50)), "got %s", details.CurrentAmount)
	assert.Equal(t, 50.0, details.ProgressPercent)
	assert.Equal(t, 2, details.TotalDonations)
	assert.Equal(t, 1, details.TotalUpdates)
	assert.Equal(t, "ana", details.CreatorName)
	assert.Nil(t, details.CategoryTitle)
	require.Len(t, details.Updates, 1)
}

func TestGetCampaignDetailsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.campaign.GetCampaignDetails(context.Background(), 42)
	assert.True(t, appErrors.IsNotFound(err))
	_, err = f.campaign.GetCampaignDetailsBySlug(context.Background(), "nope")
	assert.True(t, appErrors.IsNotFound(err))
}

func TestUpdateCampaignLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana")
	c := f.seedCampaign(t, owner, "Reforma da escola", 100)

	status := func(s model.CampaignStatus) service.UpdateCampaignInput {
		return service.UpdateCampaignInput{Status: &s}
	}

	updated, err := f.campaign.UpdateCampaign(ctx, owner, c.ID, status(model.StatusActive))
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, updated.Status)

	_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, status(model.StatusPending))
	assert.True(t, appErrors.IsInvalidInput(err), "active -> pending must fail")

	_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, status(model.StatusCompleted))
	require.NoError(t, err)

	for _, next := range []model.CampaignStatus{model.StatusActive, model.StatusCancelled, model.StatusPending} {
		_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, status(next))
		assert.True(t, appErrors.IsInvalidInput(err), "completed -> %s must fail", next)
	}

	_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, status(model.StatusCompleted))
	assert.NoError(t, err, "same state is a no-op")
}

func TestUpdateCampaignApproval(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana")
	c := f.seedCampaign(t, owner, "Reforma da escola", 100)

	_, err := f.campaign.UpdateCampaign(ctx, owner, c.ID, service.UpdateCampaignInput{ApprovalStatus: ptr(model.ApprovalApproved)})
	require.NoError(t, err)

	_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, service.UpdateCampaignInput{ApprovalStatus: ptr(model.ApprovalRejected)})
	assert.True(t, appErrors.IsInvalidInput(err))
}

func TestUpdateCampaignPartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana")
	c := f.seedCampaign(t, owner, "Reforma da escola", 100)
	end := fixedNow.Add(48 * time.Hour)

	updated, err := f.campaign.UpdateCampaign(ctx, owner, c.ID, service.UpdateCampaignInput{
		Story:      ptr("Nossa escola precisa de um telhado novo."),
		GoalAmount: ptr(decimal.NewFromInt(250)),
		IsUrgent:   ptr(true),
		EndDate:    &end,
	})
	require.NoError(t, err)
	assert.Equal(t, c.Title, updated.Title)
	assert.Equal(t, c.Slug, updated.Slug)
	assert.True(t, updated.IsUrgent)
	assert.True(t, updated.GoalAmount.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, end, *updated.EndDate)

	stored, err := f.campaigns.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nossa escola precisa de um telhado novo.", *stored.Story)
	assert.Equal(t, []string{queue.TopicCampaignCreated, queue.TopicCampaignUpdated}, f.events)
}

func TestUpdateCampaignRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana")
	other := f.seedUser(t, "bia")
	c := f.seedCampaign(t, owner, "Reforma da escola", 100)
	past := fixedNow.Add(-time.Hour)

	_, err := f.campaign.UpdateCampaign(ctx, other, c.ID, service.UpdateCampaignInput{IsUrgent: ptr(true)})
	assert.True(t, appErrors.IsForbidden(err), "got %v", err)

	_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, service.UpdateCampaignInput{EndDate: &past})
	assert.True(t, appErrors.IsInvalidInput(err), "got %v", err)

	_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, service.UpdateCampaignInput{Title: ptr("Curto")})
	assert.True(t, appErrors.IsInvalidInput(err), "got %v", err)

	_, err = f.campaign.UpdateCampaign(ctx, owner, c.ID, service.UpdateCampaignInput{GoalAmount: ptr(decimal.NewFromInt(5))})
	assert.True(t, appErrors.IsInvalidInput(err), "got %v", err)

	_, err = f.campaign.UpdateCampaign(ctx, owner, 999, service.UpdateCampaignInput{IsUrgent: ptr(true)})
	assert.True(t, appErrors.IsNotFound(err), "got %v", err)
}

func TestDeleteCampaign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana")
	other := f.seedUser(t, "bia")
	c := f.seedCampaign(t, owner, "Reforma da escola", 100)

	err := f.campaign.DeleteCampaign(ctx, other, c.ID)
	assert.True(t, appErrors.IsForbidden(err))

	require.NoError(t, f.campaign.DeleteCampaign(ctx, owner, c.ID))
	_, err = f.campaign.GetCampaignDetails(ctx, c.ID)
	assert.True(t, appErrors.IsNotFound(err))
	assert.Equal(t, []string{queue.TopicCampaignCreated, queue.TopicCampaignDeleted}, f.events)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedUser(t, "ana")
	f.seedCampaign(t, owner, "Reforma da escola", 100)
	c := f.seedCampaign(t, owner, "Tratamento do Joao", 100)
	_, err := f.campaign.UpdateCampaign(ctx, owner, c.ID, service.UpdateCampaignInput{Status: ptr(model.StatusActive)})
	require.NoError(t, err)

	stats, err := f.campaign.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"total": 2, "active": 1}, stats)
}

func TestListCampaignsRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	_, _, err := f.campaign.ListCampaigns(context.Background(), model.CampaignFilter{Status: "archived"}, 1, 10)
	assert.True(t, appErrors.IsInvalidInput(err))
}
