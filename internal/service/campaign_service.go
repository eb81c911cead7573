// internal/service/campaign_service.go
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/metrics"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/queue"
	"github.com/unclebandit/vakinha-backend/internal/repository"
	"github.com/unclebandit/vakinha-backend/internal/slug"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

var (
	minGoal = decimal.NewFromInt(10)
	maxGoal = decimal.NewFromInt(1_000_000)
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	CategoryRepo repository.CategoryRepositoryInterface
	DonationRepo repository.DonationRepositoryInterface
	UpdateRepo   repository.UpdateRepositoryInterface
	UserRepo     repository.UserRepositoryInterface
	Queue        queue.Queue
	Validator    *validation.Validator
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	Now          func() time.Time
}

type CreateCampaignInput struct {
	Title          string               `json:"title" validate:"required,min=10,max=255"`
	Slug           *string              `json:"slug" validate:"omitempty,max=255"`
	Description    *string              `json:"description" validate:"omitempty,max=1000"`
	Story          *string              `json:"story" validate:"omitempty,max=5000"`
	CoverImage     *string              `json:"cover_image" validate:"omitempty,httpurl"`
	GoalAmount     decimal.Decimal      `json:"goal_amount"`
	IsUrgent       bool                 `json:"is_urgent"`
	IsFeatured     bool                 `json:"is_featured"`
	CategoryID     *int64               `json:"category_id"`
	Source         model.Source         `json:"source" validate:"omitempty,oneof=web mobile whatsapp"`
	Status         model.CampaignStatus `json:"status" validate:"omitempty,oneof=pending active completed cancelled"`
	ApprovalStatus model.ApprovalStatus `json:"approval_status" validate:"omitempty,oneof=pending approved rejected"`
	EndDate        *time.Time           `json:"end_date"`
}

// UpdateCampaignInput is a partial update: nil fields are left unchanged.
// Slug, owner and source cannot be changed.
type UpdateCampaignInput struct {
	Title          *string               `json:"title" validate:"omitempty,min=10,max=255"`
	Description    *string               `json:"description" validate:"omitempty,max=1000"`
	Story          *string               `json:"story" validate:"omitempty,max=5000"`
	CoverImage     *string               `json:"cover_image" validate:"omitempty,httpurl"`
	GoalAmount     *decimal.Decimal      `json:"goal_amount"`
	IsUrgent       *bool                 `json:"is_urgent"`
	IsFeatured     *bool                 `json:"is_featured"`
	CategoryID     *int64                `json:"category_id"`
	EndDate        *time.Time            `json:"end_date"`
	Status         *model.CampaignStatus `json:"status" validate:"omitempty,oneof=pending active completed cancelled"`
	ApprovalStatus *model.ApprovalStatus `json:"approval_status" validate:"omitempty,oneof=pending approved rejected"`
}

func (s *CampaignService) log() *slog.Logger { return loggerOr(s.Logger, "campaign") }

// CreateCampaign applies the creation defaults and stores a campaign owned by userID.
func (s *CampaignService) CreateCampaign(ctx context.Context, userID int64, in CreateCampaignInput) (*model.Campaign, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate(s.Validator, in); err != nil {
		return nil, err
	}
	if err := checkAmount("goal_amount", in.GoalAmount, minGoal, maxGoal); err != nil {
		return nil, err
	}

	if in.Source == "" {
		in.Source = model.SourceWeb
	}
	if in.Status == "" {
		in.Status = model.StatusPending
	}
	if in.ApprovalStatus == "" {
		in.ApprovalStatus = model.ApprovalPending
	}
	if in.Status != model.StatusPending && in.Status != model.StatusActive {
		return nil, appErrors.NewInvalidInput("a campaign cannot be created with status %s", in.Status)
	}
	if in.ApprovalStatus != model.ApprovalPending {
		return nil, appErrors.NewInvalidInput("a campaign cannot be created with approval_status %s", in.ApprovalStatus)
	}

	now := nowOr(s.Now)
	endDate := model.DefaultEndDate(now)
	if in.EndDate != nil {
		if !in.EndDate.After(now) {
			return nil, appErrors.NewInvalidInput("end_date must be in the future")
		}
		endDate = in.EndDate.UTC()
	}

	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	candidate := in.Title
	if in.Slug != nil && strings.TrimSpace(*in.Slug) != "" {
		candidate = *in.Slug
	}

	c := &model.Campaign{
		UserID:         userID,
		Slug:           slug.Make(candidate),
		Title:          in.Title,
		Description:    in.Description,
		Story:          in.Story,
		CoverImage:     in.CoverImage,
		GoalAmount:     in.GoalAmount,
		IsUrgent:       in.IsUrgent,
		IsFeatured:     in.IsFeatured,
		CategoryID:     in.CategoryID,
		Status:         in.Status,
		ApprovalStatus: in.ApprovalStatus,
		Source:         in.Source,
		CreatedAt:      now,
		EndDate:        &endDate,
	}
	if err := s.CampaignRepo.Create(ctx, c); err != nil {
		if appErrors.IsConflict(err) {
			s.log().Warn("create campaign rejected", "slug", c.Slug, "error", err)
		}
		return nil, err
	}

	s.Metrics.ObserveCampaignCreated(string(c.Source))
	s.log().Info("campaign created", "campaign_id", c.ID, "user_id", userID, "slug", c.Slug)
	publish(s.Queue, s.log(), queue.TopicCampaignCreated, campaignEvent(c))
	return c, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(ctx context.Context, filter model.CampaignFilter, page, limit int) ([]model.CampaignSummary, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, appErrors.NewInvalidInput("unknown status %q", filter.Status)
	}
	if filter.ApprovalStatus != "" && !filter.ApprovalStatus.Valid() {
		return nil, nil, appErrors.NewInvalidInput("unknown approval_status %q", filter.ApprovalStatus)
	}
	offset := (page - 1) * limit

	campaigns, total, err := s.CampaignRepo.ListCampaigns(ctx, filter, offset, limit)
	if err != nil {
		return nil, nil, err
	}
	for i := range campaigns {
		campaigns[i].ProgressPercent = ProgressPercent(campaigns[i].CurrentAmount, campaigns[i].GoalAmount)
	}

	totalPages := (total + limit - 1) / limit
	pagination := map[string]int{
		"page":  page,
		"limit": limit,
		"total": total,
		"pages": totalPages,
	}

	return campaigns, pagination, nil
}

// GetCampaignDetails fetches a campaign by ID with its aggregates and updates.
func (s *CampaignService) GetCampaignDetails(ctx context.Context, id int64) (*model.CampaignDetails, error) {
	c, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, c)
}

func (s *CampaignService) GetCampaignDetailsBySlug(ctx context.Context, slug string) (*model.CampaignDetails, error) {
	c, err := s.CampaignRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, c)
}

func (s *CampaignService) details(ctx context.Context, c *model.Campaign) (*model.CampaignDetails, error) {
	current, err := s.DonationRepo.SumAmounts(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	donations, err := s.DonationRepo.CountByCampaign(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	updates, err := s.UpdateRepo.ListByCampaign(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	creator, err := s.UserRepo.GetByID(ctx, c.UserID)
	if err != nil {
		return nil, err
	}

	d := &model.CampaignDetails{
		Campaign:        *c,
		CurrentAmount:   current,
		ProgressPercent: ProgressPercent(current, c.GoalAmount),
		CreatorName:     creator.Name,
		TotalDonations:  donations,
		TotalUpdates:    len(updates),
		Updates:         updates,
	}
	if c.CategoryID != nil {
		cat, err := s.CategoryRepo.GetByID(ctx, *c.CategoryID)
		if err != nil && !appErrors.IsNotFound(err) {
			return nil, err
		}
		if cat != nil {
			d.CategoryTitle = &cat.Title
		}
	}
	return d, nil
}

// UpdateCampaign applies a partial update. Only the owner may update, and
// status changes must follow the lifecycle.
func (s *CampaignService) UpdateCampaign(ctx context.Context, userID, id int64, in UpdateCampaignInput) (*model.Campaign, error) {
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		in.Title = &title
	}
	if err := validate(s.Validator, in); err != nil {
		return nil, err
	}

	c, err := s.ownedCampaign(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if in.GoalAmount != nil {
		if err := checkAmount("goal_amount", *in.GoalAmount, minGoal, maxGoal); err != nil {
			return nil, err
		}
	}
	if in.Status != nil && !c.Status.CanTransitionTo(*in.Status) {
		return nil, appErrors.NewInvalidInput("cannot change status from %s to %s", c.Status, *in.Status)
	}
	if in.ApprovalStatus != nil && !c.ApprovalStatus.CanTransitionTo(*in.ApprovalStatus) {
		return nil, appErrors.NewInvalidInput("cannot change approval_status from %s to %s", c.ApprovalStatus, *in.ApprovalStatus)
	}
	if in.EndDate != nil {
		if !in.EndDate.After(nowOr(s.Now)) {
			return nil, appErrors.NewInvalidInput("end_date must be in the future")
		}
		end := in.EndDate.UTC()
		in.EndDate = &end
	}
	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	model.CampaignChanges{
		Title:          in.Title,
		Description:    in.Description,
		Story:          in.Story,
		CoverImage:     in.CoverImage,
		GoalAmount:     in.GoalAmount,
		IsUrgent:       in.IsUrgent,
		IsFeatured:     in.IsFeatured,
		CategoryID:     in.CategoryID,
		EndDate:        in.EndDate,
		Status:         in.Status,
		ApprovalStatus: in.ApprovalStatus,
	}.Apply(c)

	if err := s.CampaignRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.log().Info("campaign updated", "campaign_id", c.ID, "status", c.Status)
	publish(s.Queue, s.log(), queue.TopicCampaignUpdated, campaignEvent(c))
	return c, nil
}

// DeleteCampaign removes a campaign with its donations and updates.
func (s *CampaignService) DeleteCampaign(ctx context.Context, userID, id int64) error {
	c, err := s.ownedCampaign(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.CampaignRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.log().Info("campaign deleted", "campaign_id", id, "user_id", userID)
	publish(s.Queue, s.log(), queue.TopicCampaignDeleted, campaignEvent(c))
	return nil
}

// Stats returns the total number of campaigns and how many are active.
func (s *CampaignService) Stats(ctx context.Context) (map[string]int, error) {
	counts, err := s.CampaignRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range counts {
		total += n
	}
	return map[string]int{
		"total":  total,
		"active": counts[model.StatusActive],
	}, nil
}

// ownedCampaign loads campaign id and checks that userID owns it.
func (s *CampaignService) ownedCampaign(ctx context.Context, userID, id int64) (*model.Campaign, error) {
	c, err := s.CampaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		s.log().Warn("campaign access denied", "campaign_id", id, "user_id", userID)
		return nil, appErrors.NewForbidden("not allowed to modify campaign %d", id)
	}
	return c, nil
}

func (s *CampaignService) checkCategory(ctx context.Context, id *int64) error {
	if id == nil {
		return nil
	}
	if _, err := s.CategoryRepo.GetByID(ctx, *id); err != nil {
		if appErrors.IsNotFound(err) {
			return appErrors.NewNotFound("category with ID %d not found", *id)
		}
		return err
	}
	return nil
}

func campaignEvent(c *model.Campaign) queue.CampaignEvent {
	return queue.CampaignEvent{
		CampaignID: c.ID,
		UserID:     c.UserID,
		Slug:       c.Slug,
		Status:     string(c.Status),
	}
}
