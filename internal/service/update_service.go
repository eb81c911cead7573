package service

import (
	"context"
	"log/slog"
	"strings"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/queue"
	"github.com/unclebandit/vakinha-backend/internal/repository"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

type CreateUpdateInput struct {
	Title    string `json:"title" validate:"required,min=5,max=255"`
	Contents string `json:"contents" validate:"required,min=1,max=2000"`
}

type UpdateService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	UpdateRepo   repository.UpdateRepositoryInterface
	Queue        queue.Queue
	Validator    *validation.Validator
	Logger       *slog.Logger
}

func (s *UpdateService) log() *slog.Logger { return loggerOr(s.Logger, "update") }

func (s *UpdateService) ListUpdates(ctx context.Context, campaignID int64) ([]model.Update, error) {
	if _, err := s.CampaignRepo.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.UpdateRepo.ListByCampaign(ctx, campaignID)
}

// PostUpdate adds a progress note. Only the campaign owner may post.
func (s *UpdateService) PostUpdate(ctx context.Context, userID, campaignID int64, in CreateUpdateInput) (*model.Update, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validate(s.Validator, in); err != nil {
		return nil, err
	}

	c, err := s.CampaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		s.log().Warn("update rejected", "campaign_id", campaignID, "user_id", userID)
		return nil, appErrors.NewForbidden("not allowed to post updates to campaign %d", campaignID)
	}

	u := &model.Update{CampaignID: campaignID, Title: in.Title, Contents: in.Contents}
	if err := s.UpdateRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.log().Info("update posted", "update_id", u.ID, "campaign_id", campaignID)
	publish(s.Queue, s.log(), queue.TopicUpdateCreated, queue.UpdateEvent{
		UpdateID:   u.ID,
		CampaignID: campaignID,
		Title:      u.Title,
	})
	return u, nil
}
