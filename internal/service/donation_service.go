package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/metrics"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/queue"
	"github.com/unclebandit/vakinha-backend/internal/repository"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

var maxDonation = decimal.NewFromInt(50_000)

type CreateDonationInput struct {
	Amount      decimal.Decimal `json:"amount"`
	DonorName   string          `json:"donor_name" validate:"required,min=2,max=255"`
	DonorEmail  *string         `json:"donor_email" validate:"omitempty,email"`
	IsAnonymous bool            `json:"is_anonymous"`
	Message     *string         `json:"message" validate:"omitempty,max=500"`
}

type DonationService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	DonationRepo repository.DonationRepositoryInterface
	Queue        queue.Queue
	Validator    *validation.Validator
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
}

func (s *DonationService) log() *slog.Logger { return loggerOr(s.Logger, "donation") }

// ListDonations returns a campaign's donations, newest first, with anonymous
// donors hidden.
func (s *DonationService) ListDonations(ctx context.Context, campaignID int64) ([]model.Donation, error) {
	if _, err := s.CampaignRepo.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	donations, err := s.DonationRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	for i := range donations {
		donations[i] = donations[i].Public()
	}
	return donations, nil
}

// Donate records a donation. Completed and cancelled campaigns accept none.
func (s *DonationService) Donate(ctx context.Context, campaignID int64, in CreateDonationInput) (*model.Donation, error) {
	in.DonorName = strings.TrimSpace(in.DonorName)
	if err := validate(s.Validator, in); err != nil {
		return nil, err
	}
	if err := checkAmount("amount", in.Amount, decimal.Zero, maxDonation); err != nil {
		return nil, err
	}

	c, err := s.CampaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if !c.AcceptsDonations() {
		s.log().Warn("donation rejected", "campaign_id", campaignID, "status", c.Status)
		return nil, appErrors.NewInvalidInput("campaign %d is %s and no longer accepts donations", campaignID, c.Status)
	}

	d := &model.Donation{
		CampaignID:  campaignID,
		Amount:      in.Amount,
		DonorName:   in.DonorName,
		DonorEmail:  in.DonorEmail,
		IsAnonymous: in.IsAnonymous,
		Message:     in.Message,
	}
	if err := s.DonationRepo.Create(ctx, d); err != nil {
		return nil, err
	}

	amount, _ := d.Amount.Float64()
	s.Metrics.ObserveDonation(amount)
	s.log().Info("donation received", "donation_id", d.ID, "campaign_id", campaignID, "amount", d.Amount.StringFixed(2))
	publish(s.Queue, s.log(), queue.TopicDonationCreated, queue.DonationEvent{
		DonationID: d.ID,
		CampaignID: campaignID,
		Amount:     d.Amount.StringFixed(2),
	})
	return d, nil
}
