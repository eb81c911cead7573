package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/unclebandit/vakinha-backend/internal/model"
)

type DonationRepositoryInterface interface {
	Create(ctx context.Context, d *model.Donation) error
	ListByCampaign(ctx context.Context, campaignID int64) ([]model.Donation, error)
	SumAmounts(ctx context.Context, campaignID int64) (decimal.Decimal, error)
	CountByCampaign(ctx context.Context, campaignID int64) (int, error)
}

type DonationRepository struct {
	DB *sql.DB
}

// Create inserts d and fills its ID and CreatedAt.
func (r *DonationRepository) Create(ctx context.Context, d *model.Donation) error {
	query := `
        INSERT INTO donations (campaign_id, amount, donor_name, donor_email, is_anonymous, message)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.DB.QueryRowContext(
		ctx,
		query,
		d.CampaignID,
		d.Amount,
		d.DonorName,
		d.DonorEmail,
		d.IsAnonymous,
		d.Message,
	).Scan(&d.ID, &d.CreatedAt)
	return translate(err, "donation")
}

// ListByCampaign returns the campaign's donations, newest first.
func (r *DonationRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]model.Donation, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, campaign_id, amount, donor_name, donor_email, is_anonymous, message, created_at
        FROM donations
        WHERE campaign_id = $1
        ORDER BY created_at DESC, id DESC
    `, campaignID)
	if err != nil {
		return nil, translate(err, "donation")
	}
	defer rows.Close()

	donations := []model.Donation{}
	for rows.Next() {
		var d model.Donation
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &d.Amount, &d.DonorName,
			&d.DonorEmail, &d.IsAnonymous, &d.Message, &d.CreatedAt,
		); err != nil {
			return nil, translate(err, "donation")
		}
		donations = append(donations, d)
	}
	return donations, translate(rows.Err(), "donation")
}

// SumAmounts is the campaign's current amount: zero when it has no donations.
func (r *DonationRepository) SumAmounts(ctx context.Context, campaignID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM donations WHERE campaign_id = $1`, campaignID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, translate(err, "donation")
	}
	return total, nil
}

func (r *DonationRepository) CountByCampaign(ctx context.Context, campaignID int64) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM donations WHERE campaign_id = $1`, campaignID,
	).Scan(&count)
	return count, translate(err, "donation")
}

var _ DonationRepositoryInterface = (*DonationRepository)(nil)
