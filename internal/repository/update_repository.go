package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/vakinha-backend/internal/model"
)

type UpdateRepositoryInterface interface {
	Create(ctx context.Context, u *model.Update) error
	ListByCampaign(ctx context.Context, campaignID int64) ([]model.Update, error)
}

type UpdateRepository struct {
	DB *sql.DB
}

func (r *UpdateRepository) Create(ctx context.Context, u *model.Update) error {
	query := `
        INSERT INTO updates (campaign_id, title, contents)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.DB.QueryRowContext(ctx, query, u.CampaignID, u.Title, u.Contents).Scan(&u.ID, &u.CreatedAt)
	return translate(err, "update")
}

// ListByCampaign returns the campaign's updates, newest first.
func (r *UpdateRepository) ListByCampaign(ctx context.Context, campaignID int64) ([]model.Update, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, campaign_id, title, contents, created_at
        FROM updates
        WHERE campaign_id = $1
        ORDER BY created_at DESC, id DESC
    `, campaignID)
	if err != nil {
		return nil, translate(err, "update")
	}
	defer rows.Close()

	updates := []model.Update{}
	for rows.Next() {
		var u model.Update
		if err := rows.Scan(&u.ID, &u.CampaignID, &u.Title, &u.Contents, &u.CreatedAt); err != nil {
			return nil, translate(err, "update")
		}
		updates = append(updates, u)
	}
	return updates, translate(rows.Err(), "update")
}

var _ UpdateRepositoryInterface = (*UpdateRepository)(nil)
