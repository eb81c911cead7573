package repository

import (
	"context"
	"database/sql"
	"fmt"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(ctx context.Context, c *model.Campaign) error
	GetByID(ctx context.Context, id int64) (*model.Campaign, error)
	GetBySlug(ctx context.Context, slug string) (*model.Campaign, error)
	Update(ctx context.Context, c *model.Campaign) error
	Delete(ctx context.Context, id int64) error
	ListCampaigns(ctx context.Context, filter model.CampaignFilter, offset, limit int) ([]model.CampaignSummary, int, error)
	CountByStatus(ctx context.Context) (map[model.CampaignStatus]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

const campaignColumns = `id, user_id, slug, title, description, story, cover_image, goal_amount,
        is_urgent, is_featured, category_id, status, approval_status, source, created_at, end_date`

// ====================== Campaign CRUD ======================

// Create inserts c and fills its ID. CreatedAt is set by the caller so the
// end date default can be derived from the same instant.
func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	query := `
        INSERT INTO campaigns (user_id, slug, title, description, story, cover_image, goal_amount,
            is_urgent, is_featured, category_id, status, approval_status, source, created_at, end_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        RETURNING id
    `
	err := r.DB.QueryRowContext(
		ctx,
		query,
		c.UserID,
		c.Slug,
		c.Title,
		c.Description,
		c.Story,
		c.CoverImage,
		c.GoalAmount,
		c.IsUrgent,
		c.IsFeatured,
		c.CategoryID,
		c.Status,
		c.ApprovalStatus,
		c.Source,
		c.CreatedAt,
		c.EndDate,
	).Scan(&c.ID)
	return translate(err, "campaign")
}

// Update writes every mutable column of c. Slug, owner, source and creation
// time never change.
func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	query := `
        UPDATE campaigns
        SET title=$1, description=$2, story=$3, cover_image=$4, goal_amount=$5,
            is_urgent=$6, is_featured=$7, category_id=$8, status=$9, approval_status=$10, end_date=$11
        WHERE id=$12
    `
	res, err := r.DB.ExecContext(
		ctx,
		query,
		c.Title,
		c.Description,
		c.Story,
		c.CoverImage,
		c.GoalAmount,
		c.IsUrgent,
		c.IsFeatured,
		c.CategoryID,
		c.Status,
		c.ApprovalStatus,
		c.EndDate,
		c.ID,
	)
	if err != nil {
		return translate(err, "campaign")
	}
	return requireAffected(res, c.ID)
}

func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM campaigns WHERE id=$1`, id)
	if err != nil {
		return translate(err, "campaign")
	}
	return requireAffected(res, id)
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return appErrors.NewInternal(err)
	}
	if n == 0 {
		return appErrors.NewCampaignNotFound(id)
	}
	return nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE id=$1`
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepository) GetBySlug(ctx context.Context, slug string) (*model.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns WHERE slug=$1`
	c, err := scanCampaign(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if appErrors.IsNotFound(err) {
			return nil, appErrors.NewNotFound("campaign %q not found", slug)
		}
		return nil, err
	}
	return c, nil
}

func scanCampaign(row *sql.Row) (*model.Campaign, error) {
	var c model.Campaign
	err := row.Scan(
		&c.ID, &c.UserID, &c.Slug, &c.Title, &c.Description, &c.Story, &c.CoverImage, &c.GoalAmount,
		&c.IsUrgent, &c.IsFeatured, &c.CategoryID, &c.Status, &c.ApprovalStatus, &c.Source,
		&c.CreatedAt, &c.EndDate,
	)
	if err != nil {
		return nil, translate(err, "campaign")
	}
	return &c, nil
}

// ====================== Listing ======================

// campaignFilterClause appends the WHERE conditions for filter, numbering
// placeholders from argPos. It returns the clause, args and next position.
func campaignFilterClause(filter model.CampaignFilter, argPos int) (string, []any, int) {
	clause := ""
	args := []any{}

	if filter.CategoryID != nil {
		clause += fmt.Sprintf(" AND c.category_id=$%d", argPos)
		args = append(args, *filter.CategoryID)
		argPos++
	}
	if filter.UserID != nil {
		clause += fmt.Sprintf(" AND c.user_id=$%d", argPos)
		args = append(args, *filter.UserID)
		argPos++
	}
	if filter.Status != "" {
		clause += fmt.Sprintf(" AND c.status=$%d", argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.ApprovalStatus != "" {
		clause += fmt.Sprintf(" AND c.approval_status=$%d", argPos)
		args = append(args, filter.ApprovalStatus)
		argPos++
	}
	if filter.IsUrgent != nil {
		clause += fmt.Sprintf(" AND c.is_urgent=$%d", argPos)
		args = append(args, *filter.IsUrgent)
		argPos++
	}
	if filter.IsFeatured != nil {
		clause += fmt.Sprintf(" AND c.is_featured=$%d", argPos)
		args = append(args, *filter.IsFeatured)
		argPos++
	}
	if filter.Query != "" {
		clause += fmt.Sprintf(" AND c.title ILIKE $%d", argPos)
		args = append(args, "%"+filter.Query+"%")
		argPos++
	}
	return clause, args, argPos
}

// ListCampaigns returns one page of summaries, featured first then newest,
// with each campaign's donation total, plus the total match count.
// ProgressPercent is left for the caller to derive.
func (r *CampaignRepository) ListCampaigns(ctx context.Context, filter model.CampaignFilter, offset, limit int) ([]model.CampaignSummary, int, error) {
	where, args, argPos := campaignFilterClause(filter, 1)

	query := `
        SELECT c.id, c.slug, c.title, c.cover_image, c.goal_amount, COALESCE(d.total, 0),
            u.name, cat.title, c.is_urgent, c.is_featured, c.status
        FROM campaigns c
        JOIN users u ON u.id = c.user_id
        LEFT JOIN categories cat ON cat.id = c.category_id
        LEFT JOIN (
            SELECT campaign_id, SUM(amount) AS total FROM donations GROUP BY campaign_id
        ) d ON d.campaign_id = c.id
        WHERE 1=1` + where +
		fmt.Sprintf(" ORDER BY c.is_featured DESC, c.id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)

	rows, err := r.DB.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, translate(err, "campaign")
	}
	defer rows.Close()

	campaigns := []model.CampaignSummary{}
	for rows.Next() {
		var s model.CampaignSummary
		if err := rows.Scan(
			&s.ID, &s.Slug, &s.Title, &s.CoverImage, &s.GoalAmount, &s.CurrentAmount,
			&s.CreatorName, &s.CategoryTitle, &s.IsUrgent, &s.IsFeatured, &s.Status,
		); err != nil {
			return nil, 0, translate(err, "campaign")
		}
		campaigns = append(campaigns, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err, "campaign")
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM campaigns c WHERE 1=1` + where
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "campaign")
	}

	return campaigns, total, nil
}

// CountByStatus returns the number of campaigns per status.
func (r *CampaignRepository) CountByStatus(ctx context.Context) (map[model.CampaignStatus]int, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT status, COUNT(*) FROM campaigns GROUP BY status`)
	if err != nil {
		return nil, translate(err, "campaign")
	}
	defer rows.Close()

	counts := map[model.CampaignStatus]int{
		model.StatusPending:   0,
		model.StatusActive:    0,
		model.StatusCompleted: 0,
		model.StatusCancelled: 0,
	}
	for rows.Next() {
		var status model.CampaignStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, translate(err, "campaign")
		}
		counts[status] = count
	}
	return counts, translate(rows.Err(), "campaign")
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
