package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/model"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		conn.Close()
	})
	return conn, mock
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    appErrors.Kind
		message string
	}{
		{"nil", nil, "", ""},
		{"no rows", sql.ErrNoRows, appErrors.KindNotFound, "thing not found"},
		{"duplicate email", &pq.Error{Code: "23505", Constraint: "users_email_key"}, appErrors.KindConflict, "email already registered"},
		{"duplicate slug", &pq.Error{Code: "23505", Constraint: "campaigns_slug_key"}, appErrors.KindConflict, "slug already in use"},
		{"duplicate other", &pq.Error{Code: "23505", Constraint: "x_key"}, appErrors.KindConflict, "thing already exists"},
		{"missing category", &pq.Error{Code: "23503", Constraint: "campaigns_category_id_fkey"}, appErrors.KindNotFound, "category not found"},
		{"check", &pq.Error{Code: "23514"}, appErrors.KindInvalidInput, "invalid thing"},
		{"other pq", &pq.Error{Code: "40001"}, appErrors.KindInternal, "internal server error"},
		{"foreign", errors.New("connection reset"), appErrors.KindInternal, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate(tt.err, "thing")
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.kind, appErrors.KindOf(err))
			assert.Equal(t, tt.message, appErrors.MessageOf(err))
		})
	}
}

func TestUserRepositoryCreate(t *testing.T) {
	conn, mock := newMock(t)
	repo := &UserRepository{DB: conn}
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("ana@example.com", "Ana", "hash", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), created))

	u := &model.User{Email: "ana@example.com", Name: "Ana", PasswordHash: "hash", IsActive: true}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, created, u.CreatedAt)
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	conn, mock := newMock(t)
	repo := &UserRepository{DB: conn}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := repo.Create(context.Background(), &model.User{Email: "ana@example.com"})
	assert.True(t, appErrors.IsConflict(err), "got %v", err)
}

func TestUserRepositoryGetByEmailNotFound(t *testing.T) {
	conn, mock := newMock(t)
	repo := &UserRepository{DB: conn}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password", "is_active", "created_at"}))

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.True(t, appErrors.IsNotFound(err), "got %v", err)
}

func TestDonationRepositorySumAmounts(t *testing.T) {
	conn, mock := newMock(t)
	repo := &DonationRepository{DB: conn}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM donations")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("50.00"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount), 0) FROM donations")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("0"))

	total, err := repo.SumAmounts(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(50)), "got %s", total)

	total, err = repo.SumAmounts(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "got %s", total)
}

func TestDonationRepositoryListByCampaign(t *testing.T) {
	conn, mock := newMock(t)
	repo := &DonationRepository{DB: conn}
	now := time.Now()

	rows := sqlmock.NewRows([]string{"id", "campaign_id", "amount", "donor_name", "donor_email", "is_anonymous", "message", "created_at"}).
		AddRow(int64(2), int64(1), "20.00", "Bia", nil, true, nil, now).
		AddRow(int64(1), int64(1), "30.00", "Ana", "ana@example.com", false, "go!", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("FROM donations")).WithArgs(int64(1)).WillReturnRows(rows)

	got, err := repo.ListByCampaign(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].DonorEmail)
	require.NotNil(t, got[1].DonorEmail)
	assert.Equal(t, "ana@example.com", *got[1].DonorEmail)
	assert.True(t, got[1].Amount.Equal(decimal.NewFromInt(30)))
}

func TestCampaignRepositoryCreateDuplicateSlug(t *testing.T) {
	conn, mock := newMock(t)
	repo := &CampaignRepository{DB: conn}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO campaigns")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "campaigns_slug_key"})

	err := repo.Create(context.Background(), &model.Campaign{Slug: "taken", GoalAmount: decimal.NewFromInt(100)})
	assert.True(t, appErrors.IsConflict(err), "got %v", err)
	assert.Equal(t, "slug already in use", appErrors.MessageOf(err))
}

func TestCampaignRepositoryGetByIDNotFound(t *testing.T) {
	conn, mock := newMock(t)
	repo := &CampaignRepository{DB: conn}

	mock.ExpectQuery(regexp.QuoteMeta("FROM campaigns WHERE id=$1")).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.True(t, appErrors.IsNotFound(err))
	assert.Equal(t, "campaign with ID 9 not found", appErrors.MessageOf(err))
}

func TestCampaignRepositoryUpdateMissingRow(t *testing.T) {
	conn, mock := newMock(t)
	repo := &CampaignRepository{DB: conn}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE campaigns")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &model.Campaign{ID: 3})
	assert.True(t, appErrors.IsNotFound(err), "got %v", err)
}

func TestCampaignRepositoryDelete(t *testing.T) {
	conn, mock := newMock(t)
	repo := &CampaignRepository{DB: conn}

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM campaigns WHERE id=$1")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 3))
}

func TestCampaignRepositoryListCampaignsFilters(t *testing.T) {
	conn, mock := newMock(t)
	repo := &CampaignRepository{DB: conn}

	categoryID := int64(4)
	featured := true
	filter := model.CampaignFilter{CategoryID: &categoryID, Status: model.StatusActive, IsFeatured: &featured, Query: "casa"}

	rows := sqlmock.NewRows([]string{"id", "slug", "title", "cover_image", "goal_amount", "current", "name", "cat", "is_urgent", "is_featured", "status"}).
		AddRow(int64(5), "casa-nova", "Casa nova para Ana", nil, "100.00", "50.00", "Ana", "Housing", false, true, "active")
	mock.ExpectQuery(regexp.QuoteMeta("AND c.category_id=$1 AND c.status=$2 AND c.is_featured=$3 AND c.title ILIKE $4 ORDER BY c.is_featured DESC, c.id DESC LIMIT $5 OFFSET $6")).
		WithArgs(int64(4), "active", true, "%casa%", 10, 20).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM campaigns c WHERE 1=1 AND c.category_id=$1")).
		WithArgs(int64(4), "active", true, "%casa%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	got, total, err := repo.ListCampaigns(context.Background(), filter, 20, 10)
	require.NoError(t, err)
	assert.Equal(t, 21, total)
	require.Len(t, got, 1)
	assert.Equal(t, "Housing", *got[0].CategoryTitle)
	assert.True(t, got[0].CurrentAmount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, model.StatusActive, got[0].Status)
}

func TestCampaignRepositoryCountByStatus(t *testing.T) {
	conn, mock := newMock(t)
	repo := &CampaignRepository{DB: conn}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) FROM campaigns GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("active", 3).AddRow("pending", 2))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, counts[model.StatusActive])
	assert.Equal(t, 2, counts[model.StatusPending])
	assert.Equal(t, 0, counts[model.StatusCancelled])
}
