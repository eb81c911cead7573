package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/vakinha-backend/internal/model"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, email, name, password, is_active, created_at`

// Create inserts u and fills its ID and CreatedAt. A duplicate email is a Conflict.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (email, name, password, is_active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `
	err := r.DB.QueryRowContext(ctx, query, u.Email, u.Name, u.PasswordHash, u.IsActive).Scan(&u.ID, &u.CreatedAt)
	return translate(err, "user")
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.DB.QueryRowContext(ctx, query, email))
}

func scanUser(row *sql.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.IsActive, &u.CreatedAt); err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
