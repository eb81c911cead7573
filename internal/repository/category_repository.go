package repository

import (
	"context"
	"database/sql"

	"github.com/unclebandit/vakinha-backend/internal/model"
)

type CategoryRepositoryInterface interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
}

type CategoryRepository struct {
	DB *sql.DB
}

func (r *CategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT id, title, icon, description, created_at
        FROM categories
        ORDER BY title ASC
    `)
	if err != nil {
		return nil, translate(err, "category")
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Icon, &c.Description, &c.CreatedAt); err != nil {
			return nil, translate(err, "category")
		}
		categories = append(categories, c)
	}
	return categories, translate(rows.Err(), "category")
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx, `
        SELECT id, title, icon, description, created_at
        FROM categories WHERE id = $1
    `, id).Scan(&c.ID, &c.Title, &c.Icon, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, translate(err, "category")
	}
	return &c, nil
}

func (r *CategoryRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (title, icon, description)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.DB.QueryRowContext(ctx, query, c.Title, c.Icon, c.Description).Scan(&c.ID, &c.CreatedAt)
	return translate(err, "category")
}

var _ CategoryRepositoryInterface = (*CategoryRepository)(nil)
