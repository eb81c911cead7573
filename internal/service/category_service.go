package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/repository"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

type CreateCategoryInput struct {
	Title       string  `json:"title" validate:"required,min=2,max=100"`
	Icon        string  `json:"icon" validate:"required,min=1,max=100"`
	Description *string `json:"description"`
}

type CategoryService struct {
	CategoryRepo repository.CategoryRepositoryInterface
	Validator    *validation.Validator
	Logger       *slog.Logger
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.CategoryRepo.List(ctx)
}

// CreateCategory stores a category. A duplicate title is a Conflict.
func (s *CategoryService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*model.Category, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Icon = strings.TrimSpace(in.Icon)
	if err := validate(s.Validator, in); err != nil {
		return nil, err
	}

	c := &model.Category{Title: in.Title, Icon: in.Icon, Description: in.Description}
	if err := s.CategoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	loggerOr(s.Logger, "category").Info("category created", "category_id", c.ID, "title", c.Title)
	return c, nil
}
