package controller

import (
	"log/slog"
	"net/http"

	"github.com/unclebandit/vakinha-backend/internal/handler"
	"github.com/unclebandit/vakinha-backend/internal/service"
)

type CategoryController struct {
	CategoryService *service.CategoryService
	Logger          *slog.Logger
}

func (c *CategoryController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.CategoryService.ListCategories(r.Context())
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, categories)
}

func (c *CategoryController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body service.CreateCategoryInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	category, err := c.CategoryService.CreateCategory(r.Context(), body)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, category)
}
