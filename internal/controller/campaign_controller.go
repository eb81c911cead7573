// internal/controller/campaign_controller.go
package controller

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/vakinha-backend/internal/handler"
	"github.com/unclebandit/vakinha-backend/internal/model"
	"github.com/unclebandit/vakinha-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	Logger          *slog.Logger
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	var body service.CreateCampaignInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(r.Context(), userID, body)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	filter, page, limit, err := parseListQuery(r)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	// Fetch campaigns and pagination info from service
	campaigns, pagination, err := c.CampaignService.ListCampaigns(r.Context(), filter, page, limit)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, map[string]any{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func parseListQuery(r *http.Request) (model.CampaignFilter, int, int, error) {
	var filter model.CampaignFilter

	page, err := queryInt(r, "page", 1, 1, 0)
	if err != nil {
		return filter, 0, 0, err
	}
	limit, err := queryInt(r, "limit", 10, 1, 100)
	if err != nil {
		return filter, 0, 0, err
	}
	if filter.CategoryID, err = queryInt64Ptr(r, "category_id"); err != nil {
		return filter, 0, 0, err
	}
	if filter.UserID, err = queryInt64Ptr(r, "user_id"); err != nil {
		return filter, 0, 0, err
	}
	if filter.IsUrgent, err = queryBoolPtr(r, "is_urgent"); err != nil {
		return filter, 0, 0, err
	}
	if filter.IsFeatured, err = queryBoolPtr(r, "is_featured"); err != nil {
		return filter, 0, 0, err
	}

	q := r.URL.Query()
	filter.Status = model.CampaignStatus(q.Get("status"))
	filter.ApprovalStatus = model.ApprovalStatus(q.Get("approval_status"))
	filter.Query = strings.TrimSpace(q.Get("q"))
	return filter, page, limit, nil
}

func (c *CampaignController) GetCampaignDetails(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	details, err := c.CampaignService.GetCampaignDetails(r.Context(), id)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, details)
}

func (c *CampaignController) GetCampaignBySlug(w http.ResponseWriter, r *http.Request) {
	details, err := c.CampaignService.GetCampaignDetailsBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, details)
}

// UpdateCampaign applies a partial update. Unknown fields are rejected.
func (c *CampaignController) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	var body service.UpdateCampaignInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	campaign, err := c.CampaignService.UpdateCampaign(r.Context(), userID, id, body)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, campaign)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	if err := c.CampaignService.DeleteCampaign(r.Context(), userID, id); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
