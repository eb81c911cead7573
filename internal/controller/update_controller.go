package controller

import (
	"log/slog"
	"net/http"

	"github.com/unclebandit/vakinha-backend/internal/handler"
	"github.com/unclebandit/vakinha-backend/internal/service"
)

type UpdateController struct {
	UpdateService *service.UpdateService
	Logger        *slog.Logger
}

func (c *UpdateController) ListUpdates(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "id")
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	updates, err := c.UpdateService.ListUpdates(r.Context(), campaignID)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, updates)
}

func (c *UpdateController) PostUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	campaignID, err := pathID(r, "id")
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	var body service.CreateUpdateInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	update, err := c.UpdateService.PostUpdate(r.Context(), userID, campaignID, body)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, update)
}
