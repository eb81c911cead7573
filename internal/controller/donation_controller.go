package controller

import (
	"log/slog"
	"net/http"

	"github.com/unclebandit/vakinha-backend/internal/handler"
	"github.com/unclebandit/vakinha-backend/internal/service"
)

type DonationController struct {
	DonationService *service.DonationService
	Logger          *slog.Logger
}

func (c *DonationController) ListDonations(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "id")
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	donations, err := c.DonationService.ListDonations(r.Context(), campaignID)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, donations)
}

// Donate needs no token: anyone may donate.
func (c *DonationController) Donate(w http.ResponseWriter, r *http.Request) {
	campaignID, err := pathID(r, "id")
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	var body service.CreateDonationInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	donation, err := c.DonationService.Donate(r.Context(), campaignID, body)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}
	handler.RespondJSON(w, http.StatusCreated, donation)
}
