package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/unclebandit/vakinha-backend/internal/handler"
	"github.com/unclebandit/vakinha-backend/internal/service"
)

type AuthController struct {
	AuthService *service.AuthService
	Logger      *slog.Logger
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body service.RegisterInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	user, err := c.AuthService.Register(r.Context(), body)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body service.LoginInput
	if err := handler.DecodeJSON(w, r, &body); err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	token, err := c.AuthService.Login(r.Context(), body)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, token)
}

// Me returns the authenticated user.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUser(r)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	user, err := c.AuthService.Me(r.Context(), userID)
	if err != nil {
		handler.RespondError(w, c.Logger, err)
		return
	}

	handler.RespondJSON(w, http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	})
}
