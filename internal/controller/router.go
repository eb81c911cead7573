package controller

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/unclebandit/vakinha-backend/internal/auth"
	appErrors "github.com/unclebandit/vakinha-backend/internal/errors"
	"github.com/unclebandit/vakinha-backend/internal/handler"
	"github.com/unclebandit/vakinha-backend/internal/metrics"
	"github.com/unclebandit/vakinha-backend/internal/middleware"
)

// Router wires every controller onto one chi router.
type Router struct {
	Auth       *AuthController
	Categories *CategoryController
	Campaigns  *CampaignController
	Donations  *DonationController
	Updates    *UpdateController
	System     *handler.SystemHandler

	Tokens         auth.TokenService
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if rt.Logger != nil {
		r.Use(middleware.RequestLogger(rt.Logger))
	}
	r.Use(chimw.Recoverer)
	if rt.Metrics != nil {
		r.Use(middleware.Metrics(rt.Metrics))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if rt.RequestTimeout > 0 {
		r.Use(chimw.Timeout(rt.RequestTimeout))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondError(w, nil, appErrors.NewNotFound("route %s not found", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondJSON(w, http.StatusMethodNotAllowed, handler.ErrorResponse{
			Error:   "method_not_allowed",
			Message: r.Method + " is not allowed on " + r.URL.Path,
		})
	})

	requireAuth := middleware.Authenticate(rt.Tokens)

	r.Get("/", rt.System.Root)
	r.Get("/health", rt.System.Health)
	r.Get("/test-db", rt.System.TestDB)
	r.Get("/stats", rt.System.GetStats)
	if rt.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.Metrics.Handler())
	}

	r.Post("/auth/register", rt.Auth.Register)
	r.Post("/auth/login", rt.Auth.Login)
	r.With(requireAuth).Get("/users/me", rt.Auth.Me)

	r.Get("/categories", rt.Categories.ListCategories)
	r.Post("/categories", rt.Categories.CreateCategory)

	r.Route("/campaigns", func(r chi.Router) {
		r.Get("/", rt.Campaigns.ListCampaigns)
		r.With(requireAuth).Post("/", rt.Campaigns.CreateCampaign)
		r.Get("/slug/{slug}", rt.Campaigns.GetCampaignBySlug)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rt.Campaigns.GetCampaignDetails)
			r.With(requireAuth).Patch("/", rt.Campaigns.UpdateCampaign)
			r.With(requireAuth).Delete("/", rt.Campaigns.DeleteCampaign)

			r.Get("/donations", rt.Donations.ListDonations)
			r.Post("/donations", rt.Donations.Donate)

			r.Get("/updates", rt.Updates.ListUpdates)
			r.With(requireAuth).Post("/updates", rt.Updates.PostUpdate)
		})
	})

	return r
}
