// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/unclebandit/vakinha-backend/internal/auth"
	"github.com/unclebandit/vakinha-backend/internal/config"
	"github.com/unclebandit/vakinha-backend/internal/controller"
	"github.com/unclebandit/vakinha-backend/internal/db"
	"github.com/unclebandit/vakinha-backend/internal/handler"
	"github.com/unclebandit/vakinha-backend/internal/logger"
	"github.com/unclebandit/vakinha-backend/internal/metrics"
	"github.com/unclebandit/vakinha-backend/internal/queue"
	"github.com/unclebandit/vakinha-backend/internal/repository"
	"github.com/unclebandit/vakinha-backend/internal/service"
	"github.com/unclebandit/vakinha-backend/internal/validation"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load .env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	if envErr != nil {
		log.Info("no .env file found, relying on environment variables")
	}
	if cfg.UsesDevSecret() {
		log.Warn("SECRET_KEY not set, using the development secret")
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Init DB
	conn, err := db.Open(ctx, db.Options{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := db.Migrate(ctx, conn); err != nil {
		return err
	}

	q, closeQueue, err := newQueue(cfg, log)
	if err != nil {
		return err
	}
	defer closeQueue()

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return err
	}
	tokens, err := auth.NewJWTIssuer(auth.TokenConfig{
		Secret:    cfg.SecretKey,
		Algorithm: cfg.Algorithm,
		Lifetime:  cfg.TokenLifetime(),
	})
	if err != nil {
		return err
	}

	m := metrics.New()
	v := validation.New()

	userRepo := &repository.UserRepository{DB: conn}
	campaignRepo := &repository.CampaignRepository{DB: conn}
	categoryRepo := &repository.CategoryRepository{DB: conn}
	donationRepo := &repository.DonationRepository{DB: conn}
	updateRepo := &repository.UpdateRepository{DB: conn}

	authService := &service.AuthService{
		Users:     userRepo,
		Hasher:    hasher,
		Tokens:    tokens,
		Validator: v,
		Metrics:   m,
		Logger:    log,
	}
	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		CategoryRepo: categoryRepo,
		DonationRepo: donationRepo,
		UpdateRepo:   updateRepo,
		UserRepo:     userRepo,
		Queue:        q,
		Validator:    v,
		Metrics:      m,
		Logger:       log,
	}
	donationService := &service.DonationService{
		CampaignRepo: campaignRepo,
		DonationRepo: donationRepo,
		Queue:        q,
		Validator:    v,
		Metrics:      m,
		Logger:       log,
	}
	updateService := &service.UpdateService{
		CampaignRepo: campaignRepo,
		UpdateRepo:   updateRepo,
		Queue:        q,
		Validator:    v,
		Logger:       log,
	}
	categoryService := &service.CategoryService{
		CategoryRepo: categoryRepo,
		Validator:    v,
		Logger:       log,
	}

	httpLog := log.With("layer", "controller")
	router := &controller.Router{
		Auth:       &controller.AuthController{AuthService: authService, Logger: httpLog},
		Categories: &controller.CategoryController{CategoryService: categoryService, Logger: httpLog},
		Campaigns:  &controller.CampaignController{CampaignService: campaignService, Logger: httpLog},
		Donations:  &controller.DonationController{DonationService: donationService, Logger: httpLog},
		Updates:    &controller.UpdateController{UpdateService: updateService, Logger: httpLog},
		System: &handler.SystemHandler{
			DB:      conn,
			Stats:   campaignService,
			Version: cfg.AppVersion,
			Logger:  httpLog,
		},
		Tokens:         tokens,
		Metrics:        m,
		Logger:         log,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: requestTimeout,
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.HTTPAddr, "version", cfg.AppVersion)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newQueue publishes to AMQP when AMQP_URL is set, otherwise to an in-process
// queue whose only subscriber logs each event.
func newQueue(cfg config.Config, log *slog.Logger) (queue.Queue, func(), error) {
	if cfg.AMQPURL == "" {
		q := queue.NewInMemoryQueue()
		q.SubscribeAll(queue.LogSubscriber(log.With("component", "events")))
		return q, func() {}, nil
	}

	q, err := queue.DialAMQP(cfg.AMQPURL, cfg.EventsExchange)
	if err != nil {
		return nil, nil, err
	}
	log.Info("publishing events to amqp", "exchange", cfg.EventsExchange)
	return q, func() {
		if err := q.Close(); err != nil {
			log.Warn("close amqp", "error", err)
		}
	}, nil
}
