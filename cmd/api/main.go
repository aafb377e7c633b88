package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/skylist/skylist-api/internal/config"
	"github.com/skylist/skylist-api/internal/domain/admin"
	"github.com/skylist/skylist-api/internal/domain/aircraft"
	"github.com/skylist/skylist-api/internal/domain/assist"
	"github.com/skylist/skylist-api/internal/domain/blog"
	"github.com/skylist/skylist-api/internal/domain/inquiry"
	"github.com/skylist/skylist-api/internal/domain/photo"
	"github.com/skylist/skylist-api/internal/domain/wizard"
	"github.com/skylist/skylist-api/internal/middleware"
	"github.com/skylist/skylist-api/internal/pkg/ai"
	"github.com/skylist/skylist-api/internal/pkg/database"
	"github.com/skylist/skylist-api/internal/pkg/imaging"
	"github.com/skylist/skylist-api/internal/pkg/jwt"
	"github.com/skylist/skylist-api/internal/pkg/logger"
	"github.com/skylist/skylist-api/internal/pkg/response"
	"github.com/skylist/skylist-api/internal/pkg/storage"
)

const wizardSessionTTL = 2 * time.Hour

func main() {
	cfg := config.Load()

	logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
	})

	log.Info().Str("env", cfg.Env).Msg("Starting SkyList API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.ClosePostgres(db)

	if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, listing cache disabled")
		redisClient = nil
	}
	defer database.CloseRedis(redisClient)

	store, err := buildStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize storage")
	}

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL)
	authMiddleware := middleware.Auth(jwtService)

	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIToken, time.Duration(cfg.AITimeoutSeconds)*time.Second)

	thumbs := imaging.NewProcessor(imaging.DefaultConfig())

	// Photos
	photoRepo := photo.NewRepository(db)
	photoManager := photo.NewManager(photoRepo, store, thumbs)
	photoHandler := photo.NewHandler(photoManager)

	// Listings
	aircraftRepo := aircraft.NewRepository(db)
	listingCache := aircraft.NewCache(redisClient, cfg.ListingCacheTTL)
	aircraftService := aircraft.NewService(aircraftRepo, photoManager, listingCache)
	aircraftHandler := aircraft.NewHandler(aircraftService, photoManager)

	// Wizard sessions feed the same create-with-photos path as direct creates
	wizardStore := wizard.NewStore(wizardSessionTTL)
	submit := func(ctx context.Context, draft wizard.Draft, publishNow bool, files []photo.CandidateFile) (*wizard.SubmitResult, error) {
		status := aircraft.StatusDraft
		if publishNow {
			status = aircraft.StatusActive
		}
		a, result, err := aircraftService.CreateWithPhotos(ctx, aircraft.CreateRequest{
			Make:            draft.Make,
			Model:           draft.Model,
			Year:            draft.Year,
			Registration:    draft.Registration,
			Category:        draft.Category,
			PriceCents:      draft.PriceCents,
			Currency:        draft.Currency,
			TotalTimeHours:  draft.TotalTimeHours,
			EngineTimeHours: draft.EngineTimeHours,
			LocationCity:    draft.LocationCity,
			LocationCountry: draft.LocationCountry,
			Description:     draft.Description,
			Status:          status,
		}, files)
		if err != nil {
			return nil, err
		}
		return &wizard.SubmitResult{ListingID: a.ID, Status: a.Status, Photos: result}, nil
	}
	wizardHandler := wizard.NewHandler(wizardStore, submit, photoManager)

	// Blog
	blogRepo := blog.NewRepository(db)
	blogService := blog.NewService(blogRepo)
	blogHandler := blog.NewHandler(blogService)

	// Inquiries
	inquiryRepo := inquiry.NewRepository(db)
	inquiryService := inquiry.NewService(inquiryRepo, aircraftService)
	inquiryHandler := inquiry.NewHandler(inquiryService)

	// Back office
	adminRepo := admin.NewRepository(db)
	adminService := admin.NewService(adminRepo, jwtService)
	adminHandler := admin.NewHandler(adminService)
	assistHandler := assist.NewHandler(aiClient)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.OK(w, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		aircraftRoutes := aircraftHandler.Routes(authMiddleware, photoHandler.Routes(authMiddleware))
		aircraftRoutes.Post("/{id}/inquiries", inquiryHandler.Create)
		r.Mount("/aircraft", aircraftRoutes)

		r.Mount("/wizard", wizardHandler.Routes(authMiddleware))
		r.Mount("/blog", blogHandler.Routes(authMiddleware))
		r.Mount("/inquiries", inquiryHandler.AdminRoutes(authMiddleware))
		r.Mount("/admin", adminHandler.Routes(authMiddleware))
		r.Mount("/assist", assistHandler.Routes(authMiddleware))
	})

	// Local storage serves blobs directly; S3 serves from its own URL
	if cfg.StorageBackend == "local" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.LocalStorage)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func buildStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Storage(storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			PublicURL: cfg.S3PublicURL,
		})
	}
	return storage.NewLocalStorage(cfg.LocalStorage, cfg.LocalBaseURL)
}
