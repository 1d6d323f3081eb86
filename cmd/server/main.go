package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/sdma/internal/config"
	"github.com/stwalsh4118/sdma/internal/database"
	"github.com/stwalsh4118/sdma/internal/handlers"
	"github.com/stwalsh4118/sdma/internal/logger"
	"github.com/stwalsh4118/sdma/internal/metrics"
	"github.com/stwalsh4118/sdma/internal/middleware"
	"github.com/stwalsh4118/sdma/internal/models"
	"github.com/stwalsh4118/sdma/internal/repository"
	"github.com/stwalsh4118/sdma/internal/services"
	"github.com/stwalsh4118/sdma/internal/taxonomy"
	"golang.org/x/crypto/bcrypt"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 30 * time.Second
)

// storage bundles the repositories chosen by STORAGE_DRIVER.
type storage struct {
	incidents   repository.IncidentRepository
	collections repository.CollectionStore
	db          *database.Database
}

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env, logger.WithLevel(cfg.Server.LogLevel), logger.WithService("sdma-api"))
	log.Info("Starting SDMA incident API", map[string]interface{}{
		"version":     version,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"storage":     cfg.Storage.Driver,
	})

	metrics.Register()
	if err := handlers.RegisterValidators(); err != nil {
		log.Fatal("Failed to register request validators", err, nil)
	}

	seed := taxonomy.DefaultSeed()
	ref := taxonomy.NewStore(seed)

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open storage", err, map[string]interface{}{
			"driver": cfg.Storage.Driver,
		})
	}
	if store.db != nil {
		defer store.db.Close()
	}

	if cfg.Storage.SeedIncidents {
		if err := seedIncidents(ctx, store.incidents, taxonomy.SampleIncidents(), log); err != nil {
			log.Fatal("Failed to seed sample incidents", err, nil)
		}
	}

	users, err := services.SeedPasswords(seed.Users, cfg.Auth.DemoPassword, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash demo passwords", err, nil)
	}
	userRepo := repository.NewMemoryUserRepository(users)
	categoryRepo := repository.NewCategoryRepository(store.collections, seed)

	// Initialize service layer
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	userService := services.NewUserService(userRepo, ref, log)
	incidentService := services.NewIncidentService(store.incidents, ref, cfg.Report.Years, log)
	reportService := services.NewReportService(store.incidents, ref, cfg.Report.Years, cfg.Report.DefaultYear, log)
	categoryService := services.NewCategoryService(categoryRepo, log)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS -> Metrics
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))
	router.Use(middleware.Metrics())

	// Register health check and metrics routes
	var pinger handlers.Pinger
	if store.db != nil {
		pinger = store.db
	}
	healthHandler := handlers.NewHealthHandler(pinger, cfg.Server.Env, cfg.Storage.Driver)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Register API v1 routes
	handlers.RegisterRoutes(router.Group("/api/v1"), handlers.Handlers{
		Auth:       handlers.NewAuthHandler(authService),
		Users:      handlers.NewUserHandler(userService),
		Reference:  handlers.NewReferenceHandler(ref, cfg.Report.Years, cfg.Report.DefaultYear),
		Reports:    handlers.NewReportHandler(reportService),
		Incidents:  handlers.NewIncidentHandler(incidentService),
		Categories: handlers.NewCategoryHandler(categoryService),
	}, authService)

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage, error) {
	if cfg.Storage.Driver == config.StoragePostgres {
		db, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return storage{}, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return storage{}, err
		}

		log.Info("Database connection established", map[string]interface{}{
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"database": cfg.Database.Name,
			"pool_min": cfg.Database.PoolMin,
			"pool_max": cfg.Database.PoolMax,
		})

		return storage{
			incidents:   repository.NewPostgresIncidentRepository(db),
			collections: repository.NewPostgresCollectionStore(db),
			db:          db,
		}, nil
	}

	collections := repository.NewMemoryCollectionStore()
	if cfg.Storage.DataDir != "" {
		fileStore, err := repository.NewFileCollectionStore(cfg.Storage.DataDir)
		if err != nil {
			return storage{}, err
		}
		collections = fileStore
		log.Info("Category collections persisted to disk", map[string]interface{}{
			"data_dir": cfg.Storage.DataDir,
		})
	}

	return storage{
		incidents:   repository.NewMemoryIncidentRepository(nil),
		collections: collections,
	}, nil
}

// seedIncidents loads the sample incidents into an empty repository.
func seedIncidents(ctx context.Context, repo repository.IncidentRepository, sample []models.Incident, log *logger.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, inc := range sample {
		inc.ID = 0
		if _, err := repo.Create(ctx, inc); err != nil {
			return err
		}
	}

	log.Info("Seeded sample incidents", map[string]interface{}{
		"count": len(sample),
	})
	return nil
}
