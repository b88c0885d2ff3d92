package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/noah-isme/itinerary-planner-api/api/swagger"
	"github.com/noah-isme/itinerary-planner-api/internal/catalog"
	"github.com/noah-isme/itinerary-planner-api/internal/handler"
	"github.com/noah-isme/itinerary-planner-api/internal/repository"
	"github.com/noah-isme/itinerary-planner-api/internal/scheduler"
	"github.com/noah-isme/itinerary-planner-api/internal/service"
	"github.com/noah-isme/itinerary-planner-api/pkg/cache"
	"github.com/noah-isme/itinerary-planner-api/pkg/config"
	"github.com/noah-isme/itinerary-planner-api/pkg/database"
	"github.com/noah-isme/itinerary-planner-api/pkg/logger"
)

// @title Itinerary Planner API
// @version 0.1.0
// @description Plans day-by-day travel itineraries with a backtracking constraint solver
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{}

	catalogs := catalog.NewLoader(cfg.Catalog.Dir, logr.Named("catalog"))
	if _, err := catalogs.LoadFromDir(); err != nil {
		logr.Fatal("failed to load catalogs", zap.String("dir", cfg.Catalog.Dir), zap.Error(err))
	}

	var db *sqlx.DB
	if cfg.Persistence.Enabled {
		db, err = database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			logr.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer db.Close()
		checks["postgres"] = db
	} else {
		logr.Info("itinerary persistence disabled")
	}

	planCache := service.NewCacheService(nil, metrics, cfg.PlanCache.TTL, logr, false)
	if cfg.PlanCache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, plan cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(client, logr)
			defer cacheRepo.Close() //nolint:errcheck
			planCache = service.NewCacheService(cacheRepo, metrics, cfg.PlanCache.TTL, logr, true)
			checks["redis"] = handler.PingFunc(cacheRepo.Ping)
		}
	}

	planner := newPlannerService(cfg, db, catalogs, planCache, metrics, logr)
	tokens := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Expiry: cfg.JWT.Expiration})

	router := newRouter(cfg, logr, routerDeps{
		tokens:      tokens,
		metrics:     metrics,
		itineraries: handler.NewItineraryHandler(planner),
		health:      handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "catalogs", len(catalogs.List()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newPlannerService(cfg *config.Config, db *sqlx.DB, catalogs *catalog.Loader, planCache *service.CacheService, metrics *service.MetricsService, logr *zap.Logger) *service.ItineraryPlannerService {
	plannerCfg := service.PlannerConfig{
		Defaults: scheduler.Options{
			MaxPerDay:     cfg.Planner.MaxPerDay,
			FoodAfterSlot: cfg.Planner.FoodAfterSlot,
			MaxNodes:      cfg.Planner.MaxNodes,
		},
		SearchTimeout: cfg.Planner.SearchTimeout,
		ProposalTTL:   cfg.Planner.ProposalTTL,
		MaxActivities: cfg.Planner.MaxActivities,
		CacheTTL:      cfg.PlanCache.TTL,
	}
	exporter := service.NewExportService(logr, nil, nil)
	validate := validator.New()
	plannerLogger := logr.Named("planner")

	if db == nil {
		return service.NewItineraryPlannerService(nil, nil, catalogs, planCache, exporter, nil, metrics, validate, plannerLogger, plannerCfg)
	}
	return service.NewItineraryPlannerService(
		repository.NewItineraryRepository(db),
		repository.NewItinerarySlotRepository(db),
		catalogs,
		planCache,
		exporter,
		db,
		metrics,
		validate,
		plannerLogger,
		plannerCfg,
	)
}
