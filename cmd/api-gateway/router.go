package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/itinerary-planner-api/internal/handler"
	internalmiddleware "github.com/noah-isme/itinerary-planner-api/internal/middleware"
	"github.com/noah-isme/itinerary-planner-api/internal/models"
	"github.com/noah-isme/itinerary-planner-api/internal/service"
	"github.com/noah-isme/itinerary-planner-api/pkg/config"
	"github.com/noah-isme/itinerary-planner-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/itinerary-planner-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/itinerary-planner-api/pkg/middleware/requestid"
)

type routerDeps struct {
	tokens      *service.TokenService
	metrics     *service.MetricsService
	itineraries *handler.ItineraryHandler
	health      *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(deps.metrics))

	r.GET("/health", deps.health.Health)
	r.GET("/ready", deps.health.Ready)
	r.GET("/metrics", deps.health.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(internalmiddleware.JWT(deps.tokens), internalmiddleware.WithResponseMeta())

	itineraries := api.Group("/itineraries")
	itineraries.POST("/plan", deps.itineraries.Plan)
	itineraries.POST("", deps.itineraries.Save)
	itineraries.GET("", deps.itineraries.List)
	itineraries.GET("/:id", deps.itineraries.Get)
	itineraries.PUT("/:id", deps.itineraries.Update)
	itineraries.DELETE("/:id", deps.itineraries.Delete)
	itineraries.GET("/:id/export", deps.itineraries.Export)

	api.GET("/catalogs", deps.itineraries.Catalogs)
	api.POST("/catalogs/reload", internalmiddleware.RequireRoles(models.RoleAdmin), deps.itineraries.ReloadCatalogs)
	api.GET("/metrics/summary", internalmiddleware.RequireRoles(models.RoleAdmin), deps.health.Summary)

	return r
}
