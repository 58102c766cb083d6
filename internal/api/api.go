package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/wms-engine/internal/api/handlers"
	"github.com/andresuchdata/wms-engine/internal/api/middleware"
	"github.com/andresuchdata/wms-engine/internal/config"
	"github.com/andresuchdata/wms-engine/internal/engine"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(eng *engine.Engine, cfg config.ServerConfig) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(cfg.AllowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	inventory := handlers.NewInventoryHandler(eng)
	{
		apiGroup.GET("/products", inventory.ListProducts)
		apiGroup.POST("/products", inventory.UpsertProduct)
		apiGroup.GET("/products/:id", inventory.GetProduct)
		apiGroup.GET("/locations", inventory.ListLocations)
		apiGroup.GET("/inventory", inventory.ListInventory)

		movements := apiGroup.Group("/movements")
		movements.POST("", inventory.RecordMovement)
		movements.GET("", inventory.ListMovements)
		movements.GET("/verify", inventory.VerifyLedger)
		movements.POST("/export", inventory.ExportLedger)
	}

	planning := handlers.NewPlanningHandler(eng)
	{
		apiGroup.POST("/slotting/recommend", planning.RecommendSlot)
		apiGroup.POST("/routes/pick", planning.PlanPickRoute)
		apiGroup.GET("/locations/:id/travel-time", planning.TravelTime)
	}

	forecasts := handlers.NewForecastHandler(eng)
	{
		apiGroup.GET("/forecast", forecasts.ListForecasts)
		apiGroup.GET("/forecast/:productId", forecasts.GetForecast)
		apiGroup.GET("/replenishment/:productId", forecasts.GetReplenishment)
	}

	sourcing := handlers.NewSourcingHandler(eng)
	{
		apiGroup.GET("/suppliers", sourcing.ListSuppliers)
		apiGroup.POST("/suppliers", sourcing.AddSupplier)
		apiGroup.POST("/suppliers/recommend", sourcing.RecommendSupplier)
		apiGroup.POST("/accounting/reconcile", sourcing.Reconcile)
		apiGroup.POST("/packaging/recommend", sourcing.RecommendPackaging)
	}

	operations := handlers.NewOperationsHandler(eng)
	{
		apiGroup.GET("/returns", operations.ListReturns)
		apiGroup.POST("/returns", operations.RegisterReturn)
		apiGroup.PATCH("/returns/:id", operations.UpdateReturn)

		apiGroup.GET("/locations/:id/sensors", operations.GetSensors)
		sensorIngest := []gin.HandlerFunc{}
		if cfg.SensorRatePerSecond > 0 {
			limiter := middleware.NewRateLimiter(cfg.SensorRatePerSecond, cfg.SensorBurst)
			sensorIngest = append(sensorIngest, limiter.Middleware())
		}
		sensorIngest = append(sensorIngest, operations.RecordSensor)
		apiGroup.POST("/locations/:id/sensors", sensorIngest...)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
