package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gocomet/ride-records/internal/api/handlers"
	"github.com/gocomet/ride-records/internal/api/middleware"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes configures all API routes. createLimit guards ride creation
// and may be nil.
func SetupRoutes(r *gin.Engine, h *handlers.Handlers, nrApp *newrelic.Application, createLimit gin.HandlerFunc) {
	// Add New Relic middleware if enabled
	if nrApp != nil {
		r.Use(nrgin.Middleware(nrApp))
	}

	// Recovery sits innermost so a recovered 500 is still logged and counted
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(h.Logger),
		middleware.Metrics(),
		middleware.Recovery(h.Logger),
	)

	// Health and operations
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Live feed of created rides
	r.GET("/ws/rides", h.RideFeed)

	rides := r.Group("/rides")
	{
		create := []gin.HandlerFunc{h.CreateRide}
		if createLimit != nil {
			create = append([]gin.HandlerFunc{createLimit}, create...)
		}
		rides.POST("", create...)
		rides.GET("", h.ListRides)
		rides.GET("/:id", h.GetRide)
	}
}
