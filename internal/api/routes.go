package api

import (
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Dependencies bundles what SetupRoutes wires into handlers.
type Dependencies struct {
	Logger          *zap.Logger
	Metrics         *metrics.Metrics
	Gatherer        prometheus.Gatherer
	UserService     service.UserService
	ExerciseService service.ExerciseService
	HealthChecks    map[string]HealthCheck
	AllowedOrigins  []string
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	userHandler := NewUserHandler(deps.UserService, deps.Logger)
	exerciseHandler := NewExerciseHandler(deps.ExerciseService, deps.Logger)
	healthHandler := NewHealthHandler(deps.HealthChecks)

	// Recovery sits inside the logger and metrics so panics are still
	// logged and counted as 500s.
	router.Use(
		RequestIDMiddleware(),
		LoggerMiddleware(deps.Logger),
		MetricsMiddleware(deps.Metrics),
		gin.Recovery(),
		CORSMiddleware(deps.AllowedOrigins),
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/healthz", healthHandler.Health)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	usersGroup := router.Group("/api/users")
	{
		// POST /api/users
		usersGroup.POST("", userHandler.CreateUser)
		// GET /api/users
		usersGroup.GET("", userHandler.ListUsers)

		// POST /api/users/{id}/exercises
		usersGroup.POST("/:id/exercises", exerciseHandler.LogExercise)
		// GET /api/users/{id}/logs
		usersGroup.GET("/:id/logs", exerciseHandler.GetLog)
	}
}
