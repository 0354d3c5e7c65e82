package app

import (
	"employee-api/internal/config"
	"employee-api/internal/employee"
	"employee-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func registerModules(router *gin.Engine, infra *Infra, cfg *config.Config) {
	logger := zap.L()

	router.Use(middleware.RequestID())

	// --- Repositories ---
	employeeRepo := employee.NewRepository(infra.GormDB)

	// --- Services ---
	employeeService := employee.NewServiceWithPublisher(infra.DB, employeeRepo, infra.Publisher, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)

	// --- Routes Registration ---
	router.GET("/health", HealthHandler(infra.DB))

	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, employee.RouteOptions{
			Logger:     logger,
			WriteRPS:   rate.Limit(cfg.RateLimit.RPS),
			WriteBurst: cfg.RateLimit.Burst,
		})
	}
}
