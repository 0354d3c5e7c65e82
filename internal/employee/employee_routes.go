package employee

import (
	"employee-api/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RouteOptions struct {
	Logger     *zap.Logger
	WriteRPS   rate.Limit
	WriteBurst int
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, opts RouteOptions) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}

	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("/all", handler.GetAll)
		employees.GET("/search", handler.Search)
		employees.GET("/:id", handler.GetByID)

		writes := employees.Group("")
		if opts.WriteRPS > 0 {
			writes.Use(middleware.RateLimitByIP(opts.WriteRPS, opts.WriteBurst))
		}
		writes.POST("", handler.Create)
		writes.PUT("/:id", handler.Update)
		writes.DELETE("/:id", handler.Delete)
	}
}
