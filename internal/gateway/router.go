package gateway

import (
	"net/http"

	"shareit/internal/gateway/ratelimit"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts the public API. A nil limiter disables rate limiting.
func NewRouter(engine *gin.Engine, cfg config.GatewayConfig, h *Handler, logger *middleware.Logger, limiter ratelimit.Limiter) {
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("")
	if limiter != nil {
		api.Use(ratelimit.Middleware(limiter))
	}

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.ForwardUser)
	users.GET("/:id", h.ForwardUser)
	users.PATCH("/:id", h.UpdateUser)
	users.DELETE("/:id", h.ForwardUser)

	items := api.Group("/items")
	items.POST("", h.CreateItem)
	items.GET("", h.ListOwnItems)
	items.GET("/search", h.SearchItems)
	items.GET("/:id", h.Forward)
	items.PATCH("/:id", h.UpdateItem)
	items.DELETE("/:id", h.Forward)
	items.POST("/:id/comment", h.AddComment)

	bookings := api.Group("/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("", h.ListBookings)
	bookings.GET("/owner", h.ListBookings)
	bookings.GET("/:id", h.Forward)
	bookings.PATCH("/:id", h.DecideBooking)

	requests := api.Group("/requests")
	requests.POST("", h.CreateRequest)
	requests.GET("", h.Forward)
	requests.GET("/all", h.ListAllRequests)
	requests.GET("/:id", h.Forward)
}
