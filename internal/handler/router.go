package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

type Handlers struct {
	Users    *api.UserHandler
	Items    *api.ItemHandler
	Bookings *api.BookingHandler
	Requests *api.RequestHandler
}

// Observability bundles the logger and the metrics registry shared by all routes.
type Observability struct {
	Logger   *middleware.Logger
	Registry *prometheus.Registry
	Metrics  *middleware.Metrics
	// Tokens is nil when service tokens are disabled.
	Tokens middleware.ServiceTokenVerifier
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, obs Observability) {
	setupMiddleware(engine, cfg, obs)
	setupRoutes(engine, h, obs)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, obs Observability) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(obs.Logger.LoggingMiddleware())
	engine.Use(obs.Metrics.Middleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, obs Observability) {
	engine.GET("/health", healthCheck)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{})))

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("")
	if obs.Tokens != nil {
		apiGroup.Use(middleware.RequireServiceToken(obs.Tokens))
	}

	users := apiGroup.Group("/users")
	addRoutes(users, []route{
		{Method: http.MethodPost, Path: "", Handler: h.Users.Create},
		{Method: http.MethodGet, Path: "", Handler: h.Users.List},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Users.Get},
		{Method: http.MethodPatch, Path: "/:id", Handler: h.Users.Update},
		{Method: http.MethodDelete, Path: "/:id", Handler: h.Users.Delete},
	})

	items := apiGroup.Group("/items")
	items.Use(middleware.RequireSharer())
	addRoutes(items, []route{
		{Method: http.MethodPost, Path: "", Handler: h.Items.Create},
		{Method: http.MethodGet, Path: "", Handler: h.Items.ListOwn},
		{Method: http.MethodGet, Path: "/search", Handler: h.Items.Search},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Items.Get},
		{Method: http.MethodPatch, Path: "/:id", Handler: h.Items.Update},
		{Method: http.MethodDelete, Path: "/:id", Handler: h.Items.Delete},
		{Method: http.MethodPost, Path: "/:id/comment", Handler: h.Items.AddComment},
	})

	bookings := apiGroup.Group("/bookings")
	bookings.Use(middleware.RequireSharer())
	addRoutes(bookings, []route{
		{Method: http.MethodPost, Path: "", Handler: h.Bookings.Create},
		{Method: http.MethodGet, Path: "", Handler: h.Bookings.ListByBooker},
		{Method: http.MethodGet, Path: "/owner", Handler: h.Bookings.ListByOwner},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Bookings.Get},
		{Method: http.MethodPatch, Path: "/:id", Handler: h.Bookings.Decide},
	})

	requests := apiGroup.Group("/requests")
	requests.Use(middleware.RequireSharer())
	addRoutes(requests, []route{
		{Method: http.MethodPost, Path: "", Handler: h.Requests.Create},
		{Method: http.MethodGet, Path: "", Handler: h.Requests.ListOwn},
		{Method: http.MethodGet, Path: "/all", Handler: h.Requests.ListAll},
		{Method: http.MethodGet, Path: "/:id", Handler: h.Requests.Get},
	})
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}
