package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"shareit/internal/pkg/config"
	"shareit/internal/pkg/servicetoken"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORSMiddleware builds the CORS policy from cfg. The identity and tracing
// headers are always allowed, whatever CORS_ALLOW_HEADERS says.
func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, SharerIDHeader, RequestIDHeader, servicetoken.Header),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, RequestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized",
		slog.Any("allow_origins", corsCfg.AllowOrigins),
		slog.Any("allow_headers", corsCfg.AllowHeaders))
	return cors.New(corsCfg)
}

func withHeaders(configured []string, required ...string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(v string) bool { return strings.EqualFold(v, h) }) {
			out = append(out, h)
		}
	}
	return out
}
