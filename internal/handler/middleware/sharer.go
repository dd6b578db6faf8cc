package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/servicetoken"

	"github.com/gin-gonic/gin"
)

const (
	SharerIDHeader = "X-Sharer-User-Id"
	ctxSharerIDKey = "sharer_id"
)

var errInvalidSharerID = errors.New("invalid sharer id header")

// RequireSharer rejects requests without a numeric X-Sharer-User-Id.
func RequireSharer() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerIDHeader)
		id, err := strconv.ParseInt(raw, 10, 64)
		if raw == "" || err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errInvalidSharerID,
				"Missing or invalid "+SharerIDHeader+" header")
			return
		}
		c.Set(ctxSharerIDKey, id)
		c.Next()
	}
}

func GetSharerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ctxSharerIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// ServiceTokenVerifier is satisfied by *servicetoken.Service.
type ServiceTokenVerifier interface {
	Verify(token string, sharerID int64) error
}

// RequireServiceToken accepts only calls signed by the gateway for the sharer
// they carry. Calls without a sharer header are checked against id 0.
func RequireServiceToken(verifier ServiceTokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sharerID int64
		if raw := c.GetHeader(SharerIDHeader); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				httperr.AbortWithError(c, http.StatusBadRequest, errInvalidSharerID,
					"Missing or invalid "+SharerIDHeader+" header")
				return
			}
			sharerID = id
		}

		token := c.GetHeader(servicetoken.Header)
		if token == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, servicetoken.ErrInvalidToken, "Service token required")
			return
		}
		if err := verifier.Verify(token, sharerID); err != nil {
			slog.Warn("Service token rejected", "error", err.Error(), "request_id", GetRequestID(c))
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid service token")
			return
		}
		c.Next()
	}
}
