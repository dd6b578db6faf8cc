package httperr

import (
	"log/slog"
	"net/http"

	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const (
	internalMessage = "Internal server error"
	maxStackLines   = 12
)

type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status, Error: msg}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Abort maps err onto the status of its category. Unclassified errors become
// a 500 whose message does not leak the cause.
func Abort(c *gin.Context, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = internalMessage
		slog.Error("Unhandled error",
			slog.String("error", err.Error()),
			slog.Any("stack", errs.ExtractStackLines(err, maxStackLines)))
	}
	AbortWithError(c, status, err, msg)
}

func StatusOf(err error) int {
	switch errs.Category(err) {
	case errs.ErrNotFound:
		return http.StatusNotFound
	case errs.ErrValidation:
		return http.StatusBadRequest
	case errs.ErrForbidden:
		return http.StatusForbidden
	case errs.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Internal() Response {
	return Response{Status: http.StatusInternalServerError, Error: internalMessage}
}
