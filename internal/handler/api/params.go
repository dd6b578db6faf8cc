package api

import (
	"net/http"
	"strconv"

	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var (
	errBadPathID   = errs.Validation("invalid id in path")
	errBadPage     = errs.Validation("from must be >= 0 and size must be > 0")
	errMissingUser = errs.New("sharer id missing from context")
)

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errBadPathID, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// sharer must run behind middleware.RequireSharer.
func sharer(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetSharerID(c)
	if !ok {
		httperr.Abort(c, errMissingUser)
		return 0, false
	}
	return id, true
}

// page reads from/size. Absent size means no limit.
func page(c *gin.Context) (queries.Page, bool) {
	var p queries.Page
	if raw, ok := c.GetQuery("from"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			httperr.Abort(c, errBadPage)
			return p, false
		}
		p.From = v
	}
	if raw, ok := c.GetQuery("size"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			httperr.Abort(c, errBadPage)
			return p, false
		}
		p.Size = v
	}
	return p, true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request body")
		return false
	}
	return true
}
