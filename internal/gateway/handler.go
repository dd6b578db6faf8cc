package gateway

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"shareit/internal/domain/booking"
	"shareit/internal/handler/httperr"
	"shareit/internal/handler/middleware"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 10

var (
	errBadSharer   = errs.Validation("Missing or invalid " + middleware.SharerIDHeader + " header")
	errBadBody     = errs.Validation("Invalid request body")
	errBadPage     = errs.Validation("from must be >= 0 and size must be > 0")
	errBadApproved = errs.Validation("approved must be true or false")
	errUpstream    = errs.New("server unavailable")
)

type Handler struct {
	client   *Client
	validate *Validator
}

func NewHandler(client *Client, validate *Validator) *Handler {
	return &Handler{client: client, validate: validate}
}

// call collects what one endpoint forwards.
type call struct {
	needsSharer bool
	body        any
	paged       bool
	query       func(c *gin.Context, q url.Values) error
}

func (h *Handler) CreateUser(c *gin.Context) { h.relay(c, call{body: &CreateUserInput{}}) }
func (h *Handler) UpdateUser(c *gin.Context) { h.relay(c, call{body: &UpdateUserInput{}}) }
func (h *Handler) ForwardUser(c *gin.Context) { h.relay(c, call{}) }

func (h *Handler) CreateItem(c *gin.Context) {
	h.relay(c, call{needsSharer: true, body: &CreateItemInput{}})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	h.relay(c, call{needsSharer: true, body: &UpdateItemInput{}})
}

func (h *Handler) AddComment(c *gin.Context) {
	h.relay(c, call{needsSharer: true, body: &CommentInput{}})
}

func (h *Handler) ListOwnItems(c *gin.Context) {
	h.relay(c, call{needsSharer: true, paged: true})
}

// SearchItems answers blank searches itself.
func (h *Handler) SearchItems(c *gin.Context) {
	if strings.TrimSpace(c.Query("text")) == "" {
		if _, ok := h.sharer(c); !ok {
			return
		}
		c.JSON(http.StatusOK, []any{})
		return
	}
	h.relay(c, call{needsSharer: true, paged: true, query: func(c *gin.Context, q url.Values) error {
		q.Set("text", c.Query("text"))
		return nil
	}})
}

func (h *Handler) CreateBooking(c *gin.Context) {
	h.relay(c, call{needsSharer: true, body: &BookingInput{}})
}

func (h *Handler) DecideBooking(c *gin.Context) {
	h.relay(c, call{needsSharer: true, query: func(c *gin.Context, q url.Values) error {
		approved, err := strconv.ParseBool(c.Query("approved"))
		if err != nil {
			return errBadApproved
		}
		q.Set("approved", strconv.FormatBool(approved))
		return nil
	}})
}

func (h *Handler) ListBookings(c *gin.Context) {
	h.relay(c, call{needsSharer: true, paged: true, query: func(c *gin.Context, q url.Values) error {
		state, err := booking.ParseState(c.Query("state"))
		if err != nil {
			return err
		}
		q.Set("state", string(state))
		return nil
	}})
}

func (h *Handler) CreateRequest(c *gin.Context) {
	h.relay(c, call{needsSharer: true, body: &ItemRequestInput{}})
}

func (h *Handler) ListAllRequests(c *gin.Context) {
	h.relay(c, call{needsSharer: true, paged: true})
}

// Forward forwards sharer-scoped calls that carry neither body nor query.
func (h *Handler) Forward(c *gin.Context) {
	h.relay(c, call{needsSharer: true})
}

func (h *Handler) relay(c *gin.Context, ep call) {
	var sharerID int64
	if ep.needsSharer {
		id, ok := h.sharer(c)
		if !ok {
			return
		}
		sharerID = id
	}

	query := url.Values{}
	if ep.paged {
		if err := pageQuery(c, query); err != nil {
			httperr.Abort(c, err)
			return
		}
	}
	if ep.query != nil {
		if err := ep.query(c, query); err != nil {
			httperr.Abort(c, err)
			return
		}
	}

	var raw []byte
	if ep.body != nil {
		var err error
		if raw, err = c.GetRawData(); err != nil {
			httperr.Abort(c, errs.Mark(err, errs.ErrValidation))
			return
		}
		if err := json.Unmarshal(raw, ep.body); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, errBadBody.Error())
			return
		}
		if err := h.validate.Struct(ep.body); err != nil {
			httperr.Abort(c, err)
			return
		}
	}

	resp, err := h.client.Do(c.Request.Context(), Call{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		Query:     query,
		SharerID:  sharerID,
		RequestID: middleware.GetRequestID(c),
		Body:      raw,
	})
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "Forwarding failed",
			"error", err, "path", c.Request.URL.Path, "request_id", middleware.GetRequestID(c))
		httperr.AbortWithError(c, http.StatusBadGateway, errs.Mark(err, errUpstream), errUpstream.Error())
		return
	}

	if len(resp.Body) == 0 {
		c.Status(resp.Status)
		c.Writer.WriteHeaderNow()
		return
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json; charset=utf-8"
	}
	c.Data(resp.Status, contentType, resp.Body)
}

func (h *Handler) sharer(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.GetHeader(middleware.SharerIDHeader), 10, 64)
	if err != nil || id <= 0 {
		httperr.Abort(c, errBadSharer)
		return 0, false
	}
	return id, true
}

// pageQuery fills from and size, defaulting to the first page of ten.
func pageQuery(c *gin.Context, q url.Values) error {
	from, size := 0, defaultPageSize
	if raw, ok := c.GetQuery("from"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return errBadPage
		}
		from = v
	}
	if raw, ok := c.GetQuery("size"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return errBadPage
		}
		size = v
	}
	q.Set("from", strconv.Itoa(from))
	q.Set("size", strconv.Itoa(size))
	return nil
}
