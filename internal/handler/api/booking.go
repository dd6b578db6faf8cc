package api

import (
	"context"
	"net/http"
	"strconv"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errBadApproved = errs.Validation("approved must be true or false")

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Request a booking
// @Description Creates a WAITING booking of someone else's available item
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param request body reqdto.CreateBookingRequest true "Booking"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	bookerID, ok := sharer(c)
	if !ok {
		return
	}
	var req reqdto.CreateBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), bookerID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, bookerID, id)
}

// @Summary Approve or reject a booking
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Item owner"
// @Param id path int true "Booking ID"
// @Param approved query bool true "Decision"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [patch]
func (h *BookingHandler) Decide(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		httperr.Abort(c, errBadApproved)
		return
	}
	if err := h.cmds.Decide(c.Request.Context(), ownerID, id, approved); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, ownerID, id)
}

// @Summary Get booking
// @Description Visible to the booker and the item owner
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	actorID, ok := sharer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, actorID, id)
}

// @Summary List own bookings
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings [get]
func (h *BookingHandler) ListByBooker(c *gin.Context) {
	h.list(c, h.q.ListByBooker)
}

// @Summary List bookings of own items
// @Tags bookings
// @Produce json
// @Param X-Sharer-User-Id header int true "Item owner"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING or REJECTED"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /bookings/owner [get]
func (h *BookingHandler) ListByOwner(c *gin.Context) {
	h.list(c, h.q.ListByOwner)
}

type bookingLister func(ctx context.Context, userID int64, state booking.State, page queries.Page) ([]*queries.BookingView, error)

func (h *BookingHandler) list(c *gin.Context, fetch bookingLister) {
	userID, ok := sharer(c)
	if !ok {
		return
	}
	state, err := booking.ParseState(c.Query("state"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	p, ok := page(c)
	if !ok {
		return
	}
	views, err := fetch(c.Request.Context(), userID, state, p)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func (h *BookingHandler) respond(c *gin.Context, actorID, bookingID int64) {
	view, err := h.q.GetByID(c.Request.Context(), actorID, bookingID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}
