package api

import (
	"net/http"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	cmds commands.RequestCommands
	q    queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, q queries.RequestQueries) *RequestHandler {
	return &RequestHandler{cmds: cmds, q: q}
}

// @Summary Ask for an item that is not listed yet
// @Tags requests
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Requester"
// @Param request body reqdto.CreateItemRequestRequest true "Request"
// @Success 200 {object} resdto.ItemRequestResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	requesterID, ok := sharer(c)
	if !ok {
		return
	}
	var req reqdto.CreateItemRequestRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), requesterID, req.Description)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, id)
}

// @Summary List own requests
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Requester"
// @Success 200 {array} resdto.ItemRequestResponse
// @Router /requests [get]
func (h *RequestHandler) ListOwn(c *gin.Context) {
	requesterID, ok := sharer(c)
	if !ok {
		return
	}
	views, err := h.q.ListOwn(c.Request.Context(), requesterID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary List other users' requests
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.ItemRequestResponse
// @Router /requests/all [get]
func (h *RequestHandler) ListAll(c *gin.Context) {
	userID, ok := sharer(c)
	if !ok {
		return
	}
	p, ok := page(c)
	if !ok {
		return
	}
	views, err := h.q.ListAll(c.Request.Context(), userID, p)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestViews(views))
}

// @Summary Get request
// @Tags requests
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param id path int true "Request ID"
// @Success 200 {object} resdto.ItemRequestResponse
// @Failure 404 {object} httperr.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, id)
}

func (h *RequestHandler) respond(c *gin.Context, requestID int64) {
	view, err := h.q.GetByID(c.Request.Context(), requestID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}
