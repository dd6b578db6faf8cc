package api

import (
	"net/http"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errCommentLost = errs.New("stored comment missing from item view")

type ItemHandler struct {
	cmds commands.ItemCommands
	q    queries.ItemQueries
}

func NewItemHandler(cmds commands.ItemCommands, q queries.ItemQueries) *ItemHandler {
	return &ItemHandler{cmds: cmds, q: q}
}

// @Summary Create item
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param request body reqdto.CreateItemRequest true "Item"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}
	var req reqdto.CreateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	id, err := h.cmds.Create(c.Request.Context(), ownerID, req.ToInput())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, ownerID, id)
}

// @Summary Get item
// @Description Last and next bookings are included for the owner only
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param id path int true "Item ID"
// @Success 200 {object} resdto.ItemResponse
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	viewerID, ok := sharer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respond(c, viewerID, id)
}

// @Summary List own items
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.ItemResponse
// @Router /items [get]
func (h *ItemHandler) ListOwn(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}
	p, ok := page(c)
	if !ok {
		return
	}
	views, err := h.q.ListByOwner(c.Request.Context(), ownerID, p)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Update item
// @Description Only the owner may update; fields left out keep their value
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param id path int true "Item ID"
// @Param request body reqdto.UpdateItemRequest true "Changed fields"
// @Success 200 {object} resdto.ItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [patch]
func (h *ItemHandler) Update(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.UpdateItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.cmds.Update(c.Request.Context(), ownerID, id, req.ToInput()); err != nil {
		httperr.Abort(c, err)
		return
	}
	h.respond(c, ownerID, id)
}

// @Summary Delete item
// @Tags items
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param id path int true "Item ID"
// @Success 200
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	ownerID, ok := sharer(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.Delete(c.Request.Context(), ownerID, id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()
}

// @Summary Search available items
// @Tags items
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param text query string true "Substring of name or description"
// @Param from query int false "Offset"
// @Param size query int false "Page size"
// @Success 200 {array} resdto.ItemResponse
// @Router /items/search [get]
func (h *ItemHandler) Search(c *gin.Context) {
	p, ok := page(c)
	if !ok {
		return
	}
	views, err := h.q.Search(c.Request.Context(), c.Query("text"), p)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemViews(views))
}

// @Summary Comment on a rented item
// @Description Requires an approved booking of the item that has already ended
// @Tags items
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Acting user"
// @Param id path int true "Item ID"
// @Param request body reqdto.CreateCommentRequest true "Comment"
// @Success 200 {object} resdto.CommentResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /items/{id}/comment [post]
func (h *ItemHandler) AddComment(c *gin.Context) {
	authorID, ok := sharer(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CreateCommentRequest
	if !bindJSON(c, &req) {
		return
	}
	commentID, err := h.cmds.AddComment(c.Request.Context(), authorID, itemID, req.Text)
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), authorID, itemID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	for _, cv := range view.Comments {
		if cv.ID == commentID {
			c.JSON(http.StatusOK, resdto.FromCommentView(cv))
			return
		}
	}
	httperr.Abort(c, errCommentLost)
}

func (h *ItemHandler) respond(c *gin.Context, viewerID, itemID int64) {
	view, err := h.q.GetByID(c.Request.Context(), viewerID, itemID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromItemView(view))
}
