//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"shareit/internal/domain/item"
	"shareit/internal/handler/api"
	"shareit/internal/handler/middleware"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
	"shareit/tests/common/builder"
	"shareit/tests/common/httptest"
	"shareit/tests/common/testutil"
	commandsmock "shareit/tests/mock/commands"
	queriesmock "shareit/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockItemCommands
	mockQueries  *queriesmock.MockItemQueries
}

func TestItemHandlerSuite(t *testing.T) {
	suite.Run(t, new(ItemHandlerTestSuite))
}

func (s *ItemHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockItemCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockItemQueries(s.mockCtrl)
	h := api.NewItemHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("/items", middleware.RequireSharer())
	g.POST("", h.Create)
	g.GET("", h.ListOwn)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.POST("/:id/comment", h.AddComment)
}

func (s *ItemHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *ItemHandlerTestSuite) TestCreate() {
	b := builder.NewItemBuilder()
	body := b.BuildCreateRequestDTO()

	s.Run("success", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.OwnerID, commands.CreateItemInput{
			Name:        b.Name,
			Description: b.Description,
			Available:   true,
		}).Return(b.ID, nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.OwnerID, b.ID).Return(b.BuildReadModel(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", body, b.OwnerID)

		var got resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(b.Name, got.Name)
		s.Nil(got.LastBooking)
		s.NotNil(got.Comments)
	})

	s.Run("available is required", func() {
		payload := testutil.Payload(s.T(), body, testutil.Drop("available"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", payload, b.OwnerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request body")
	})

	s.Run("blank name is rejected by the domain", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.OwnerID, gomock.Any()).Return(int64(0), item.ErrEmptyName)

		payload := testutil.Payload(s.T(), body, testutil.Set("name", " "))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", payload, b.OwnerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, item.ErrEmptyName.Error())
	})

	s.Run("unknown owner", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), int64(99), gomock.Any()).Return(int64(0), shared.ErrUserNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", body, 99)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "user not found")
	})

	s.Run("malformed json", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items", `{"name":`, b.OwnerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request body")
	})
}

func (s *ItemHandlerTestSuite) TestUpdate() {
	b := builder.NewItemBuilder()

	s.Run("partial update", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), b.OwnerID, b.ID, gomock.Any()).
			DoAndReturn(func(_ any, _, _ int64, in commands.UpdateItemInput) error {
				s.Nil(in.Name)
				s.Nil(in.Description)
				s.Require().NotNil(in.Available)
				s.False(*in.Available)
				return nil
			})
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.OwnerID, b.ID).Return(b.Unavailable().BuildReadModel(), nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/items/1", map[string]any{"available": false}, b.OwnerID)

		var got resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.False(got.Available)
	})

	s.Run("non-owner", func() {
		s.mockCommands.EXPECT().Update(gomock.Any(), int64(5), b.ID, gomock.Any()).Return(item.ErrNotOwner)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/items/1", map[string]any{"name": "x"}, 5)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, item.ErrNotOwner.Error())
	})
}

func (s *ItemHandlerTestSuite) TestDelete() {
	s.mockCommands.EXPECT().Delete(gomock.Any(), int64(1), int64(3)).Return(nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/items/3", nil, 1)
	httptest.AssertEmptyResponse(s.T(), rec, http.StatusOK)
}

func (s *ItemHandlerTestSuite) TestSearch() {
	s.Run("forwards text and paging", func() {
		s.mockQueries.EXPECT().Search(gomock.Any(), "drill", queries.Page{From: 0, Size: 2}).
			Return([]*queries.ItemView{builder.NewItemBuilder().BuildReadModel()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/search?text=drill&size=2", nil, 1)

		var got []resdto.ItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Len(got, 1)
	})

	s.Run("negative from", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/items/search?text=drill&from=-1", nil, 1)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "from")
	})
}

func (s *ItemHandlerTestSuite) TestAddComment() {
	created := time.Date(2030, 3, 1, 9, 30, 0, 0, time.UTC)
	view := builder.NewItemBuilder().BuildReadModel()
	view.Comments = []queries.CommentView{
		{ID: 4, Text: "older", AuthorName: "Carol", Created: created.Add(-time.Hour)},
		{ID: 7, Text: "Works great", AuthorName: "Bob", Created: created},
	}

	s.Run("returns the stored comment", func() {
		s.mockCommands.EXPECT().AddComment(gomock.Any(), int64(2), int64(1), "Works great").Return(int64(7), nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(2), int64(1)).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items/1/comment", map[string]any{"text": "Works great"}, 2)

		var got resdto.CommentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(int64(7), got.ID)
		s.Equal("Bob", got.AuthorName)
		s.True(got.Created.Equal(created))
	})

	s.Run("without a finished booking", func() {
		s.mockCommands.EXPECT().AddComment(gomock.Any(), int64(3), int64(1), "Nice").Return(int64(0), item.ErrCommentNotAllowed)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/items/1/comment", map[string]any{"text": "Nice"}, 3)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, item.ErrCommentNotAllowed.Error())
	})
}
