//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	"shareit/internal/domain/booking"
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

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("/bookings", middleware.RequireSharer())
	g.POST("", h.Create)
	g.GET("", h.ListByBooker)
	g.GET("/owner", h.ListByOwner)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Decide)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	b := builder.NewBookingBuilder()
	body := b.BuildCreateRequestDTO()
	view := b.BuildReadModel()

	s.Run("success: returns the stored booking", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BookerID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, in commands.CreateBookingInput) (int64, error) {
				s.Equal(b.Item.ID, in.ItemID)
				s.True(in.Start.Equal(b.Start), "start %s", in.Start)
				s.True(in.End.Equal(b.End), "end %s", in.End)
				return view.ID, nil
			})
		s.mockQueries.EXPECT().GetByID(gomock.Any(), b.BookerID, view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, b.BookerID)

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(view.ID, got.ID)
		s.Equal("WAITING", got.Status)
		s.True(got.Start.Equal(b.Start))
	})

	s.Run("domain rejection maps to its category", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BookerID, gomock.Any()).Return(int64(0), booking.ErrSelfBooking)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, b.BookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("missing item maps to 404", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), b.BookerID, gomock.Any()).Return(int64(0), shared.ErrItemNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, b.BookerID)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "item not found")
	})

	invalid := []struct {
		name   string
		mutate testutil.Edit
	}{
		{name: "missing itemId", mutate: testutil.Drop("itemId")},
		{name: "missing start", mutate: testutil.Drop("start")},
		{name: "missing end", mutate: testutil.Drop("end")},
		{name: "malformed start", mutate: testutil.Set("start", "tomorrow")},
	}
	for _, tc := range invalid {
		s.Run("invalid body: "+tc.name, func() {
			payload := testutil.Payload(s.T(), body, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", payload, b.BookerID)
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request body")
		})
	}
}

// ================================================================================
// TestDecide
// ================================================================================

func (s *BookingHandlerTestSuite) TestDecide() {
	view := builder.NewBookingBuilder().WithStatus(booking.StatusApproved).BuildReadModel()

	s.Run("approve", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), int64(1), view.ID, true).Return(nil)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(1), view.ID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/1?approved=true", nil, 1)

		var got resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal("APPROVED", got.Status)
	})

	s.Run("non-owner is forbidden", func() {
		s.mockCommands.EXPECT().Decide(gomock.Any(), int64(9), view.ID, false).Return(booking.ErrNotItemOwner)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/1?approved=false", nil, 9)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("approved flag must be boolean", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/1?approved=maybe", nil, 1)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "approved")
	})

	s.Run("path id must be numeric", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/abc?approved=true", nil, 1)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	views := []*queries.BookingView{builder.NewBookingBuilder().BuildReadModel()}

	s.Run("state is parsed case-insensitively", func() {
		s.mockQueries.EXPECT().ListByBooker(gomock.Any(), int64(2), booking.StateFuture, queries.Page{}).Return(views, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=future", nil, 2)

		var got []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Len(got, 1)
	})

	s.Run("owner listing defaults to ALL and forwards paging", func() {
		s.mockQueries.EXPECT().ListByOwner(gomock.Any(), int64(1), booking.StateAll, queries.Page{From: 10, Size: 5}).
			Return([]*queries.BookingView{}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/owner?from=10&size=5", nil, 1)

		var got []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Empty(got)
	})

	s.Run("unknown state", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?state=SOMEDAY", nil, 2)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown state: SOMEDAY")
	})

	s.Run("bad page", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?size=0", nil, 2)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "size")
	})

	s.Run("missing sharer header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, 0)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, middleware.SharerIDHeader)
	})
}

func (s *BookingHandlerTestSuite) TestGetHidesUnclassifiedErrors() {
	s.mockQueries.EXPECT().GetByID(gomock.Any(), int64(2), int64(1)).Return(nil, context.DeadlineExceeded)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/1", nil, 2)
	httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
}

