//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	reqdto "shareit/internal/handler/dto/request"
	resdto "shareit/internal/handler/dto/response"
	"shareit/internal/pkg/jsontime"
	"shareit/tests/common/dbtest"
	"shareit/tests/common/httptest"
	"shareit/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/bookings"
	bookingURL       = "/bookings/%d"
	ownerBookingsURL = "/bookings/owner"
	itemURL          = "/items/%d"
	commentURL       = "/items/%d/comment"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func bookingBody(itemID int64, start, end time.Time) reqdto.CreateBookingRequest {
	s, e := jsontime.New(start), jsontime.New(end)
	return reqdto.CreateBookingRequest{ItemID: itemID, Start: &s, End: &e}
}

// tomorrow at whole seconds, since the wire format drops sub-second precision
func tomorrow() time.Time {
	return time.Now().Add(24 * time.Hour).Truncate(time.Second)
}

// =============================================================================
// TestLifecycle
// =============================================================================

func (s *BookingSuite) TestLifecycle() {
	s.Run("Normal case: booker requests, owner approves", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		start := tomorrow()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingBody(itemID, start, start.Add(2*time.Hour)), booker)
		var created resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &created)

		want := resdto.BookingResponse{
			ID:     created.ID,
			Start:  jsontime.New(start),
			End:    jsontime.New(start.Add(2 * time.Hour)),
			Status: "WAITING",
			Booker: resdto.UserResponse{ID: booker, Name: "Booker", Email: "booker@example.com"},
			Item:   resdto.BookedItemResponse{ID: itemID, Name: "Drill", Description: "Drill for rent", Available: true},
		}
		if diff := cmp.Diff(want, created, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("created booking mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingURL, created.ID)+"?approved=false", nil, booker)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingURL, created.ID)+"?approved=true", nil, owner)
		var approved resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &approved)
		s.Equal("APPROVED", approved.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingURL, created.ID)+"?approved=false", nil, owner)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "already")

		stranger := dbtest.CreateTestUser(t, s.DB, "Stranger", "stranger@example.com")
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, stranger)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})

	s.Run("Error case: owner cannot book own item", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		start := tomorrow()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingBody(itemID, start, start.Add(time.Hour)), owner)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})

	s.Run("Error case: unavailable item", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", false)
		start := tomorrow()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingBody(itemID, start, start.Add(time.Hour)), booker)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "not available")
	})

	s.Run("Error case: unknown item", func() {
		t := s.T()
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		start := tomorrow()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, bookingBody(999, start, start.Add(time.Hour)), booker)
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "item not found")
	})
}

// =============================================================================
// TestOverlap
// =============================================================================

func (s *BookingSuite) TestOverlap() {
	s.Run("Error case: request overlapping an approved booking", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		other := dbtest.CreateTestUser(t, s.DB, "Other", "other@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		start := tomorrow()
		dbtest.CreateTestBooking(t, s.DB, itemID, booker, start, start.Add(4*time.Hour), "APPROVED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, start.Add(time.Hour), start.Add(5*time.Hour)), other)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "overlaps")

		// touching windows are half-open and do not overlap
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL,
			bookingBody(itemID, start.Add(4*time.Hour), start.Add(6*time.Hour)), other)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: approving the second of two waiting overlaps", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		first := dbtest.CreateTestUser(t, s.DB, "First", "first@example.com")
		second := dbtest.CreateTestUser(t, s.DB, "Second", "second@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		start := tomorrow()

		a := dbtest.CreateTestBooking(t, s.DB, itemID, first, start, start.Add(2*time.Hour), "WAITING")
		b := dbtest.CreateTestBooking(t, s.DB, itemID, second, start.Add(time.Hour), start.Add(3*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingURL, a)+"?approved=true", nil, owner)
		s.Equal(http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingURL, b)+"?approved=true", nil, owner)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "overlaps")

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingURL, b)+"?approved=false", nil, owner)
		s.Equal(http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Storage rejects overlapping approved rows", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		start := tomorrow()
		dbtest.CreateTestBooking(t, s.DB, itemID, booker, start, start.Add(2*time.Hour), "APPROVED")

		_, err := s.DB.Exec(t.Context(),
			"INSERT INTO bookings (start_at, end_at, item_id, booker_id, status) VALUES ($1, $2, $3, $4, 'APPROVED')",
			start.Add(time.Hour), start.Add(3*time.Hour), itemID, booker)
		require.Error(t, err)
		s.Contains(err.Error(), "23P01")
	})
}

// =============================================================================
// TestListing
// =============================================================================

func (s *BookingSuite) TestListing() {
	s.Run("Normal case: states filter booker and owner views", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		now := time.Now()

		past := dbtest.CreateTestBooking(t, s.DB, itemID, booker, now.Add(-72*time.Hour), now.Add(-48*time.Hour), "APPROVED")
		current := dbtest.CreateTestBooking(t, s.DB, itemID, booker, now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")
		future := dbtest.CreateTestBooking(t, s.DB, itemID, booker, now.Add(48*time.Hour), now.Add(72*time.Hour), "WAITING")
		rejected := dbtest.CreateTestBooking(t, s.DB, itemID, booker, now.Add(96*time.Hour), now.Add(120*time.Hour), "REJECTED")

		ids := func(w []resdto.BookingResponse) []int64 {
			out := make([]int64, 0, len(w))
			for _, b := range w {
				out = append(out, b.ID)
			}
			return out
		}

		testCases := []struct {
			state string
			want  []int64
		}{
			{state: "ALL", want: []int64{rejected, future, current, past}},
			{state: "current", want: []int64{current}},
			{state: "PAST", want: []int64{past}},
			{state: "FUTURE", want: []int64{rejected, future}},
			{state: "WAITING", want: []int64{future}},
			{state: "REJECTED", want: []int64{rejected}},
		}
		for _, tc := range testCases {
			for _, url := range []string{bookingsURL, ownerBookingsURL} {
				sharer := booker
				if url == ownerBookingsURL {
					sharer = owner
				}
				w := httptest.PerformRequest(t, s.Router, http.MethodGet, url+"?state="+tc.state, nil, sharer)
				var got []resdto.BookingResponse
				httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
				s.Equal(tc.want, ids(got), "%s %s", url, tc.state)
			}
		}

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?from=1&size=2", nil, booker)
		var page []resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &page)
		s.Equal([]int64{future, current}, ids(page))

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?state=LATER", nil, booker)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Unknown state: LATER")
	})
}

// =============================================================================
// TestComments
// =============================================================================

func (s *BookingSuite) TestComments() {
	s.Run("Normal case: comment after a finished booking shows on the item", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		now := time.Now()
		last := dbtest.CreateTestBooking(t, s.DB, itemID, booker, now.Add(-48*time.Hour), now.Add(-24*time.Hour), "APPROVED")
		next := dbtest.CreateTestBooking(t, s.DB, itemID, booker, now.Add(24*time.Hour), now.Add(48*time.Hour), "APPROVED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(commentURL, itemID),
			reqdto.CreateCommentRequest{Text: "Solid drill"}, booker)
		var comment resdto.CommentResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &comment)
		s.Equal("Solid drill", comment.Text)
		s.Equal("Booker", comment.AuthorName)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(itemURL, itemID), nil, owner)
		var view resdto.ItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.NotNil(t, view.LastBooking)
		require.NotNil(t, view.NextBooking)
		s.Equal(last, view.LastBooking.ID)
		s.Equal(next, view.NextBooking.ID)
		require.Len(t, view.Comments, 1)
		s.Equal(comment.ID, view.Comments[0].ID)

		// bookings are only shown to the owner
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(itemURL, itemID), nil, booker)
		var asBooker resdto.ItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &asBooker)
		s.Nil(asBooker.LastBooking)
		s.Nil(asBooker.NextBooking)
		s.Len(asBooker.Comments, 1)
	})

	s.Run("Error case: comment without a finished booking", func() {
		t := s.T()
		owner := dbtest.CreateTestUser(t, s.DB, "Owner", "owner@example.com")
		booker := dbtest.CreateTestUser(t, s.DB, "Booker", "booker@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, owner, "Drill", true)
		now := time.Now()
		dbtest.CreateTestBooking(t, s.DB, itemID, booker, now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(commentURL, itemID),
			reqdto.CreateCommentRequest{Text: "Too early"}, booker)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})
}
