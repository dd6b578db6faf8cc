package response

import (
	"shareit/internal/pkg/jsontime"
	"shareit/internal/usecase/queries"
)

type BookingShortResponse struct {
	ID       int64         `json:"id"`
	BookerID int64         `json:"bookerId"`
	Start    jsontime.Time `json:"start"`
	End      jsontime.Time `json:"end"`
}

type CommentResponse struct {
	ID         int64         `json:"id"`
	Text       string        `json:"text"`
	AuthorName string        `json:"authorName"`
	Created    jsontime.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	RequestID   *int64                `json:"requestId"`
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

func FromItemView(v *queries.ItemView) *ItemResponse {
	comments := make([]CommentResponse, 0, len(v.Comments))
	for _, c := range v.Comments {
		comments = append(comments, FromCommentView(c))
	}
	return &ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		RequestID:   v.RequestID,
		LastBooking: fromBookingShortView(v.LastBooking),
		NextBooking: fromBookingShortView(v.NextBooking),
		Comments:    comments,
	}
}

func FromItemViews(vs []*queries.ItemView) []*ItemResponse {
	out := make([]*ItemResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromItemView(v))
	}
	return out
}

func FromCommentView(c queries.CommentView) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		Created:    jsontime.New(c.Created),
	}
}

func fromBookingShortView(v *queries.BookingShortView) *BookingShortResponse {
	if v == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       v.ID,
		BookerID: v.BookerID,
		Start:    jsontime.New(v.Start),
		End:      jsontime.New(v.End),
	}
}
