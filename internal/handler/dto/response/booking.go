package response

import (
	"shareit/internal/pkg/jsontime"
	"shareit/internal/usecase/queries"
)

type BookingResponse struct {
	ID     int64              `json:"id"`
	Start  jsontime.Time      `json:"start"`
	End    jsontime.Time      `json:"end"`
	Status string             `json:"status"`
	Booker UserResponse       `json:"booker"`
	Item   BookedItemResponse `json:"item"`
}

type BookedItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  jsontime.New(v.Start),
		End:    jsontime.New(v.End),
		Status: v.Status,
		Booker: UserResponse{ID: v.Booker.ID, Name: v.Booker.Name, Email: v.Booker.Email},
		Item: BookedItemResponse{
			ID:          v.Item.ID,
			Name:        v.Item.Name,
			Description: v.Item.Description,
			Available:   v.Item.Available,
		},
	}
}

func FromBookingViews(vs []*queries.BookingView) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromBookingView(v))
	}
	return out
}
