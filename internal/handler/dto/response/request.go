package response

import (
	"shareit/internal/pkg/jsontime"
	"shareit/internal/usecase/queries"
)

type RequestItemResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"ownerId"`
}

type ItemRequestResponse struct {
	ID          int64                 `json:"id"`
	Description string                `json:"description"`
	Created     jsontime.Time         `json:"created"`
	Items       []RequestItemResponse `json:"items"`
}

func FromRequestView(v *queries.RequestView) *ItemRequestResponse {
	items := make([]RequestItemResponse, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, RequestItemResponse{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
	}
	return &ItemRequestResponse{
		ID:          v.ID,
		Description: v.Description,
		Created:     jsontime.New(v.Created),
		Items:       items,
	}
}

func FromRequestViews(vs []*queries.RequestView) []*ItemRequestResponse {
	out := make([]*ItemRequestResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromRequestView(v))
	}
	return out
}
