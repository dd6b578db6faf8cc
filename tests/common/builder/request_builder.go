//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/request"
	"shareit/internal/usecase/queries"
)

type RequestBuilder struct {
	ID          int64
	RequesterID int64
	Description string
	CreatedAt   time.Time
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		ID:          1,
		RequesterID: 1,
		Description: "Need a ladder for the weekend",
		CreatedAt:   time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RequestBuilder) BuildDomain() (*request.ItemRequest, error) {
	return request.NewItemRequest(r.RequesterID, r.Description, r.CreatedAt)
}

func (r *RequestBuilder) BuildReadModel() *queries.RequestView {
	return &queries.RequestView{
		ID:          r.ID,
		Description: r.Description,
		Created:     r.CreatedAt,
		Items:       []queries.RequestItemView{},
	}
}
