//go:build unit || e2e

package builder

import (
	"shareit/internal/domain/item"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/usecase/queries"
)

type ItemBuilder struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		ID:          1,
		OwnerID:     1,
		Name:        "Drill",
		Description: "Cordless drill with two batteries",
		Available:   true,
	}
}

func (i *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(i)
	return i
}

// Build methods
func (i *ItemBuilder) BuildDomain() (*item.Item, error) {
	name, err := item.NewName(i.Name)
	if err != nil {
		return nil, err
	}
	description, err := item.NewDescription(i.Description)
	if err != nil {
		return nil, err
	}
	return item.NewItem(i.OwnerID, name, description, i.Available, i.RequestID), nil
}

func (i *ItemBuilder) BuildReadModel() *queries.ItemView {
	return &queries.ItemView{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
		Comments:    []queries.CommentView{},
	}
}

func (i *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	available := i.Available
	return reqdto.CreateItemRequest{
		Name:        i.Name,
		Description: i.Description,
		Available:   &available,
		RequestID:   i.RequestID,
	}
}

// Fluent builder methods
func (i *ItemBuilder) WithOwner(ownerID int64) *ItemBuilder {
	i.OwnerID = ownerID
	return i
}

func (i *ItemBuilder) Unavailable() *ItemBuilder {
	i.Available = false
	return i
}
