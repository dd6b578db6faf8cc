package item

import (
	"shareit/internal/pkg/errs"
)

var ErrNotOwner = errs.Forbidden("only the owner may modify this item")

type Item struct {
	id          int64
	ownerID     int64
	name        Name
	description Description
	available   bool
	requestID   *int64
}

func NewItem(ownerID int64, name Name, description Description, available bool, requestID *int64) *Item {
	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}
}

func Reconstruct(id, ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        Name{value: name},
		description: Description{value: description},
		available:   available,
		requestID:   requestID,
	}
}

func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

// EnsureOwner returns ErrNotOwner unless userID owns the item.
func (i *Item) EnsureOwner(userID int64) error {
	if !i.IsOwnedBy(userID) {
		return ErrNotOwner
	}
	return nil
}

func (i *Item) Rename(name Name) {
	i.name = name
}

func (i *Item) Describe(description Description) {
	i.description = description
}

func (i *Item) SetAvailable(available bool) {
	i.available = available
}

func (i *Item) AttachRequest(requestID int64) {
	i.requestID = &requestID
}

func (i *Item) WithID(id int64) *Item {
	cp := *i
	cp.id = id
	return &cp
}

func (i *Item) ID() int64                { return i.id }
func (i *Item) OwnerID() int64           { return i.ownerID }
func (i *Item) Name() Name               { return i.name }
func (i *Item) Description() Description { return i.description }
func (i *Item) Available() bool          { return i.available }
func (i *Item) RequestID() *int64        { return i.requestID }
