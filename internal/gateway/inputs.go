package gateway

import "shareit/internal/pkg/jsontime"

// Inputs mirror the core request bodies. They are only validated here; the
// raw body is forwarded as received.

type CreateUserInput struct {
	Name  string `json:"name" validate:"required,notblank,max=50"`
	Email string `json:"email" validate:"required,email,max=150"`
}

type UpdateUserInput struct {
	Name  *string `json:"name" validate:"omitnil,notblank,max=50"`
	Email *string `json:"email" validate:"omitnil,email,max=150"`
}

type CreateItemInput struct {
	Name        string `json:"name" validate:"required,notblank,max=30"`
	Description string `json:"description" validate:"required,notblank,max=400"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitnil,gt=0"`
}

type UpdateItemInput struct {
	Name        *string `json:"name" validate:"omitnil,notblank,max=30"`
	Description *string `json:"description" validate:"omitnil,notblank,max=400"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId" validate:"omitnil,gt=0"`
}

type CommentInput struct {
	Text string `json:"text" validate:"required,notblank,max=400"`
}

type ItemRequestInput struct {
	Description string `json:"description" validate:"required,notblank,max=400"`
}

// BookingInput is also checked against the clock: start not in the past, end
// in the future, start not after end.
type BookingInput struct {
	ItemID int64          `json:"itemId" validate:"required,gt=0"`
	Start  *jsontime.Time `json:"start" validate:"required"`
	End    *jsontime.Time `json:"end" validate:"required"`
}
