package request

import (
	"shareit/internal/pkg/jsontime"
	"shareit/internal/usecase/commands"
)

type CreateBookingRequest struct {
	ItemID int64          `json:"itemId" binding:"required"`
	Start  *jsontime.Time `json:"start" binding:"required"`
	End    *jsontime.Time `json:"end" binding:"required"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ItemID: r.ItemID,
		Start:  r.Start.Time,
		End:    r.End.Time,
	}
}
