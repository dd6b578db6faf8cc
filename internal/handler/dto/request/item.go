package request

import "shareit/internal/usecase/commands"

type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *int64 `json:"requestId"`
}

func (r CreateItemRequest) ToInput() commands.CreateItemInput {
	return commands.CreateItemInput{
		Name:        r.Name,
		Description: r.Description,
		Available:   *r.Available,
		RequestID:   r.RequestID,
	}
}

type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

func (r UpdateItemRequest) ToInput() commands.UpdateItemInput {
	return commands.UpdateItemInput{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
		RequestID:   r.RequestID,
	}
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
