package response

import "shareit/internal/usecase/queries"

type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	return &UserResponse{ID: v.ID, Name: v.Name, Email: v.Email}
}

func FromUserViews(vs []*queries.UserView) []*UserResponse {
	out := make([]*UserResponse, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromUserView(v))
	}
	return out
}
