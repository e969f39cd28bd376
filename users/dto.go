package users

import "github.com/user/minilinkedin-go/auth"

// ProfileResponse is the body of GET /api/users/{userId}.
type ProfileResponse struct {
	Error   bool       `json:"error" example:"false"`
	Message string     `json:"message" example:"User retrieved successfully"`
	Data    *auth.User `json:"data"`
}
