package auth

import "strings"

// RegisterRequest is the body of POST /api/auth/register.
// `validate` holds the rules and `messages` the text sent back when a rule fails.
type RegisterRequest struct {
	Name     string `json:"name" example:"Ada Lovelace" validate:"min=2,max=50,personname" messages:"min=Name must be between 2-50 characters;max=Name must be between 2-50 characters;personname=Name can only contain letters and spaces"`
	Email    string `json:"email" example:"ada@example.com" validate:"required,email,max=320" messages:"required=Please enter a valid email address;email=Please enter a valid email address;max=Please enter a valid email address"`
	Password string `json:"password" example:"engine1843" validate:"min=6,hasletter,maxbytes=72" messages:"min=Password must be at least 6 characters long;hasletter=Password must contain at least one letter;maxbytes=Password cannot exceed 72 bytes"`
	Bio      string `json:"bio,omitempty" example:"First programmer" validate:"max=500" messages:"max=Bio cannot exceed 500 characters"`
}

// Normalize trims the text fields and lowercases the email.
// The password is left untouched.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.Bio = strings.TrimSpace(r.Bio)
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" example:"ada@example.com" validate:"required,email,max=320" messages:"required=Please enter a valid email address;email=Please enter a valid email address;max=Please enter a valid email address"`
	Password string `json:"password" example:"engine1843" validate:"required" messages:"required=Password is required"`
}

// Normalize lowercases the email.
func (r *LoginRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

// AuthResponse is returned by register, login and me.
// Token is empty for me.
type AuthResponse struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token,omitempty" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	User    *User  `json:"user"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
