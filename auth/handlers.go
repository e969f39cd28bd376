package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/minilinkedin-go/apperror"
	"github.com/user/minilinkedin-go/validation"
)

// Handlers exposes the Service over HTTP.
type Handlers struct {
	service  *Service
	validate *validation.Validator
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *Service, validate *validation.Validator) *Handlers {
	return &Handlers{service: service, validate: validate}
}

// RegisterRoutes mounts the auth routes on r. authMiddleware guards /me.
func (h *Handlers) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Post("/register", h.HandleRegister())
	r.Post("/login", h.HandleLogin())
	r.With(authMiddleware).Get("/me", h.HandleMe())
}

// HandleRegister godoc
// @Summary Register a new user
// @Description Creates an account and returns a session token. The password is never echoed back.
// @Tags Auth
// @Accept json
// @Produce json
// @Param registerBody body auth.RegisterRequest true "User registration details"
// @Success 201 {object} auth.AuthResponse "Registration successful"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed or email already registered"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/register [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := h.validate.Bind(r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		session, err := h.service.Register(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		apperror.WriteJSON(w, http.StatusCreated, AuthResponse{
			Message: "Registration successful",
			Token:   session.Token,
			User:    session.User,
		})
	}
}

// HandleLogin godoc
// @Summary Log in
// @Description Checks email and password and returns a session token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest true "User login credentials"
// @Success 200 {object} auth.AuthResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Validation failed or invalid email or password"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := h.validate.Bind(r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		session, err := h.service.Login(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		apperror.WriteJSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful",
			Token:   session.Token,
			User:    session.User,
		})
	}
}

// HandleMe godoc
// @Summary Current user
// @Description Returns the user the bearer token belongs to.
// @Tags Auth
// @Produce json
// @Success 200 {object} auth.AuthResponse "User retrieved successfully"
// @Failure 401 {object} apperror.ErrorResponse "Missing, expired or invalid token"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /auth/me [get]
// @Security BearerAuth
func (h *Handlers) HandleMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			apperror.WriteError(w, r, apperror.NewAuthError(MsgTokenRequired, nil))
			return
		}

		user, err := h.service.Me(r.Context(), userID)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		apperror.WriteJSON(w, http.StatusOK, AuthResponse{
			Message: "User retrieved successfully",
			User:    user,
		})
	}
}
