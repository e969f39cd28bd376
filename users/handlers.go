package users

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/minilinkedin-go/apperror"
)

// UserHandlers provides HTTP handlers for profiles.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// RegisterRoutes mounts the profile routes on r.
func (h *UserHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/{userId}", h.HandleGetUserProfile())
}

// HandleGetUserProfile godoc
// @Summary Get a user's profile
// @Description Returns a user's public profile. The password is never included.
// @Tags users
// @Produce json
// @Param userId path string true "User ID (UUID)"
// @Success 200 {object} users.ProfileResponse "User retrieved successfully"
// @Failure 404 {object} apperror.ErrorResponse "User not found"
// @Failure 500 {object} apperror.ErrorResponse "Failed to fetch user profile"
// @Router /users/{userId} [get]
func (h *UserHandlers) HandleGetUserProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.service.GetUserProfile(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}

		apperror.WriteJSON(w, http.StatusOK, ProfileResponse{
			Message: "User retrieved successfully",
			Data:    user,
		})
	}
}
