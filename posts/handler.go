package posts

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/minilinkedin-go/apperror"
	"github.com/user/minilinkedin-go/auth"
	"github.com/user/minilinkedin-go/validation"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service  *PostService
	validate *validation.Validator
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *PostService, validate *validation.Validator) *PostHandler {
	return &PostHandler{service: service, validate: validate}
}

// RegisterRoutes registers the post routes on router. Creating and
// deleting go through authMiddleware; reading is public.
func (h *PostHandler) RegisterRoutes(router chi.Router, authMiddleware func(http.Handler) http.Handler) {
	router.Get("/", h.listPosts)
	router.With(authMiddleware).Post("/", h.createPost)
	// Static segment, matched before /{postId}.
	router.Get("/user/{userId}", h.listUserPosts)
	router.Get("/{postId}", h.getPost)
	router.With(authMiddleware).Delete("/{postId}", h.deletePost)
}

// listPosts godoc
// @Summary List posts
// @Description Returns every post, newest first, with its author.
// @Tags posts
// @Produce json
// @Success 200 {object} posts.PostListResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts [get]
func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, PostListResponse{
		Message: "Posts retrieved successfully",
		Data:    posts,
	})
}

// createPost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body posts.CreatePostRequest true "Post content"
// @Success 201 {object} posts.PostResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts [post]
// @Security BearerAuth
func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		apperror.WriteError(w, r, apperror.NewAuthError(auth.MsgTokenRequired, nil))
		return
	}

	var req CreatePostRequest
	if err := h.validate.Bind(r, &req); err != nil {
		apperror.WriteError(w, r, err)
		return
	}

	post, err := h.service.CreatePost(r.Context(), userID, req.Content)
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusCreated, PostResponse{
		Message: "Post created successfully",
		Data:    post,
	})
}

// listUserPosts godoc
// @Summary List a user's posts
// @Tags posts
// @Produce json
// @Param userId path string true "Author ID (UUID)"
// @Success 200 {object} posts.PostListResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts/user/{userId} [get]
func (h *PostHandler) listUserPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListUserPosts(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, PostListResponse{
		Message: "User posts retrieved successfully",
		Data:    posts,
	})
}

// getPost godoc
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID (UUID)"
// @Success 200 {object} posts.PostResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts/{postId} [get]
func (h *PostHandler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, PostResponse{
		Message: "Post retrieved successfully",
		Data:    post,
	})
}

// deletePost godoc
// @Summary Delete a post
// @Description Only the post's author may delete it.
// @Tags posts
// @Produce json
// @Param postId path string true "Post ID (UUID)"
// @Success 200 {object} posts.MessageResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /posts/{postId} [delete]
// @Security BearerAuth
func (h *PostHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		apperror.WriteError(w, r, apperror.NewAuthError(auth.MsgTokenRequired, nil))
		return
	}

	if err := h.service.DeletePost(r.Context(), chi.URLParam(r, "postId"), userID); err != nil {
		apperror.WriteError(w, r, err)
		return
	}
	apperror.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted successfully"})
}
