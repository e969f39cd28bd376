package posts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/user/minilinkedin-go/apperror"
)

// Client-facing messages.
const (
	MsgPostNotFound   = "Post not found"
	MsgNotAuthor      = "You can only delete your own posts"
	MsgUserNotFound   = "User not found"
	MsgListFailed     = "Failed to retrieve posts"
	MsgCreateFailed   = "Failed to create post"
	MsgListUserFailed = "Failed to retrieve user posts"
	MsgGetFailed      = "Failed to retrieve post"
	MsgDeleteFailed   = "Failed to delete post"
)

// PostService holds the feed's business rules on top of a Store.
// Every error it returns is an *apperror.AppError.
type PostService struct {
	store Store
}

// NewPostService creates a new PostService.
func NewPostService(store Store) *PostService {
	return &PostService{store: store}
}

// ListPosts returns every post, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError(MsgListFailed, err)
	}
	return posts, nil
}

// ListUserPosts returns one author's posts, newest first. An id that is
// not a UUID cannot own posts, so it yields an empty list.
func (s *PostService) ListUserPosts(ctx context.Context, userID string) ([]Post, error) {
	authorID, err := uuid.Parse(userID)
	if err != nil {
		return []Post{}, nil
	}
	posts, err := s.store.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperror.NewDatabaseError(MsgListUserFailed, err)
	}
	return posts, nil
}

// GetPost returns a single post.
func (s *PostService) GetPost(ctx context.Context, postID string) (*Post, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, apperror.NewNotFoundError(MsgPostNotFound, err)
	}
	post, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			return nil, apperror.NewNotFoundError(MsgPostNotFound, err)
		}
		return nil, apperror.NewDatabaseError(MsgGetFailed, err)
	}
	return post, nil
}

// CreatePost stores content under authorID. content is expected to be
// normalized and validated.
func (s *PostService) CreatePost(ctx context.Context, authorID, content string) (*Post, error) {
	id, err := uuid.Parse(authorID)
	if err != nil {
		return nil, apperror.NewNotFoundError(MsgUserNotFound, err)
	}
	post, err := s.store.Create(ctx, id, content)
	if err != nil {
		// The token outlived its user.
		if errors.Is(err, ErrAuthorNotFound) {
			return nil, apperror.NewNotFoundError(MsgUserNotFound, err)
		}
		return nil, apperror.NewDatabaseError(MsgCreateFailed, err)
	}

	zerolog.Ctx(ctx).Info().Str("post_id", post.ID.String()).Str("author_id", authorID).Msg("post created")
	return post, nil
}

// DeletePost removes postID if requesterID is its author.
func (s *PostService) DeletePost(ctx context.Context, postID, requesterID string) error {
	id, err := uuid.Parse(postID)
	if err != nil {
		return apperror.NewNotFoundError(MsgPostNotFound, err)
	}
	// A requester id that is not a UUID matches no author.
	requester, _ := uuid.Parse(requesterID)

	err = s.store.DeleteOwned(ctx, id, requester)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrPostNotFound):
		return apperror.NewNotFoundError(MsgPostNotFound, err)
	case errors.Is(err, ErrNotAuthor):
		return apperror.NewForbiddenError(MsgNotAuthor, err)
	default:
		return apperror.NewDatabaseError(MsgDeleteFailed, err)
	}
}
