package services

import (
	"context"
	"errors"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories"
)

const (
	msgLikeExists  = "Like you're trying to add on this blog already exist, you can't add another"
	msgLikeMissing = "Can't Remove Like which doesn't exist on this blog"
)

// LikeService guards the (user, blog) like pair and keeps the blog's like
// counter equal to the number of like records.
type LikeService struct {
	blogs repositories.BlogRepository
	likes repositories.LikeRepository
}

func NewLikeService(store *repositories.Store) *LikeService {
	return &LikeService{blogs: store.Blogs, likes: store.Likes}
}

// HasLiked reports whether user has liked the blog.
func (s *LikeService) HasLiked(ctx context.Context, user models.Principal, blogID string) (bool, error) {
	if _, err := requireBlog(ctx, s.blogs, blogID); err != nil {
		return false, err
	}
	liked, err := s.likes.HasUserLikedBlog(ctx, blogID, user.UserID)
	if err != nil {
		return false, errs.Internal(err)
	}
	return liked, nil
}

// AddLike returns the blog's like count after the insert.
func (s *LikeService) AddLike(ctx context.Context, user models.Principal, blogID string) (int64, error) {
	if _, err := requireBlog(ctx, s.blogs, blogID); err != nil {
		return 0, err
	}

	liked, err := s.likes.HasUserLikedBlog(ctx, blogID, user.UserID)
	if err != nil {
		return 0, errs.Internal(err)
	}
	if liked {
		return 0, errs.Conflict(msgLikeExists)
	}

	if err := s.likes.CreateLike(ctx, &models.Like{BlogID: blogID, UserID: user.UserID}); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return 0, errs.Conflict(msgLikeExists)
		}
		return 0, errs.Internal(err)
	}

	return recount(ctx, s.likes.CountByBlogID, s.blogs.SetLikesCount, blogID)
}

// RemoveLike returns the blog's like count after the delete.
func (s *LikeService) RemoveLike(ctx context.Context, user models.Principal, blogID string) (int64, error) {
	if _, err := requireBlog(ctx, s.blogs, blogID); err != nil {
		return 0, err
	}

	if err := s.likes.DeleteLike(ctx, blogID, user.UserID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, errs.NotFound(msgLikeMissing)
		}
		return 0, errs.Internal(err)
	}

	return recount(ctx, s.likes.CountByBlogID, s.blogs.SetLikesCount, blogID)
}
