package services

import (
	"context"
	"strings"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/anonto42/folio/backend/internal/validators"
)

const (
	msgInvalidCommentID = "Invalid comment id"
	msgCommentNotFound  = "Comment not found"
)

// CommentService implements posting, listing and moderating comments.
type CommentService struct {
	blogs    repositories.BlogRepository
	comments repositories.CommentRepository
}

func NewCommentService(store *repositories.Store) *CommentService {
	return &CommentService{blogs: store.Blogs, comments: store.Comments}
}

// ListComments returns every comment for the dashboard.
func (s *CommentService) ListComments(ctx context.Context) ([]models.Comment, error) {
	comments, err := s.comments.GetComments(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return comments, nil
}

// ListBlogComments returns the comments of an existing blog. A blog with no
// comments yields an empty list.
func (s *CommentService) ListBlogComments(ctx context.Context, blogID string) ([]models.Comment, error) {
	if _, err := requireBlog(ctx, s.blogs, blogID); err != nil {
		return nil, err
	}
	comments, err := s.comments.GetCommentsByBlogID(ctx, blogID)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return comments, nil
}

// PostComment stores a comment with a snapshot of the author's name and
// refreshes the blog's comment counter.
func (s *CommentService) PostComment(ctx context.Context, author models.Principal, blogID string, req models.CreateCommentRequest) (*models.Comment, error) {
	if err := requireID(blogID, MsgInvalidBlogID); err != nil {
		return nil, err
	}
	req.Description = strings.TrimSpace(req.Description)
	if err := validators.Check(req); err != nil {
		return nil, err
	}
	if _, err := requireBlog(ctx, s.blogs, blogID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		CreatorID:   author.UserID,
		CreatorName: author.Name,
		BlogID:      blogID,
		Description: req.Description,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, errs.Internal(err)
	}

	if _, err := recount(ctx, s.comments.CountByBlogID, s.blogs.SetCommentsCount, blogID); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment and refreshes its blog's counter.
func (s *CommentService) DeleteComment(ctx context.Context, id string) error {
	if err := requireID(id, msgInvalidCommentID); err != nil {
		return err
	}
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return storeErr(err, msgInvalidCommentID, msgCommentNotFound)
	}
	if err := s.comments.DeleteComment(ctx, id); err != nil {
		return storeErr(err, msgInvalidCommentID, msgCommentNotFound)
	}

	_, err = recount(ctx, s.comments.CountByBlogID, s.blogs.SetCommentsCount, comment.BlogID)
	return err
}
