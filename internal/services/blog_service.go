package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/folio/backend/internal/errs"
	"github.com/anonto42/folio/backend/internal/models"
	"github.com/anonto42/folio/backend/internal/repositories"
	"github.com/anonto42/folio/backend/internal/validators"
	"github.com/anonto42/folio/backend/pkg/storage"
	"github.com/rs/zerolog/log"
)

const (
	msgBlogExists       = "Blog currently exist in database"
	msgBlogDetailsTaken = "The details provided belong to another blog in the database"
	msgNoImage          = "No image provided."
	msgUnsupportedImage = "Unsupported Media Type."
	blogImagePrefix     = "blogs"
)

// ImageUpload is an image file sent with a blog write.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// BlogService implements the dashboard blog flows and public blog reads.
type BlogService struct {
	blogs    repositories.BlogRepository
	comments repositories.CommentRepository
	likes    repositories.LikeRepository
	uploader storage.Uploader
}

// NewBlogService creates a BlogService. uploader may be nil when image
// uploads are disabled; blogs then need an imageUrl.
func NewBlogService(store *repositories.Store, uploader storage.Uploader) *BlogService {
	return &BlogService{
		blogs:    store.Blogs,
		comments: store.Comments,
		likes:    store.Likes,
		uploader: uploader,
	}
}

func (s *BlogService) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	blogs, err := s.blogs.GetBlogs(ctx)
	if err != nil {
		return nil, errs.Internal(err)
	}
	return blogs, nil
}

func (s *BlogService) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	if err := requireID(id, MsgInvalidBlogID); err != nil {
		return nil, err
	}
	blog, err := s.blogs.GetBlogByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, MsgInvalidBlogID, MsgBlogNotFound)
	}
	return blog, nil
}

// CreateBlog validates, rejects duplicates with 409, stores the image (if
// any) and inserts the blog.
func (s *BlogService) CreateBlog(ctx context.Context, req models.BlogRequest, image *ImageUpload) (*models.Blog, error) {
	prepared, err := s.prepare(req, image)
	if err != nil {
		return nil, err
	}

	dup, err := s.blogs.HasDuplicate(ctx, prepared.req.Title, prepared.req.Description, prepared.req.ImageURL, "")
	if err != nil {
		return nil, errs.Internal(err)
	}
	if dup {
		return nil, errs.Conflict(msgBlogExists)
	}

	imageURL, err := s.storeImage(ctx, prepared)
	if err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:       prepared.req.Title,
		Description: prepared.req.Description,
		ImageURL:    imageURL,
	}
	if err := s.blogs.CreateBlog(ctx, blog); err != nil {
		return nil, errs.Internal(err)
	}
	return blog, nil
}

// UpdateBlog checks, in order: id format (400), fields (422), collisions
// with other blogs (409), existence (404).
func (s *BlogService) UpdateBlog(ctx context.Context, id string, req models.BlogRequest, image *ImageUpload) (*models.Blog, error) {
	if err := requireID(id, MsgInvalidBlogID); err != nil {
		return nil, err
	}

	prepared, err := s.prepare(req, image)
	if err != nil {
		return nil, err
	}

	dup, err := s.blogs.HasDuplicate(ctx, prepared.req.Title, prepared.req.Description, prepared.req.ImageURL, id)
	if err != nil {
		return nil, storeErr(err, MsgInvalidBlogID, MsgBlogNotFound)
	}
	if dup {
		return nil, errs.Conflict(msgBlogDetailsTaken)
	}

	blog, err := s.blogs.GetBlogByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, MsgInvalidBlogID, MsgBlogNotFound)
	}

	imageURL, err := s.storeImage(ctx, prepared)
	if err != nil {
		return nil, err
	}

	blog.Title = prepared.req.Title
	blog.Description = prepared.req.Description
	blog.ImageURL = imageURL
	if err := s.blogs.UpdateBlog(ctx, blog); err != nil {
		return nil, storeErr(err, MsgInvalidBlogID, MsgBlogNotFound)
	}
	return blog, nil
}

// DeleteBlog removes the blog with its comments and likes and returns the
// number of comments removed.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) (int64, error) {
	if err := requireID(id, MsgInvalidBlogID); err != nil {
		return 0, err
	}
	if err := s.blogs.DeleteBlog(ctx, id); err != nil {
		return 0, storeErr(err, MsgInvalidBlogID, MsgBlogNotFound)
	}

	removed, err := s.comments.DeleteByBlogID(ctx, id)
	if err != nil {
		return 0, errs.Internal(fmt.Errorf("delete comments of blog %s: %w", id, err))
	}
	if n, err := s.likes.DeleteByBlogID(ctx, id); err != nil {
		log.Error().Err(err).Str("blogId", id).Msg("Failed to delete likes of deleted blog")
	} else if n > 0 {
		log.Debug().Str("blogId", id).Int64("likes", n).Msg("Deleted likes of deleted blog")
	}
	return removed, nil
}

type preparedBlog struct {
	req         models.BlogRequest
	image       *ImageUpload
	contentType string
	ext         string
}

func (s *BlogService) prepare(req models.BlogRequest, image *ImageUpload) (*preparedBlog, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.ImageURL = strings.TrimSpace(req.ImageURL)
	if err := validators.Check(req); err != nil {
		return nil, err
	}

	p := &preparedBlog{req: req}
	if image == nil {
		if req.ImageURL == "" {
			return nil, errs.Validation(validators.ValidationMessage, map[string]string{"imageUrl": "is required"})
		}
		return p, nil
	}

	if s.uploader == nil || len(image.Data) == 0 {
		return nil, errs.UnsupportedMedia(msgNoImage)
	}
	contentType, ext, ok := storage.DetectImage(image.Data)
	if !ok {
		return nil, errs.UnsupportedMedia(msgUnsupportedImage)
	}
	p.image = image
	p.contentType = contentType
	p.ext = ext
	// an uploaded file replaces any URL sent alongside it
	p.req.ImageURL = ""
	return p, nil
}

func (s *BlogService) storeImage(ctx context.Context, p *preparedBlog) (string, error) {
	if p.image == nil {
		return p.req.ImageURL, nil
	}
	url, err := s.uploader.Upload(ctx, storage.NewKey(blogImagePrefix, p.ext), p.image.Data, p.contentType)
	if err != nil {
		return "", errs.Internal(err)
	}
	return url, nil
}

// requireBlog loads a blog for the comment and like flows.
func requireBlog(ctx context.Context, blogs repositories.BlogRepository, id string) (*models.Blog, error) {
	if err := requireID(id, MsgInvalidBlogID); err != nil {
		return nil, err
	}
	blog, err := blogs.GetBlogByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, MsgInvalidBlogID, MsgBlogNotFound)
	}
	return blog, nil
}

// recount overwrites a denormalized counter from its source collection. A
// blog deleted in the meantime is not an error.
func recount(ctx context.Context, count func(context.Context, string) (int64, error), set func(context.Context, string, int64) error, blogID string) (int64, error) {
	n, err := count(ctx, blogID)
	if err != nil {
		return 0, errs.Internal(err)
	}
	if err := set(ctx, blogID, n); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return 0, errs.Internal(err)
	}
	return n, nil
}
