package repositories

import (
	"context"
	"time"

	"github.com/anonto42/folio/backend/internal/models"
	"gorm.io/gorm"
)

// GormBlogRepository implements BlogRepository over GORM
type GormBlogRepository struct {
	db *gorm.DB
}

// NewGormBlogRepository creates a new GormBlogRepository
func NewGormBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

func (r *GormBlogRepository) CreateBlog(ctx context.Context, blog *models.Blog) error {
	if blog.ID == "" {
		blog.ID = newID()
	}
	return gormErr(r.db.WithContext(ctx).Create(blog).Error)
}

func (r *GormBlogRepository) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	if !IsValidID(id) {
		return nil, ErrInvalidID
	}
	var blog models.Blog
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&blog).Error; err != nil {
		return nil, gormErr(err)
	}
	return &blog, nil
}

// GetBlogs retrieves all blogs, newest first
func (r *GormBlogRepository) GetBlogs(ctx context.Context) ([]models.Blog, error) {
	blogs := []models.Blog{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *GormBlogRepository) UpdateBlog(ctx context.Context, blog *models.Blog) error {
	blog.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Blog{}).Where("id = ?", blog.ID).Updates(map[string]interface{}{
		"title":       blog.Title,
		"description": blog.Description,
		"image_url":   blog.ImageURL,
		"updated_at":  blog.UpdatedAt,
	})
	if res.Error != nil {
		return gormErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBlogRepository) DeleteBlog(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormBlogRepository) HasDuplicate(ctx context.Context, title, description, imageURL, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Blog{})
	if imageURL != "" {
		q = q.Where("(title = ? OR description = ? OR image_url = ?)", title, description, imageURL)
	} else {
		q = q.Where("(title = ? OR description = ?)", title, description)
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormBlogRepository) SetCommentsCount(ctx context.Context, id string, count int64) error {
	return r.setCounter(ctx, id, "comments", count)
}

func (r *GormBlogRepository) SetLikesCount(ctx context.Context, id string, count int64) error {
	return r.setCounter(ctx, id, "likes", count)
}

func (r *GormBlogRepository) setCounter(ctx context.Context, id, column string, count int64) error {
	res := r.db.WithContext(ctx).Model(&models.Blog{}).Where("id = ?", id).UpdateColumn(column, count)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
