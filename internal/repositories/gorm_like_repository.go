package repositories

import (
	"context"

	"github.com/anonto42/folio/backend/internal/models"
	"gorm.io/gorm"
)

// GormLikeRepository implements LikeRepository over GORM
type GormLikeRepository struct {
	db *gorm.DB
}

// NewGormLikeRepository creates a new GormLikeRepository
func NewGormLikeRepository(db *gorm.DB) *GormLikeRepository {
	return &GormLikeRepository{db: db}
}

// CreateLike creates a new like. The composite unique index turns a second
// like for the same pair into ErrDuplicate.
func (r *GormLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	if like.ID == "" {
		like.ID = newID()
	}
	return gormErr(r.db.WithContext(ctx).Create(like).Error)
}

// HasUserLikedBlog checks if a user has liked a specific blog
func (r *GormLikeRepository) HasUserLikedBlog(ctx context.Context, blogID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("blog_id = ? AND user_id = ?", blogID, userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteLike deletes a like
func (r *GormLikeRepository) DeleteLike(ctx context.Context, blogID, userID string) error {
	res := r.db.WithContext(ctx).Where("blog_id = ? AND user_id = ?", blogID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByBlogID retrieves the count of likes for a specific blog
func (r *GormLikeRepository) CountByBlogID(ctx context.Context, blogID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormLikeRepository) DeleteByBlogID(ctx context.Context, blogID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("blog_id = ?", blogID).Delete(&models.Like{})
	return res.RowsAffected, res.Error
}
