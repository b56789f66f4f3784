package repositories

import (
	"context"

	"github.com/anonto42/folio/backend/internal/models"
	"gorm.io/gorm"
)

// GormCommentRepository implements CommentRepository over GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *GormCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = newID()
	}
	return gormErr(r.db.WithContext(ctx).Create(comment).Error)
}

func (r *GormCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	if !IsValidID(id) {
		return nil, ErrInvalidID
	}
	var comment models.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, gormErr(err)
	}
	return &comment, nil
}

// GetComments retrieves every comment, newest first
func (r *GormCommentRepository) GetComments(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentsByBlogID retrieves the comments of one blog in posting order
func (r *GormCommentRepository) GetCommentsByBlogID(ctx context.Context, blogID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	if err := r.db.WithContext(ctx).Where("blog_id = ?", blogID).Order("created_at asc").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *GormCommentRepository) CountByBlogID(ctx context.Context, blogID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("blog_id = ?", blogID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCommentRepository) DeleteComment(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormCommentRepository) DeleteByBlogID(ctx context.Context, blogID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("blog_id = ?", blogID).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
