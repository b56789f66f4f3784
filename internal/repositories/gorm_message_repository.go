package repositories

import (
	"context"

	"github.com/anonto42/folio/backend/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository implements MessageRepository over GORM
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = newID()
	}
	return gormErr(r.db.WithContext(ctx).Create(msg).Error)
}

func (r *GormMessageRepository) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	if !IsValidID(id) {
		return nil, ErrInvalidID
	}
	var msg models.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, gormErr(err)
	}
	return &msg, nil
}

func (r *GormMessageRepository) GetMessages(ctx context.Context) ([]models.Message, error) {
	msgs := []models.Message{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *GormMessageRepository) DeleteMessage(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
