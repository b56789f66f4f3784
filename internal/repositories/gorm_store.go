package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/folio/backend/internal/models"
	"gorm.io/gorm"
)

// NewGormStore wires every repository to a relational database (PostgreSQL
// in production, SQLite for local runs and tests) after migrating the schema.
func NewGormStore(db *gorm.DB) (*Store, error) {
	if err := MigrateGorm(db); err != nil {
		return nil, err
	}
	return &Store{
		Users:    NewGormUserRepository(db),
		Blogs:    NewGormBlogRepository(db),
		Comments: NewGormCommentRepository(db),
		Likes:    NewGormLikeRepository(db),
		Messages: NewGormMessageRepository(db),
	}, nil
}

// MigrateGorm auto-migrates every model, including the unique indexes on
// user email and (blog, user) likes.
func MigrateGorm(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Comment{},
		&models.Like{},
		&models.Message{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func gormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// isUniqueViolation catches drivers that do not translate their errors.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
