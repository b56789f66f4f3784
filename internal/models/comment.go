package models

import "time"

// Comment represents a comment on a blog
type Comment struct {
	ID          string    `json:"id" gorm:"primaryKey;size:24"`
	CreatorID   string    `json:"creatorId" gorm:"index;size:24"`
	CreatorName string    `json:"creatorName"` // snapshot of the author's name at posting time
	BlogID      string    `json:"blogId" gorm:"index;size:24"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateCommentRequest defines the request body for commenting on a blog
type CreateCommentRequest struct {
	Description string `json:"description" validate:"required"`
}
