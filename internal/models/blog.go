package models

import "time"

// Blog is a portfolio post. Comments and Likes are denormalized counters
// recomputed from their collections after every write.
type Blog struct {
	ID          string    `json:"id" gorm:"primaryKey;size:24"`
	Title       string    `json:"title" gorm:"index"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl" gorm:"index"`
	Comments    int64     `json:"comments" gorm:"not null;default:0"`
	Likes       int64     `json:"likes" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BlogRequest is shared by create and update. ImageURL may be empty when an
// image file is uploaded with the request.
type BlogRequest struct {
	Title       string `json:"title" form:"title" validate:"required,min=5"`
	Description string `json:"description" form:"description" validate:"required,min=5"`
	ImageURL    string `json:"imageUrl" form:"imageUrl"`
}
