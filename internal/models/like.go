package models

import "time"

// Like represents a user's like on a blog. At most one per (blog, user).
type Like struct {
	ID        string    `json:"id" gorm:"primaryKey;size:24"`
	BlogID    string    `json:"blogId" gorm:"uniqueIndex:idx_like_blog_user;size:24"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_like_blog_user;size:24"`
	CreatedAt time.Time `json:"createdAt"`
}
