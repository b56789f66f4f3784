package models

import "time"

// Message is a contact-form submission.
type Message struct {
	ID          string    `json:"id" gorm:"primaryKey;size:24"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreateMessageRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Description string `json:"description" validate:"required"`
}
