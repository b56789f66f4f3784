package models

import "time"

// User is a registered account. Admins are promoted out of band.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:24"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null"`
	Name        string    `json:"name"`
	Password    string    `json:"-"` // bcrypt hash, never serialized
	Photo       string    `json:"photo"`
	DOB         string    `json:"dob"`
	IsAdmin     bool      `json:"isAdmin" gorm:"not null;default:false"`
	FirebaseUID string    `json:"-" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	Photo    string `json:"photo"`
	DOB      string `json:"dob" validate:"required,min=3"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserRequest carries the self-editable profile fields. Photo and DOB
// are left unchanged when absent.
type UpdateUserRequest struct {
	Name  string  `json:"name" validate:"required"`
	Photo *string `json:"photo"`
	DOB   *string `json:"dob" validate:"omitempty,min=3"`
}

type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// TokenPair is the login response.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
}
