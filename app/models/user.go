package models

import "gorm.io/gorm"

// Roles recognised by the access policy.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is an account that can sign in. UserID is the public identifier;
// the numeric gorm.Model ID never leaves the database layer.
type User struct {
	gorm.Model
	UserID   string `gorm:"uniqueIndex;size:36;not null" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // hashed, never serialised
	Role     string `gorm:"size:50;default:USER" json:"role"`
}
