package seeders

import (
	"github.com/google/uuid"
	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/config"
	"github.com/quodex/invizo/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the bootstrap admin account if no account uses the
// configured email yet. Credentials come from ADMIN_EMAIL and
// ADMIN_PASSWORD; nothing is seeded when they are unset.
func SeedAdmin(db *gorm.DB) error {
	email := config.Get("ADMIN_EMAIL", "")
	password := config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		UserID:   uuid.NewString(),
		Name:     "Administrator",
		Email:    email,
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}
