package repositories

import (
	"github.com/quodex/invizo/app/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByUserID looks up a user by public id.
func (r *UserRepository) FindByUserID(userID string) (models.User, error) {
	var user models.User
	err := r.db.Where("user_id = ?", userID).First(&user).Error
	return user, err
}

// ExistsByEmail reports whether an account already uses email.
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// All returns every user, newest first.
func (r *UserRepository) All() ([]models.User, error) {
	var users []models.User
	err := r.db.Order("created_at desc").Find(&users).Error
	return users, err
}

// DeleteByUserID removes a user by public id. Returns
// gorm.ErrRecordNotFound when no row matched.
func (r *UserRepository) DeleteByUserID(userID string) error {
	res := r.db.Where("user_id = ?", userID).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
