package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/quodex/invizo/app/models"
	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/pkg/auth"
	"github.com/quodex/invizo/pkg/logger"
	"gorm.io/gorm"
)

// UserService manages staff accounts. All operations are admin-only at
// the routing layer.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

// CreateUserInput is the payload for registering a new account.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"nullable,in=USER,ADMIN"`
}

// Create registers a new account with a hashed password.
func (s *UserService) Create(in CreateUserInput) (models.User, error) {
	taken, err := s.users.ExistsByEmail(in.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("user: check email: %w", err)
	}
	if taken {
		return models.User{}, wrap(ErrConflict, fmt.Errorf("email %s already registered", in.Email))
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("user: hash password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		UserID:   uuid.NewString(),
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("user: create: %w", err)
	}

	logger.Info("user: created", "user_id", user.UserID, "email", user.Email, "role", user.Role)
	return user, nil
}

// List returns all accounts.
func (s *UserService) List() ([]models.User, error) {
	return s.users.All()
}

// Delete removes an account by public id.
func (s *UserService) Delete(userID string) error {
	err := s.users.DeleteByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(ErrNotFound, fmt.Errorf("user %s", userID))
	}
	if err != nil {
		return fmt.Errorf("user: delete: %w", err)
	}
	logger.Info("user: deleted", "user_id", userID)
	return nil
}
