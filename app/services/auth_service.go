package services

import (
	"fmt"

	"github.com/quodex/invizo/app/repositories"
	"github.com/quodex/invizo/pkg/auth"
	"github.com/quodex/invizo/pkg/logger"
)

// AuthService authenticates users and issues tokens.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// LoginResult is returned to the client on a successful login.
type LoginResult struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

// Login checks the credentials and returns a signed token. Unknown email
// and wrong password intentionally yield the same error.
func (s *AuthService) Login(email, password string) (LoginResult, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		logger.Warn("auth: login failed", "email", email)
		return LoginResult{}, wrap(ErrUnauthorized, fmt.Errorf("bad credentials"))
	}

	if !auth.CheckPassword(user.Password, password) {
		logger.Warn("auth: login failed", "email", email)
		return LoginResult{}, wrap(ErrUnauthorized, fmt.Errorf("bad credentials"))
	}

	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: sign token: %w", err)
	}

	logger.Info("auth: login ok", "email", user.Email, "role", user.Role)
	return LoginResult{Email: user.Email, Role: user.Role, Token: token}, nil
}

// Encode returns the bcrypt hash of plain. Exposed as a bootstrap helper
// for seeding credentials.
func (s *AuthService) Encode(plain string) (string, error) {
	return auth.HashPassword(plain)
}
