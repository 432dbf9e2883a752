package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ap-collections/backoffice/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates username/password credentials and returns the user
// with the role's permission map attached.
func (s *Service) Authenticate(ctx context.Context, userName, password string) (*User, error) {
	user, err := s.repo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}
