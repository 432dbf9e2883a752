package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service wraps customer business rules around the repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, searchTerm string) ([]Customer, error) {
	return s.repo.List(ctx, strings.TrimSpace(searchTerm))
}

func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Create adds a customer after the duplicate-identity guard. The guard gives
// early feedback; the unique index still backstops concurrent submissions.
func (s *Service) Create(ctx context.Context, input CustomerInput) (int64, error) {
	if err := s.validate.Struct(input); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	exists, err := s.repo.Exists(ctx, input.SerialNo, input.Name, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicate
	}
	return s.repo.Create(ctx, fromInput(input))
}

// Update edits a customer, excluding itself from the identity guard.
func (s *Service) Update(ctx context.Context, id int64, input CustomerInput) error {
	if id <= 0 {
		return ErrNotFound
	}
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	exists, err := s.repo.Exists(ctx, input.SerialNo, input.Name, id)
	if err != nil {
		return err
	}
	if exists {
		return ErrDuplicate
	}
	return s.repo.Update(ctx, id, fromInput(input))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func fromInput(input CustomerInput) Customer {
	return Customer{
		SerialNo:        strings.TrimSpace(input.SerialNo),
		Name:            strings.TrimSpace(input.Name),
		Phone:           strings.TrimSpace(input.Phone),
		HomeAddress:     strings.TrimSpace(input.HomeAddress),
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		City:            strings.TrimSpace(input.City),
		StateRegion:     strings.TrimSpace(input.StateRegion),
		Country:         strings.TrimSpace(input.Country),
	}
}
