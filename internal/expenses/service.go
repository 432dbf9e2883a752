package expenses

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service wraps expense business rules.
type Service struct {
	repo     Repository
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) List(ctx context.Context, req ListExpensesRequest) ([]ExpenseWithType, error) {
	req.SearchTerm = strings.TrimSpace(req.SearchTerm)
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input ExpenseInput) (int64, error) {
	if err := s.validate.Struct(input); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return s.repo.Create(ctx, fromInput(input))
}

func (s *Service) Update(ctx context.Context, id int64, input ExpenseInput) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Update(ctx, id, fromInput(input))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func fromInput(input ExpenseInput) Expense {
	return Expense{
		Date:          input.Date,
		ExpenseTypeID: input.ExpenseTypeID,
		Description:   strings.TrimSpace(input.Description),
		Amount:        input.Amount,
	}
}
