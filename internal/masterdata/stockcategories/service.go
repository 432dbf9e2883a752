package stockcategories

import (
	"context"
	"strings"

	"github.com/ap-collections/backoffice/internal/masterdata/shared"
)

// Service wraps stock-category business rules.
type Service struct {
	repo Repository
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, searchTerm string) ([]StockCategory, error) {
	return s.repo.List(ctx, strings.TrimSpace(searchTerm))
}

func (s *Service) Get(ctx context.Context, id int64) (StockCategory, error) {
	if id <= 0 {
		return StockCategory{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, shared.ErrInvalid
	}
	exists, err := s.repo.NameExists(ctx, name, 0)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, shared.ErrDuplicate
	}
	return s.repo.Create(ctx, name)
}

func (s *Service) Update(ctx context.Context, id int64, name string) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.ErrInvalid
	}
	exists, err := s.repo.NameExists(ctx, name, id)
	if err != nil {
		return err
	}
	if exists {
		return shared.ErrDuplicate
	}
	return s.repo.Update(ctx, id, name)
}

// Delete refuses to remove a stock category that orders still reference.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	refs, err := s.repo.ReferenceCount(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return shared.ErrInUse
	}
	return s.repo.Delete(ctx, id)
}
