package delivery

import (
	"context"
	"strings"
	"time"

	"github.com/ap-collections/backoffice/internal/orders"
)

// Service drives the delivery workflow over existing orders.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context, f Filter) ([]orders.OrderWithDetails, error) {
	f.Search = strings.TrimSpace(f.Search)
	return s.repo.List(ctx, f)
}

// Overdue lists undelivered orders due today or earlier.
func (s *Service) Overdue(ctx context.Context) ([]orders.OrderWithDetails, error) {
	today := truncateToDay(s.now())
	return s.repo.List(ctx, Filter{State: StateUndelivered, DueBy: &today})
}

// MarkDelivered flags the order delivered as of today.
func (s *Service) MarkDelivered(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return ErrNotFound
	}
	return s.repo.MarkDelivered(ctx, orderID, truncateToDay(s.now()))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
