package delivery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ap-collections/backoffice/internal/orders"
)

type memoryRepo struct {
	rows       map[int64]orders.OrderWithDetails
	lastFilter Filter
}

func (m *memoryRepo) List(_ context.Context, f Filter) ([]orders.OrderWithDetails, error) {
	m.lastFilter = f
	var out []orders.OrderWithDetails
	for _, o := range m.rows {
		switch f.State {
		case StateUndelivered:
			if o.IsDelivered {
				continue
			}
		case StateDelivered:
			if !o.IsDelivered {
				continue
			}
		}
		if f.DueBy != nil && o.DeliveryDate.After(*f.DueBy) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *memoryRepo) MarkDelivered(_ context.Context, orderID int64, deliveredOn time.Time) error {
	o, ok := m.rows[orderID]
	if !ok {
		return ErrNotFound
	}
	o.IsDelivered = true
	o.DeliveryDate = deliveredOn
	m.rows[orderID] = o
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(repo *memoryRepo) *Service {
	return &Service{repo: repo, now: func() time.Time {
		return time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC)
	}}
}

func TestMarkDeliveredSetsToday(t *testing.T) {
	repo := &memoryRepo{rows: map[int64]orders.OrderWithDetails{
		1: {Order: orders.Order{ID: 1, DeliveryDate: day(2024, 5, 20)}},
	}}
	svc := newTestService(repo)

	require.NoError(t, svc.MarkDelivered(context.Background(), 1))
	assert.True(t, repo.rows[1].IsDelivered)
	assert.Equal(t, day(2024, 5, 10), repo.rows[1].DeliveryDate)
}

func TestMarkDeliveredIdempotent(t *testing.T) {
	repo := &memoryRepo{rows: map[int64]orders.OrderWithDetails{
		1: {Order: orders.Order{ID: 1, IsDelivered: true, DeliveryDate: day(2024, 5, 1)}},
	}}
	svc := newTestService(repo)

	require.NoError(t, svc.MarkDelivered(context.Background(), 1))
	assert.True(t, repo.rows[1].IsDelivered)
	assert.Equal(t, day(2024, 5, 10), repo.rows[1].DeliveryDate)
}

func TestMarkDeliveredUnknownOrder(t *testing.T) {
	svc := newTestService(&memoryRepo{rows: map[int64]orders.OrderWithDetails{}})
	assert.ErrorIs(t, svc.MarkDelivered(context.Background(), 99), ErrNotFound)
}

func TestOverdueFiltersPastDueUndelivered(t *testing.T) {
	repo := &memoryRepo{rows: map[int64]orders.OrderWithDetails{
		1: {Order: orders.Order{ID: 1, DeliveryDate: day(2024, 5, 1)}},
		2: {Order: orders.Order{ID: 2, DeliveryDate: day(2024, 5, 25)}},
		3: {Order: orders.Order{ID: 3, IsDelivered: true, DeliveryDate: day(2024, 5, 1)}},
	}}
	svc := newTestService(repo)

	result, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ID)
	assert.Equal(t, StateUndelivered, repo.lastFilter.State)
	require.NotNil(t, repo.lastFilter.DueBy)
	assert.Equal(t, day(2024, 5, 10), *repo.lastFilter.DueBy)
}

func TestOverdueIncludesDueToday(t *testing.T) {
	repo := &memoryRepo{rows: map[int64]orders.OrderWithDetails{
		1: {Order: orders.Order{ID: 1, DeliveryDate: day(2024, 5, 10)}},
		2: {Order: orders.Order{ID: 2, DeliveryDate: day(2024, 5, 11)}},
	}}
	svc := newTestService(repo)

	result, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ID)
}
