package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	nextID int64
	rows   map[int64]Expense
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, rows: map[int64]Expense{}}
}

func (m *memoryRepo) List(_ context.Context, req ListExpensesRequest) ([]ExpenseWithType, error) {
	var out []ExpenseWithType
	for _, e := range m.rows {
		if req.DateFrom != nil && e.Date.Before(*req.DateFrom) {
			continue
		}
		if req.DateTo != nil && e.Date.After(*req.DateTo) {
			continue
		}
		out = append(out, ExpenseWithType{Expense: e})
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (*Expense, error) {
	e, ok := m.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &e, nil
}

func (m *memoryRepo) Create(_ context.Context, e Expense) (int64, error) {
	e.ID = m.nextID
	m.nextID++
	m.rows[e.ID] = e
	return e.ID, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, e Expense) error {
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	e.ID = id
	m.rows[id] = e
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func validInput() ExpenseInput {
	return ExpenseInput{
		Date:          time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		ExpenseTypeID: 2,
		Description:   "  thread and buttons  ",
		Amount:        1500,
	}
}

func TestCreateExpenseTrimsDescription(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	e, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "thread and buttons", e.Description)
	assert.Equal(t, 1500.0, e.Amount)
}

func TestCreateExpenseRejectsZeroAmount(t *testing.T) {
	svc := NewService(newMemoryRepo())

	input := validInput()
	input.Amount = 0
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreateExpenseRejectsMissingType(t *testing.T) {
	svc := NewService(newMemoryRepo())

	input := validInput()
	input.ExpenseTypeID = 0
	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestUpdateExpense(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	input := validInput()
	input.Amount = 2000
	require.NoError(t, svc.Update(context.Background(), id, input))

	e, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, e.Amount)
}

func TestUpdateExpenseMissing(t *testing.T) {
	svc := NewService(newMemoryRepo())
	assert.ErrorIs(t, svc.Update(context.Background(), 42, validInput()), ErrNotFound)
}

func TestDeleteExpense(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), id))

	_, err = repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}
