package paymenttypes

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdshared "github.com/ap-collections/backoffice/internal/masterdata/shared"
)

type memoryRepo struct {
	nextID int64
	rows   map[int64]PaymentType
	refs   map[int64]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{nextID: 1, rows: map[int64]PaymentType{}, refs: map[int64]int64{}}
}

func (m *memoryRepo) List(_ context.Context, searchTerm string) ([]PaymentType, error) {
	var out []PaymentType
	for _, p := range m.rows {
		if searchTerm == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(searchTerm)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryRepo) Get(_ context.Context, id int64) (PaymentType, error) {
	p, ok := m.rows[id]
	if !ok {
		return PaymentType{}, mdshared.ErrNotFound
	}
	return p, nil
}

func (m *memoryRepo) NameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	for id, p := range m.rows {
		if id != excludeID && strings.EqualFold(p.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepo) Create(_ context.Context, name string) (int64, error) {
	id := m.nextID
	m.nextID++
	m.rows[id] = PaymentType{ID: id, Name: name}
	return id, nil
}

func (m *memoryRepo) Update(_ context.Context, id int64, name string) error {
	if _, ok := m.rows[id]; !ok {
		return mdshared.ErrNotFound
	}
	m.rows[id] = PaymentType{ID: id, Name: name}
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return mdshared.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memoryRepo) ReferenceCount(_ context.Context, id int64) (int64, error) {
	return m.refs[id], nil
}

func TestCreateTrimsAndStores(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), "  Cash  ")
	require.NoError(t, err)
	assert.Equal(t, "Cash", repo.rows[id].Name)
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc := NewService(newMemoryRepo())
	_, err := svc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, mdshared.ErrInvalid)
}

func TestCreateDuplicateNameCaseInsensitive(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), "Cash")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "cash")
	assert.ErrorIs(t, err, mdshared.ErrDuplicate)
}

func TestUpdateExcludesSelf(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), "Cash")
	require.NoError(t, err)
	require.NoError(t, svc.Update(context.Background(), id, "Cash"))
}

func TestDeleteRefusedWhileReferenced(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), "Cash")
	require.NoError(t, err)
	repo.refs[id] = 3

	assert.ErrorIs(t, svc.Delete(context.Background(), id), mdshared.ErrInUse)
	_, ok := repo.rows[id]
	assert.True(t, ok)
}

func TestDeleteUnreferenced(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)

	id, err := svc.Create(context.Background(), "Cash")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), id))
	_, ok := repo.rows[id]
	assert.False(t, ok)
}
