package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ap-collections/backoffice/internal/shared"
)

type memoryRepo struct {
	users map[string]*User
}

func (m *memoryRepo) FindByUserName(_ context.Context, userName string) (*User, error) {
	u, ok := m.users[userName]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &memoryRepo{users: map[string]*User{
		"thiri": {
			ID:           7,
			UserName:     "thiri",
			PasswordHash: string(hash),
			RoleName:     "admin",
			Permissions:  shared.PermissionMap{shared.PageOrder: {New: true}},
		},
	}}
	return NewService(repo)
}

func TestAuthenticateSuccess(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Authenticate(context.Background(), "thiri", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.RoleName)
	assert.True(t, user.Permissions.Allows(shared.PageOrder, "new"))
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "thiri", "wrong")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "nobody", "s3cret")
	assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
