package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ap-collections/backoffice/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByUserName(ctx context.Context, userName string) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByUserName fetches a user together with its role and the role's
// permission map in a single query.
func (r *PGRepository) FindByUserName(ctx context.Context, userName string) (*User, error) {
	const query = `
		SELECT u.id, u.user_name, u.password, u.role_id, ro.name, rp.permissions
		FROM users u
		JOIN roles ro ON u.role_id = ro.id
		JOIN role_permissions rp ON ro.id = rp.role_id
		WHERE u.user_name = $1`

	var (
		user    User
		rawPerm []byte
	)
	err := r.pool.QueryRow(ctx, query, userName).Scan(
		&user.ID, &user.UserName, &user.PasswordHash, &user.RoleID, &user.RoleName, &rawPerm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("auth: find user: %w", err)
	}

	perms := shared.PermissionMap{}
	if len(rawPerm) > 0 {
		if err := json.Unmarshal(rawPerm, &perms); err != nil {
			return nil, fmt.Errorf("auth: decode permissions: %w", err)
		}
	}
	user.Permissions = perms
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
