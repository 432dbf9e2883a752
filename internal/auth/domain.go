package auth

import "github.com/ap-collections/backoffice/internal/shared"

// User represents an account able to sign in to the back office.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	RoleID       int64
	RoleName     string
	Permissions  shared.PermissionMap
}
