// Package identity resolves bearer tokens to callers and provisions accounts.
package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Role is an organizational role attached to a profile.
type Role string

const (
	RoleDPA             Role = "dpa"
	RoleShoreManagement Role = "shore_management"
	RoleCaptain         Role = "captain"
	RoleCrew            Role = "crew"
)

// CanManageCrew reports whether the role may run crew imports and read
// organization-wide crew data.
func (r Role) CanManageCrew() bool {
	return r == RoleDPA || r == RoleShoreManagement
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID    uuid.UUID
	OrgID uuid.UUID
	Email string
	Name  string
	Role  Role
}

var (
	// ErrInvalidToken is returned when a bearer token does not resolve to an
	// active account.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrEmailTaken is returned when an account with the email already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// CallerResolver resolves a bearer token to the caller behind it.
type CallerResolver interface {
	ResolveCaller(ctx context.Context, token string) (Caller, error)
}

// Provisioner creates and deletes accounts. Accounts created through it have
// their email pre-confirmed; imported crew never go through a signup flow.
type Provisioner interface {
	CreateAccount(ctx context.Context, email, password string) (uuid.UUID, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
}
