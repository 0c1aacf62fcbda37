package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// RoleRepository is the role registry consulted on every authorization
// check. Implementations must always reflect the latest committed role
// definitions; permission edits take effect without re-login.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindAll(ctx context.Context) ([]*domain.Role, error)
	// AddPermissions unions the given permissions into the role's set.
	AddPermissions(ctx context.Context, name string, permissions []string) (*domain.Role, error)
	Delete(ctx context.Context, name string) error
}
