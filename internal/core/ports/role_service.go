package ports

import (
	"context"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
)

// CreateRoleInput carries the data for a new role.
type CreateRoleInput struct {
	Name        string
	Description string
	Permissions []string
}

// RoleService administers the role registry.
type RoleService interface {
	Create(ctx context.Context, input CreateRoleInput) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	// Grant unions new permissions into an existing role. Takes effect
	// for all holders on their next request.
	Grant(ctx context.Context, name string, permissions []string) (*domain.Role, error)
	Delete(ctx context.Context, name string) error
}
