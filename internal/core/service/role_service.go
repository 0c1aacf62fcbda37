package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

// RoleService administers the role registry.
type RoleService struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, log: log}
}

func (s *RoleService) Create(ctx context.Context, input ports.CreateRoleInput) (*domain.Role, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: role name required", domain.ErrInvalidCredentials)
	}
	role := &domain.Role{
		Name:        input.Name,
		Description: input.Description,
		Permissions: dedupe(input.Permissions),
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	s.log.Info().Str("role", role.Name).Int("permissions", len(role.Permissions)).Msg("role created")
	return role, nil
}

func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.roles.FindAll(ctx)
}

// Grant unions permissions into an existing role. Because tokens only
// carry role names, the grant is effective for every holder on their
// next request without re-issuing credentials.
func (s *RoleService) Grant(ctx context.Context, name string, permissions []string) (*domain.Role, error) {
	role, err := s.roles.AddPermissions(ctx, name, dedupe(permissions))
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("role", name).Strs("granted", permissions).Msg("permissions granted")
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, name string) error {
	return s.roles.Delete(ctx, name)
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
