package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

// PermissionResolver maps role names to the union of permissions those
// roles grant. Every call reads the role store directly (no cache), so
// permission edits take effect on the very next request.
type PermissionResolver struct {
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewPermissionResolver(roles ports.RoleRepository, log zerolog.Logger) *PermissionResolver {
	return &PermissionResolver{roles: roles, log: log}
}

// Resolve builds the authority set for the given role names. A role
// missing from the registry contributes no authority: the token may
// predate a role deletion or rename, which is not an error condition.
func (r *PermissionResolver) Resolve(ctx context.Context, roleNames []string) (domain.AuthoritySet, error) {
	authorities := make(domain.AuthoritySet)
	for _, name := range roleNames {
		role, err := r.roles.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				r.log.Debug().Str("role", name).Msg("unknown role in token, skipped")
				continue
			}
			return nil, fmt.Errorf("resolve role %s: %w", name, err)
		}
		for _, perm := range role.Permissions {
			authorities.Add(perm)
		}
		authorities.Add(domain.RoleTag(name))
	}
	return authorities, nil
}
