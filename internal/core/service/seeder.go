package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/volunteerhub/volunteerhub-api/internal/core/domain"
	"github.com/volunteerhub/volunteerhub-api/internal/core/ports"
)

// Seeder provisions the baseline roles and the default admin and event
// manager accounts on first run. Re-running merges newly added
// permissions into existing roles and leaves existing users alone.
type Seeder struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger

	AdminEmail      string
	AdminPassword   string
	ManagerEmail    string
	ManagerPassword string
}

func NewSeeder(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *Seeder {
	return &Seeder{
		users: users,
		roles: roles,
		log:   log,

		AdminEmail:      "admin@volunteerhub.local",
		AdminPassword:   "admin",
		ManagerEmail:    "manager@volunteerhub.local",
		ManagerPassword: "manager",
	}
}

var volunteerPermissions = []string{
	domain.PermCreateRegistration,
	domain.PermReadRegistration,
}

var eventManagerPermissions = []string{
	domain.PermCreateEvent,
	domain.PermUpdateEvent,
	domain.PermDeleteEvent,
	domain.PermReadRegistration,
	domain.PermUpdateRegistration,
}

var adminPermissions = []string{
	domain.PermApproveEvent,
	domain.PermUpdateEvent,
	domain.PermDeleteEvent,
	domain.PermReadRegistration,
	domain.PermUpdateRegistration,
	domain.PermDeleteRegistration,
	domain.PermCreateRole,
	domain.PermListRoles,
	domain.PermUpdatePermission,
	domain.PermDeleteRole,
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.seedRole(ctx, domain.RoleVolunteer, "Volunteer baseline permissions", volunteerPermissions); err != nil {
		return err
	}
	if err := s.seedRole(ctx, domain.RoleEventManager, "Event manager permissions", eventManagerPermissions); err != nil {
		return err
	}
	if err := s.seedRole(ctx, domain.RoleAdmin, "Administrator full permissions", adminPermissions); err != nil {
		return err
	}

	if err := s.seedUser(ctx, s.AdminEmail, s.AdminPassword, "Administrator", domain.RoleAdmin); err != nil {
		return err
	}
	return s.seedUser(ctx, s.ManagerEmail, s.ManagerPassword, "Event Manager", domain.RoleEventManager)
}

func (s *Seeder) seedRole(ctx context.Context, name, description string, permissions []string) error {
	_, err := s.roles.FindByName(ctx, name)
	switch {
	case err == nil:
		// Merge any permissions added since the role was first seeded.
		if _, err := s.roles.AddPermissions(ctx, name, permissions); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		return nil
	case errors.Is(err, domain.ErrRoleNotFound):
		if err := s.roles.Create(ctx, &domain.Role{
			Name:        name,
			Description: description,
			Permissions: permissions,
		}); err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
		s.log.Warn().Str("role", name).Int("permissions", len(permissions)).Msg("role seeded")
		return nil
	default:
		return fmt.Errorf("seed role %s: %w", name, err)
	}
}

func (s *Seeder) seedUser(ctx context.Context, email, password, fullName, role string) error {
	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("seed user %s: %w", email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	if _, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: string(hash),
		Roles:        []string{role},
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		return fmt.Errorf("seed user %s: %w", email, err)
	}

	s.log.Warn().Str("email", email).Str("role", role).Msg("default user created, change the password")
	return nil
}
