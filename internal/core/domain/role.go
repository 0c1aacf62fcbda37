package domain

import "errors"

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")
)

// Permission tags checked at operation boundaries.
const (
	PermCreateEvent  = "CREATE_EVENT"
	PermUpdateEvent  = "UPDATE_EVENT"
	PermDeleteEvent  = "DELETE_EVENT"
	PermApproveEvent = "APPROVE_EVENT"

	PermCreateRegistration = "CREATE_REGISTRATION"
	PermReadRegistration   = "READ_REGISTRATION"
	PermUpdateRegistration = "UPDATE_REGISTRATION"
	PermDeleteRegistration = "DELETE_REGISTRATION"

	PermCreateRole       = "CREATE_ROLE"
	PermListRoles        = "ROLE_LIST"
	PermUpdatePermission = "UPDATE_PERMISSION"
	PermDeleteRole       = "DELETE_ROLE"
)

// Role bundles permissions under a unique name.
type Role struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

// RoleTag returns the synthetic authority granted by merely holding a
// role, distinct from the fine-grained permissions the role carries.
func RoleTag(name string) string {
	return "ROLE_" + name
}

// AuthoritySet is the resolved union of permissions and role tags
// available to a request.
type AuthoritySet map[string]struct{}

func (a AuthoritySet) Add(tag string) {
	a[tag] = struct{}{}
}

func (a AuthoritySet) Has(tag string) bool {
	_, ok := a[tag]
	return ok
}

// HasAny reports whether at least one of the given tags is present.
func (a AuthoritySet) HasAny(tags ...string) bool {
	for _, tag := range tags {
		if a.Has(tag) {
			return true
		}
	}
	return false
}
