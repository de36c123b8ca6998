package models

import "strings"

// Role is the access tier of a credential. Only two tiers exist.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// IsAdmin reports whether r grants full scope.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole normalizes s into a Role. An empty string yields RoleUser,
// matching the registration default.
func ParseRole(s string) (Role, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return RoleUser, true
	}
	r := Role(s)
	return r, r.Valid()
}

// NewAdmin creates an admin credential.
func NewAdmin(username, password string) *Credential {
	return &Credential{Username: username, Password: password, Role: RoleAdmin}
}
