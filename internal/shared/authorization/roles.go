package authorization

import "strings"

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseUserRole normalizes a raw role string. Unknown roles fall back to USER.
func ParseUserRole(s string) UserRole {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// IsAdminRole reports whether the raw role string resolves to ADMIN,
// case-insensitively. Quota and feature gates use this for the bypass check.
func IsAdminRole(s string) bool {
	return ParseUserRole(s).IsAdmin()
}
