package enums

import (
	"fmt"
	"strings"
)

// Role is the account role name reported by the backend.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

var validRoles = []Role{
	RoleUser,
	RoleAdmin,
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsAdmin tolerates the backend's ROLE_ prefix and casing.
func (r Role) IsAdmin() bool {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(string(r))), "ROLE_")
	return Role(name) == RoleAdmin
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	upper := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(value)), "ROLE_")
	for _, candidate := range validRoles {
		if string(candidate) == upper {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
