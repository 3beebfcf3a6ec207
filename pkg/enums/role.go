package enums

import (
	"fmt"
	"strings"
)

// Role is the marketplace-wide account role carried in the session.
type Role string

const (
	RoleFarmer   Role = "Farmer"
	RoleAdmin    Role = "Admin"
	RoleSupplier Role = "Supplier"
)

var validRoles = []Role{
	RoleFarmer,
	RoleAdmin,
	RoleSupplier,
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

// ParseRole converts raw input into a Role. The legacy backend is inconsistent
// about casing ("farmer" on register, "Farmer" on login), so matching is
// case-insensitive.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if strings.EqualFold(string(candidate), strings.TrimSpace(value)) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// LandingPath is where a freshly authenticated user of this role is sent.
func (r Role) LandingPath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleSupplier:
		return "/supplier/dashboard"
	default:
		return "/"
	}
}
