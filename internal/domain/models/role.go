// internal/domain/models/role.go
package models

import "strings"

// Role identifies one dashboard tab.
type Role string

const (
	RoleOperations Role = "operations"
	RoleTechnician Role = "technician"
	RoleRetail     Role = "retail"
)

// Roles lists every dashboard tab in display order.
var Roles = []Role{RoleOperations, RoleTechnician, RoleRetail}

// ParseRole maps a path segment to a Role. The match is case-insensitive.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// Title is the tab label shown to users.
func (r Role) Title() string {
	switch r {
	case RoleOperations:
		return "Operations"
	case RoleTechnician:
		return "Field Technician"
	case RoleRetail:
		return "Retail Associate"
	default:
		return string(r)
	}
}
