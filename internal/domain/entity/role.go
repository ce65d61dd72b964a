// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a principal can have in the system.
// Roles are asserted by the external identity provider and trusted as-is.
type Role string

const (
	// RoleDropper indicates an end-user who books e-waste pickups.
	RoleDropper Role = "dropper"
	// RoleCollector indicates an operator who fulfills pickups and manages
	// warehouse inventory. Collectors act as admins for wallet overrides.
	RoleCollector Role = "collector"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleDropper, RoleCollector:
		return true
	default:
		return false
	}
}
