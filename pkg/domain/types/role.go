package types

import "fmt"

// Role represents the editorial seniority of an actor
type Role string

const (
	RoleIntern     Role = "INTERN"
	RoleJournalist Role = "JOURNALIST"
	RoleSubEditor  Role = "SUB_EDITOR"
	RoleEditor     Role = "EDITOR"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// AllRoles returns all valid roles
func AllRoles() []Role {
	return []Role{
		RoleIntern,
		RoleJournalist,
		RoleSubEditor,
		RoleEditor,
		RoleAdmin,
		RoleSuperAdmin,
	}
}

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleIntern,
		RoleJournalist,
		RoleSubEditor,
		RoleEditor,
		RoleAdmin,
		RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// CanReview reports whether the role is eligible to hold a reviewer
// assignment (JOURNALIST and above).
func (r Role) CanReview() bool {
	switch r {
	case RoleJournalist, RoleSubEditor, RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// CanApprove reports whether the role is eligible to hold an approver
// assignment (SUB_EDITOR and above).
func (r Role) CanApprove() bool {
	switch r {
	case RoleSubEditor, RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsEditorOrAbove reports whether the role holds the unconditional
// editorial override (EDITOR, ADMIN, SUPERADMIN).
//
// SUB_EDITOR and EDITOR are deliberately not ordered against each other;
// EDITOR carries the override, SUB_EDITOR does not.
func (r Role) IsEditorOrAbove() bool {
	switch r {
	case RoleEditor, RoleAdmin, RoleSuperAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the role is ADMIN or SUPERADMIN.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// ParseRole parses a string into a Role
func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}
