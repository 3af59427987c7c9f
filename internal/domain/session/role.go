package session

import "strings"

// Role decides which part of the dashboard a user lands on.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleTechnician Role = "technician"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleTechnician
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole normalizes a role string from the backend. "super_admin" and
// other admin variants are folded into RoleAdmin.
func ParseRole(s string) (Role, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == string(RoleTechnician), v == "tech":
		return RoleTechnician, nil
	case v == string(RoleAdmin), strings.HasSuffix(v, "_admin"), strings.HasSuffix(v, "admin"):
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// LandingPath is the first page shown after login.
func (r Role) LandingPath() string {
	if r == RoleTechnician {
		return "/technician/jobs"
	}
	return "/overview"
}
