package domain

import "fmt"

// Role is a user role of the portal under test.
type Role string

const (
	RoleAdmin      Role = "admin"
	RolePetugas    Role = "petugas"
	RoleMasyarakat Role = "masyarakat"
)

// Roles lists every role in the order the suite exercises them.
var Roles = []Role{RoleAdmin, RolePetugas, RoleMasyarakat}

// Label is the capitalized name used in step descriptions.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RolePetugas:
		return "Petugas"
	case RoleMasyarakat:
		return "Masyarakat"
	}
	return string(r)
}

// DashboardMarker is text the dashboard shows only to this role.
func (r Role) DashboardMarker() string {
	switch r {
	case RoleAdmin:
		return "Administrator"
	case RolePetugas:
		return "Petugas"
	case RoleMasyarakat:
		return "Portal Pengaduan Masyarakat"
	}
	return ""
}

// ParseRole validates a role name.
func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Credentials are the login details of one test account.
type Credentials struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Empty reports whether either field is missing.
func (c Credentials) Empty() bool {
	return c.Email == "" || c.Password == ""
}
