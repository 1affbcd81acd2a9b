package enums

import "fmt"

// UserRole is the access level of a back-office user.
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleEditor UserRole = "editor"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleEditor:
		return true
	}
	return false
}

// ParseUserRole converts the raw string into a UserRole or fails.
func ParseUserRole(raw string) (UserRole, error) {
	r := UserRole(raw)
	if !r.IsValid() {
		return "", fmt.Errorf("invalid user role %q", raw)
	}
	return r, nil
}
