package domain

import "strings"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleManager  Role = "MANAGER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole normalizes a backend role name. USER and OWNER are the names the
// backend used before the manager/customer split.
func ParseRole(s string) (Role, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CUSTOMER", "USER":
		return RoleCustomer, true
	case "MANAGER", "OWNER":
		return RoleManager, true
	case "ADMIN":
		return RoleAdmin, true
	}
	return "", false
}

// Session is the authenticated identity of the operator.
type Session struct {
	SubjectID   string `json:"id"`
	DisplayName string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	AuthToken   string `json:"-"`
}
