// Package registry declares the dashboard actions of each role.
package registry

import (
	"hoteldesk/internal/action"
	"hoteldesk/internal/domain"
	"hoteldesk/pkg/sdk"
)

// ForRole returns the registry a session of the given role works with.
func ForRole(role domain.Role, client *sdk.Client) (*action.Registry, bool) {
	switch role {
	case domain.RoleCustomer:
		return Customer(client), true
	case domain.RoleManager:
		return Manager(client), true
	case domain.RoleAdmin:
		return Admin(client), true
	}
	return nil, false
}
