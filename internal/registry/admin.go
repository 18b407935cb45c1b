package registry

import (
	"context"
	"strings"

	"hoteldesk/internal/action"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/result"
	"hoteldesk/pkg/sdk"
)

// AdminAPI is the part of the backend an admin dashboard talks to.
type AdminAPI interface {
	ListUsers(ctx context.Context) ([]sdk.User, error)
	AdminGetUser(ctx context.Context, userID string) (*sdk.User, error)
	ListUsersByRole(ctx context.Context, role string) ([]sdk.User, error)
	AddUser(ctx context.Context, user map[string]any) (string, error)
	DeleteUser(ctx context.Context, userID string) (string, error)
}

var roleOptions = []string{string(domain.RoleCustomer), string(domain.RoleManager), string(domain.RoleAdmin)}

func Admin(api AdminAPI) *action.Registry {
	userFields := []action.Field{
		{Name: "name", Kind: action.KindText, Placeholder: "Full Name", Required: true},
		{Name: "email", Kind: action.KindEmail, Placeholder: "Email Address", Required: true},
		{Name: "password", Kind: action.KindText, Placeholder: "Password", Required: true},
		{Name: "phone", Kind: action.KindTel, Placeholder: "Phone Number"},
		{Name: "role", Kind: action.KindSelect, Placeholder: "Select Role", Options: roleOptions, Required: true},
	}
	validateUser := action.Standard(userFields)

	return action.MustRegistry(domain.RoleAdmin,
		action.Descriptor{
			ID:          "getAllUsers",
			Label:       "All Users",
			Icon:        "👥",
			Description: "View every registered user",
			Hint:        "blue",
			Call: func(ctx context.Context, _ action.Payload, _ action.Context) (result.Result, error) {
				users, err := api.ListUsers(ctx)
				if err != nil {
					return result.Result{}, err
				}
				return result.Users(users), nil
			},
		},
		action.Descriptor{
			ID:            "getUserById",
			Label:         "Find User by ID",
			Icon:          "🔍",
			Description:   "Search for a user by ID",
			Hint:          "green",
			RequiresInput: true,
			Fields:        []action.Field{{Name: "userId", Kind: action.KindText, Placeholder: "Enter User ID", Required: true}},
			Validate:      single("userId"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				user, err := api.AdminGetUser(ctx, text(p, "userId"))
				if err != nil {
					return result.Result{}, err
				}
				return result.Users([]sdk.User{*user}), nil
			},
		},
		action.Descriptor{
			ID:            "getUsersByRole",
			Label:         "Users by Role",
			Icon:          "📋",
			Description:   "Filter users by role",
			Hint:          "yellow",
			RequiresInput: true,
			Fields: []action.Field{{
				Name: "role", Kind: action.KindSelect, Placeholder: "Select Role",
				Options: roleOptions, Required: true,
			}},
			Validate: single("role"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				users, err := api.ListUsersByRole(ctx, text(p, "role"))
				if err != nil {
					return result.Result{}, err
				}
				return result.Users(users), nil
			},
		},
		action.Descriptor{
			ID:            "addUser",
			Label:         "Add User",
			Icon:          "➕",
			Description:   "Create a new user account",
			Hint:          "indigo",
			RequiresInput: true,
			Mutating:      true,
			Fields:        userFields,
			Validate: func(v action.Values) (action.Payload, error) {
				p, err := validateUser(v)
				if err != nil {
					return nil, err
				}
				p["role"] = strings.ToUpper(text(p, "role"))
				return p, nil
			},
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				msg, err := api.AddUser(ctx, p)
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "User added successfully!"), nil
			},
		},
		action.Descriptor{
			ID:            "deleteUser",
			Label:         "Delete User",
			Icon:          "🗑️",
			Description:   "Remove a user account",
			Hint:          "red",
			RequiresInput: true,
			Mutating:      true,
			Fields:        []action.Field{{Name: "userId", Kind: action.KindText, Placeholder: "Enter User ID to Delete", Required: true}},
			Validate:      single("userId"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				msg, err := api.DeleteUser(ctx, text(p, "userId"))
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "User deleted successfully!"), nil
			},
		},
	)
}
