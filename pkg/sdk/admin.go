package sdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return getList[User](ctx, c, "/admin/users", "users")
}

func (c *Client) AdminGetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.get(ctx, "/admin/users/"+url.PathEscape(userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsersByRole(ctx context.Context, role string) ([]User, error) {
	return getList[User](ctx, c, "/admin/users/role/"+url.PathEscape(strings.ToUpper(role)), "users")
}

func (c *Client) AddUser(ctx context.Context, user map[string]any) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/admin/users", user)
}

func (c *Client) DeleteUser(ctx context.Context, userID string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), nil)
}
