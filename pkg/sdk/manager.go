package sdk

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) ListRooms(ctx context.Context) ([]Room, error) {
	return getList[Room](ctx, c, "/manager/rooms", "rooms")
}

func (c *Client) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	var room Room
	if err := c.get(ctx, "/manager/rooms/id/"+url.PathEscape(roomID), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) GetRoomByNumber(ctx context.Context, number string) (*Room, error) {
	var room Room
	if err := c.get(ctx, "/manager/rooms/no/"+url.PathEscape(number), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) GetRoomsByCategory(ctx context.Context, category string) ([]Room, error) {
	return getList[Room](ctx, c, "/manager/rooms/category/"+url.PathEscape(category), "")
}

func (c *Client) AddRoom(ctx context.Context, room map[string]any) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/manager/room", room)
}

func (c *Client) UpdateRoom(ctx context.Context, roomID string, updates map[string]any) (string, error) {
	return c.mutate(ctx, http.MethodPut, "/manager/rooms/"+url.PathEscape(roomID), updates)
}

func (c *Client) DeleteRoom(ctx context.Context, roomID string) (string, error) {
	return c.mutate(ctx, http.MethodDelete, "/manager/rooms/"+url.PathEscape(roomID), nil)
}

func (c *Client) ListReviews(ctx context.Context) ([]Review, error) {
	return getList[Review](ctx, c, "/manager/reviews", "reviews")
}

func (c *Client) GetReviewsForUser(ctx context.Context, userID string) ([]Review, error) {
	return getList[Review](ctx, c, "/manager/reviews/users/"+url.PathEscape(userID), "")
}
