package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/"+url.PathEscape(userID), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser sends only the fields present in updates.
func (c *Client) UpdateUser(ctx context.Context, userID string, updates map[string]any) (string, error) {
	return c.mutate(ctx, http.MethodPut, "/users/"+url.PathEscape(userID), updates)
}

func (c *Client) GetBookingsByUser(ctx context.Context, userID string) ([]Booking, error) {
	return getList[Booking](ctx, c, fmt.Sprintf("/users/bookings/users/%s", url.PathEscape(userID)), "bookings")
}

func (c *Client) GetReviewsByUser(ctx context.Context, userID string) ([]Review, error) {
	return getList[Review](ctx, c, fmt.Sprintf("/users/%s/reviews", url.PathEscape(userID)), "reviews")
}

func (c *Client) GiveReview(ctx context.Context, userID string, req ReviewRequest) (string, error) {
	return c.mutate(ctx, http.MethodPost, "/users/reviews/"+url.PathEscape(userID), req)
}

func (c *Client) MakePayment(ctx context.Context, bookingID string, req PaymentRequest) (string, error) {
	return c.mutate(ctx, http.MethodPost, fmt.Sprintf("/users/%s/payment", url.PathEscape(bookingID)), req)
}
