package registry

import (
	"context"
	"errors"

	"hoteldesk/internal/action"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/result"
	"hoteldesk/pkg/sdk"
)

// CustomerAPI is the part of the backend a customer dashboard talks to.
type CustomerAPI interface {
	GetUser(ctx context.Context, userID string) (*sdk.User, error)
	UpdateUser(ctx context.Context, userID string, updates map[string]any) (string, error)
	GetBookingsByUser(ctx context.Context, userID string) ([]sdk.Booking, error)
	GetReviewsByUser(ctx context.Context, userID string) ([]sdk.Review, error)
	GiveReview(ctx context.Context, userID string, req sdk.ReviewRequest) (string, error)
	MakePayment(ctx context.Context, bookingID string, req sdk.PaymentRequest) (string, error)
}

var errNoUser = errors.New("no signed-in user")

func subject(actx action.Context) (string, error) {
	if actx.UserID == "" {
		return "", errNoUser
	}
	return actx.UserID, nil
}

func Customer(api CustomerAPI) *action.Registry {
	profileFields := []action.Field{
		{Name: "firstName", Kind: action.KindText, Placeholder: "First Name"},
		{Name: "lastName", Kind: action.KindText, Placeholder: "Last Name"},
		{Name: "email", Kind: action.KindEmail, Placeholder: "Email Address"},
		{Name: "phone", Kind: action.KindTel, Placeholder: "Phone Number"},
	}
	reviewFields := []action.Field{
		{Name: "rating", Kind: action.KindSelect, Placeholder: "Select Rating", Options: sdk.Ratings, Required: true},
		{Name: "comment", Kind: action.KindTextarea, Placeholder: "Write your review...", Required: true},
	}
	paymentFields := []action.Field{
		{Name: "bookingId", Kind: action.KindText, Placeholder: "Booking ID", Required: true},
		{Name: "amount", Kind: action.KindNumber, Placeholder: "Payment Amount", Required: true},
		{Name: "paymentMethod", Kind: action.KindSelect, Placeholder: "Payment Method", Options: sdk.PaymentMethods, Required: true},
	}

	return action.MustRegistry(domain.RoleCustomer,
		action.Descriptor{
			ID:          "getProfile",
			Label:       "View Profile",
			Icon:        "👤",
			Description: "View your profile information",
			Hint:        "blue",
			Call: func(ctx context.Context, _ action.Payload, actx action.Context) (result.Result, error) {
				id, err := subject(actx)
				if err != nil {
					return result.Result{}, err
				}
				user, err := api.GetUser(ctx, id)
				if err != nil {
					return result.Result{}, err
				}
				return result.Users([]sdk.User{*user}), nil
			},
		},
		action.Descriptor{
			ID:            "updateProfile",
			Label:         "Update Profile",
			Icon:          "✏️",
			Description:   "Update your profile information",
			Hint:          "green",
			RequiresInput: true,
			Mutating:      true,
			Fields:        profileFields,
			Validate:      action.Partial(profileFields),
			Call: func(ctx context.Context, p action.Payload, actx action.Context) (result.Result, error) {
				id, err := subject(actx)
				if err != nil {
					return result.Result{}, err
				}
				msg, err := api.UpdateUser(ctx, id, p)
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "Profile updated successfully!"), nil
			},
		},
		action.Descriptor{
			ID:          "getBookings",
			Label:       "My Bookings",
			Icon:        "🏨",
			Description: "View all your bookings",
			Hint:        "purple",
			Call: func(ctx context.Context, _ action.Payload, actx action.Context) (result.Result, error) {
				id, err := subject(actx)
				if err != nil {
					return result.Result{}, err
				}
				bookings, err := api.GetBookingsByUser(ctx, id)
				if err != nil {
					return result.Result{}, err
				}
				return result.Bookings(bookings), nil
			},
		},
		action.Descriptor{
			ID:          "getReviews",
			Label:       "My Reviews",
			Icon:        "⭐",
			Description: "View all your reviews",
			Hint:        "yellow",
			Call: func(ctx context.Context, _ action.Payload, actx action.Context) (result.Result, error) {
				id, err := subject(actx)
				if err != nil {
					return result.Result{}, err
				}
				reviews, err := api.GetReviewsByUser(ctx, id)
				if err != nil {
					return result.Result{}, err
				}
				return result.Reviews(reviews), nil
			},
		},
		action.Descriptor{
			ID:            "giveReview",
			Label:         "Write Review",
			Icon:          "📝",
			Description:   "Write a review for your stay",
			Hint:          "indigo",
			RequiresInput: true,
			Mutating:      true,
			Fields:        reviewFields,
			Validate: func(v action.Values) (action.Payload, error) {
				if err := action.RequireFields(reviewFields, v); err != nil {
					return nil, err
				}
				return action.Payload{"rating": action.Integer(v["rating"]), "comment": v["comment"]}, nil
			},
			Call: func(ctx context.Context, p action.Payload, actx action.Context) (result.Result, error) {
				id, err := subject(actx)
				if err != nil {
					return result.Result{}, err
				}
				msg, err := api.GiveReview(ctx, id, sdk.ReviewRequest{
					Rating:  p["rating"],
					Comment: text(p, "comment"),
				})
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "Review submitted successfully!"), nil
			},
		},
		action.Descriptor{
			ID:            "makePayment",
			Label:         "Make Payment",
			Icon:          "💳",
			Description:   "Make payment for a booking",
			Hint:          "red",
			RequiresInput: true,
			Mutating:      true,
			Fields:        paymentFields,
			Validate:      action.Standard(paymentFields),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				msg, err := api.MakePayment(ctx, text(p, "bookingId"), sdk.PaymentRequest{
					Amount:        p["amount"],
					PaymentMethod: text(p, "paymentMethod"),
				})
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "Payment processed successfully!"), nil
			},
		},
	)
}
