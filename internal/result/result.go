// Package result holds the value every dashboard action produces. Handlers
// build the variant they return explicitly.
package result

import (
	"encoding/json"
	"fmt"

	"hoteldesk/pkg/sdk"
)

type Kind int

const (
	KindRaw Kind = iota
	KindAcknowledgement
	KindBookingList
	KindReviewList
	KindRoomList
	KindUserList
)

func (k Kind) String() string {
	switch k {
	case KindAcknowledgement:
		return "acknowledgement"
	case KindBookingList:
		return "bookings"
	case KindReviewList:
		return "reviews"
	case KindRoomList:
		return "rooms"
	case KindUserList:
		return "users"
	default:
		return "raw"
	}
}

// Result is a tagged union. Only the field matching Kind is meaningful.
type Result struct {
	Kind     Kind
	Message  string
	Bookings []sdk.Booking
	Reviews  []sdk.Review
	Rooms    []sdk.Room
	Users    []sdk.User
	Raw      []map[string]any
}

func Acknowledgement(msg string) Result { return Result{Kind: KindAcknowledgement, Message: msg} }

func Bookings(b []sdk.Booking) Result { return Result{Kind: KindBookingList, Bookings: b} }

func Reviews(r []sdk.Review) Result { return Result{Kind: KindReviewList, Reviews: r} }

func Rooms(r []sdk.Room) Result { return Result{Kind: KindRoomList, Rooms: r} }

func Users(u []sdk.User) Result { return Result{Kind: KindUserList, Users: u} }

func Raw(items []map[string]any) Result { return Result{Kind: KindRaw, Raw: items} }

// Len is the number of items carried; an acknowledgement counts as one.
func (r Result) Len() int {
	switch r.Kind {
	case KindAcknowledgement:
		return 1
	case KindBookingList:
		return len(r.Bookings)
	case KindReviewList:
		return len(r.Reviews)
	case KindRoomList:
		return len(r.Rooms)
	case KindUserList:
		return len(r.Users)
	default:
		return len(r.Raw)
	}
}

func (r Result) Empty() bool { return r.Len() == 0 }

// sniff is the legacy fallback for untyped payloads. It classifies items by
// the fields of the first one, in fixed priority: message, bookingId,
// reviewId or rating, roomId or roomNumber. Anything else stays Raw.
func sniff(items []map[string]any) (Result, error) {
	if len(items) == 0 {
		return Raw(nil), nil
	}
	first := items[0]

	if msg, ok := first["message"]; ok && present(msg) {
		return Acknowledgement(fmt.Sprint(msg)), nil
	}
	if has(first, "bookingId") {
		var out []sdk.Booking
		if err := recode(items, &out); err != nil {
			return Result{}, err
		}
		return Bookings(out), nil
	}
	if has(first, "reviewId") || has(first, "rating") {
		var out []sdk.Review
		if err := recode(items, &out); err != nil {
			return Result{}, err
		}
		return Reviews(out), nil
	}
	if has(first, "roomId") || has(first, "roomNumber") {
		var out []sdk.Room
		if err := recode(items, &out); err != nil {
			return Result{}, err
		}
		return Rooms(out), nil
	}
	return Raw(items), nil
}

func has(item map[string]any, key string) bool {
	v, ok := item[key]
	return ok && present(v)
}

func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case float64:
		return t != 0
	case bool:
		return t
	}
	return true
}

func recode(items []map[string]any, target any) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("error encoding result items: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("error decoding result items: %w", err)
	}
	return nil
}
