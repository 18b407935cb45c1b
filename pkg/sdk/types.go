package sdk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is an identifier the backend may send either as a JSON number or a
// JSON string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

type Booking struct {
	BookingID    ID     `json:"bookingId"`
	RoomID       ID     `json:"roomId"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Status       string `json:"status"`
}

type Review struct {
	ReviewID ID     `json:"reviewId"`
	User     *User  `json:"user,omitempty"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

type Room struct {
	RoomID      ID      `json:"roomId"`
	RoomNumber  ID      `json:"roomNumber"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Description string  `json:"description,omitempty"`
}

var (
	RoomCategories = []string{"STANDARD", "DELUXE", "SUITE", "PREMIUM"}
	RoomStatuses   = []string{"AVAILABLE", "OCCUPIED", "MAINTENANCE"}
	PaymentMethods = []string{"CARD", "CASH", "UPI"}
	Ratings        = []string{"1", "2", "3", "4", "5"}
)

type User struct {
	ID        ID     `json:"userId"`
	Name      string `json:"name"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
}

// FullName prefers first/last name and falls back to the single name field.
func (u User) FullName() string {
	full := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if full != "" {
		return full
	}
	return u.Name
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
	ID    ID     `json:"id"`
}

// MessageResponse is the acknowledgement body returned by mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

type ReviewRequest struct {
	Rating  any    `json:"rating"`
	Comment string `json:"comment"`
}

type PaymentRequest struct {
	Amount        any    `json:"amount"`
	PaymentMethod string `json:"paymentMethod"`
}
