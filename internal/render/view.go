// Package render turns action results into a display shape that both the
// terminal and the web console paint. It has no side effects.
package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"hoteldesk/internal/result"
	"hoteldesk/pkg/sdk"
)

type Color string

const (
	NoColor Color = ""
	Green   Color = "green"
	Red     Color = "red"
	Yellow  Color = "yellow"
	Blue    Color = "blue"
	Purple  Color = "purple"
	Gray    Color = "gray"
)

const RatingScale = 5

type Units struct {
	Filled int
	Total  int
}

// Bar draws the units with one glyph for filled and another for empty.
func (u Units) Bar(filled, empty string) string {
	return strings.Repeat(filled, u.Filled) + strings.Repeat(empty, u.Total-u.Filled)
}

type Cell struct {
	Text  string
	Tag   Color
	Units *Units
}

type Table struct {
	Columns []string
	Rows    [][]Cell
}

type Panel struct {
	Message string
}

// View holds at most one of Panel or Table. A zero View means there was
// nothing to render and the caller decides what to show.
type View struct {
	Kind  result.Kind
	Panel *Panel
	Table *Table
}

func (v View) Empty() bool { return v.Panel == nil && v.Table == nil }

func Build(res result.Result) View {
	if res.Empty() {
		return View{Kind: res.Kind}
	}

	switch res.Kind {
	case result.KindAcknowledgement:
		return View{Kind: res.Kind, Panel: &Panel{Message: res.Message}}
	case result.KindBookingList:
		return View{Kind: res.Kind, Table: bookingTable(res.Bookings)}
	case result.KindReviewList:
		return View{Kind: res.Kind, Table: reviewTable(res.Reviews)}
	case result.KindRoomList:
		return View{Kind: res.Kind, Table: roomTable(res.Rooms)}
	case result.KindUserList:
		return View{Kind: res.Kind, Table: userTable(res.Users)}
	default:
		return View{Kind: res.Kind, Table: rawTable(res.Raw)}
	}
}

func BookingStatusTag(status string) Color {
	switch status {
	case "CONFIRMED":
		return Green
	case "PENDING":
		return Yellow
	default:
		return Red
	}
}

func RoomCategoryTag(category string) Color {
	switch category {
	case "SUITE":
		return Purple
	case "DELUXE":
		return Blue
	case "PREMIUM":
		return Yellow
	default:
		return Gray
	}
}

func RoomStatusTag(status string) Color {
	switch status {
	case "AVAILABLE":
		return Green
	case "OCCUPIED":
		return Red
	default:
		return Yellow
	}
}

func bookingTable(bookings []sdk.Booking) *Table {
	t := &Table{Columns: []string{"Booking ID", "Room ID", "Check-in", "Check-out", "Status"}}
	for _, b := range bookings {
		t.Rows = append(t.Rows, []Cell{
			{Text: b.BookingID.String()},
			{Text: b.RoomID.String()},
			{Text: b.CheckInDate},
			{Text: b.CheckOutDate},
			{Text: b.Status, Tag: BookingStatusTag(b.Status)},
		})
	}
	return t
}

func reviewTable(reviews []sdk.Review) *Table {
	withUser := false
	for _, r := range reviews {
		if r.User != nil {
			withUser = true
			break
		}
	}

	t := &Table{Columns: []string{"Review ID"}}
	if withUser {
		t.Columns = append(t.Columns, "User")
	}
	t.Columns = append(t.Columns, "Rating", "Comment", "Date")

	for _, r := range reviews {
		row := []Cell{{Text: r.ReviewID.String()}}
		if withUser {
			name := ""
			if r.User != nil {
				name = r.User.FullName()
			}
			row = append(row, Cell{Text: name})
		}
		row = append(row,
			Cell{Text: fmt.Sprintf("(%d/%d)", r.Rating, RatingScale), Units: &Units{Filled: clamp(r.Rating), Total: RatingScale}},
			Cell{Text: r.Comment},
			Cell{Text: r.Date},
		)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func roomTable(rooms []sdk.Room) *Table {
	t := &Table{Columns: []string{"Room ID", "Room Number", "Category", "Price", "Status"}}
	for _, r := range rooms {
		t.Rows = append(t.Rows, []Cell{
			{Text: r.RoomID.String()},
			{Text: r.RoomNumber.String()},
			{Text: r.Category, Tag: RoomCategoryTag(r.Category)},
			{Text: "$" + strconv.FormatFloat(r.Price, 'f', -1, 64)},
			{Text: r.Status, Tag: RoomStatusTag(r.Status)},
		})
	}
	return t
}

func userTable(users []sdk.User) *Table {
	t := &Table{Columns: []string{"User ID", "Name", "Email", "Phone", "Role"}}
	for _, u := range users {
		t.Rows = append(t.Rows, []Cell{
			{Text: u.ID.String()},
			{Text: u.FullName()},
			{Text: u.Email},
			{Text: u.Phone},
			{Text: u.Role},
		})
	}
	return t
}

func rawTable(items []map[string]any) *Table {
	keys := map[string]struct{}{}
	for _, item := range items {
		for k := range item {
			keys[k] = struct{}{}
		}
	}
	columns := make([]string, 0, len(keys))
	for k := range keys {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	t := &Table{Columns: columns}
	for _, item := range items {
		row := make([]Cell, len(columns))
		for i, k := range columns {
			if v, ok := item[k]; ok && v != nil {
				row[i] = Cell{Text: fmt.Sprint(v)}
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func clamp(rating int) int {
	if rating < 0 {
		return 0
	}
	if rating > RatingScale {
		return RatingScale
	}
	return rating
}
