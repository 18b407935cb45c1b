package render

import (
	"testing"

	"hoteldesk/internal/result"
	"hoteldesk/pkg/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAcknowledgement(t *testing.T) {
	view := Build(result.Acknowledgement("Room added successfully!"))

	require.NotNil(t, view.Panel)
	assert.Nil(t, view.Table)
	assert.Equal(t, "Room added successfully!", view.Panel.Message)
}

func TestBuildBookings(t *testing.T) {
	view := Build(result.Bookings([]sdk.Booking{{
		BookingID:    "B1",
		RoomID:       "R1",
		CheckInDate:  "2024-01-01",
		CheckOutDate: "2024-01-03",
		Status:       "CONFIRMED",
	}}))

	require.NotNil(t, view.Table)
	assert.Equal(t, []string{"Booking ID", "Room ID", "Check-in", "Check-out", "Status"}, view.Table.Columns)
	require.Len(t, view.Table.Rows, 1)

	row := view.Table.Rows[0]
	assert.Equal(t, "B1", row[0].Text)
	assert.Equal(t, "2024-01-03", row[3].Text)
	assert.Equal(t, Cell{Text: "CONFIRMED", Tag: Green}, row[4])
}

func TestBuildRooms(t *testing.T) {
	view := Build(result.Rooms([]sdk.Room{{
		RoomID:     "R9",
		RoomNumber: "101",
		Category:   "SUITE",
		Price:      200,
		Status:     "AVAILABLE",
	}}))

	require.NotNil(t, view.Table)
	require.Len(t, view.Table.Rows, 1)

	row := view.Table.Rows[0]
	assert.Equal(t, "R9", row[0].Text)
	assert.Equal(t, "101", row[1].Text)
	assert.Equal(t, Cell{Text: "SUITE", Tag: Purple}, row[2])
	assert.Equal(t, "$200", row[3].Text)
	assert.Equal(t, Cell{Text: "AVAILABLE", Tag: Green}, row[4])
}

func TestBuildReviews(t *testing.T) {
	view := Build(result.Reviews([]sdk.Review{{
		ReviewID: "Rv1",
		Rating:   4,
		Comment:  "Nice stay",
		Date:     "2024-02-01",
	}}))

	require.NotNil(t, view.Table)
	assert.Equal(t, []string{"Review ID", "Rating", "Comment", "Date"}, view.Table.Columns)
	require.Len(t, view.Table.Rows, 1)

	rating := view.Table.Rows[0][1]
	require.NotNil(t, rating.Units)
	assert.Equal(t, 4, rating.Units.Filled)
	assert.Equal(t, 1, rating.Units.Total-rating.Units.Filled)
	assert.Equal(t, "Nice stay", view.Table.Rows[0][2].Text)
}

func TestBuildReviewsWithUser(t *testing.T) {
	view := Build(result.Reviews([]sdk.Review{
		{ReviewID: "1", Rating: 9, User: &sdk.User{FirstName: "Ana", LastName: "Ruiz"}},
		{ReviewID: "2", Rating: 2},
	}))

	require.NotNil(t, view.Table)
	assert.Equal(t, []string{"Review ID", "User", "Rating", "Comment", "Date"}, view.Table.Columns)
	assert.Equal(t, "Ana Ruiz", view.Table.Rows[0][1].Text)
	assert.Equal(t, RatingScale, view.Table.Rows[0][2].Units.Filled)
	assert.Empty(t, view.Table.Rows[1][1].Text)
}

func TestBuildEmpty(t *testing.T) {
	assert.True(t, Build(result.Rooms(nil)).Empty())
	assert.True(t, Build(result.Raw(nil)).Empty())
}

func TestTags(t *testing.T) {
	assert.Equal(t, Yellow, BookingStatusTag("PENDING"))
	assert.Equal(t, Red, BookingStatusTag("CANCELLED"))
	assert.Equal(t, Blue, RoomCategoryTag("DELUXE"))
	assert.Equal(t, Gray, RoomCategoryTag("STANDARD"))
	assert.Equal(t, Red, RoomStatusTag("OCCUPIED"))
	assert.Equal(t, Yellow, RoomStatusTag("MAINTENANCE"))
}

func TestUnitsBar(t *testing.T) {
	assert.Equal(t, "★★★☆☆", Units{Filled: 3, Total: RatingScale}.Bar("★", "☆"))
}
