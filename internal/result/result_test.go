package result

import (
	"testing"

	"hoteldesk/pkg/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		name  string
		items []map[string]any
		kind  Kind
	}{
		{"message wins", []map[string]any{{"message": "Room added successfully!", "roomId": "R1"}}, KindAcknowledgement},
		{"booking", []map[string]any{{"bookingId": 12.0, "roomId": "R1", "status": "CONFIRMED"}}, KindBookingList},
		{"review by id", []map[string]any{{"reviewId": "Rv1", "comment": "ok"}}, KindReviewList},
		{"review by rating", []map[string]any{{"rating": 4.0, "roomNumber": "101"}}, KindReviewList},
		{"room", []map[string]any{{"roomNumber": "101"}}, KindRoomList},
		{"unknown", []map[string]any{{"foo": "bar"}}, KindRaw},
		{"empty", nil, KindRaw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := sniff(tt.items)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.Kind)
		})
	}
}

func TestSniffDecodesNumericIDs(t *testing.T) {
	res, err := sniff([]map[string]any{{
		"reviewId": 3.0,
		"rating":   5.0,
		"comment":  "great",
		"user":     map[string]any{"userId": 9.0, "firstName": "Ana", "lastName": "Ruiz"},
	}})
	require.NoError(t, err)
	require.Len(t, res.Reviews, 1)

	review := res.Reviews[0]
	assert.Equal(t, sdk.ID("3"), review.ReviewID)
	assert.Equal(t, 5, review.Rating)
	require.NotNil(t, review.User)
	assert.Equal(t, sdk.ID("9"), review.User.ID)
	assert.Equal(t, "Ana Ruiz", review.User.FullName())
}

func TestLen(t *testing.T) {
	assert.Equal(t, 1, Acknowledgement("done").Len())
	assert.True(t, Rooms(nil).Empty())
	assert.Equal(t, 2, Bookings([]sdk.Booking{{}, {}}).Len())
}
