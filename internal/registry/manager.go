package registry

import (
	"context"

	"hoteldesk/internal/action"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/result"
	"hoteldesk/pkg/sdk"
)

// ManagerAPI is the part of the backend a manager dashboard talks to.
type ManagerAPI interface {
	ListRooms(ctx context.Context) ([]sdk.Room, error)
	GetRoom(ctx context.Context, roomID string) (*sdk.Room, error)
	GetRoomByNumber(ctx context.Context, number string) (*sdk.Room, error)
	GetRoomsByCategory(ctx context.Context, category string) ([]sdk.Room, error)
	AddRoom(ctx context.Context, room map[string]any) (string, error)
	UpdateRoom(ctx context.Context, roomID string, updates map[string]any) (string, error)
	DeleteRoom(ctx context.Context, roomID string) (string, error)
	ListReviews(ctx context.Context) ([]sdk.Review, error)
	GetReviewsForUser(ctx context.Context, userID string) ([]sdk.Review, error)
}

func Manager(api ManagerAPI) *action.Registry {
	addFields := []action.Field{
		{Name: "roomNumber", Kind: action.KindText, Placeholder: "Room Number", Required: true},
		{Name: "category", Kind: action.KindSelect, Placeholder: "Select Category", Options: sdk.RoomCategories, Required: true},
		{Name: "price", Kind: action.KindNumber, Placeholder: "Price per night", Required: true},
		{Name: "status", Kind: action.KindSelect, Placeholder: "Room Status", Options: sdk.RoomStatuses, Required: true},
		{Name: "description", Kind: action.KindTextarea, Placeholder: "Room description (optional)"},
	}
	updateFields := []action.Field{
		{Name: "roomId", Kind: action.KindText, Placeholder: "Room ID (required)", Required: true},
		{Name: "roomNumber", Kind: action.KindText, Placeholder: "Room Number"},
		{Name: "category", Kind: action.KindSelect, Placeholder: "Select Category", Options: sdk.RoomCategories},
		{Name: "price", Kind: action.KindNumber, Placeholder: "Price per night"},
		{Name: "status", Kind: action.KindSelect, Placeholder: "Room Status", Options: sdk.RoomStatuses},
		{Name: "description", Kind: action.KindTextarea, Placeholder: "Room description"},
	}
	validateUpdate := action.Partial(updateFields, "roomId")

	return action.MustRegistry(domain.RoleManager,
		action.Descriptor{
			ID:          "getAllRooms",
			Label:       "All Rooms",
			Icon:        "🏨",
			Description: "View all rooms in the hotel",
			Hint:        "blue",
			Call: func(ctx context.Context, _ action.Payload, _ action.Context) (result.Result, error) {
				rooms, err := api.ListRooms(ctx)
				if err != nil {
					return result.Result{}, err
				}
				return result.Rooms(rooms), nil
			},
		},
		action.Descriptor{
			ID:            "getRoomById",
			Label:         "Find Room by ID",
			Icon:          "🔍",
			Description:   "Search for a room by ID",
			Hint:          "green",
			RequiresInput: true,
			Fields:        []action.Field{{Name: "roomId", Kind: action.KindText, Placeholder: "Enter Room ID", Required: true}},
			Validate:      single("roomId"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				room, err := api.GetRoom(ctx, text(p, "roomId"))
				if err != nil {
					return result.Result{}, err
				}
				return result.Rooms([]sdk.Room{*room}), nil
			},
		},
		action.Descriptor{
			ID:            "getRoomByNumber",
			Label:         "Find Room by Number",
			Icon:          "🔢",
			Description:   "Search for a room by room number",
			Hint:          "purple",
			RequiresInput: true,
			Fields:        []action.Field{{Name: "roomNumber", Kind: action.KindText, Placeholder: "Enter Room Number", Required: true}},
			Validate:      single("roomNumber"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				room, err := api.GetRoomByNumber(ctx, text(p, "roomNumber"))
				if err != nil {
					return result.Result{}, err
				}
				return result.Rooms([]sdk.Room{*room}), nil
			},
		},
		action.Descriptor{
			ID:            "getRoomByCategory",
			Label:         "Rooms by Category",
			Icon:          "📋",
			Description:   "Filter rooms by category",
			Hint:          "yellow",
			RequiresInput: true,
			Fields: []action.Field{{
				Name: "category", Kind: action.KindSelect, Placeholder: "Select Category",
				Options: sdk.RoomCategories, Required: true,
			}},
			Validate: single("category"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				rooms, err := api.GetRoomsByCategory(ctx, text(p, "category"))
				if err != nil {
					return result.Result{}, err
				}
				return result.Rooms(rooms), nil
			},
		},
		action.Descriptor{
			ID:            "addRoom",
			Label:         "Add New Room",
			Icon:          "➕",
			Description:   "Add a new room to the hotel",
			Hint:          "indigo",
			RequiresInput: true,
			Mutating:      true,
			Fields:        addFields,
			Validate:      action.Standard(addFields),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				msg, err := api.AddRoom(ctx, p)
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "Room added successfully!"), nil
			},
		},
		action.Descriptor{
			ID:            "updateRoom",
			Label:         "Update Room",
			Icon:          "✏️",
			Description:   "Update existing room details",
			Hint:          "orange",
			RequiresInput: true,
			Mutating:      true,
			Fields:        updateFields,
			Validate:      validateUpdate,
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				roomID := text(p, "roomId")
				updates := make(map[string]any, len(p))
				for k, v := range p {
					if k != "roomId" {
						updates[k] = v
					}
				}
				msg, err := api.UpdateRoom(ctx, roomID, updates)
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "Room updated successfully!"), nil
			},
		},
		action.Descriptor{
			ID:            "deleteRoom",
			Label:         "Delete Room",
			Icon:          "🗑️",
			Description:   "Remove a room from the system",
			Hint:          "red",
			RequiresInput: true,
			Mutating:      true,
			Fields:        []action.Field{{Name: "roomId", Kind: action.KindText, Placeholder: "Enter Room ID to Delete", Required: true}},
			Validate:      single("roomId"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				msg, err := api.DeleteRoom(ctx, text(p, "roomId"))
				if err != nil {
					return result.Result{}, err
				}
				return ack(msg, "Room deleted successfully!"), nil
			},
		},
		action.Descriptor{
			ID:          "getAllReviews",
			Label:       "All Reviews",
			Icon:        "⭐",
			Description: "View all customer reviews",
			Hint:        "pink",
			Call: func(ctx context.Context, _ action.Payload, _ action.Context) (result.Result, error) {
				reviews, err := api.ListReviews(ctx)
				if err != nil {
					return result.Result{}, err
				}
				return result.Reviews(reviews), nil
			},
		},
		action.Descriptor{
			ID:            "getReviewByUserId",
			Label:         "Reviews by User",
			Icon:          "👤",
			Description:   "View reviews by specific user",
			Hint:          "teal",
			RequiresInput: true,
			Fields:        []action.Field{{Name: "userId", Kind: action.KindText, Placeholder: "Enter User ID", Required: true}},
			Validate:      single("userId"),
			Call: func(ctx context.Context, p action.Payload, _ action.Context) (result.Result, error) {
				reviews, err := api.GetReviewsForUser(ctx, text(p, "userId"))
				if err != nil {
					return result.Result{}, err
				}
				return result.Reviews(reviews), nil
			},
		},
	)
}
