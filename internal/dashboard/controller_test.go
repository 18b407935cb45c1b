package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"hoteldesk/internal/action"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/result"
	"hoteldesk/pkg/sdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReader struct{ ok bool }

func (s staticReader) Current() (domain.Session, bool) {
	if !s.ok {
		return domain.Session{}, false
	}
	return domain.Session{SubjectID: "u1", Role: domain.RoleManager}, true
}

type harness struct {
	calls   atomic.Int32
	fail    error
	release chan struct{}
}

func (h *harness) registry() *action.Registry {
	roomFields := []action.Field{
		{Name: "roomNumber", Kind: action.KindText, Required: true},
		{Name: "price", Kind: action.KindNumber, Required: true},
	}
	return action.MustRegistry(domain.RoleManager,
		action.Descriptor{
			ID: "list",
			Call: func(context.Context, action.Payload, action.Context) (result.Result, error) {
				h.calls.Add(1)
				return result.Rooms([]sdk.Room{{RoomID: "R1"}}), nil
			},
		},
		action.Descriptor{
			ID:            "find",
			RequiresInput: true,
			Fields:        []action.Field{{Name: "roomId", Kind: action.KindText, Required: true}},
			Validate:      action.Standard([]action.Field{{Name: "roomId", Kind: action.KindText, Required: true}}),
			Call: func(context.Context, action.Payload, action.Context) (result.Result, error) {
				h.calls.Add(1)
				if h.fail != nil {
					return result.Result{}, h.fail
				}
				return result.Rooms([]sdk.Room{{RoomID: "R2"}}), nil
			},
		},
		action.Descriptor{
			ID:            "add",
			RequiresInput: true,
			Mutating:      true,
			Fields:        roomFields,
			Validate:      action.Standard(roomFields),
			Call: func(_ context.Context, _ action.Payload, actx action.Context) (result.Result, error) {
				h.calls.Add(1)
				if h.fail != nil {
					return result.Result{}, h.fail
				}
				return result.Acknowledgement("Room added successfully! by " + actx.UserID), nil
			},
		},
		action.Descriptor{
			ID: "slow",
			Call: func(context.Context, action.Payload, action.Context) (result.Result, error) {
				<-h.release
				return result.Acknowledgement("late"), nil
			},
		},
	)
}

func newController(t *testing.T, h *harness, opts ...Option) *Controller {
	t.Helper()
	h.release = make(chan struct{})
	t.Cleanup(func() { close(h.release) })
	return New(action.NewDispatcher(h.registry(), nil), staticReader{ok: true}, opts...)
}

func TestSelectWithoutInputSubmitsImmediately(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	req, err := c.Select("list")
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.Equal(t, Submitting, c.Snapshot().State)
	assert.Empty(t, req.Values)

	snap := c.Run(context.Background(), req)
	assert.Equal(t, ShowingResult, snap.State)
	assert.Equal(t, result.KindRoomList, snap.Result.Kind)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "list", snap.Selected.ID)
}

func TestSelectWithInputAwaitsForm(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	req, err := c.Select("find")
	require.NoError(t, err)
	assert.Nil(t, req)
	assert.Equal(t, AwaitingInput, c.Snapshot().State)
	assert.Zero(t, h.calls.Load())
}

func TestEmptyFormFailsWithoutCall(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	_, err := c.Select("add")
	require.NoError(t, err)
	req, err := c.Submit()
	require.NoError(t, err)

	snap := c.Run(context.Background(), req)
	assert.Equal(t, ShowingError, snap.State)
	assert.Equal(t, "missing required field(s): roomNumber, price", snap.Error)
	assert.Zero(t, h.calls.Load())
}

func TestMutatingSuccessResetsForm(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	_, err := c.Select("add")
	require.NoError(t, err)
	require.NoError(t, c.SetField("roomNumber", "101"))
	require.NoError(t, c.SetField("price", "99"))

	req, err := c.Submit()
	require.NoError(t, err)
	assert.Equal(t, action.Values{"roomNumber": "101", "price": "99"}, req.Values)
	assert.Equal(t, "u1", req.Context.UserID)

	snap := c.Run(context.Background(), req)
	assert.Equal(t, ShowingResult, snap.State)
	assert.Nil(t, snap.Selected)
	assert.Empty(t, snap.Values)
	assert.Equal(t, result.Acknowledgement("Room added successfully! by u1"), snap.Result)
}

func TestFailureKeepsValues(t *testing.T) {
	h := &harness{fail: &sdk.APIError{Status: 409, Message: "Room number already exists"}}
	c := newController(t, h)

	_, err := c.Select("add")
	require.NoError(t, err)
	require.NoError(t, c.SetField("roomNumber", "101"))
	require.NoError(t, c.SetField("price", "99"))
	req, err := c.Submit()
	require.NoError(t, err)

	snap := c.Run(context.Background(), req)
	assert.Equal(t, ShowingError, snap.State)
	assert.Equal(t, "Room number already exists", snap.Error)
	assert.Equal(t, action.Values{"roomNumber": "101", "price": "99"}, snap.Values)
	require.NotNil(t, snap.Selected)
	assert.Equal(t, "add", snap.Selected.ID)
}

func TestFailureWithoutMessageUsesFallback(t *testing.T) {
	h := &harness{fail: &sdk.TransportError{Op: "GET /x", Err: errors.New("connection refused")}}
	c := newController(t, h)

	_, err := c.Select("find")
	require.NoError(t, err)
	require.NoError(t, c.SetField("roomId", "R2"))
	req, err := c.Submit()
	require.NoError(t, err)

	snap := c.Run(context.Background(), req)
	assert.Equal(t, action.FallbackMessage, snap.Error)
}

func TestBusyWhileSubmitting(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	req, err := c.Select("list")
	require.NoError(t, err)
	require.NotNil(t, req)

	_, err = c.Select("find")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrBusy)
}

func TestReselectClearsError(t *testing.T) {
	h := &harness{fail: errors.New("boom")}
	c := newController(t, h)

	_, err := c.Select("find")
	require.NoError(t, err)
	require.NoError(t, c.SetField("roomId", "R2"))
	req, err := c.Submit()
	require.NoError(t, err)
	require.Equal(t, ShowingError, c.Run(context.Background(), req).State)

	_, err = c.Select("add")
	require.NoError(t, err)
	snap := c.Snapshot()
	assert.Equal(t, AwaitingInput, snap.State)
	assert.Empty(t, snap.Error)
	assert.Empty(t, snap.Values)
}

func TestCancelFromAnyState(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	_, err := c.Select("find")
	require.NoError(t, err)
	require.NoError(t, c.SetField("roomId", "R2"))
	c.Cancel()

	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Nil(t, snap.Selected)
	assert.Empty(t, snap.Values)
}

func TestCancelDropsInFlightOutcome(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	req, err := c.Select("list")
	require.NoError(t, err)
	out := c.Execute(context.Background(), req)

	c.Cancel()
	assert.False(t, c.Complete(out))
	assert.Equal(t, Idle, c.Snapshot().State)
}

func TestTimeoutShowsError(t *testing.T) {
	h := &harness{}
	c := newController(t, h, WithTimeout(20*time.Millisecond))

	req, err := c.Select("slow")
	require.NoError(t, err)

	snap := c.Run(context.Background(), req)
	assert.Equal(t, ShowingError, snap.State)
	assert.Equal(t, action.TimeoutMessage, snap.Error)
}

func TestUnknownActionAndField(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	_, err := c.Select("nope")
	assert.ErrorIs(t, err, action.ErrUnknownAction)
	assert.Equal(t, Idle, c.Snapshot().State)

	assert.ErrorIs(t, c.SetField("roomId", "x"), ErrNoSelection)

	_, err = c.Select("find")
	require.NoError(t, err)
	assert.ErrorIs(t, c.SetField("colour", "x"), ErrUnknownField)
}

func TestNoSessionRefusesDispatch(t *testing.T) {
	h := &harness{}
	c := New(action.NewDispatcher(h.registry(), nil), staticReader{})

	_, err := c.Select("list")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Zero(t, h.calls.Load())

	// The refused select must not leave a selection behind for Submit.
	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Nil(t, snap.Selected)
	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestSubmitNeedsAForm(t *testing.T) {
	h := &harness{}
	c := newController(t, h)

	req, err := c.Select("list")
	require.NoError(t, err)
	require.Equal(t, ShowingResult, c.Run(context.Background(), req).State)

	_, err = c.Submit()
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.Equal(t, int32(1), h.calls.Load())
}

func TestObserverSeesTransitions(t *testing.T) {
	h := &harness{}
	var events []Event
	c := newController(t, h, WithObserver(func(e Event) { events = append(events, e) }))

	_, err := c.Select("find")
	require.NoError(t, err)
	require.NoError(t, c.SetField("roomId", "R1"))
	req, err := c.Submit()
	require.NoError(t, err)
	c.Run(context.Background(), req)
	c.Cancel()

	var names []string
	for _, e := range events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"awaiting input", "submitting", "showing result", "idle"}, names)
	assert.Equal(t, "find", events[0].ActionID)
}
