// Package dashboard drives one role's dashboard: which action is selected,
// the form being filled in, and the outcome of the last dispatch.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hoteldesk/internal/action"
	"hoteldesk/internal/domain"
	"hoteldesk/internal/result"
	"hoteldesk/internal/session"

	"go.uber.org/zap"
)

const DefaultTimeout = 15 * time.Second

type State int

const (
	Idle State = iota
	AwaitingInput
	Submitting
	ShowingResult
	ShowingError
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingInput:
		return "awaiting input"
	case Submitting:
		return "submitting"
	case ShowingResult:
		return "showing result"
	case ShowingError:
		return "showing error"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

var (
	ErrBusy         = errors.New("a request is already in flight")
	ErrNoSelection  = errors.New("no action selected")
	ErrNoSession    = errors.New("no active session")
	ErrUnknownField = errors.New("unknown field")
)

// Request is a dispatch the controller has committed to. It is handed back
// to Execute, possibly from another goroutine.
type Request struct {
	seq      uint64
	ActionID string
	Values   action.Values
	Context  action.Context
}

type Outcome struct {
	seq      uint64
	ActionID string
	Result   result.Result
	Err      error
}

// Event reports a state transition.
type Event struct {
	State    State  `json:"-"`
	Name     string `json:"state"`
	ActionID string `json:"action,omitempty"`
}

// Snapshot is a copy of the controller state for painting.
type Snapshot struct {
	State     State
	Selected  *action.Descriptor
	Values    action.Values
	Result    result.Result
	HasResult bool
	Error     string
}

type Controller struct {
	dispatcher *action.Dispatcher
	session    session.Reader
	timeout    time.Duration
	logger     *zap.Logger
	observe    func(Event)

	mu        sync.Mutex
	state     State
	selected  *action.Descriptor
	values    action.Values
	res       result.Result
	hasResult bool
	errMsg    string
	seq       uint64
	cancel    context.CancelFunc
}

type Option func(*Controller)

func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithObserver registers fn to be told about every state transition. fn is
// called with the controller locked and must not block or call back into it.
func WithObserver(fn func(Event)) Option {
	return func(c *Controller) { c.observe = fn }
}

func New(dispatcher *action.Dispatcher, reader session.Reader, opts ...Option) *Controller {
	c := &Controller{
		dispatcher: dispatcher,
		session:    reader,
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
		values:     action.Values{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("role", string(dispatcher.Registry().Role())))
	return c
}

func (c *Controller) Registry() *action.Registry { return c.dispatcher.Registry() }

// Select makes id the current action, clearing any previous outcome. An
// action without input is submitted right away and the returned Request
// must be executed; otherwise the controller waits for the form.
func (c *Controller) Select(id string) (*Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return nil, ErrBusy
	}
	desc, ok := c.dispatcher.Registry().Lookup(id)
	if !ok {
		c.logger.Error("selected unknown action", zap.String("action", id))
		return nil, fmt.Errorf("%w: %s", action.ErrUnknownAction, id)
	}

	// A dispatch refused for lack of a session leaves the state untouched.
	var sess domain.Session
	if !desc.RequiresInput {
		var ok bool
		if sess, ok = c.session.Current(); !ok {
			return nil, ErrNoSession
		}
	}

	c.selected = &desc
	c.values = action.Values{}
	c.res, c.hasResult, c.errMsg = result.Result{}, false, ""

	if desc.RequiresInput {
		c.state = AwaitingInput
		c.emitLocked()
		return nil, nil
	}
	return c.beginLocked(sess), nil
}

func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return ErrBusy
	}
	if c.selected == nil || !c.selected.RequiresInput {
		return ErrNoSelection
	}
	for _, f := range c.selected.Fields {
		if f.Name == name {
			c.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("%w %q for %s", ErrUnknownField, name, c.selected.ID)
}

// Submit commits the current form.
func (c *Controller) Submit() (*Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return nil, ErrBusy
	}
	if c.selected == nil || !c.selected.RequiresInput {
		return nil, ErrNoSelection
	}
	sess, ok := c.session.Current()
	if !ok {
		return nil, ErrNoSession
	}
	return c.beginLocked(sess), nil
}

func (c *Controller) beginLocked(sess domain.Session) *Request {
	c.seq++
	c.state = Submitting
	c.res, c.hasResult, c.errMsg = result.Result{}, false, ""
	c.emitLocked()

	return &Request{
		seq:      c.seq,
		ActionID: c.selected.ID,
		Values:   c.values.Clone(),
		Context:  action.Context{UserID: sess.SubjectID, Role: sess.Role},
	}
}

// Execute performs the remote part of a request under the dispatch
// timeout. It does not touch the visible state; pass the outcome to
// Complete. A handler that ignores its context is abandoned at the deadline.
func (c *Controller) Execute(ctx context.Context, req *Request) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.mu.Lock()
	if c.seq == req.seq {
		c.cancel = cancel
	}
	c.mu.Unlock()

	done := make(chan Outcome, 1)
	go func() {
		res, err := c.dispatcher.Dispatch(ctx, req.ActionID, req.Values, req.Context)
		done <- Outcome{seq: req.seq, ActionID: req.ActionID, Result: res, Err: err}
	}()

	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		return Outcome{seq: req.seq, ActionID: req.ActionID, Err: ctx.Err()}
	}
}

// Complete applies an outcome. Outcomes of requests that were cancelled or
// superseded are dropped and false is returned.
func (c *Controller) Complete(out Outcome) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if out.seq != c.seq || c.state != Submitting {
		c.logger.Debug("dropping stale outcome", zap.String("action", out.ActionID))
		return false
	}
	c.cancel = nil

	if out.Err != nil {
		c.state = ShowingError
		c.errMsg = action.Message(out.Err)
		c.logger.Info("action failed", zap.String("action", out.ActionID), zap.Error(out.Err))
		c.emitLocked()
		return true
	}

	c.state = ShowingResult
	c.res, c.hasResult = out.Result, true
	c.emitLocked()
	if c.selected != nil && c.selected.Mutating {
		c.selected = nil
		c.values = action.Values{}
	}
	return true
}

// Run executes and completes a request in one go and returns the new state.
// A nil request leaves the state as it is.
func (c *Controller) Run(ctx context.Context, req *Request) Snapshot {
	if req != nil {
		c.Complete(c.Execute(ctx, req))
	}
	return c.Snapshot()
}

// Cancel returns to Idle from any state. A dispatch in flight is cancelled
// and its outcome will be dropped.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.seq++
	c.state = Idle
	c.emitLocked()
	c.selected = nil
	c.values = action.Values{}
	c.res, c.hasResult, c.errMsg = result.Result{}, false, ""
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		State:     c.state,
		Values:    c.values.Clone(),
		Result:    c.res,
		HasResult: c.hasResult,
		Error:     c.errMsg,
	}
	if c.selected != nil {
		desc := *c.selected
		snap.Selected = &desc
	}
	return snap
}

func (c *Controller) emitLocked() {
	if c.observe == nil {
		return
	}
	ev := Event{State: c.state, Name: c.state.String()}
	if c.selected != nil {
		ev.ActionID = c.selected.ID
	}
	c.observe(ev)
}
