// Package action defines dashboard actions: a declarative form schema plus a
// handler split into a pure validation step and a remote call step.
package action

import (
	"context"
	"errors"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/result"
)

type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindTel      FieldKind = "tel"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
	KindTextarea FieldKind = "textarea"
)

type Field struct {
	Name        string
	Kind        FieldKind
	Placeholder string
	Options     []string
	Required    bool
}

// Values are the raw form inputs keyed by field name.
type Values map[string]string

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Payload is what a validated form turns into before it is sent.
type Payload map[string]any

// Context carries who is acting.
type Context struct {
	UserID string
	Role   domain.Role
}

type ValidateFunc func(Values) (Payload, error)

type CallFunc func(ctx context.Context, p Payload, actx Context) (result.Result, error)

type Descriptor struct {
	ID          string
	Label       string
	Icon        string
	Description string
	// Hint is a presentation hint (accent colour) for front ends.
	Hint          string
	RequiresInput bool
	// Mutating actions change remote state; a successful run resets the form.
	Mutating bool
	Fields   []Field
	Validate ValidateFunc
	Call     CallFunc
}

// Check runs only the validation step.
func (d Descriptor) Check(values Values) (Payload, error) {
	if d.Validate == nil {
		return Payload{}, nil
	}
	return d.Validate(values)
}

// Run validates and, when validation passes, performs the call.
func (d Descriptor) Run(ctx context.Context, values Values, actx Context) (result.Result, error) {
	if d.Call == nil {
		return result.Result{}, errors.New("action " + d.ID + " has no handler")
	}
	payload, err := d.Check(values)
	if err != nil {
		return result.Result{}, err
	}
	return d.Call(ctx, payload, actx)
}
