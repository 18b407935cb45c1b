package action

import (
	"fmt"

	"hoteldesk/internal/domain"
)

// Registry is the ordered, read-only list of actions offered to one role.
type Registry struct {
	role    domain.Role
	actions []Descriptor
	index   map[string]int
}

func NewRegistry(role domain.Role, descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		role:    role,
		actions: make([]Descriptor, 0, len(descriptors)),
		index:   make(map[string]int, len(descriptors)),
	}

	for _, d := range descriptors {
		if d.ID == "" {
			return nil, fmt.Errorf("registry %s: action without id", role)
		}
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("registry %s: duplicate action id %q", role, d.ID)
		}
		if err := checkFields(d); err != nil {
			return nil, fmt.Errorf("registry %s: %w", role, err)
		}
		r.index[d.ID] = len(r.actions)
		r.actions = append(r.actions, d)
	}

	return r, nil
}

func MustRegistry(role domain.Role, descriptors ...Descriptor) *Registry {
	r, err := NewRegistry(role, descriptors...)
	if err != nil {
		panic(err)
	}
	return r
}

func checkFields(d Descriptor) error {
	seen := make(map[string]bool, len(d.Fields))
	for _, f := range d.Fields {
		if seen[f.Name] {
			return fmt.Errorf("action %s: duplicate field %q", d.ID, f.Name)
		}
		seen[f.Name] = true
		if f.Kind != KindSelect && len(f.Options) > 0 {
			return fmt.Errorf("action %s: field %q has options but is not a select", d.ID, f.Name)
		}
	}
	if d.RequiresInput && len(d.Fields) == 0 {
		return fmt.Errorf("action %s: requires input but declares no fields", d.ID)
	}
	return nil
}

func (r *Registry) Role() domain.Role { return r.role }

func (r *Registry) Len() int { return len(r.actions) }

// Actions returns a copy of the descriptors in display order.
func (r *Registry) Actions() []Descriptor {
	out := make([]Descriptor, len(r.actions))
	copy(out, r.actions)
	return out
}

func (r *Registry) Lookup(id string) (Descriptor, bool) {
	i, ok := r.index[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.actions[i], true
}
