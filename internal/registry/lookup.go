package registry

import (
	"strings"

	"hoteldesk/internal/action"
	"hoteldesk/internal/result"
)

// single validates a form with one required field.
func single(name string) action.ValidateFunc {
	return func(v action.Values) (action.Payload, error) {
		value := strings.TrimSpace(v[name])
		if value == "" {
			return nil, &action.ValidationError{Err: action.ErrMissingField, Fields: []string{name}}
		}
		return action.Payload{name: value}, nil
	}
}

func text(p action.Payload, name string) string {
	s, _ := p[name].(string)
	return s
}

func ack(msg, fallback string) result.Result {
	if msg == "" {
		msg = fallback
	}
	return result.Acknowledgement(msg)
}
