package action

import (
	"strconv"
	"strings"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// Require fails with a ValidationError naming every blank field.
func Require(values Values, names ...string) error {
	var missing []string
	for _, name := range names {
		if blank(values[name]) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Err: ErrMissingField, Fields: missing}
	}
	return nil
}

// RequireFields checks every field the descriptor marks as required.
func RequireFields(fields []Field, values Values) error {
	var names []string
	for _, f := range fields {
		if f.Required {
			names = append(names, f.Name)
		}
	}
	return Require(values, names...)
}

// Compact keeps the non-blank values, minus the excluded names.
func Compact(values Values, exclude ...string) Payload {
	skip := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		skip[name] = true
	}
	out := Payload{}
	for k, v := range values {
		if skip[k] || blank(v) {
			continue
		}
		out[k] = v
	}
	return out
}

// Number parses a decimal; input that does not parse is passed through
// untouched so the backend can reject it.
func Number(s string) any {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func Integer(s string) any {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return s
}

// ConvertNumbers rewrites the named payload entries with Number.
func ConvertNumbers(p Payload, names ...string) {
	for _, name := range names {
		if s, ok := p[name].(string); ok {
			p[name] = Number(s)
		}
	}
}

// Standard is the validation used by most create-style actions: every
// required field must be present, numeric fields are parsed, blank optional
// fields are left out.
func Standard(fields []Field) ValidateFunc {
	return func(values Values) (Payload, error) {
		if err := RequireFields(fields, values); err != nil {
			return nil, err
		}
		p := Compact(pick(fields, values))
		for _, f := range fields {
			if f.Kind == KindNumber {
				ConvertNumbers(p, f.Name)
			}
		}
		return p, nil
	}
}

// Partial is the validation used by update-style actions: the key fields are
// required, everything else is optional but at least one must be given.
func Partial(fields []Field, keys ...string) ValidateFunc {
	return func(values Values) (Payload, error) {
		if err := Require(values, keys...); err != nil {
			return nil, err
		}
		updates := Compact(pick(fields, values), keys...)
		if len(updates) == 0 {
			return nil, &ValidationError{Err: ErrNoFieldProvided, Msg: "no field provided: please provide at least one field to update"}
		}
		for _, f := range fields {
			if f.Kind == KindNumber {
				ConvertNumbers(updates, f.Name)
			}
		}
		for _, key := range keys {
			updates[key] = strings.TrimSpace(values[key])
		}
		return updates, nil
	}
}

// pick drops values that do not belong to a declared field.
func pick(fields []Field, values Values) Values {
	out := make(Values, len(fields))
	for _, f := range fields {
		if v, ok := values[f.Name]; ok {
			out[f.Name] = v
		}
	}
	return out
}
