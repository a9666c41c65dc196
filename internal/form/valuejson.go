package form

import (
	"encoding/json"
	"errors"
	"time"
)

// ParseJSONValue decodes a raw JSON value into the shape the archetype
// expects. JSON null and an absent value both map to the null Value.
func ParseJSONValue(a Archetype, raw json.RawMessage) (Value, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Null(), nil
	}

	switch a.Kind {
	case TextInput:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, errors.New("expected a string value")
		}
		return Text(s), nil

	case SingleSelect:
		if a.Subtype == SubtypeHeight {
			var n int
			if err := json.Unmarshal(raw, &n); err != nil {
				return Value{}, errors.New("expected a numeric value")
			}
			return Number(n), nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, errors.New("expected a string value")
		}
		return Text(s), nil

	case MultiSelect:
		var ss []string
		if err := json.Unmarshal(raw, &ss); err != nil {
			return Value{}, errors.New("expected an array of strings")
		}
		return Set(ss), nil

	case DatePicker:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Value{}, errors.New("expected a date string")
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			t, err = time.Parse("2006-01-02", s)
		}
		if err != nil {
			return Value{}, errors.New("expected an ISO-8601 date")
		}
		return Date(t), nil

	default:
		return Value{}, errors.New("unsupported field kind")
	}
}
