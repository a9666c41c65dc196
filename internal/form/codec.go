package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/priyankjain/shopform/pkg/fault"
)

// Encode flattens a schema into the stored blob: a JSON object mapping each
// field's label to its raw value. Dates become RFC 3339 strings, multi-select
// answers stay arrays (an empty set encodes as [], never absent), numbers and
// strings pass through. Field order is preserved in the object text so a
// decode rebuilds the schema in the same order.
func Encode(fields []*FieldInstance) (string, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(f.Label)
		if err != nil {
			return "", fmt.Errorf("encoding label %q: %w", f.Label, err)
		}
		val, err := json.Marshal(f.Value.Raw())
		if err != nil {
			return "", fmt.Errorf("encoding value for %q: %w", f.Label, err)
		}
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')
	return b.String(), nil
}

// Decode parses a stored blob back into an editable schema. Archetype
// metadata is not persisted alongside the values, so each entry's archetype
// is inferred from its label (case-insensitive) with a fixed precedence:
//
//  1. label contains "dob" or "date of birth"  → date picker
//  2. label contains "intrest"/"interest"      → interests multi-select
//  3. label equals "height"                    → height dropdown, required
//  4. label equals "gender"                    → gender dropdown, optional
//  5. label equals "phone"                     → phone input, 10 digits
//  6. label equals "email"                     → email input
//  7. label equals "name"                      → name input, length 2..100
//  8. label contains "text"                    → text area, max 1000, optional
//  9. anything else                            → plain optional text input
//
// A blob that is not a JSON object fails with fault.ErrCorruptRecord.
func Decode(blob string) (*Builder, error) {
	entries, err := parseOrdered(blob)
	if err != nil {
		return nil, fault.NewClientError("decoding record blob", fault.ErrCorruptRecord)
	}

	fields := make([]*FieldInstance, 0, len(entries))
	for _, e := range entries {
		f := inferField(e.label, e.value)
		fields = append(fields, f)
	}
	return editingBuilder(fields), nil
}

type blobEntry struct {
	label string
	value any
}

// parseOrdered walks the JSON object token stream so decoded fields keep the
// key order the blob was written with. json.Unmarshal into a map would
// scramble it.
func parseOrdered(blob string) ([]blobEntry, error) {
	dec := json.NewDecoder(strings.NewReader(blob))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("blob is not a JSON object")
	}

	var entries []blobEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("non-string object key")
		}
		var raw any
		if err := dec.Decode(&raw); err != nil {
			return nil, err
		}
		entries = append(entries, blobEntry{label: key, value: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return entries, nil
}

// inferField maps one stored (label, value) pair to a reconstructed field.
func inferField(label string, raw any) *FieldInstance {
	lower := strings.ToLower(label)

	switch {
	case strings.Contains(lower, "dob") || strings.Contains(lower, "date of birth"):
		a := dateArchetype()
		a.Validation.Required = false
		return &FieldInstance{Label: label, Archetype: a, Value: coerceDate(raw)}

	case strings.Contains(lower, "intrest") || strings.Contains(lower, "interest"):
		return &FieldInstance{Label: label, Archetype: selectBySubtype(SubtypeInterests), Value: coerceSet(raw)}

	case lower == "height":
		return &FieldInstance{Label: label, Archetype: selectBySubtype(SubtypeHeight), Value: coerceNumber(raw)}

	case lower == "gender":
		return &FieldInstance{Label: label, Archetype: selectBySubtype(SubtypeGender), Value: coerceOptionalText(raw)}

	case lower == "phone":
		return &FieldInstance{Label: label, Archetype: textBySubtype(SubtypePhone), Value: coerceText(raw)}

	case lower == "email":
		return &FieldInstance{Label: label, Archetype: textBySubtype(SubtypeEmail), Value: coerceText(raw)}

	case lower == "name":
		return &FieldInstance{Label: label, Archetype: textBySubtype(SubtypeName), Value: coerceText(raw)}

	case strings.Contains(lower, "text"):
		a := textBySubtype(SubtypeTextArea)
		a.Validation.MaxLength = 1000
		return &FieldInstance{Label: label, Archetype: a, Value: coerceText(raw)}

	default:
		a := Archetype{
			Kind:        TextInput,
			Placeholder: "Enter " + label,
			Validation:  ValidationSpec{},
		}
		return &FieldInstance{Label: label, Archetype: a, Value: coerceText(raw)}
	}
}

func textBySubtype(subtype string) Archetype {
	for _, a := range textArchetypes() {
		if a.Subtype == subtype {
			return a
		}
	}
	panic("form: unknown text subtype " + subtype)
}

func selectBySubtype(subtype string) Archetype {
	for _, a := range selectArchetypes() {
		if a.Subtype == subtype {
			return a
		}
	}
	panic("form: unknown select subtype " + subtype)
}

func coerceText(raw any) Value {
	switch v := raw.(type) {
	case string:
		return Text(v)
	case json.Number:
		return Text(v.String())
	case nil:
		return Text("")
	default:
		return Text(fmt.Sprintf("%v", v))
	}
}

func coerceOptionalText(raw any) Value {
	if raw == nil {
		return Null()
	}
	return coerceText(raw)
}

func coerceNumber(raw any) Value {
	switch v := raw.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return Number(int(n))
		}
		if f, err := v.Float64(); err == nil {
			return Number(int(f))
		}
		return Number(0)
	case nil:
		return Number(0)
	default:
		return Number(0)
	}
}

// coerceSet keeps only string members, preserving order; any non-array value
// collapses to the empty set.
func coerceSet(raw any) Value {
	arr, ok := raw.([]any)
	if !ok {
		return Set([]string{})
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return Set(out)
}

func coerceDate(raw any) Value {
	s, ok := raw.(string)
	if !ok || s == "" {
		return Null()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Date(t)
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return Date(t)
	}
	return Null()
}
