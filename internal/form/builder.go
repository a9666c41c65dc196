package form

import (
	"fmt"

	"github.com/priyankjain/shopform/pkg/fault"
)

// State tracks where a schema sits in its lifecycle.
type State int

const (
	StateEmpty State = iota
	StateBuilding
	StateSubmittable
	StateEditing
	StatePersisted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateBuilding:
		return "building"
	case StateSubmittable:
		return "submittable"
	case StateEditing:
		return "editing"
	case StatePersisted:
		return "persisted"
	default:
		return "unknown"
	}
}

// Builder assembles an ordered schema of field instances from the catalog.
// A builder owns its catalog pools and its fields outright; it is bound to a
// single build/edit session and is not safe for concurrent use.
type Builder struct {
	catalog   *Catalog
	fields    []*FieldInstance
	editing   bool
	persisted bool
}

// NewBuilder starts an empty schema-building session with a fresh catalog.
func NewBuilder() *Builder {
	return &Builder{catalog: NewCatalog()}
}

// editingBuilder wraps fields reconstructed from a stored record. The
// catalog starts with the reconstructed subtypes already consumed so a
// re-added duplicate is still rejected.
func editingBuilder(fields []*FieldInstance) *Builder {
	b := &Builder{catalog: NewCatalog(), editing: true}
	for _, f := range fields {
		b.catalog.take(f.Archetype.Kind, f.Archetype.Subtype)
		f.Error = Validate(f)
		b.fields = append(b.fields, f)
	}
	return b
}

// Available exposes the unconsumed archetypes of a kind for this session.
func (b *Builder) Available(kind Kind) []Archetype {
	return b.catalog.Available(kind)
}

// AddField appends a new field with the given label, minted from the
// catalog archetype for (kind, subtype). The new field starts at the
// archetype's zero value with its error computed immediately.
//
// Fails with fault.ErrDuplicateLabel when the label is already present
// (case-sensitive exact match), fault.ErrDuplicateDatePicker when the
// schema's one date picker is already placed, and fault.ErrSubtypeExhausted
// when the subtype has been consumed from the pool.
func (b *Builder) AddField(kind Kind, subtype, label string) (*FieldInstance, error) {
	for _, f := range b.fields {
		if f.Label == label {
			return nil, fault.NewClientError(fmt.Sprintf("adding field %q", label), fault.ErrDuplicateLabel)
		}
	}

	if kind == DatePicker {
		for _, f := range b.fields {
			if f.Archetype.Kind == DatePicker {
				return nil, fault.NewClientError(fmt.Sprintf("adding field %q", label), fault.ErrDuplicateDatePicker)
			}
		}
	}

	arch, ok := b.catalog.take(kind, subtype)
	if !ok {
		return nil, fault.NewClientError(fmt.Sprintf("adding field %q", label), fault.ErrSubtypeExhausted)
	}

	f := &FieldInstance{
		Label:     label,
		Archetype: arch,
		Value:     zeroValue(arch),
	}
	f.Error = Validate(f)
	b.fields = append(b.fields, f)
	b.persisted = false
	return f, nil
}

// RemoveField drops the field with the label and returns its archetype to
// the catalog pool.
func (b *Builder) RemoveField(label string) error {
	for i, f := range b.fields {
		if f.Label == label {
			b.fields = append(b.fields[:i], b.fields[i+1:]...)
			b.catalog.release(f.Archetype)
			b.persisted = false
			return nil
		}
	}
	return fault.NewClientError(fmt.Sprintf("removing field %q", label), fault.ErrNotFound)
}

// SetValue replaces the field's value and recomputes its error. No other
// side effects.
func (b *Builder) SetValue(label string, v Value) error {
	f := b.Field(label)
	if f == nil {
		return fault.NewClientError(fmt.Sprintf("setting field %q", label), fault.ErrNotFound)
	}
	f.Value = v
	f.Error = Validate(f)
	b.persisted = false
	return nil
}

// Field returns the instance with the label, or nil.
func (b *Builder) Field(label string) *FieldInstance {
	for _, f := range b.fields {
		if f.Label == label {
			return f
		}
	}
	return nil
}

// Fields returns the schema in insertion order. Callers must not reorder it.
func (b *Builder) Fields() []*FieldInstance {
	return b.fields
}

// Submittable reports whether every required field holds a non-empty value
// and no field carries an error. Non-required blank fields count as valid.
func (b *Builder) Submittable() bool {
	if len(b.fields) == 0 {
		return false
	}
	for _, f := range b.fields {
		if f.Archetype.Validation.Required && f.Value.Empty() {
			return false
		}
		if Validate(f) != "" {
			return false
		}
	}
	return true
}

// MarkPersisted records a successful save or update. The record service
// calls this; any later mutation drops the builder back into an edit state.
func (b *Builder) MarkPersisted() {
	b.persisted = true
	b.editing = true
}

// State reports the builder's lifecycle position.
func (b *Builder) State() State {
	if b.persisted {
		return StatePersisted
	}
	if len(b.fields) == 0 {
		return StateEmpty
	}
	if b.Submittable() {
		return StateSubmittable
	}
	if b.editing {
		return StateEditing
	}
	return StateBuilding
}
