package form

import "time"

// ValueKind tags the shape held by a Value.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueText
	ValueNumber
	ValueDate
	ValueSet
)

// Value is the closed union of the four shapes a field can hold: string,
// number, date, or an ordered set of strings. The zero Value is null.
type Value struct {
	kind ValueKind
	str  string
	num  int
	date time.Time
	set  []string
}

func Null() Value            { return Value{} }
func Text(s string) Value    { return Value{kind: ValueText, str: s} }
func Number(n int) Value     { return Value{kind: ValueNumber, num: n} }
func Date(t time.Time) Value { return Value{kind: ValueDate, date: t} }
func Set(ss []string) Value  { return Value{kind: ValueSet, set: ss} }

func (v Value) Kind() ValueKind { return v.kind }

// Empty reports whether the value counts as blank for validation purposes:
// empty string, zero number, null, zero date, or empty set.
func (v Value) Empty() bool {
	switch v.kind {
	case ValueNull:
		return true
	case ValueText:
		return v.str == ""
	case ValueNumber:
		return v.num == 0
	case ValueDate:
		return v.date.IsZero()
	case ValueSet:
		return len(v.set) == 0
	default:
		return true
	}
}

func (v Value) Text() string { return v.str }

func (v Value) Number() int { return v.num }

func (v Value) Date() time.Time { return v.date }

// Set returns the ordered members. Callers must not mutate the slice.
func (v Value) Set() []string { return v.set }

// Raw returns the encodable representation of the value: string, int,
// RFC 3339 date string, ordered []string, or nil.
func (v Value) Raw() any {
	switch v.kind {
	case ValueText:
		return v.str
	case ValueNumber:
		return v.num
	case ValueDate:
		if v.date.IsZero() {
			return nil
		}
		return v.date.UTC().Format(time.RFC3339)
	case ValueSet:
		if v.set == nil {
			return []string{}
		}
		return v.set
	default:
		return nil
	}
}

// FieldInstance is one concrete field within a schema: the user-assigned
// label (its identity key), the archetype it was minted from, the current
// value, and the validation outcome for that value. Error is recomputed on
// every value mutation; it is never stale relative to Value.
type FieldInstance struct {
	Label     string
	Archetype Archetype
	Value     Value
	Error     string
}

// zeroValue returns the initial value for an archetype: "" for text, 0 for
// height, null for gender and dates, empty set for interests.
func zeroValue(a Archetype) Value {
	switch a.Kind {
	case TextInput:
		return Text("")
	case SingleSelect:
		if a.Subtype == SubtypeHeight {
			return Number(0)
		}
		return Null()
	case MultiSelect:
		return Set([]string{})
	case DatePicker:
		return Null()
	default:
		return Null()
	}
}
