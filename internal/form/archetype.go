// Package form implements the dynamic profile-form engine: the archetype
// catalog, the schema builder, field validation, and the record codec that
// round-trips a schema through the schema-less record store.
package form

import (
	"regexp"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Kind classifies a field archetype.
type Kind int

const (
	TextInput Kind = iota + 1
	SingleSelect
	MultiSelect
	DatePicker
)

// String returns the wire-visible kind name.
func (k Kind) String() string {
	switch k {
	case TextInput:
		return "text-input"
	case SingleSelect:
		return "dropdown"
	case MultiSelect:
		return "multi-select"
	case DatePicker:
		return "date-picker"
	default:
		return "unknown"
	}
}

// ParseKind maps a wire kind name back to a Kind. Returns 0 for unknown names.
func ParseKind(s string) Kind {
	switch s {
	case "text-input":
		return TextInput
	case "dropdown":
		return SingleSelect
	case "multi-select":
		return MultiSelect
	case "date-picker":
		return DatePicker
	default:
		return 0
	}
}

// Subtype values. These are the raw identifiers existing records were written
// with, so they double as the decode vocabulary, including the historical
// "intrests" spelling.
const (
	SubtypeName      = "Name"
	SubtypePhone     = "Phone"
	SubtypeEmail     = "Email"
	SubtypeAddress   = "Address"
	SubtypeTextArea  = "textArea"
	SubtypeHeight    = "height"
	SubtypeGender    = "gender"
	SubtypeInterests = "intrests"
)

// Option is one selectable (displayLabel, value) pair for a select archetype.
type Option struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// ValidationSpec carries exactly the constraints relevant to one archetype.
// Zero values mean "unset"; never all populated at once.
type ValidationSpec struct {
	Required  bool
	MinLength int
	MaxLength int
	// Pattern is matched against string values ("<label> is invalid" on miss).
	Pattern *regexp.Regexp
	// Rule is a compiled boolean predicate over {"value": v}.
	Rule *vm.Program
	// MinAgeYears applies to date values: whole-year age must reach it.
	MinAgeYears int
}

// Archetype is an immutable field-type template offered by the catalog.
type Archetype struct {
	Kind        Kind
	Subtype     string
	Options     []Option
	Placeholder string
	Validation  ValidationSpec
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// mustRule compiles a boolean predicate for a static archetype table.
func mustRule(src string) *vm.Program {
	p, err := expr.Compile(src, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		panic("form: compiling rule " + src + ": " + err.Error())
	}
	return p
}

var heightOptions = []Option{
	{Label: "1FT", Value: 1},
	{Label: "2FT", Value: 2},
	{Label: "3FT", Value: 3},
	{Label: "4FT", Value: 4},
	{Label: "5FT", Value: 5},
	{Label: "6FT", Value: 6},
	{Label: "7FT", Value: 7},
	{Label: "8FT", Value: 8},
}

var interestOptions = []Option{
	{Label: "Cricket", Value: "Cricket"},
	{Label: "Hockey", Value: "Hockey"},
	{Label: "Football", Value: "Football"},
	{Label: "Chess", Value: "Chess"},
	{Label: "Carrom", Value: "Carrom"},
	{Label: "Badminton", Value: "Badminton"},
}

var genderOptions = []Option{
	{Label: "Male", Value: "Male"},
	{Label: "Female", Value: "Female"},
}

// textArchetypes are the text-input subtypes offered by the catalog, in
// display order. Each subtype can be added at most once per schema.
func textArchetypes() []Archetype {
	return []Archetype{
		{
			Kind:        TextInput,
			Subtype:     SubtypeName,
			Placeholder: "Enter your name",
			Validation:  ValidationSpec{Required: true, MinLength: 2, MaxLength: 100},
		},
		{
			Kind:        TextInput,
			Subtype:     SubtypePhone,
			Placeholder: "Enter phone number",
			Validation:  ValidationSpec{Required: true, MinLength: 10, MaxLength: 10, Pattern: phonePattern},
		},
		{
			Kind:        TextInput,
			Subtype:     SubtypeEmail,
			Placeholder: "Enter your email",
			Validation:  ValidationSpec{Required: true, MinLength: 6, MaxLength: 255, Pattern: emailPattern},
		},
		{
			Kind:        TextInput,
			Subtype:     SubtypeAddress,
			Placeholder: "Enter address",
			Validation:  ValidationSpec{MinLength: 1, MaxLength: 255},
		},
		{
			Kind:        TextInput,
			Subtype:     SubtypeTextArea,
			Placeholder: "Enter details...",
			Validation:  ValidationSpec{MaxLength: 500},
		},
	}
}

// selectArchetypes are the dropdown subtypes, in display order.
func selectArchetypes() []Archetype {
	return []Archetype{
		{
			Kind:        SingleSelect,
			Subtype:     SubtypeHeight,
			Options:     heightOptions,
			Placeholder: "Select height",
			Validation:  ValidationSpec{Required: true, Rule: mustRule("value >= 1 && value <= 8")},
		},
		{
			Kind:        SingleSelect,
			Subtype:     SubtypeGender,
			Options:     genderOptions,
			Placeholder: "Select gender",
			Validation:  ValidationSpec{},
		},
		{
			Kind:        MultiSelect,
			Subtype:     SubtypeInterests,
			Options:     interestOptions,
			Placeholder: "Select interests",
			Validation:  ValidationSpec{},
		},
	}
}

// dateArchetype is the single date-of-birth picker.
func dateArchetype() Archetype {
	return Archetype{
		Kind:        DatePicker,
		Placeholder: "Select birth date",
		Validation:  ValidationSpec{MinAgeYears: 10},
	}
}
