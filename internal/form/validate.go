package form

import (
	"fmt"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Validate applies a field's validation spec to its current value and
// returns the first failing rule's message, or "" when valid.
//
// Rule order is fixed: blank-and-optional short-circuits to valid (format
// rules are deliberately skipped for optional blank fields), then required,
// then min length, then max length, then pattern/custom rule. No multi-error
// aggregation per field.
func Validate(f *FieldInstance) string {
	return validateAt(f, time.Now())
}

func validateAt(f *FieldInstance, now time.Time) string {
	spec := f.Archetype.Validation
	v := f.Value

	if !spec.Required && v.Empty() {
		return ""
	}
	if spec.Required && v.Empty() {
		return fmt.Sprintf("%s is required", f.Label)
	}

	if v.Kind() == ValueText {
		if spec.MinLength > 0 && len(v.Text()) < spec.MinLength {
			return fmt.Sprintf("%s must be at least %d characters", f.Label, spec.MinLength)
		}
		if spec.MaxLength > 0 && len(v.Text()) > spec.MaxLength {
			return fmt.Sprintf("%s must be less than %d characters", f.Label, spec.MaxLength)
		}
		if spec.Pattern != nil && !spec.Pattern.MatchString(v.Text()) {
			return fmt.Sprintf("%s is invalid", f.Label)
		}
	}

	if spec.Rule != nil && !runRule(spec.Rule, v) {
		return fmt.Sprintf("%s is invalid", f.Label)
	}

	if spec.MinAgeYears > 0 && v.Kind() == ValueDate {
		if ageAt(v.Date(), now) < spec.MinAgeYears {
			return fmt.Sprintf("%s is invalid", f.Label)
		}
	}

	return ""
}

// runRule evaluates a compiled predicate against the value. A predicate that
// fails to evaluate or yields a non-boolean counts as a rule miss.
func runRule(program *vm.Program, v Value) bool {
	var raw any
	switch v.Kind() {
	case ValueText:
		raw = v.Text()
	case ValueNumber:
		raw = v.Number()
	case ValueDate:
		raw = v.Date()
	case ValueSet:
		raw = v.Set()
	}

	out, err := expr.Run(program, map[string]any{"value": raw})
	if err != nil {
		return false
	}
	ok, isBool := out.(bool)
	return isBool && ok
}

// ageAt returns the whole-year age of dob at now, decrementing when the
// month/day has not yet been reached this year.
func ageAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	md := int(now.Month()) - int(dob.Month())
	if md < 0 || (md == 0 && now.Day() < dob.Day()) {
		age--
	}
	return age
}
