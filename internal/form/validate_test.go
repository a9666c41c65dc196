package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textField(t *testing.T, subtype, label string, v Value) *FieldInstance {
	t.Helper()
	return &FieldInstance{Label: label, Archetype: textBySubtype(subtype), Value: v}
}

func TestValidate_RequiredBlank(t *testing.T) {
	f := textField(t, SubtypeName, "Name", Text(""))
	assert.Equal(t, "Name is required", Validate(f))
}

func TestValidate_OptionalBlankSkipsFormatRules(t *testing.T) {
	// textArea has a max length; a blank optional field must not hit it.
	f := textField(t, SubtypeTextArea, "About", Text(""))
	assert.Equal(t, "", Validate(f))

	// Address has a min length of 1 that a blank value would fail.
	f = textField(t, SubtypeAddress, "Address", Text(""))
	assert.Equal(t, "", Validate(f))
}

func TestValidate_MinLength(t *testing.T) {
	f := textField(t, SubtypeName, "Name", Text("A"))
	assert.Equal(t, "Name must be at least 2 characters", Validate(f))

	f.Value = Text("Al")
	assert.Equal(t, "", Validate(f))
}

func TestValidate_MaxLength(t *testing.T) {
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	f := textField(t, SubtypeName, "Name", Text(string(long)))
	assert.Equal(t, "Name must be less than 100 characters", Validate(f))
}

func TestValidate_EmailPattern(t *testing.T) {
	f := textField(t, SubtypeEmail, "Email", Text("not-an-email"))
	assert.Equal(t, "Email is invalid", Validate(f))

	f.Value = Text("a@b.co")
	assert.Equal(t, "", Validate(f))
}

func TestValidate_PhonePattern(t *testing.T) {
	f := textField(t, SubtypePhone, "Phone", Text("12345"))
	// Five digits fails min length before the pattern is consulted.
	assert.Equal(t, "Phone must be at least 10 characters", Validate(f))

	f.Value = Text("12345abcde")
	assert.Equal(t, "Phone is invalid", Validate(f))

	f.Value = Text("9876543210")
	assert.Equal(t, "", Validate(f))
}

func TestValidate_HeightRule(t *testing.T) {
	f := &FieldInstance{Label: "Height", Archetype: selectBySubtype(SubtypeHeight), Value: Number(5)}
	assert.Equal(t, "", Validate(f))

	f.Value = Number(9)
	assert.Equal(t, "Height is invalid", Validate(f))

	f.Value = Number(0)
	assert.Equal(t, "Height is required", Validate(f))
}

func TestValidate_GenderOptional(t *testing.T) {
	f := &FieldInstance{Label: "Gender", Archetype: selectBySubtype(SubtypeGender), Value: Null()}
	assert.Equal(t, "", Validate(f))
}

func TestValidate_MinAgeBoundary(t *testing.T) {
	now := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	f := &FieldInstance{Label: "DOB", Archetype: dateArchetype()}

	// Tenth birthday today: exactly 10, valid.
	f.Value = Date(time.Date(2016, 6, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "", validateAt(f, now))

	// Tenth birthday tomorrow: still 9, invalid.
	f.Value = Date(time.Date(2016, 6, 16, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "DOB is invalid", validateAt(f, now))

	// Optional and blank: valid.
	f.Value = Null()
	assert.Equal(t, "", validateAt(f, now))
}

func TestAgeAt(t *testing.T) {
	dob := time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		now  time.Time
		want int
	}{
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), 25},
		{time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 26},
		{time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), 26},
		{time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), 25},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ageAt(dob, tt.now), "now=%s", tt.now)
	}
}
