package form

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/priyankjain/shopform/pkg/fault"
)

func TestEncode_PreservesOrderAndShapes(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddField(TextInput, SubtypeName, "Name")
	require.NoError(t, err)
	_, err = b.AddField(SingleSelect, SubtypeHeight, "Height")
	require.NoError(t, err)
	_, err = b.AddField(MultiSelect, SubtypeInterests, "Interests")
	require.NoError(t, err)
	_, err = b.AddField(DatePicker, "", "DOB")
	require.NoError(t, err)

	require.NoError(t, b.SetValue("Name", Text("Priya")))
	require.NoError(t, b.SetValue("Height", Number(5)))
	require.NoError(t, b.SetValue("Interests", Set([]string{"Chess", "Cricket"})))
	require.NoError(t, b.SetValue("DOB", Date(time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC))))

	blob, err := Encode(b.Fields())
	require.NoError(t, err)
	assert.Equal(t,
		`{"Name":"Priya","Height":5,"Interests":["Chess","Cricket"],"DOB":"2000-01-02T00:00:00Z"}`,
		blob)
}

func TestEncode_EmptySetIsArrayNotNull(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddField(MultiSelect, SubtypeInterests, "Interests")
	require.NoError(t, err)

	blob, err := Encode(b.Fields())
	require.NoError(t, err)
	assert.Equal(t, `{"Interests":[]}`, blob)
}

func TestEncode_NullValues(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddField(SingleSelect, SubtypeGender, "Gender")
	require.NoError(t, err)
	_, err = b.AddField(DatePicker, "", "DOB")
	require.NoError(t, err)

	blob, err := Encode(b.Fields())
	require.NoError(t, err)
	assert.Equal(t, `{"Gender":null,"DOB":null}`, blob)
}

func TestDecode_RoundTrip(t *testing.T) {
	blob := `{"Name":"Priya","Height":5,"Interests":["Chess","Cricket"],"DOB":"2000-01-02T00:00:00Z","Gender":"Female"}`

	b, err := Decode(blob)
	require.NoError(t, err)

	fields := b.Fields()
	require.Len(t, fields, 5)

	assert.Equal(t, "Name", fields[0].Label)
	assert.Equal(t, TextInput, fields[0].Archetype.Kind)
	assert.Equal(t, "Priya", fields[0].Value.Text())

	assert.Equal(t, "Height", fields[1].Label)
	assert.Equal(t, SingleSelect, fields[1].Archetype.Kind)
	assert.Equal(t, 5, fields[1].Value.Number())

	assert.Equal(t, "Interests", fields[2].Label)
	assert.Equal(t, MultiSelect, fields[2].Archetype.Kind)
	assert.Equal(t, []string{"Chess", "Cricket"}, fields[2].Value.Set())

	assert.Equal(t, "DOB", fields[3].Label)
	assert.Equal(t, DatePicker, fields[3].Archetype.Kind)
	assert.Equal(t, time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC), fields[3].Value.Date())

	assert.Equal(t, "Gender", fields[4].Label)
	assert.Equal(t, SingleSelect, fields[4].Archetype.Kind)
	assert.Equal(t, "Female", fields[4].Value.Text())

	// Re-encoding yields the same blob.
	out, err := Encode(fields)
	require.NoError(t, err)
	assert.Equal(t, blob, out)
}

func TestDecode_PreservesEmptySet(t *testing.T) {
	b, err := Decode(`{"Interests":[]}`)
	require.NoError(t, err)

	fields := b.Fields()
	require.Len(t, fields, 1)
	assert.Equal(t, ValueSet, fields[0].Value.Kind())

	out, err := Encode(fields)
	require.NoError(t, err)
	assert.Equal(t, `{"Interests":[]}`, out)
}

func TestDecode_InferencePrecedence(t *testing.T) {
	tests := []struct {
		label   string
		value   string
		kind    Kind
		subtype string
	}{
		{"dob", `null`, DatePicker, ""},
		{"Date of Birth", `null`, DatePicker, ""},
		{"intrests", `[]`, MultiSelect, SubtypeInterests},
		{"Interest Areas", `[]`, MultiSelect, SubtypeInterests},
		{"height", `5`, SingleSelect, SubtypeHeight},
		{"Gender", `null`, SingleSelect, SubtypeGender},
		{"Phone", `"9876543210"`, TextInput, SubtypePhone},
		{"email", `"a@b.co"`, TextInput, SubtypeEmail},
		{"Name", `"Priya"`, TextInput, SubtypeName},
		{"More Text", `"hello"`, TextInput, SubtypeTextArea},
		// "Full Name" is not exactly "name": generic text input.
		{"Full Name", `"Priya"`, TextInput, ""},
		{"Anything Else", `"x"`, TextInput, ""},
	}

	for _, tt := range tests {
		b, err := Decode(`{"` + tt.label + `":` + tt.value + `}`)
		require.NoError(t, err, tt.label)
		fields := b.Fields()
		require.Len(t, fields, 1, tt.label)
		assert.Equal(t, tt.kind, fields[0].Archetype.Kind, tt.label)
		assert.Equal(t, tt.subtype, fields[0].Archetype.Subtype, tt.label)
	}
}

func TestDecode_DateTakesPrecedenceOverText(t *testing.T) {
	// "dob text" matches both the date and text-area rules; date wins.
	b, err := Decode(`{"dob text":"2000-01-02"}`)
	require.NoError(t, err)
	assert.Equal(t, DatePicker, b.Fields()[0].Archetype.Kind)
}

func TestDecode_TextAreaMaxLengthWidens(t *testing.T) {
	b, err := Decode(`{"More Text":"hello"}`)
	require.NoError(t, err)
	assert.Equal(t, 1000, b.Fields()[0].Archetype.Validation.MaxLength)
}

func TestDecode_CorruptBlob(t *testing.T) {
	for _, blob := range []string{``, `not json`, `[1,2,3]`, `"just a string"`, `{"a":`} {
		_, err := Decode(blob)
		assert.True(t, errors.Is(err, fault.ErrCorruptRecord), "blob %q", blob)
	}
}

func TestDecode_ConsumesCatalogSubtypes(t *testing.T) {
	b, err := Decode(`{"Name":"Priya","Height":5}`)
	require.NoError(t, err)

	_, err = b.AddField(TextInput, SubtypeName, "Another Name")
	assert.True(t, errors.Is(err, fault.ErrSubtypeExhausted))

	_, err = b.AddField(SingleSelect, SubtypeHeight, "Another Height")
	assert.True(t, errors.Is(err, fault.ErrSubtypeExhausted))

	_, err = b.AddField(TextInput, SubtypeEmail, "Email")
	assert.NoError(t, err)
}

func TestDecode_NonStringSetMembersDropped(t *testing.T) {
	b, err := Decode(`{"Interests":["Chess",5,"Cricket"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess", "Cricket"}, b.Fields()[0].Value.Set())
}

func TestDecode_BadDateBecomesNull(t *testing.T) {
	b, err := Decode(`{"DOB":"not-a-date"}`)
	require.NoError(t, err)
	assert.Equal(t, ValueNull, b.Fields()[0].Value.Kind())
}
