package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertValue_Integer(t *testing.T) {
	v, err := ConvertValue(" 42 ", DataTypeInteger)
	require.NoError(t, err)
	assert.Equal(t, "42", v.Encode())

	v, err = ConvertValue("-7", DataTypeInteger)
	require.NoError(t, err)
	assert.Equal(t, "-7", v.Encode())

	_, err = ConvertValue("4.5", DataTypeInteger)
	assert.Error(t, err)
	_, err = ConvertValue("abc", DataTypeInteger)
	assert.Error(t, err)
}

func TestConvertValue_Decimal(t *testing.T) {
	v, err := ConvertValue("3.14", DataTypeDecimal)
	require.NoError(t, err)
	assert.Equal(t, "3.14", v.Encode())

	// Whole numbers are acceptable decimals.
	v, err = ConvertValue("10", DataTypeDecimal)
	require.NoError(t, err)
	assert.Equal(t, "10", v.Encode())

	_, err = ConvertValue("not-a-number", DataTypeDecimal)
	assert.Error(t, err)
}

func TestConvertValue_Boolean(t *testing.T) {
	cases := map[string]string{
		"true":  "true",
		"TRUE":  "true",
		"1":     "true",
		"yes":   "true",
		"false": "false",
		"0":     "false",
		"No":    "false",
	}
	for raw, want := range cases {
		v, err := ConvertValue(raw, DataTypeBoolean)
		require.NoError(t, err, raw)
		assert.Equal(t, want, v.Encode(), raw)
	}

	_, err := ConvertValue("maybe", DataTypeBoolean)
	assert.Error(t, err)
}

func TestConvertValue_Date(t *testing.T) {
	for _, raw := range []string{"2024-03-15", "03/15/2024", "3/15/2024"} {
		v, err := ConvertValue(raw, DataTypeDate)
		require.NoError(t, err, raw)
		assert.Equal(t, "2024-03-15", v.Encode(), raw)
	}

	_, err := ConvertValue("15-03-2024", DataTypeDate)
	assert.Error(t, err)
	_, err = ConvertValue("yesterday", DataTypeDate)
	assert.Error(t, err)
}

func TestConvertValue_TextPassesThrough(t *testing.T) {
	v, err := ConvertValue("  anything at all  ", DataTypeShortText)
	require.NoError(t, err)
	assert.Equal(t, "anything at all", v.Encode())

	v, err = ConvertValue("long form text", DataTypeLongText)
	require.NoError(t, err)
	assert.Equal(t, "long form text", v.Encode())
}
