package importer

import (
	"strings"
	"testing"

	"catalogmart/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestInferType(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want models.DataType
	}{
		{"empty defaults to short text", "", models.DataTypeShortText},
		{"whitespace only", "   ", models.DataTypeShortText},
		{"boolean true", "true", models.DataTypeBoolean},
		{"boolean yes uppercase", "YES", models.DataTypeBoolean},
		{"boolean zero wins over integer", "0", models.DataTypeBoolean},
		{"boolean one wins over integer", "1", models.DataTypeBoolean},
		{"integer", "42", models.DataTypeInteger},
		{"negative integer", "-17", models.DataTypeInteger},
		{"decimal", "3.14", models.DataTypeDecimal},
		{"decimal without leading digit", ".5", models.DataTypeDecimal},
		{"negative decimal", "-0.25", models.DataTypeDecimal},
		{"iso date", "2024-03-15", models.DataTypeDate},
		{"us date", "03/15/2024", models.DataTypeDate},
		{"short us date", "3/5/2024", models.DataTypeDate},
		{"plain text", "cordless drill", models.DataTypeShortText},
		{"almost a number", "42abc", models.DataTypeShortText},
		{"long text", strings.Repeat("x", 256), models.DataTypeLongText},
		{"exactly 255 chars stays short", strings.Repeat("x", 255), models.DataTypeShortText},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, InferType(tc.raw))
		})
	}
}

func TestInferType_Deterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, models.DataTypeBoolean, InferType("1"))
		assert.Equal(t, models.DataTypeInteger, InferType("11"))
	}
}

func TestParseHeaderType(t *testing.T) {
	cases := []struct {
		header    string
		wantClean string
		wantType  models.DataType
		wantOK    bool
	}{
		{"Voltage [Integer]", "Voltage", models.DataTypeInteger, true},
		{"Weight [decimal]", "Weight", models.DataTypeDecimal, true},
		{"Launched [ Date ]", "Launched", models.DataTypeDate, true},
		{"Active [bool]", "Active", models.DataTypeBoolean, true},
		{"Description [Long Text]", "Description", models.DataTypeLongText, true},
		{"Description [long_text]", "Description", models.DataTypeLongText, true},
		{"Count [number]", "Count", models.DataTypeInteger, true},
		{"Plain Header", "Plain Header", "", false},
		{"Size [Unknown Type]", "Size [Unknown Type]", "", false},
		{"[integer]", "", models.DataTypeInteger, true},
	}

	for _, tc := range cases {
		t.Run(tc.header, func(t *testing.T) {
			clean, dataType, ok := ParseHeaderType(tc.header)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantClean, clean)
			if tc.wantOK {
				assert.Equal(t, tc.wantType, dataType)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	cases := map[string]string{
		"power_rating":        "power rating",
		"power-rating":        "power rating",
		"power   rating":      "power rating",
		"power_-  rating":     "power rating",
		"  Voltage [Integer]": "Voltage",
		"Weight":              "Weight",
	}
	for header, want := range cases {
		assert.Equal(t, want, CleanName(header), header)
	}
}
