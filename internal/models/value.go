package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayouts are the accepted date formats, tried in order.
var DateLayouts = []string{
	"2006-01-02", // YYYY-MM-DD
	"01/02/2006", // MM/DD/YYYY
	"1/2/2006",   // M/D/YYYY
}

// ParseDate tries every accepted layout.
func ParseDate(value string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CellKind tags a converted cell value.
type CellKind int

const (
	CellText CellKind = iota
	CellInteger
	CellDecimal
	CellBool
	CellDate
)

// CellValue is the small tagged union every raw cell converts into before it
// is string-encoded for storage. Exactly one of the typed fields is set,
// selected by Kind.
type CellValue struct {
	Kind CellKind
	Text string
	Int  int64
	Dec  decimal.Decimal
	Bool bool
	Date time.Time
}

// Encode renders the canonical string form stored in product_attributes.
func (v CellValue) Encode() string {
	switch v.Kind {
	case CellInteger:
		return strconv.FormatInt(v.Int, 10)
	case CellDecimal:
		return v.Dec.String()
	case CellBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case CellDate:
		return v.Date.Format("2006-01-02")
	default:
		return v.Text
	}
}

// ConvertValue coerces a non-empty raw value into a typed CellValue per the
// attribute's data type. A mismatch is a conversion error; the caller decides
// whether that is a field-level row error or a request error.
func ConvertValue(raw string, dataType DataType) (CellValue, error) {
	value := strings.TrimSpace(raw)

	switch dataType {
	case DataTypeInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return CellValue{}, fmt.Errorf("%q is not a valid integer", raw)
		}
		return CellValue{Kind: CellInteger, Int: n}, nil

	case DataTypeDecimal:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return CellValue{}, fmt.Errorf("%q is not a valid decimal", raw)
		}
		return CellValue{Kind: CellDecimal, Dec: d}, nil

	case DataTypeBoolean:
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return CellValue{Kind: CellBool, Bool: true}, nil
		case "false", "0", "no":
			return CellValue{Kind: CellBool, Bool: false}, nil
		}
		return CellValue{}, fmt.Errorf("%q is not a valid boolean", raw)

	case DataTypeDate:
		t, ok := ParseDate(value)
		if !ok {
			return CellValue{}, fmt.Errorf("%q is not a valid date", raw)
		}
		return CellValue{Kind: CellDate, Date: t}, nil

	default:
		// short-text and long-text pass through untouched.
		return CellValue{Kind: CellText, Text: value}, nil
	}
}
