package importer

import (
	"regexp"
	"strings"

	"catalogmart/internal/models"
)

// Longest short-text value; anything longer is long-text.
const shortTextMax = 255

var (
	integerPattern = regexp.MustCompile(`^-?\d+$`)
	decimalPattern = regexp.MustCompile(`^-?\d*\.\d+$`)

	booleanTokens = map[string]bool{
		"true": true, "false": true,
		"1": true, "0": true,
		"yes": true, "no": true,
	}

	// Header annotation, e.g. "Weight [Decimal]" or "launched [date]".
	headerTypePattern = regexp.MustCompile(`\[\s*([A-Za-z_ -]+)\s*\]\s*$`)

	separatorPattern = regexp.MustCompile(`[\s_-]+`)
)

// InferType maps the string form of a cell value to a data type using a fixed
// ordered set of heuristics. Total and deterministic: every input yields
// exactly one of the six types, empty input defaults to short-text.
func InferType(raw string) models.DataType {
	value := strings.TrimSpace(raw)
	if value == "" {
		return models.DataTypeShortText
	}
	if booleanTokens[strings.ToLower(value)] {
		return models.DataTypeBoolean
	}
	if integerPattern.MatchString(value) {
		return models.DataTypeInteger
	}
	if decimalPattern.MatchString(value) {
		return models.DataTypeDecimal
	}
	if isDate(value) {
		return models.DataTypeDate
	}
	if len(value) > shortTextMax {
		return models.DataTypeLongText
	}
	return models.DataTypeShortText
}

func isDate(value string) bool {
	_, ok := models.ParseDate(value)
	return ok
}

// headerTypeNames maps normalized annotation tokens to data types.
var headerTypeNames = map[string]models.DataType{
	"short text": models.DataTypeShortText,
	"text":       models.DataTypeShortText,
	"long text":  models.DataTypeLongText,
	"integer":    models.DataTypeInteger,
	"int":        models.DataTypeInteger,
	"number":     models.DataTypeInteger,
	"decimal":    models.DataTypeDecimal,
	"float":      models.DataTypeDecimal,
	"date":       models.DataTypeDate,
	"boolean":    models.DataTypeBoolean,
	"bool":       models.DataTypeBoolean,
}

// ParseHeaderType splits an optional bracketed type annotation off a header.
// "Voltage [Integer]" yields ("Voltage", integer, true); a header without a
// recognizable annotation comes back unchanged with ok=false.
func ParseHeaderType(header string) (clean string, dataType models.DataType, ok bool) {
	match := headerTypePattern.FindStringSubmatch(header)
	if match == nil {
		return header, "", false
	}
	token := strings.ToLower(strings.TrimSpace(separatorPattern.ReplaceAllString(match[1], " ")))
	dataType, ok = headerTypeNames[token]
	if !ok {
		// Unknown annotation stays part of the name.
		return header, "", false
	}
	clean = strings.TrimSpace(header[:len(header)-len(match[0])])
	return clean, dataType, true
}

// CleanName normalizes a header for use as an attribute name: the type
// annotation is stripped and runs of underscores, hyphens and whitespace
// collapse to single spaces.
func CleanName(header string) string {
	name, _, annotated := ParseHeaderType(header)
	if !annotated {
		name = header
	}
	return strings.TrimSpace(separatorPattern.ReplaceAllString(name, " "))
}

func trimCell(raw string) string {
	return strings.TrimSpace(raw)
}
