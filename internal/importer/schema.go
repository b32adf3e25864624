package importer

import (
	"fmt"
	"strings"

	"catalogmart/internal/models"
)

// ParseSchema turns the header row into named, typed columns. An explicit
// bracketed annotation on the header wins and is tagged explicit; otherwise
// the type is inferred from the first data row's cell for that column (or
// from the header itself when the sample is empty). Columns not referenced by
// the mapping are still parsed so later attribute discovery can use them.
func ParseSchema(headers []string, sample Row) []ColumnSchema {
	schema := make([]ColumnSchema, 0, len(headers))
	for _, header := range headers {
		header = strings.TrimSpace(header)
		if header == "" {
			continue
		}

		column := ColumnSchema{ColumnHeader: header}
		if clean, dataType, ok := ParseHeaderType(header); ok {
			column.CleanName = CleanName(clean)
			column.DataType = dataType
			column.TypeSource = TypeSourceExplicit
		} else {
			column.CleanName = CleanName(header)
			column.DataType = InferType(sample.Get(header))
			column.TypeSource = TypeSourceInferred
		}
		schema = append(schema, column)
	}
	return schema
}

// SchemaIndex keys parsed columns by their raw header for row processing.
func SchemaIndex(schema []ColumnSchema) map[string]ColumnSchema {
	index := make(map[string]ColumnSchema, len(schema))
	for _, column := range schema {
		index[column.ColumnHeader] = column
	}
	return index
}

// ValidateMapping checks the mapping before any row is processed. A missing
// or unmapped required field is a schema error, fatal to the whole run.
func ValidateMapping(mapping FieldMapping, headers []string) error {
	if len(mapping) == 0 {
		return fmt.Errorf("mapping is empty")
	}

	headerSet := make(map[string]bool, len(headers))
	for _, h := range headers {
		headerSet[strings.TrimSpace(h)] = true
	}

	for _, field := range []string{FieldSKU, FieldName} {
		column, ok := mapping[field]
		if !ok || strings.TrimSpace(column) == "" {
			return fmt.Errorf("mapping is missing required field %q", field)
		}
		if !headerSet[strings.TrimSpace(column)] {
			return fmt.Errorf("mapped column %q for field %q not found in header row", column, field)
		}
	}

	for field, column := range mapping {
		if strings.TrimSpace(column) == "" {
			return fmt.Errorf("mapping for %q is blank", field)
		}
		if !headerSet[strings.TrimSpace(column)] {
			return fmt.Errorf("mapped column %q for %q not found in header row", column, field)
		}
	}
	return nil
}

// columnType resolves the effective data type for a mapped column, falling
// back to short-text for columns that vanished from the schema.
func columnType(index map[string]ColumnSchema, header string) models.DataType {
	if column, ok := index[header]; ok {
		return column.DataType
	}
	return models.DataTypeShortText
}
