package importer

import (
	"strings"

	"catalogmart/internal/models"

	"github.com/google/uuid"
)

// Well-known logical field names in an import mapping. Any other mapping key
// names an attribute (family or custom).
const (
	FieldSKU         = "sku"
	FieldName        = "name"
	FieldImageURL    = "image_url"
	FieldProductLink = "product_link"
	FieldFamily      = "family"
	FieldCategory    = "category"
)

// FieldMapping maps a logical field name or attribute name to the column
// header that carries it in the uploaded file.
type FieldMapping map[string]string

// Normalized trims surrounding whitespace from field names and column
// references. Row cells are keyed by trimmed headers, so a padded column
// reference would otherwise validate and then read every cell as empty.
func (m FieldMapping) Normalized() FieldMapping {
	clean := make(FieldMapping, len(m))
	for field, column := range m {
		clean[strings.TrimSpace(field)] = strings.TrimSpace(column)
	}
	return clean
}

// reservedFields are the mapping keys consumed before attribute handling.
var reservedFields = map[string]bool{
	FieldSKU:         true,
	FieldName:        true,
	FieldImageURL:    true,
	FieldProductLink: true,
	FieldFamily:      true,
	FieldCategory:    true,
}

// TypeSource records whether a column type came from an explicit header
// annotation or from inference.
type TypeSource string

const (
	TypeSourceExplicit TypeSource = "explicit"
	TypeSourceInferred TypeSource = "inferred"
)

// ColumnSchema is one parsed header cell.
type ColumnSchema struct {
	ColumnHeader string          `json:"column_header"`
	CleanName    string          `json:"clean_name"`
	DataType     models.DataType `json:"data_type"`
	TypeSource   TypeSource      `json:"type_source"`
}

// Row is one raw data row. Number is 1-based and counts the header, so the
// first data row is row 2, matching what a user sees in a spreadsheet.
type Row struct {
	Number int
	Cells  map[string]string // column header -> raw cell value
}

// Get returns the trimmed raw value of a column, or "" when absent.
func (r Row) Get(header string) string {
	return trimCell(r.Cells[header])
}

// Table is a parsed tabular payload.
type Table struct {
	Headers []string
	Rows    []Row
}

// RowError is one field-level validation failure.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// AttributeValue is a converted attribute value ready for persistence.
type AttributeValue struct {
	AttributeID       uuid.UUID
	FamilyAttributeID *uuid.UUID
	Value             string
}

// ProductRecord is a fully validated row, ready for the batch orchestrator.
type ProductRecord struct {
	RowNumber   int
	SKU         string
	Name        string
	ImageURL    *string
	ProductLink *string
	CategoryID  *uuid.UUID
	FamilyID    *uuid.UUID
	Attributes  []AttributeValue
}

// FamilyAttributeDef is one attribute of a resolved family definition for the
// current run.
type FamilyAttributeDef struct {
	AttributeID       uuid.UUID       `json:"attribute_id"`
	FamilyAttributeID uuid.UUID       `json:"family_attribute_id"`
	AttributeName     string          `json:"attribute_name"`
	DataType          models.DataType `json:"data_type"`
	IsRequired        bool            `json:"is_required"`
	Column            string          `json:"column"` // mapped column header
}

// FamilyDefinition is the per-run schema of one family observed in the data.
// ReferenceRow is the lowest-numbered row whose family cell named it.
type FamilyDefinition struct {
	FamilyID     uuid.UUID            `json:"family_id"`
	FamilyName   string               `json:"family_name"`
	ReferenceRow int                  `json:"reference_row"`
	Attributes   []FamilyAttributeDef `json:"attributes"`
}
