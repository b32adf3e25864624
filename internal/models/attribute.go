package models

import (
	"time"

	"github.com/google/uuid"
)

// DataType enumerates the value types an attribute can carry.
type DataType string

const (
	DataTypeShortText DataType = "short-text"
	DataTypeLongText  DataType = "long-text"
	DataTypeInteger   DataType = "integer"
	DataTypeDecimal   DataType = "decimal"
	DataTypeDate      DataType = "date"
	DataTypeBoolean   DataType = "boolean"
)

// Valid reports whether d is one of the known data types.
func (d DataType) Valid() bool {
	switch d {
	case DataTypeShortText, DataTypeLongText, DataTypeInteger, DataTypeDecimal, DataTypeDate, DataTypeBoolean:
		return true
	}
	return false
}

// Attribute is a tenant-defined, typed field. Attributes are unique per
// (tenant_id, name) and are created on first encounter during import.
type Attribute struct {
	ID           uuid.UUID `json:"id" db:"id"`
	TenantID     uuid.UUID `json:"tenant_id" db:"tenant_id"`
	Name         string    `json:"name" db:"name"`
	DataType     DataType  `json:"data_type" db:"data_type"`
	DefaultValue *string   `json:"default_value,omitempty" db:"default_value"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
