package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductAttribute joins a product to an attribute with a string-encoded
// value. Unique per (product_id, attribute_id). FamilyAttributeID is set when
// the value satisfies a family requirement rather than being a free-form
// custom attribute.
type ProductAttribute struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	ProductID         uuid.UUID  `json:"product_id" db:"product_id"`
	AttributeID       uuid.UUID  `json:"attribute_id" db:"attribute_id"`
	Value             string     `json:"value" db:"value"`
	FamilyAttributeID *uuid.UUID `json:"family_attribute_id,omitempty" db:"family_attribute_id"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`

	// Denormalized from the joined attributes row for read models.
	AttributeName string   `json:"attribute_name,omitempty" db:"-"`
	DataType      DataType `json:"data_type,omitempty" db:"-"`
}

// AttributeCompleteness is one line of the "what's missing" read model: a
// family attribute with its current value, if any.
type AttributeCompleteness struct {
	AttributeID   uuid.UUID `json:"attribute_id"`
	AttributeName string    `json:"attribute_name"`
	DataType      DataType  `json:"data_type"`
	IsRequired    bool      `json:"is_required"`
	Value         *string   `json:"value,omitempty"`
	Missing       bool      `json:"missing"`
}

// ProductCompleteness is the family-aware read model for one product.
type ProductCompleteness struct {
	ProductID  uuid.UUID               `json:"product_id"`
	FamilyID   *uuid.UUID              `json:"family_id,omitempty"`
	FamilyName *string                 `json:"family_name,omitempty"`
	Status     string                  `json:"status"`
	Required   []AttributeCompleteness `json:"required"`
	Optional   []AttributeCompleteness `json:"optional"`
}
