package models

import (
	"time"

	"github.com/google/uuid"
)

// Family is a named, reusable set of attributes shared across a tenant's
// products. Unique per (tenant_id, name).
type Family struct {
	ID         uuid.UUID          `json:"id" db:"id"`
	TenantID   uuid.UUID          `json:"tenant_id" db:"tenant_id"`
	Name       string             `json:"name" db:"name"`
	Attributes []*FamilyAttribute `json:"attributes,omitempty"`
	CreatedAt  time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at" db:"updated_at"`
}

// FamilyAttribute links an attribute into a family. IsRequired is the durable
// flag stored on the link; import runs recompute a per-run classification on
// top of it and never write it back.
type FamilyAttribute struct {
	ID          uuid.UUID `json:"id" db:"id"`
	FamilyID    uuid.UUID `json:"family_id" db:"family_id"`
	AttributeID uuid.UUID `json:"attribute_id" db:"attribute_id"`
	IsRequired  bool      `json:"is_required" db:"is_required"`
	Position    int       `json:"position" db:"position"`

	// Denormalized from the joined attributes row for read models and the
	// import resolver.
	AttributeName string   `json:"attribute_name,omitempty" db:"-"`
	DataType      DataType `json:"data_type,omitempty" db:"-"`
}
