package models

import (
	"time"

	"github.com/google/uuid"
)

// Product status values. Status is derived, never set by callers directly:
// a product is complete iff it has a family and every required family
// attribute carries a non-empty value.
const (
	ProductStatusComplete   = "complete"
	ProductStatusIncomplete = "incomplete"
)

type Product struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	TenantID        uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	SKU             string     `json:"sku" db:"sku"`
	Name            string     `json:"name" db:"name"`
	ImageURL        *string    `json:"image_url,omitempty" db:"image_url"`
	ProductLink     *string    `json:"product_link,omitempty" db:"product_link"`
	SubImages       []string   `json:"sub_images,omitempty" db:"sub_images"`
	CategoryID      *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	FamilyID        *uuid.UUID `json:"family_id,omitempty" db:"family_id"`
	ParentProductID *uuid.UUID `json:"parent_product_id,omitempty" db:"parent_product_id"`
	Status          string     `json:"status" db:"status"`
	IsDeleted       bool       `json:"is_deleted" db:"is_deleted"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// IsVariant reports whether the product is linked under a parent.
func (p *Product) IsVariant() bool {
	return p.ParentProductID != nil
}

// ProductSearchFilter holds search and filter criteria for product queries.
type ProductSearchFilter struct {
	Query      string     `json:"query,omitempty"`      // Match against name and SKU
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	FamilyID   *uuid.UUID `json:"family_id,omitempty"`
	Status     *string    `json:"status,omitempty"`
	SortBy     string     `json:"sort_by,omitempty"`    // Sort field: name, sku, created_at
	SortOrder  string     `json:"sort_order,omitempty"` // Sort order: asc, desc
	Limit      int        `json:"limit,omitempty"`
	Offset     int        `json:"offset,omitempty"`
}
