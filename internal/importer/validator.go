package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"catalogmart/internal/common"
	"catalogmart/internal/models"
	"catalogmart/internal/repositories"
	"catalogmart/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RowValidator turns one raw row into a typed ProductRecord or a list of
// field-level errors. Rows with errors are reported and skipped; processing
// always continues for the rest of the batch.
type RowValidator struct {
	attributeRepo repositories.AttributeRepository
	familyRepo    repositories.FamilyRepository
	categoryRepo  repositories.CategoryRepository
	cache         *LookupCache
	log           *zap.Logger
}

func NewRowValidator(attributeRepo repositories.AttributeRepository, familyRepo repositories.FamilyRepository, categoryRepo repositories.CategoryRepository, cache *LookupCache) *RowValidator {
	return &RowValidator{
		attributeRepo: attributeRepo,
		familyRepo:    familyRepo,
		categoryRepo:  categoryRepo,
		cache:         cache,
		log:           logger.Get(),
	}
}

// ValidateRow applies the validation order of the import contract: sku, name,
// URLs, family, family attributes, then remaining mapped columns as custom
// attributes. Returns the record and nil errors, or nil and a non-empty error
// list. Warnings (family/category name misses) never fail the row.
func (v *RowValidator) ValidateRow(ctx context.Context, tenantID uuid.UUID, row Row, mapping FieldMapping, index map[string]ColumnSchema, definitions map[string]*FamilyDefinition) (*ProductRecord, []RowError, []string) {
	var rowErrors []RowError
	var warnings []string

	record := &ProductRecord{RowNumber: row.Number}

	// sku
	rawSKU := row.Get(mapping[FieldSKU])
	if sku, err := common.ValidateSKU(rawSKU); err != nil {
		rowErrors = append(rowErrors, RowError{Row: row.Number, Field: "sku", Message: err.Error(), Value: rawSKU})
	} else {
		record.SKU = sku
	}

	// name
	rawName := row.Get(mapping[FieldName])
	if name, err := common.ValidateProductName(rawName); err != nil {
		rowErrors = append(rowErrors, RowError{Row: row.Number, Field: "name", Message: err.Error(), Value: rawName})
	} else {
		record.Name = name
	}

	// optional URLs
	if column, ok := mapping[FieldProductLink]; ok {
		if raw := row.Get(column); raw != "" {
			if err := common.ValidateURLField(raw, "product_link"); err != nil {
				rowErrors = append(rowErrors, RowError{Row: row.Number, Field: "product_link", Message: err.Error(), Value: raw})
			} else {
				record.ProductLink = &raw
			}
		}
	}
	if column, ok := mapping[FieldImageURL]; ok {
		if raw := row.Get(column); raw != "" {
			if err := common.ValidateURLField(raw, "image_url"); err != nil {
				rowErrors = append(rowErrors, RowError{Row: row.Number, Field: "image_url", Message: err.Error(), Value: raw})
			} else {
				record.ImageURL = &raw
			}
		}
	}

	// family: resolver output first, DB fallback second; unresolvable is a
	// warning, the product stays valid but family-less.
	var definition *FamilyDefinition
	if column, ok := mapping[FieldFamily]; ok {
		if familyName := row.Get(column); familyName != "" {
			definition = definitions[familyName]
			if definition == nil {
				if family, err := v.lookupFamily(ctx, tenantID, familyName); err == nil {
					definition = BuildDefinition(family, row, mapping)
				} else if errors.Is(err, pgx.ErrNoRows) {
					warnings = append(warnings, fmt.Sprintf("row %d: family %q not found", row.Number, familyName))
				} else {
					rowErrors = append(rowErrors, RowError{Row: row.Number, Field: "family", Message: fmt.Sprintf("family lookup failed: %v", err), Value: familyName})
				}
			}
			if definition != nil {
				familyID := definition.FamilyID
				record.FamilyID = &familyID
			}
		}
	}

	// category: same soft behavior as family.
	if column, ok := mapping[FieldCategory]; ok {
		if categoryName := row.Get(column); categoryName != "" {
			category, err := v.categoryRepo.GetByName(ctx, tenantID, categoryName)
			switch {
			case err == nil:
				record.CategoryID = &category.ID
			case errors.Is(err, pgx.ErrNoRows):
				warnings = append(warnings, fmt.Sprintf("row %d: category %q not found", row.Number, categoryName))
			default:
				rowErrors = append(rowErrors, RowError{Row: row.Number, Field: "category", Message: fmt.Sprintf("category lookup failed: %v", err), Value: categoryName})
			}
		}
	}

	// family attributes. A required-but-empty value is not a row error:
	// requiredness governs the schema definition, not a per-row gate.
	consumed := make(map[string]bool)
	if definition != nil {
		for _, attr := range definition.Attributes {
			consumed[attr.Column] = true
			raw := row.Get(attr.Column)
			if raw == "" {
				continue
			}
			converted, err := models.ConvertValue(raw, attr.DataType)
			if err != nil {
				rowErrors = append(rowErrors, RowError{Row: row.Number, Field: attr.AttributeName, Message: err.Error(), Value: raw})
				continue
			}
			familyAttributeID := attr.FamilyAttributeID
			record.Attributes = append(record.Attributes, AttributeValue{
				AttributeID:       attr.AttributeID,
				FamilyAttributeID: &familyAttributeID,
				Value:             converted.Encode(),
			})
		}
	}

	// custom attributes: every remaining mapped column.
	customFields := make([]string, 0, len(mapping))
	for field := range mapping {
		if reservedFields[field] {
			continue
		}
		customFields = append(customFields, field)
	}
	sort.Strings(customFields)

	for _, field := range customFields {
		column := mapping[field]
		if consumed[column] {
			continue
		}
		raw := row.Get(column)
		if raw == "" {
			continue
		}

		dataType := columnType(index, column)
		attribute, err := v.findOrCreateAttribute(ctx, tenantID, CleanName(column), dataType)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: row.Number, Field: field, Message: fmt.Sprintf("attribute lookup failed: %v", err), Value: raw})
			continue
		}

		converted, err := models.ConvertValue(raw, attribute.DataType)
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: row.Number, Field: field, Message: err.Error(), Value: raw})
			continue
		}
		record.Attributes = append(record.Attributes, AttributeValue{
			AttributeID: attribute.ID,
			Value:       converted.Encode(),
		})
	}

	if len(rowErrors) > 0 {
		return nil, rowErrors, warnings
	}
	return record, nil, warnings
}

func (v *RowValidator) lookupFamily(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error) {
	if family, ok := v.cache.GetFamily(tenantID, name); ok {
		return family, nil
	}
	family, err := v.familyRepo.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	v.cache.SetFamily(tenantID, family)
	return family, nil
}

// findOrCreateAttribute resolves an attribute by (name, tenant), creating it
// with the column's inferred type the first time it is seen. Creation is
// serialized through the cache's creation lock so concurrently validated rows
// cannot insert duplicates; the repo's ON CONFLICT guard backs that up across
// processes.
func (v *RowValidator) findOrCreateAttribute(ctx context.Context, tenantID uuid.UUID, name string, dataType models.DataType) (*models.Attribute, error) {
	if attribute, ok := v.cache.GetAttribute(tenantID, name); ok {
		return attribute, nil
	}

	v.cache.CreateMu.Lock()
	defer v.cache.CreateMu.Unlock()

	// Re-check under the lock; another row may have created it.
	if attribute, ok := v.cache.GetAttribute(tenantID, name); ok {
		return attribute, nil
	}

	attribute, err := v.attributeRepo.GetByName(ctx, tenantID, name)
	if err == nil {
		v.cache.SetAttribute(tenantID, attribute)
		return attribute, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	attribute = &models.Attribute{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     name,
		DataType: dataType,
	}
	if err := v.attributeRepo.Create(ctx, attribute); err != nil {
		return nil, err
	}
	v.log.Info("created attribute from import column",
		zap.String("attribute", name),
		zap.String("data_type", string(dataType)),
		zap.String("tenant_id", tenantID.String()))

	// Re-read in case a concurrent writer in another process won the
	// ON CONFLICT race with a different id.
	created, err := v.attributeRepo.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	v.cache.SetAttribute(tenantID, created)
	return created, nil
}
