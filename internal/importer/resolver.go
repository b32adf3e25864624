package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"catalogmart/internal/models"
	"catalogmart/internal/repositories"
	"catalogmart/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FamilyResolver computes the per-run schema for every family named in the
// data. Requiredness is a heuristic, not a stored property: an attribute is
// required for this run iff the family's reference row supplied a value for
// its mapped column.
type FamilyResolver struct {
	familyRepo repositories.FamilyRepository
	cache      *LookupCache
	log        *zap.Logger
}

func NewFamilyResolver(familyRepo repositories.FamilyRepository, cache *LookupCache) *FamilyResolver {
	return &FamilyResolver{
		familyRepo: familyRepo,
		cache:      cache,
		log:        logger.Get(),
	}
}

// Resolve scans all rows once and returns a definition per distinct family
// name, keyed by name. Family names that do not resolve for the tenant are
// skipped with a warning; their rows import without a family assignment.
func (r *FamilyResolver) Resolve(ctx context.Context, tenantID uuid.UUID, rows []Row, mapping FieldMapping) (map[string]*FamilyDefinition, []string, error) {
	familyColumn, ok := mapping[FieldFamily]
	if !ok {
		return map[string]*FamilyDefinition{}, nil, nil
	}

	referenceRows := ReferenceRows(rows, familyColumn)

	definitions := make(map[string]*FamilyDefinition, len(referenceRows))
	var warnings []string

	// Deterministic resolution order regardless of map iteration.
	names := make([]string, 0, len(referenceRows))
	for name := range referenceRows {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		family, err := r.lookupFamily(ctx, tenantID, name)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				warning := fmt.Sprintf("family %q not found; rows using it import without a family", name)
				warnings = append(warnings, warning)
				r.log.Warn("family not found during import",
					zap.String("family", name),
					zap.String("tenant_id", tenantID.String()))
				continue
			}
			return nil, warnings, fmt.Errorf("failed to look up family %q: %w", name, err)
		}

		definitions[name] = BuildDefinition(family, referenceRows[name], mapping)
	}

	return definitions, warnings, nil
}

func (r *FamilyResolver) lookupFamily(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error) {
	if family, ok := r.cache.GetFamily(tenantID, name); ok {
		return family, nil
	}
	family, err := r.familyRepo.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	r.cache.SetFamily(tenantID, family)
	return family, nil
}

// ReferenceRows picks, for every distinct non-blank family name, the
// lowest-numbered row naming it. Pure; pinned by tests because the choice of
// reference row decides requiredness for the whole run.
func ReferenceRows(rows []Row, familyColumn string) map[string]Row {
	references := make(map[string]Row)
	for _, row := range rows {
		name := row.Get(familyColumn)
		if name == "" {
			continue
		}
		if existing, ok := references[name]; !ok || row.Number < existing.Number {
			references[name] = row
		}
	}
	return references
}

// BuildDefinition classifies the family's attributes against its reference
// row. Only attributes the user mapped participate: isRequired is true iff
// the reference row has a non-empty value in the attribute's mapped column.
// Pure over its inputs.
func BuildDefinition(family *models.Family, referenceRow Row, mapping FieldMapping) *FamilyDefinition {
	definition := &FamilyDefinition{
		FamilyID:     family.ID,
		FamilyName:   family.Name,
		ReferenceRow: referenceRow.Number,
	}

	for _, link := range family.Attributes {
		column, mapped := mappedColumn(mapping, link.AttributeName)
		if !mapped {
			continue
		}
		definition.Attributes = append(definition.Attributes, FamilyAttributeDef{
			AttributeID:       link.AttributeID,
			FamilyAttributeID: link.ID,
			AttributeName:     link.AttributeName,
			DataType:          link.DataType,
			IsRequired:        referenceRow.Get(column) != "",
			Column:            column,
		})
	}
	return definition
}

// mappedColumn finds the column mapped for an attribute name,
// case-insensitively, skipping the reserved logical fields.
func mappedColumn(mapping FieldMapping, attributeName string) (string, bool) {
	for field, column := range mapping {
		if reservedFields[field] {
			continue
		}
		if strings.EqualFold(field, attributeName) {
			return column, true
		}
	}
	return "", false
}
