package services

import (
	"context"
	"fmt"
	"strings"

	"catalogmart/internal/models"
	"catalogmart/internal/repositories"
	"catalogmart/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InheritanceService reconciles attribute values across the family -> parent
// -> variant hierarchy. Precedence: the parent's family always overwrites the
// variant's when the parent has one; per attribute the variant's own
// non-empty value always wins, with the parent's value as fallback.
type InheritanceService interface {
	// Merge applies family and attribute inheritance from parent to variant
	// and recomputes the variant's status.
	Merge(ctx context.Context, tenantID, parentID, variantID uuid.UUID) error
	// CascadeFamilyChange re-merges every variant of a parent; called when
	// the parent's family changes.
	CascadeFamilyChange(ctx context.Context, tenantID, parentID uuid.UUID) error
}

type inheritanceService struct {
	productRepo          repositories.ProductRepository
	productAttributeRepo repositories.ProductAttributeRepository
	statusSvc            StatusService
	log                  *zap.Logger
}

func NewInheritanceService(productRepo repositories.ProductRepository, productAttributeRepo repositories.ProductAttributeRepository, statusSvc StatusService) InheritanceService {
	return &inheritanceService{
		productRepo:          productRepo,
		productAttributeRepo: productAttributeRepo,
		statusSvc:            statusSvc,
		log:                  logger.Get(),
	}
}

func (s *inheritanceService) Merge(ctx context.Context, tenantID, parentID, variantID uuid.UUID) error {
	parent, err := s.productRepo.GetByID(ctx, tenantID, parentID)
	if err != nil {
		return fmt.Errorf("parent product not found: %w", err)
	}
	variant, err := s.productRepo.GetByID(ctx, tenantID, variantID)
	if err != nil {
		return fmt.Errorf("variant product not found: %w", err)
	}

	// Family rule: parent wins unconditionally when it has a family; a
	// family-less parent leaves the variant's own family untouched.
	if parent.FamilyID != nil && (variant.FamilyID == nil || *variant.FamilyID != *parent.FamilyID) {
		variant.FamilyID = parent.FamilyID
		if err := s.productRepo.Update(ctx, variant); err != nil {
			return fmt.Errorf("failed to inherit family: %w", err)
		}
	}

	parentValues, err := s.productAttributeRepo.ListByProduct(ctx, parent.ID)
	if err != nil {
		return fmt.Errorf("failed to load parent attributes: %w", err)
	}
	variantValues, err := s.productAttributeRepo.ListByProduct(ctx, variant.ID)
	if err != nil {
		return fmt.Errorf("failed to load variant attributes: %w", err)
	}

	existing := make(map[uuid.UUID]*models.ProductAttribute, len(variantValues))
	for _, value := range variantValues {
		existing[value.AttributeID] = value
	}

	for _, parentValue := range parentValues {
		current, ok := existing[parentValue.AttributeID]
		switch {
		case ok && strings.TrimSpace(current.Value) != "":
			// Variant wins; its non-empty value is never overwritten.
			continue

		case ok:
			// Variant holds the attribute with an empty value; copy the
			// parent's.
			current.Value = parentValue.Value
			if current.FamilyAttributeID == nil {
				current.FamilyAttributeID = parentValue.FamilyAttributeID
			}
			if err := s.productAttributeRepo.Upsert(ctx, current); err != nil {
				return fmt.Errorf("failed to fill attribute from parent: %w", err)
			}

		default:
			inherited := &models.ProductAttribute{
				ID:                uuid.New(),
				ProductID:         variant.ID,
				AttributeID:       parentValue.AttributeID,
				Value:             parentValue.Value,
				FamilyAttributeID: parentValue.FamilyAttributeID,
			}
			if err := s.productAttributeRepo.Upsert(ctx, inherited); err != nil {
				return fmt.Errorf("failed to inherit attribute: %w", err)
			}
		}
	}

	if _, err := s.statusSvc.Recompute(ctx, tenantID, variant); err != nil {
		return err
	}

	s.log.Debug("merged variant against parent",
		zap.String("parent_id", parent.ID.String()),
		zap.String("variant_id", variant.ID.String()),
		zap.String("status", variant.Status))
	return nil
}

func (s *inheritanceService) CascadeFamilyChange(ctx context.Context, tenantID, parentID uuid.UUID) error {
	variants, err := s.productRepo.ListVariants(ctx, tenantID, parentID)
	if err != nil {
		return fmt.Errorf("failed to list variants: %w", err)
	}
	for _, variant := range variants {
		if err := s.Merge(ctx, tenantID, parentID, variant.ID); err != nil {
			return fmt.Errorf("failed to cascade to variant %s: %w", variant.ID, err)
		}
	}
	return nil
}
