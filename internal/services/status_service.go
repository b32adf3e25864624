package services

import (
	"context"
	"fmt"

	"catalogmart/internal/models"
	"catalogmart/internal/repositories"

	"github.com/google/uuid"
)

// StatusService recomputes the derived completeness status. Every write path
// that can change a product's family or attribute values funnels through it
// so the invariant holds after create, update, import and inheritance merge.
type StatusService interface {
	// Recompute derives the status for a product and persists it when it
	// changed. Returns the derived status.
	Recompute(ctx context.Context, tenantID uuid.UUID, product *models.Product) (string, error)
}

type statusService struct {
	productRepo          repositories.ProductRepository
	familyRepo           repositories.FamilyRepository
	productAttributeRepo repositories.ProductAttributeRepository
}

func NewStatusService(productRepo repositories.ProductRepository, familyRepo repositories.FamilyRepository, productAttributeRepo repositories.ProductAttributeRepository) StatusService {
	return &statusService{
		productRepo:          productRepo,
		familyRepo:           familyRepo,
		productAttributeRepo: productAttributeRepo,
	}
}

func (s *statusService) Recompute(ctx context.Context, tenantID uuid.UUID, product *models.Product) (string, error) {
	var familyAttributes []*models.FamilyAttribute
	if product.FamilyID != nil {
		var err error
		familyAttributes, err = s.familyRepo.ListAttributes(ctx, *product.FamilyID)
		if err != nil {
			return "", fmt.Errorf("failed to load family attributes: %w", err)
		}
		if familyAttributes == nil {
			familyAttributes = []*models.FamilyAttribute{}
		}
	}

	values, err := s.productAttributeRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return "", fmt.Errorf("failed to load product attributes: %w", err)
	}

	status := models.ComputeStatus(familyAttributes, values)
	if status != product.Status {
		if err := s.productRepo.UpdateStatus(ctx, tenantID, product.ID, status); err != nil {
			return "", fmt.Errorf("failed to persist status: %w", err)
		}
		product.Status = status
	}
	return status, nil
}
