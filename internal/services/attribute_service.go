package services

import (
	"context"
	"fmt"
	"strings"

	"catalogmart/internal/models"
	"catalogmart/internal/repositories"

	"github.com/google/uuid"
)

type AttributeService interface {
	Create(ctx context.Context, tenantID uuid.UUID, name string, dataType models.DataType, defaultValue *string) (*models.Attribute, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Attribute, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Attribute, error)
}

type attributeService struct {
	attributeRepo repositories.AttributeRepository
}

func NewAttributeService(attributeRepo repositories.AttributeRepository) AttributeService {
	return &attributeService{attributeRepo: attributeRepo}
}

func (s *attributeService) Create(ctx context.Context, tenantID uuid.UUID, name string, dataType models.DataType, defaultValue *string) (*models.Attribute, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("attribute name is required")
	}
	if !dataType.Valid() {
		return nil, fmt.Errorf("unknown data type %q", dataType)
	}
	if defaultValue != nil && strings.TrimSpace(*defaultValue) != "" {
		if _, err := models.ConvertValue(*defaultValue, dataType); err != nil {
			return nil, fmt.Errorf("default value: %w", err)
		}
	}

	attribute := &models.Attribute{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         name,
		DataType:     dataType,
		DefaultValue: defaultValue,
	}
	if err := s.attributeRepo.Create(ctx, attribute); err != nil {
		return nil, fmt.Errorf("failed to create attribute: %w", err)
	}
	// ON CONFLICT DO NOTHING: an existing attribute keeps its id and type.
	return s.attributeRepo.GetByName(ctx, tenantID, name)
}

func (s *attributeService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Attribute, error) {
	return s.attributeRepo.GetByID(ctx, tenantID, id)
}

func (s *attributeService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Attribute, error) {
	return s.attributeRepo.List(ctx, tenantID, limit, offset)
}
