package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalogmart/internal/models"
	"catalogmart/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FamilyService interface {
	Create(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error)
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Family, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Family, error)
	// AddAttribute links an attribute into a family, creating the attribute
	// if the tenant does not have it yet.
	AddAttribute(ctx context.Context, tenantID, familyID uuid.UUID, attributeName string, dataType models.DataType, isRequired bool) (*models.FamilyAttribute, error)
	// Completeness is the family-aware read model: required and optional
	// attribute lists with current values, for a UI to show what's missing.
	Completeness(ctx context.Context, tenantID, productID uuid.UUID) (*models.ProductCompleteness, error)
}

type familyService struct {
	familyRepo           repositories.FamilyRepository
	attributeRepo        repositories.AttributeRepository
	productRepo          repositories.ProductRepository
	productAttributeRepo repositories.ProductAttributeRepository
}

func NewFamilyService(familyRepo repositories.FamilyRepository, attributeRepo repositories.AttributeRepository, productRepo repositories.ProductRepository, productAttributeRepo repositories.ProductAttributeRepository) FamilyService {
	return &familyService{
		familyRepo:           familyRepo,
		attributeRepo:        attributeRepo,
		productRepo:          productRepo,
		productAttributeRepo: productAttributeRepo,
	}
}

func (s *familyService) Create(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("family name is required")
	}

	family := &models.Family{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     name,
	}
	if err := s.familyRepo.Create(ctx, family); err != nil {
		return nil, fmt.Errorf("failed to create family: %w", err)
	}
	// Read back: ON CONFLICT DO NOTHING means an existing family keeps its id.
	return s.familyRepo.GetByName(ctx, tenantID, name)
}

func (s *familyService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Family, error) {
	return s.familyRepo.GetByID(ctx, tenantID, id)
}

func (s *familyService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Family, error) {
	return s.familyRepo.List(ctx, tenantID, limit, offset)
}

func (s *familyService) AddAttribute(ctx context.Context, tenantID, familyID uuid.UUID, attributeName string, dataType models.DataType, isRequired bool) (*models.FamilyAttribute, error) {
	attributeName = strings.TrimSpace(attributeName)
	if attributeName == "" {
		return nil, fmt.Errorf("attribute name is required")
	}
	if !dataType.Valid() {
		return nil, fmt.Errorf("unknown data type %q", dataType)
	}

	family, err := s.familyRepo.GetByID(ctx, tenantID, familyID)
	if err != nil {
		return nil, fmt.Errorf("family not found: %w", err)
	}

	attribute, err := s.attributeRepo.GetByName(ctx, tenantID, attributeName)
	if errors.Is(err, pgx.ErrNoRows) {
		attribute = &models.Attribute{
			ID:       uuid.New(),
			TenantID: tenantID,
			Name:     attributeName,
			DataType: dataType,
		}
		if err := s.attributeRepo.Create(ctx, attribute); err != nil {
			return nil, fmt.Errorf("failed to create attribute: %w", err)
		}
		attribute, err = s.attributeRepo.GetByName(ctx, tenantID, attributeName)
		if err != nil {
			return nil, fmt.Errorf("failed to reload attribute: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to look up attribute: %w", err)
	}

	link := &models.FamilyAttribute{
		ID:          uuid.New(),
		FamilyID:    family.ID,
		AttributeID: attribute.ID,
		IsRequired:  isRequired,
		Position:    len(family.Attributes),
	}
	if err := s.familyRepo.AddAttribute(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to link attribute: %w", err)
	}
	link.AttributeName = attribute.Name
	link.DataType = attribute.DataType
	return link, nil
}

func (s *familyService) Completeness(ctx context.Context, tenantID, productID uuid.UUID) (*models.ProductCompleteness, error) {
	product, err := s.productRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	result := &models.ProductCompleteness{
		ProductID: product.ID,
		FamilyID:  product.FamilyID,
		Status:    product.Status,
		Required:  []models.AttributeCompleteness{},
		Optional:  []models.AttributeCompleteness{},
	}
	if product.FamilyID == nil {
		return result, nil
	}

	family, err := s.familyRepo.GetByID(ctx, tenantID, *product.FamilyID)
	if err != nil {
		return nil, fmt.Errorf("family not found: %w", err)
	}
	result.FamilyName = &family.Name

	values, err := s.productAttributeRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attribute values: %w", err)
	}
	byAttribute := make(map[uuid.UUID]*models.ProductAttribute, len(values))
	for _, value := range values {
		byAttribute[value.AttributeID] = value
	}

	for _, link := range family.Attributes {
		entry := models.AttributeCompleteness{
			AttributeID:   link.AttributeID,
			AttributeName: link.AttributeName,
			DataType:      link.DataType,
			IsRequired:    link.IsRequired,
			Missing:       true,
		}
		if value, ok := byAttribute[link.AttributeID]; ok && strings.TrimSpace(value.Value) != "" {
			entry.Value = &value.Value
			entry.Missing = false
		}
		if link.IsRequired {
			result.Required = append(result.Required, entry)
		} else {
			result.Optional = append(result.Optional, entry)
		}
	}
	return result, nil
}
