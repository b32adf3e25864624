package handlers

import (
	"context"

	"catalogmart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, tenantID uuid.UUID, product *models.Product) error {
	args := m.Called(ctx, tenantID, product)
	return args.Error(0)
}

func (m *MockProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, tenantID uuid.UUID, product *models.Product) error {
	args := m.Called(ctx, tenantID, product)
	return args.Error(0)
}

func (m *MockProductService) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductService) PermanentDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) Search(ctx context.Context, tenantID uuid.UUID, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) ListVariants(ctx context.Context, tenantID, parentID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, tenantID, parentID)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductService) SetParent(ctx context.Context, tenantID, productID, parentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, productID, parentID)
	return args.Error(0)
}

func (m *MockProductService) ClearParent(ctx context.Context, tenantID, productID uuid.UUID) error {
	args := m.Called(ctx, tenantID, productID)
	return args.Error(0)
}

func (m *MockProductService) SetAttributeValue(ctx context.Context, tenantID, productID, attributeID uuid.UUID, value string, familyAttributeID *uuid.UUID) error {
	args := m.Called(ctx, tenantID, productID, attributeID, value, familyAttributeID)
	return args.Error(0)
}

func (m *MockProductService) ListAttributeValues(ctx context.Context, tenantID, productID uuid.UUID) ([]*models.ProductAttribute, error) {
	args := m.Called(ctx, tenantID, productID)
	return args.Get(0).([]*models.ProductAttribute), args.Error(1)
}

type MockFamilyService struct {
	mock.Mock
}

func (m *MockFamilyService) Create(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

func (m *MockFamilyService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Family, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

func (m *MockFamilyService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Family, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Family), args.Error(1)
}

func (m *MockFamilyService) AddAttribute(ctx context.Context, tenantID, familyID uuid.UUID, attributeName string, dataType models.DataType, isRequired bool) (*models.FamilyAttribute, error) {
	args := m.Called(ctx, tenantID, familyID, attributeName, dataType, isRequired)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FamilyAttribute), args.Error(1)
}

func (m *MockFamilyService) Completeness(ctx context.Context, tenantID, productID uuid.UUID) (*models.ProductCompleteness, error) {
	args := m.Called(ctx, tenantID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductCompleteness), args.Error(1)
}
