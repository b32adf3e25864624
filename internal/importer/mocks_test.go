package importer

import (
	"context"
	"time"

	"catalogmart/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Mock repositories and services shared by the importer tests.

type MockAttributeRepository struct {
	mock.Mock
}

func (m *MockAttributeRepository) Create(ctx context.Context, attribute *models.Attribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *MockAttributeRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Attribute, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Attribute, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Attribute, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Attribute), args.Error(1)
}

type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) Create(ctx context.Context, family *models.Family) error {
	args := m.Called(ctx, family)
	return args.Error(0)
}

func (m *MockFamilyRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Family, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

func (m *MockFamilyRepository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Family), args.Error(1)
}

func (m *MockFamilyRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Family, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Family), args.Error(1)
}

func (m *MockFamilyRepository) AddAttribute(ctx context.Context, link *models.FamilyAttribute) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockFamilyRepository) ListAttributes(ctx context.Context, familyID uuid.UUID) ([]*models.FamilyAttribute, error) {
	args := m.Called(ctx, familyID)
	return args.Get(0).([]*models.FamilyAttribute), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Category, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Category, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Category, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Category), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetBySKUIncludingDeleted(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	args := m.Called(ctx, tenantID, id, status)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) Restore(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListVariants(ctx context.Context, tenantID, parentID uuid.UUID) ([]*models.Product, error) {
	args := m.Called(ctx, tenantID, parentID)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) SetParent(ctx context.Context, tenantID, id uuid.UUID, parentID *uuid.UUID) error {
	args := m.Called(ctx, tenantID, id, parentID)
	return args.Error(0)
}

func (m *MockProductRepository) UnlinkVariants(ctx context.Context, tenantID, parentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, parentID)
	return args.Error(0)
}

func (m *MockProductRepository) Search(ctx context.Context, tenantID uuid.UUID, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListUpdatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, tenantID, since, limit, offset)
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockProductAttributeRepository struct {
	mock.Mock
}

func (m *MockProductAttributeRepository) Upsert(ctx context.Context, value *models.ProductAttribute) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

func (m *MockProductAttributeRepository) Get(ctx context.Context, productID, attributeID uuid.UUID) (*models.ProductAttribute, error) {
	args := m.Called(ctx, productID, attributeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductAttribute), args.Error(1)
}

func (m *MockProductAttributeRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductAttribute, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]*models.ProductAttribute), args.Error(1)
}

func (m *MockProductAttributeRepository) Delete(ctx context.Context, productID, attributeID uuid.UUID) error {
	args := m.Called(ctx, productID, attributeID)
	return args.Error(0)
}

func (m *MockProductAttributeRepository) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockInheritanceService struct {
	mock.Mock
}

func (m *MockInheritanceService) Merge(ctx context.Context, tenantID, parentID, variantID uuid.UUID) error {
	args := m.Called(ctx, tenantID, parentID, variantID)
	return args.Error(0)
}

func (m *MockInheritanceService) CascadeFamilyChange(ctx context.Context, tenantID, parentID uuid.UUID) error {
	args := m.Called(ctx, tenantID, parentID)
	return args.Error(0)
}

type MockStatusService struct {
	mock.Mock
}

func (m *MockStatusService) Recompute(ctx context.Context, tenantID uuid.UUID, product *models.Product) (string, error) {
	args := m.Called(ctx, tenantID, product)
	return args.String(0), args.Error(1)
}
