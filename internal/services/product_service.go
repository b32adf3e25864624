package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalogmart/internal/caching"
	"catalogmart/internal/common"
	"catalogmart/internal/models"
	"catalogmart/internal/repositories"
	"catalogmart/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const productCacheTTL = 10 * time.Minute

type ProductService interface {
	Create(ctx context.Context, tenantID uuid.UUID, product *models.Product) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error)
	Update(ctx context.Context, tenantID uuid.UUID, product *models.Product) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
	PermanentDelete(ctx context.Context, tenantID, id uuid.UUID) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error)
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.ProductSearchFilter) ([]*models.Product, error)
	ListVariants(ctx context.Context, tenantID, parentID uuid.UUID) ([]*models.Product, error)
	SetParent(ctx context.Context, tenantID, productID, parentID uuid.UUID) error
	ClearParent(ctx context.Context, tenantID, productID uuid.UUID) error
	SetAttributeValue(ctx context.Context, tenantID, productID, attributeID uuid.UUID, value string, familyAttributeID *uuid.UUID) error
	ListAttributeValues(ctx context.Context, tenantID, productID uuid.UUID) ([]*models.ProductAttribute, error)
}

type productService struct {
	productRepo          repositories.ProductRepository
	productAttributeRepo repositories.ProductAttributeRepository
	attributeRepo        repositories.AttributeRepository
	categoryRepo         repositories.CategoryRepository
	statusSvc            StatusService
	inheritanceSvc       InheritanceService
	cacheService         caching.CacheService
	log                  *zap.Logger
}

func NewProductService(productRepo repositories.ProductRepository, productAttributeRepo repositories.ProductAttributeRepository, attributeRepo repositories.AttributeRepository, categoryRepo repositories.CategoryRepository, statusSvc StatusService, inheritanceSvc InheritanceService, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:          productRepo,
		productAttributeRepo: productAttributeRepo,
		attributeRepo:        attributeRepo,
		categoryRepo:         categoryRepo,
		statusSvc:            statusSvc,
		inheritanceSvc:       inheritanceSvc,
		cacheService:         cacheService,
		log:                  logger.Get(),
	}
}

// Create inserts a product, or, when the SKU belongs to a soft-deleted row of
// the same tenant, restores and updates that row instead. A live duplicate
// SKU is rejected.
func (s *productService) Create(ctx context.Context, tenantID uuid.UUID, product *models.Product) error {
	sku, err := common.ValidateSKU(product.SKU)
	if err != nil {
		return err
	}
	name, err := common.ValidateProductName(product.Name)
	if err != nil {
		return err
	}
	if err := common.ValidateURLField(common.SafeString(product.ProductLink), "product_link"); err != nil {
		return err
	}
	if err := common.ValidateURLField(common.SafeString(product.ImageURL), "image_url"); err != nil {
		return err
	}
	product.SKU = sku
	product.Name = name
	product.TenantID = tenantID

	if product.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, tenantID, *product.CategoryID); err != nil {
			return fmt.Errorf("category not found: %w", err)
		}
	}

	existing, err := s.productRepo.GetBySKUIncludingDeleted(ctx, tenantID, sku)
	switch {
	case err != nil && errors.Is(err, pgx.ErrNoRows):
		product.ID = uuid.New()
		product.Status = models.ProductStatusIncomplete
		if err := s.productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

	case err != nil:
		return fmt.Errorf("failed to check sku: %w", err)

	case existing.IsDeleted:
		// The SKU was freed by a soft delete; reuse the row.
		product.ID = existing.ID
		product.ParentProductID = nil
		product.Status = models.ProductStatusIncomplete
		if err := s.productRepo.Restore(ctx, product); err != nil {
			return fmt.Errorf("failed to restore product: %w", err)
		}
		s.log.Info("restored soft-deleted product on sku reuse",
			zap.String("sku", sku),
			zap.String("product_id", product.ID.String()))

	default:
		return fmt.Errorf("sku %s already exists", sku)
	}

	if _, err := s.statusSvc.Recompute(ctx, tenantID, product); err != nil {
		return err
	}
	return nil
}

func (s *productService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cacheService.GetProduct(ctx, tenantID, id); cached != nil {
		return cached, nil
	} else if err != nil {
		// Cache errors never fail the read.
		s.log.Warn("product cache read failed", zap.String("product_id", id.String()), zap.Error(err))
	}

	product, err := s.productRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetProduct(ctx, tenantID, product, productCacheTTL); err != nil {
		s.log.Warn("product cache write failed", zap.String("product_id", id.String()), zap.Error(err))
	}
	return product, nil
}

func (s *productService) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error) {
	return s.productRepo.GetBySKU(ctx, tenantID, sku)
}

// Update persists field changes and, when the family changed, cascades the
// new family down to any variants before recomputing status.
func (s *productService) Update(ctx context.Context, tenantID uuid.UUID, product *models.Product) error {
	name, err := common.ValidateProductName(product.Name)
	if err != nil {
		return err
	}
	product.Name = name

	current, err := s.productRepo.GetByID(ctx, tenantID, product.ID)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	familyChanged := !uuidPtrEqual(current.FamilyID, product.FamilyID)

	product.TenantID = tenantID
	product.SKU = current.SKU // SKU is immutable after creation
	product.ParentProductID = current.ParentProductID
	if err := s.productRepo.Update(ctx, product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	s.invalidate(ctx, tenantID, product.ID)

	if _, err := s.statusSvc.Recompute(ctx, tenantID, product); err != nil {
		return err
	}
	if familyChanged {
		if err := s.inheritanceSvc.CascadeFamilyChange(ctx, tenantID, product.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *productService) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, tenantID, id); err != nil {
		return fmt.Errorf("product not found: %w", err)
	}
	if err := s.productRepo.SoftDelete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidate(ctx, tenantID, id)
	return nil
}

// PermanentDelete removes the row for good. Variants are unlinked first so
// they survive as standalone products; attribute values go with the row.
func (s *productService) PermanentDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	if err := s.productRepo.UnlinkVariants(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to unlink variants: %w", err)
	}
	if err := s.productAttributeRepo.DeleteByProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attribute values: %w", err)
	}
	if err := s.productRepo.HardDelete(ctx, tenantID, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.invalidate(ctx, tenantID, id)
	return nil
}

func (s *productService) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	return s.productRepo.List(ctx, tenantID, limit, offset)
}

func (s *productService) Search(ctx context.Context, tenantID uuid.UUID, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	filter.SortBy = common.ValidateSortField(filter.SortBy)
	return s.productRepo.Search(ctx, tenantID, filter)
}

func (s *productService) ListVariants(ctx context.Context, tenantID, parentID uuid.UUID) ([]*models.Product, error) {
	return s.productRepo.ListVariants(ctx, tenantID, parentID)
}

// SetParent links a product under a parent and runs the inheritance merge.
// Consistency checks happen before any mutation: the parent must exist, must
// not itself be a variant, and the product must not already be a parent
// (variant chains are disallowed in both directions).
func (s *productService) SetParent(ctx context.Context, tenantID, productID, parentID uuid.UUID) error {
	if productID == parentID {
		return fmt.Errorf("a product cannot be its own parent")
	}

	product, err := s.productRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}
	parent, err := s.productRepo.GetByID(ctx, tenantID, parentID)
	if err != nil {
		return fmt.Errorf("parent product not found: %w", err)
	}
	if parent.IsVariant() {
		return fmt.Errorf("product %s is a variant and cannot be a parent", parent.SKU)
	}
	children, err := s.productRepo.ListVariants(ctx, tenantID, productID)
	if err != nil {
		return fmt.Errorf("failed to check variants: %w", err)
	}
	if len(children) > 0 {
		return fmt.Errorf("product %s has variants and cannot become a variant itself", product.SKU)
	}

	if err := s.productRepo.SetParent(ctx, tenantID, productID, &parentID); err != nil {
		return fmt.Errorf("failed to set parent: %w", err)
	}
	s.invalidate(ctx, tenantID, productID)

	return s.inheritanceSvc.Merge(ctx, tenantID, parentID, productID)
}

func (s *productService) ClearParent(ctx context.Context, tenantID, productID uuid.UUID) error {
	if _, err := s.productRepo.GetByID(ctx, tenantID, productID); err != nil {
		return fmt.Errorf("product not found: %w", err)
	}
	if err := s.productRepo.SetParent(ctx, tenantID, productID, nil); err != nil {
		return fmt.Errorf("failed to clear parent: %w", err)
	}
	s.invalidate(ctx, tenantID, productID)
	return nil
}

// SetAttributeValue writes one attribute value after checking tenant
// ownership of the attribute and coercing the value to its data type, then
// recomputes status.
func (s *productService) SetAttributeValue(ctx context.Context, tenantID, productID, attributeID uuid.UUID, value string, familyAttributeID *uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, tenantID, productID)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}
	// Tenant-scoped lookup: an attribute owned by another tenant is unknown.
	attribute, err := s.attributeRepo.GetByID(ctx, tenantID, attributeID)
	if err != nil {
		return fmt.Errorf("attribute not found: %w", err)
	}

	encoded := ""
	if strings.TrimSpace(value) != "" {
		converted, err := models.ConvertValue(value, attribute.DataType)
		if err != nil {
			return err
		}
		encoded = converted.Encode()
	}

	record := &models.ProductAttribute{
		ID:                uuid.New(),
		ProductID:         productID,
		AttributeID:       attributeID,
		Value:             encoded,
		FamilyAttributeID: familyAttributeID,
	}
	if err := s.productAttributeRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save attribute value: %w", err)
	}
	s.invalidate(ctx, tenantID, productID)

	if _, err := s.statusSvc.Recompute(ctx, tenantID, product); err != nil {
		return err
	}
	return nil
}

func (s *productService) ListAttributeValues(ctx context.Context, tenantID, productID uuid.UUID) ([]*models.ProductAttribute, error) {
	if _, err := s.productRepo.GetByID(ctx, tenantID, productID); err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return s.productAttributeRepo.ListByProduct(ctx, productID)
}

func (s *productService) invalidate(ctx context.Context, tenantID, productID uuid.UUID) {
	if err := s.cacheService.DeleteProduct(ctx, tenantID, productID); err != nil {
		s.log.Warn("product cache invalidation failed", zap.String("product_id", productID.String()), zap.Error(err))
	}
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
