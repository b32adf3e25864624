package repositories

import (
	"context"
	"fmt"
	"time"

	"catalogmart/internal/models"

	"github.com/google/uuid"
)

const productColumns = `id, tenant_id, sku, name, image_url, product_link, sub_images, category_id, family_id, parent_product_id, status, is_deleted, deleted_at, created_at, updated_at`

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error)
	// GetBySKU only sees non-deleted rows; GetBySKUIncludingDeleted is the
	// restore path's lookup.
	GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error)
	GetBySKUIncludingDeleted(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error
	SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error
	HardDelete(ctx context.Context, tenantID, id uuid.UUID) error
	Restore(ctx context.Context, product *models.Product) error
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error)
	ListVariants(ctx context.Context, tenantID, parentID uuid.UUID) ([]*models.Product, error)
	SetParent(ctx context.Context, tenantID, id uuid.UUID, parentID *uuid.UUID) error
	UnlinkVariants(ctx context.Context, tenantID, parentID uuid.UUID) error
	Search(ctx context.Context, tenantID uuid.UUID, filter *models.ProductSearchFilter) ([]*models.Product, error)
	// ListUpdatedSince returns rows changed after the given time, soft-deleted
	// ones included so feed consumers can delist them.
	ListUpdatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time, limit, offset int) ([]*models.Product, error)
	// ListTenantIDs enumerates every tenant with at least one live product,
	// for jobs that sweep all catalogs.
	ListTenantIDs(ctx context.Context) ([]uuid.UUID, error)
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func scanProduct(row interface{ Scan(dest ...interface{}) error }) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.TenantID, &product.SKU, &product.Name, &product.ImageURL, &product.ProductLink, &product.SubImages, &product.CategoryID, &product.FamilyID, &product.ParentProductID, &product.Status, &product.IsDeleted, &product.DeletedAt, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (id, tenant_id, sku, name, image_url, product_link, sub_images, category_id, family_id, parent_product_id, status, is_deleted, deleted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false, NULL, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, product.ID, product.TenantID, product.SKU, product.Name, product.ImageURL, product.ProductLink, product.SubImages, product.CategoryID, product.FamilyID, product.ParentProductID, product.Status)
	return err
}

func (r *productRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND id = $2 AND is_deleted = false
	`
	return scanProduct(r.db.QueryRow(ctx, query, tenantID, id))
}

func (r *productRepo) GetBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND sku = $2 AND is_deleted = false
	`
	return scanProduct(r.db.QueryRow(ctx, query, tenantID, sku))
}

func (r *productRepo) GetBySKUIncludingDeleted(ctx context.Context, tenantID uuid.UUID, sku string) (*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND sku = $2
		ORDER BY is_deleted ASC
		LIMIT 1
	`
	return scanProduct(r.db.QueryRow(ctx, query, tenantID, sku))
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET sku = $1, name = $2, image_url = $3, product_link = $4, sub_images = $5, category_id = $6, family_id = $7, parent_product_id = $8, status = $9, updated_at = NOW()
		WHERE tenant_id = $10 AND id = $11
	`
	_, err := r.db.Exec(ctx, query, product.SKU, product.Name, product.ImageURL, product.ProductLink, product.SubImages, product.CategoryID, product.FamilyID, product.ParentProductID, product.Status, product.TenantID, product.ID)
	return err
}

func (r *productRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status string) error {
	query := `
		UPDATE products
		SET status = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, status, tenantID, id)
	return err
}

func (r *productRepo) SoftDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `
		UPDATE products
		SET is_deleted = true, deleted_at = NOW(), updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

func (r *productRepo) HardDelete(ctx context.Context, tenantID, id uuid.UUID) error {
	query := `DELETE FROM products WHERE tenant_id = $1 AND id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, id)
	return err
}

// Restore clears the soft-delete flags and overwrites the row with the given
// fields. Used when a creation hits a soft-deleted SKU.
func (r *productRepo) Restore(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, image_url = $2, product_link = $3, sub_images = $4, category_id = $5, family_id = $6, parent_product_id = $7, status = $8, is_deleted = false, deleted_at = NULL, updated_at = NOW()
		WHERE tenant_id = $9 AND id = $10
	`
	_, err := r.db.Exec(ctx, query, product.Name, product.ImageURL, product.ProductLink, product.SubImages, product.CategoryID, product.FamilyID, product.ParentProductID, product.Status, product.TenantID, product.ID)
	return err
}

func (r *productRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND is_deleted = false
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepo) ListVariants(ctx context.Context, tenantID, parentID uuid.UUID) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND parent_product_id = $2 AND is_deleted = false
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, tenantID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepo) SetParent(ctx context.Context, tenantID, id uuid.UUID, parentID *uuid.UUID) error {
	query := `
		UPDATE products
		SET parent_product_id = $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3
	`
	_, err := r.db.Exec(ctx, query, parentID, tenantID, id)
	return err
}

// UnlinkVariants detaches every variant of a parent in one statement. Must run
// before the parent row is hard-deleted.
func (r *productRepo) UnlinkVariants(ctx context.Context, tenantID, parentID uuid.UUID) error {
	query := `
		UPDATE products
		SET parent_product_id = NULL, updated_at = NOW()
		WHERE tenant_id = $1 AND parent_product_id = $2
	`
	_, err := r.db.Exec(ctx, query, tenantID, parentID)
	return err
}

func (r *productRepo) ListUpdatedSince(ctx context.Context, tenantID uuid.UUID, since time.Time, limit, offset int) ([]*models.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE tenant_id = $1 AND updated_at > $2
		ORDER BY updated_at
		LIMIT $3 OFFSET $4
	`
	rows, err := r.db.Query(ctx, query, tenantID, since, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *productRepo) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT DISTINCT tenant_id FROM products WHERE is_deleted = false ORDER BY tenant_id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenantIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		tenantIDs = append(tenantIDs, id)
	}
	return tenantIDs, rows.Err()
}

func (r *productRepo) Search(ctx context.Context, tenantID uuid.UUID, filter *models.ProductSearchFilter) ([]*models.Product, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	if filter.SortBy == "" {
		filter.SortBy = "created_at"
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 AND is_deleted = false`
	args := []interface{}{tenantID}
	argPos := 2

	if filter.Query != "" {
		query += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+filter.Query+"%")
		argPos++
	}
	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argPos)
		args = append(args, *filter.CategoryID)
		argPos++
	}
	if filter.FamilyID != nil {
		query += fmt.Sprintf(" AND family_id = $%d", argPos)
		args = append(args, *filter.FamilyID)
		argPos++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *filter.Status)
		argPos++
	}

	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d", filter.SortBy, sortOrder, argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func collectProducts(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}
