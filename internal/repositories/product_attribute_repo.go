package repositories

import (
	"context"

	"catalogmart/internal/models"

	"github.com/google/uuid"
)

type ProductAttributeRepository interface {
	// Upsert inserts or overwrites the (product_id, attribute_id) pair, which
	// is what makes re-imports idempotent.
	Upsert(ctx context.Context, value *models.ProductAttribute) error
	Get(ctx context.Context, productID, attributeID uuid.UUID) (*models.ProductAttribute, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductAttribute, error)
	Delete(ctx context.Context, productID, attributeID uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}

type productAttributeRepo struct {
	db Database
}

func NewProductAttributeRepo(db Database) ProductAttributeRepository {
	return &productAttributeRepo{db: db}
}

func (r *productAttributeRepo) Upsert(ctx context.Context, value *models.ProductAttribute) error {
	query := `
		INSERT INTO product_attributes (id, product_id, attribute_id, value, family_attribute_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (product_id, attribute_id) DO UPDATE SET value = EXCLUDED.value, family_attribute_id = EXCLUDED.family_attribute_id, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, value.ID, value.ProductID, value.AttributeID, value.Value, value.FamilyAttributeID)
	return err
}

func (r *productAttributeRepo) Get(ctx context.Context, productID, attributeID uuid.UUID) (*models.ProductAttribute, error) {
	value := &models.ProductAttribute{}
	query := `
		SELECT pa.id, pa.product_id, pa.attribute_id, pa.value, pa.family_attribute_id, pa.created_at, pa.updated_at, a.name, a.data_type
		FROM product_attributes pa
		JOIN attributes a ON a.id = pa.attribute_id
		WHERE pa.product_id = $1 AND pa.attribute_id = $2
	`
	err := r.db.QueryRow(ctx, query, productID, attributeID).Scan(&value.ID, &value.ProductID, &value.AttributeID, &value.Value, &value.FamilyAttributeID, &value.CreatedAt, &value.UpdatedAt, &value.AttributeName, &value.DataType)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (r *productAttributeRepo) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*models.ProductAttribute, error) {
	query := `
		SELECT pa.id, pa.product_id, pa.attribute_id, pa.value, pa.family_attribute_id, pa.created_at, pa.updated_at, a.name, a.data_type
		FROM product_attributes pa
		JOIN attributes a ON a.id = pa.attribute_id
		WHERE pa.product_id = $1
		ORDER BY a.name
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []*models.ProductAttribute
	for rows.Next() {
		value := &models.ProductAttribute{}
		if err := rows.Scan(&value.ID, &value.ProductID, &value.AttributeID, &value.Value, &value.FamilyAttributeID, &value.CreatedAt, &value.UpdatedAt, &value.AttributeName, &value.DataType); err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, rows.Err()
}

func (r *productAttributeRepo) Delete(ctx context.Context, productID, attributeID uuid.UUID) error {
	query := `DELETE FROM product_attributes WHERE product_id = $1 AND attribute_id = $2`
	_, err := r.db.Exec(ctx, query, productID, attributeID)
	return err
}

func (r *productAttributeRepo) DeleteByProduct(ctx context.Context, productID uuid.UUID) error {
	query := `DELETE FROM product_attributes WHERE product_id = $1`
	_, err := r.db.Exec(ctx, query, productID)
	return err
}
