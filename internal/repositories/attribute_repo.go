package repositories

import (
	"context"

	"catalogmart/internal/models"

	"github.com/google/uuid"
)

type AttributeRepository interface {
	Create(ctx context.Context, attribute *models.Attribute) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Attribute, error)
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Attribute, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Attribute, error)
}

type attributeRepo struct {
	db Database
}

func NewAttributeRepo(db Database) AttributeRepository {
	return &attributeRepo{db: db}
}

func (r *attributeRepo) Create(ctx context.Context, attribute *models.Attribute) error {
	query := `
		INSERT INTO attributes (id, tenant_id, name, data_type, default_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (tenant_id, name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, attribute.ID, attribute.TenantID, attribute.Name, attribute.DataType, attribute.DefaultValue)
	return err
}

func (r *attributeRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Attribute, error) {
	attribute := &models.Attribute{}
	query := `
		SELECT id, tenant_id, name, data_type, default_value, created_at, updated_at
		FROM attributes
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&attribute.ID, &attribute.TenantID, &attribute.Name, &attribute.DataType, &attribute.DefaultValue, &attribute.CreatedAt, &attribute.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return attribute, nil
}

func (r *attributeRepo) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Attribute, error) {
	attribute := &models.Attribute{}
	query := `
		SELECT id, tenant_id, name, data_type, default_value, created_at, updated_at
		FROM attributes
		WHERE tenant_id = $1 AND name = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, name).Scan(&attribute.ID, &attribute.TenantID, &attribute.Name, &attribute.DataType, &attribute.DefaultValue, &attribute.CreatedAt, &attribute.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return attribute, nil
}

func (r *attributeRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Attribute, error) {
	query := `
		SELECT id, tenant_id, name, data_type, default_value, created_at, updated_at
		FROM attributes
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attributes []*models.Attribute
	for rows.Next() {
		attribute := &models.Attribute{}
		if err := rows.Scan(&attribute.ID, &attribute.TenantID, &attribute.Name, &attribute.DataType, &attribute.DefaultValue, &attribute.CreatedAt, &attribute.UpdatedAt); err != nil {
			return nil, err
		}
		attributes = append(attributes, attribute)
	}
	return attributes, rows.Err()
}
