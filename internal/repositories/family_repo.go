package repositories

import (
	"context"

	"catalogmart/internal/models"

	"github.com/google/uuid"
)

type FamilyRepository interface {
	Create(ctx context.Context, family *models.Family) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Family, error)
	// GetByName returns the family with its attribute links loaded, or
	// pgx.ErrNoRows when the name is unknown for the tenant.
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Family, error)
	AddAttribute(ctx context.Context, link *models.FamilyAttribute) error
	ListAttributes(ctx context.Context, familyID uuid.UUID) ([]*models.FamilyAttribute, error)
}

type familyRepo struct {
	db Database
}

func NewFamilyRepo(db Database) FamilyRepository {
	return &familyRepo{db: db}
}

func (r *familyRepo) Create(ctx context.Context, family *models.Family) error {
	query := `
		INSERT INTO families (id, tenant_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (tenant_id, name) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, family.ID, family.TenantID, family.Name)
	return err
}

func (r *familyRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*models.Family, error) {
	family := &models.Family{}
	query := `
		SELECT id, tenant_id, name, created_at, updated_at
		FROM families
		WHERE tenant_id = $1 AND id = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(&family.ID, &family.TenantID, &family.Name, &family.CreatedAt, &family.UpdatedAt)
	if err != nil {
		return nil, err
	}
	family.Attributes, err = r.ListAttributes(ctx, family.ID)
	if err != nil {
		return nil, err
	}
	return family, nil
}

func (r *familyRepo) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*models.Family, error) {
	family := &models.Family{}
	query := `
		SELECT id, tenant_id, name, created_at, updated_at
		FROM families
		WHERE tenant_id = $1 AND name = $2
	`
	err := r.db.QueryRow(ctx, query, tenantID, name).Scan(&family.ID, &family.TenantID, &family.Name, &family.CreatedAt, &family.UpdatedAt)
	if err != nil {
		return nil, err
	}
	family.Attributes, err = r.ListAttributes(ctx, family.ID)
	if err != nil {
		return nil, err
	}
	return family, nil
}

func (r *familyRepo) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*models.Family, error) {
	query := `
		SELECT id, tenant_id, name, created_at, updated_at
		FROM families
		WHERE tenant_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var families []*models.Family
	for rows.Next() {
		family := &models.Family{}
		if err := rows.Scan(&family.ID, &family.TenantID, &family.Name, &family.CreatedAt, &family.UpdatedAt); err != nil {
			return nil, err
		}
		families = append(families, family)
	}
	return families, rows.Err()
}

func (r *familyRepo) AddAttribute(ctx context.Context, link *models.FamilyAttribute) error {
	query := `
		INSERT INTO family_attributes (id, family_id, attribute_id, is_required, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (family_id, attribute_id) DO UPDATE SET is_required = EXCLUDED.is_required, position = EXCLUDED.position
	`
	_, err := r.db.Exec(ctx, query, link.ID, link.FamilyID, link.AttributeID, link.IsRequired, link.Position)
	return err
}

func (r *familyRepo) ListAttributes(ctx context.Context, familyID uuid.UUID) ([]*models.FamilyAttribute, error) {
	query := `
		SELECT fa.id, fa.family_id, fa.attribute_id, fa.is_required, fa.position, a.name, a.data_type
		FROM family_attributes fa
		JOIN attributes a ON a.id = fa.attribute_id
		WHERE fa.family_id = $1
		ORDER BY fa.position
	`
	rows, err := r.db.Query(ctx, query, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.FamilyAttribute
	for rows.Next() {
		link := &models.FamilyAttribute{}
		if err := rows.Scan(&link.ID, &link.FamilyID, &link.AttributeID, &link.IsRequired, &link.Position, &link.AttributeName, &link.DataType); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
