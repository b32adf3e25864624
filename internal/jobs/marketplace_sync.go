package jobs

import (
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"catalogmart/internal/models"
	"catalogmart/internal/repositories"
	"catalogmart/internal/services"
	"catalogmart/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const exportPageSize = 500

// MarketplaceExporter flattens a tenant's catalog into the feed format the
// marketplace listing sync consumes.
type MarketplaceExporter struct {
	productRepo          repositories.ProductRepository
	productAttributeRepo repositories.ProductAttributeRepository
	familyRepo           repositories.FamilyRepository
	staging              services.StagingService
	feedBucket           string
	log                  *zap.Logger
}

type ExportResult struct {
	FileName        string
	FileContent     string
	RecordsExported int
}

func NewMarketplaceExporter(productRepo repositories.ProductRepository, productAttributeRepo repositories.ProductAttributeRepository, familyRepo repositories.FamilyRepository, staging services.StagingService, feedBucket string) *MarketplaceExporter {
	return &MarketplaceExporter{
		productRepo:          productRepo,
		productAttributeRepo: productAttributeRepo,
		familyRepo:           familyRepo,
		staging:              staging,
		feedBucket:           feedBucket,
		log:                  logger.Get(),
	}
}

// RefreshFeeds regenerates and publishes the complete-products feed for every
// tenant that has a catalog. A tenant's failure is logged and skipped so one
// bad catalog does not starve the rest of the sweep. Returns the number of
// feeds published.
func (e *MarketplaceExporter) RefreshFeeds(ctx context.Context) (int, error) {
	tenantIDs, err := e.productRepo.ListTenantIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list tenants: %w", err)
	}

	published := 0
	for _, tenantID := range tenantIDs {
		result, err := e.ExportCatalogForTenant(ctx, tenantID, true)
		if err != nil {
			e.log.Error("feed refresh failed for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err))
			continue
		}

		feedName := fmt.Sprintf("catalog_feed_%s.csv", tenantID.String())
		if err := e.staging.PublishFeed(ctx, e.feedBucket, feedName, result.FileContent); err != nil {
			e.log.Error("feed publish failed for tenant",
				zap.String("tenant_id", tenantID.String()),
				zap.Error(err))
			continue
		}
		published++
	}
	return published, nil
}

// ExportCatalogForTenant writes every live product as one CSV row. The fixed
// columns come first, then one column per attribute name seen across the
// tenant's products, sorted for a stable feed.
func (e *MarketplaceExporter) ExportCatalogForTenant(ctx context.Context, tenantID uuid.UUID, onlyComplete bool) (*ExportResult, error) {
	products, err := e.collectProducts(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if onlyComplete {
		live := products[:0]
		for _, p := range products {
			if p.Status == models.ProductStatusComplete {
				live = append(live, p)
			}
		}
		products = live
	}

	if len(products) == 0 {
		return &ExportResult{
			FileName:        "empty_catalog_export.csv",
			FileContent:     "",
			RecordsExported: 0,
		}, nil
	}

	values := make(map[uuid.UUID][]*models.ProductAttribute, len(products))
	attributeNames := make(map[string]struct{})
	for _, p := range products {
		attrs, err := e.productAttributeRepo.ListByProduct(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list attributes for %s: %w", p.SKU, err)
		}
		values[p.ID] = attrs
		for _, a := range attrs {
			attributeNames[a.AttributeName] = struct{}{}
		}
	}

	columns := make([]string, 0, len(attributeNames))
	for name := range attributeNames {
		columns = append(columns, name)
	}
	sort.Strings(columns)

	content, err := e.generateFeedCSV(products, values, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	fileName := fmt.Sprintf("catalog_export_%s_%s.csv", tenantID.String(), time.Now().UTC().Format("2006-01-02"))

	e.log.Info("catalog exported",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("products", len(products)),
		zap.Int("attribute_columns", len(columns)))

	return &ExportResult{
		FileName:        fileName,
		FileContent:     content,
		RecordsExported: len(products),
	}, nil
}

// PullUpdates returns products changed after the given time, for consumers
// that sync incrementally instead of re-reading the full feed. Soft-deleted
// rows come back too so the consumer can delist them.
func (e *MarketplaceExporter) PullUpdates(ctx context.Context, tenantID uuid.UUID, since time.Time, limit, offset int) ([]*models.Product, error) {
	products, err := e.productRepo.ListUpdatedSince(ctx, tenantID, since, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list updated products: %w", err)
	}
	return products, nil
}

func (e *MarketplaceExporter) collectProducts(ctx context.Context, tenantID uuid.UUID) ([]*models.Product, error) {
	var all []*models.Product
	offset := 0
	for {
		page, err := e.productRepo.List(ctx, tenantID, exportPageSize, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
		offset += exportPageSize
	}
}

func (e *MarketplaceExporter) generateFeedCSV(products []*models.Product, values map[uuid.UUID][]*models.ProductAttribute, columns []string) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{"sku", "name", "status", "parent_sku", "image_url", "product_link"}
	header = append(header, columns...)
	if err := writer.Write(header); err != nil {
		return "", err
	}

	skuByID := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		skuByID[p.ID] = p.SKU
	}

	for _, p := range products {
		record := []string{
			p.SKU,
			p.Name,
			p.Status,
			parentSKU(p, skuByID),
			nullToEmpty(p.ImageURL),
			nullToEmpty(p.ProductLink),
		}

		byName := make(map[string]string, len(values[p.ID]))
		for _, a := range values[p.ID] {
			byName[a.AttributeName] = a.Value
		}
		for _, col := range columns {
			record = append(record, byName[col])
		}

		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func parentSKU(p *models.Product, skuByID map[uuid.UUID]string) string {
	if p.ParentProductID == nil {
		return ""
	}
	return skuByID[*p.ParentProductID]
}

func nullToEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
