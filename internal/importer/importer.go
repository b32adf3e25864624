package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"catalogmart/internal/models"
	"catalogmart/internal/repositories"
	"catalogmart/internal/services"
	"catalogmart/pkg/logger"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// Importer drives the full pipeline: read table, parse schema, resolve family
// definitions, validate rows, then upsert validated records in fixed-size
// batches. One row's failure never aborts the rest; the summary accounts for
// every row.
type Importer struct {
	productRepo          repositories.ProductRepository
	productAttributeRepo repositories.ProductAttributeRepository
	resolver             *FamilyResolver
	validator            *RowValidator
	statusSvc            services.StatusService
	inheritanceSvc       services.InheritanceService
	broker               *ProgressBroker
	batchSize            int
	log                  *zap.Logger
}

func NewImporter(productRepo repositories.ProductRepository, productAttributeRepo repositories.ProductAttributeRepository, resolver *FamilyResolver, validator *RowValidator, statusSvc services.StatusService, inheritanceSvc services.InheritanceService, broker *ProgressBroker, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Importer{
		productRepo:          productRepo,
		productAttributeRepo: productAttributeRepo,
		resolver:             resolver,
		validator:            validator,
		statusSvc:            statusSvc,
		inheritanceSvc:       inheritanceSvc,
		broker:               broker,
		batchSize:            batchSize,
		log:                  logger.Get(),
	}
}

// Run executes one import. Schema errors (unreadable payload, bad mapping)
// are fatal and reported before any row is processed; everything after that
// degrades per row. Progress snapshots are published under sessionID after
// every batch; pass "" to skip progress tracking for synchronous runs.
func (imp *Importer) Run(ctx context.Context, tenantID uuid.UUID, payload []byte, filename string, mapping FieldMapping, sessionID string) (*models.ImportSummary, error) {
	table, err := ReadTable(payload, filename)
	if err != nil {
		imp.fail(ctx, sessionID, err)
		return nil, err
	}
	mapping = mapping.Normalized()
	if err := ValidateMapping(mapping, table.Headers); err != nil {
		imp.fail(ctx, sessionID, err)
		return nil, err
	}

	schema := ParseSchema(table.Headers, table.Rows[0])
	index := SchemaIndex(schema)

	definitions, warnings, err := imp.resolver.Resolve(ctx, tenantID, table.Rows, mapping)
	if err != nil {
		imp.fail(ctx, sessionID, err)
		return nil, err
	}

	summary := &models.ImportSummary{
		TotalRows: len(table.Rows),
		Warnings:  warnings,
	}

	var records []*ProductRecord
	for _, row := range table.Rows {
		record, rowErrors, rowWarnings := imp.validator.ValidateRow(ctx, tenantID, row, mapping, index, definitions)
		summary.Warnings = append(summary.Warnings, rowWarnings...)
		if len(rowErrors) > 0 {
			summary.FailedRows = append(summary.FailedRows, models.RowFailure{
				Row:   row.Number,
				Error: joinRowErrors(rowErrors),
			})
			continue
		}
		records = append(records, record)
	}

	processed := len(summary.FailedRows)
	imp.publish(ctx, sessionID, processed, summary, models.ImportStatusProcessing, "validating complete")

	for start := 0; start < len(records); start += imp.batchSize {
		end := start + imp.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		failures := imp.persistBatch(ctx, tenantID, batch)
		summary.SuccessCount += len(batch) - len(failures)
		summary.FailedRows = append(summary.FailedRows, failures...)

		processed += len(batch)
		imp.publish(ctx, sessionID, processed, summary, models.ImportStatusProcessing, "")
	}

	sort.Slice(summary.FailedRows, func(i, j int) bool {
		return summary.FailedRows[i].Row < summary.FailedRows[j].Row
	})

	imp.publish(ctx, sessionID, processed, summary, models.ImportStatusCompleted,
		fmt.Sprintf("imported %d of %d rows", summary.SuccessCount, summary.TotalRows))

	imp.log.Info("import run finished",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("total", summary.TotalRows),
		zap.Int("success", summary.SuccessCount),
		zap.Int("failed", len(summary.FailedRows)))

	return summary, nil
}

// persistBatch upserts every record of one batch concurrently with
// all-settled discipline: each failure is captured against its row number and
// sibling upserts keep running.
func (imp *Importer) persistBatch(ctx context.Context, tenantID uuid.UUID, batch []*ProductRecord) []models.RowFailure {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []models.RowFailure
	)

	for _, record := range batch {
		wg.Add(1)
		go func(record *ProductRecord) {
			defer wg.Done()
			if err := imp.persistRecord(ctx, tenantID, record); err != nil {
				mu.Lock()
				failures = append(failures, models.RowFailure{Row: record.RowNumber, Error: err.Error()})
				mu.Unlock()
			}
		}(record)
	}
	wg.Wait()
	return failures
}

// persistRecord is the create-or-update (upsert) for one validated row, keyed
// by SKU within the tenant. A soft-deleted row with the same SKU is restored
// and updated instead of inserting a duplicate.
func (imp *Importer) persistRecord(ctx context.Context, tenantID uuid.UUID, record *ProductRecord) error {
	existing, err := imp.productRepo.GetBySKUIncludingDeleted(ctx, tenantID, record.SKU)

	var product *models.Product
	familyChanged := false
	switch {
	case err != nil && errors.Is(err, pgx.ErrNoRows):
		product = &models.Product{
			ID:          uuid.New(),
			TenantID:    tenantID,
			SKU:         record.SKU,
			Name:        record.Name,
			ImageURL:    record.ImageURL,
			ProductLink: record.ProductLink,
			CategoryID:  record.CategoryID,
			FamilyID:    record.FamilyID,
			Status:      models.ProductStatusIncomplete,
		}
		if err := imp.productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

	case err != nil:
		return fmt.Errorf("failed to look up sku: %w", err)

	case existing.IsDeleted:
		product = existing
		familyChanged = recordChangesFamily(existing, record)
		applyRecord(product, record)
		product.ParentProductID = nil // a restored product comes back standalone
		if err := imp.productRepo.Restore(ctx, product); err != nil {
			return fmt.Errorf("failed to restore product: %w", err)
		}

	default:
		product = existing
		familyChanged = recordChangesFamily(existing, record)
		applyRecord(product, record)
		if err := imp.productRepo.Update(ctx, product); err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
	}

	for _, attr := range record.Attributes {
		value := &models.ProductAttribute{
			ID:                uuid.New(),
			ProductID:         product.ID,
			AttributeID:       attr.AttributeID,
			Value:             attr.Value,
			FamilyAttributeID: attr.FamilyAttributeID,
		}
		if err := imp.productAttributeRepo.Upsert(ctx, value); err != nil {
			return fmt.Errorf("failed to save attribute value: %w", err)
		}
	}

	if _, err := imp.statusSvc.Recompute(ctx, tenantID, product); err != nil {
		return err
	}

	if familyChanged {
		if err := imp.inheritanceSvc.CascadeFamilyChange(ctx, tenantID, product.ID); err != nil {
			return fmt.Errorf("failed to cascade family change: %w", err)
		}
	}
	return nil
}

// applyRecord overwrites the mutable import fields, leaving identity and
// parentage alone.
func applyRecord(product *models.Product, record *ProductRecord) {
	product.Name = record.Name
	product.ImageURL = record.ImageURL
	product.ProductLink = record.ProductLink
	product.CategoryID = record.CategoryID
	if record.FamilyID != nil {
		product.FamilyID = record.FamilyID
	}
}

// recordChangesFamily reports whether applying the record moves an existing
// product to a different family. Imports never clear a family, so only a
// non-nil incoming family can change it.
func recordChangesFamily(existing *models.Product, record *ProductRecord) bool {
	if record.FamilyID == nil {
		return false
	}
	return existing.FamilyID == nil || *existing.FamilyID != *record.FamilyID
}

func (imp *Importer) publish(ctx context.Context, sessionID string, processed int, summary *models.ImportSummary, status, message string) {
	if sessionID == "" {
		return
	}
	percentage := 0.0
	if summary.TotalRows > 0 {
		percentage = float64(processed) / float64(summary.TotalRows) * 100
	}
	imp.broker.Publish(ctx, models.ImportProgress{
		SessionID:    sessionID,
		Processed:    processed,
		Total:        summary.TotalRows,
		SuccessCount: summary.SuccessCount,
		FailedCount:  len(summary.FailedRows),
		Percentage:   percentage,
		Status:       status,
		Message:      message,
	})
}

func (imp *Importer) fail(ctx context.Context, sessionID string, cause error) {
	if sessionID == "" {
		return
	}
	imp.broker.Publish(ctx, models.ImportProgress{
		SessionID: sessionID,
		Status:    models.ImportStatusError,
		Message:   cause.Error(),
	})
}

func joinRowErrors(rowErrors []RowError) string {
	message := ""
	for i, rowError := range rowErrors {
		if i > 0 {
			message += "; "
		}
		message += fmt.Sprintf("%s: %s", rowError.Field, rowError.Message)
	}
	return message
}
