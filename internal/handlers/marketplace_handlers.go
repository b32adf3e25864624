package handlers

import (
	"fmt"
	"net/http"
	"time"

	"catalogmart/internal/common"
	"catalogmart/internal/jobs"

	"github.com/labstack/echo/v4"
)

// MarketplaceHandlers handles marketplace feed endpoints
type MarketplaceHandlers struct {
	exporter *jobs.MarketplaceExporter
}

// NewMarketplaceHandlers creates a new marketplace handlers instance
func NewMarketplaceHandlers(exporter *jobs.MarketplaceExporter) *MarketplaceHandlers {
	return &MarketplaceHandlers{exporter: exporter}
}

// ExportCatalog handles GET /marketplace/export. It streams the tenant's
// catalog as a CSV feed; ?only_complete=true limits the feed to products
// whose required attributes are all filled.
func (h *MarketplaceHandlers) ExportCatalog(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	onlyComplete := c.QueryParam("only_complete") == "true"

	result, err := h.exporter.ExportCatalogForTenant(ctx, tenantID, onlyComplete)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", result.FileName))
	return c.Blob(http.StatusOK, "text/csv", []byte(result.FileContent))
}

// PullUpdates handles GET /marketplace/updates. ?since takes an RFC 3339
// timestamp; omitted, the full catalog is returned page by page. Soft-deleted
// products appear in the result so consumers can delist them.
func (h *MarketplaceHandlers) PullUpdates(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return common.SendValidationError(c, "since", "must be an RFC 3339 timestamp")
		}
		since = parsed
	}

	limit, offset, err := paginationFromQuery(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	products, err := h.exporter.PullUpdates(ctx, tenantID, since, limit, offset)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
	})
}
