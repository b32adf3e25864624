package handlers

import (
	"net/http"

	"catalogmart/internal/common"
	"catalogmart/internal/models"
	"catalogmart/internal/services"

	"github.com/labstack/echo/v4"
)

// FamilyHandlers handles HTTP requests for attribute families
type FamilyHandlers struct {
	familyService services.FamilyService
}

// NewFamilyHandlers creates a new family handlers instance
func NewFamilyHandlers(familyService services.FamilyService) *FamilyHandlers {
	return &FamilyHandlers{familyService: familyService}
}

// CreateFamily handles POST /families
func (h *FamilyHandlers) CreateFamily(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	family, err := h.familyService.Create(ctx, tenantID, req.Name)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Family created successfully",
		"family":  family,
	})
}

// ListFamilies handles GET /families
func (h *FamilyHandlers) ListFamilies(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	limit, offset, err := paginationFromQuery(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	families, err := h.familyService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"families": families,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetFamilyByID handles GET /families/:id
func (h *FamilyHandlers) GetFamilyByID(c echo.Context) error {
	ctx := c.Request().Context()

	familyID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	family, err := h.familyService.GetByID(ctx, tenantID, familyID)
	if err != nil {
		return common.SendNotFoundError(c, "Family")
	}

	return c.JSON(http.StatusOK, family)
}

// AddFamilyAttribute handles POST /families/:id/attributes
func (h *FamilyHandlers) AddFamilyAttribute(c echo.Context) error {
	ctx := c.Request().Context()

	familyID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		Name       string `json:"name"`
		DataType   string `json:"data_type"`
		IsRequired bool   `json:"is_required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	dataType := models.DataType(req.DataType)
	if req.DataType == "" {
		dataType = models.DataTypeShortText
	}
	if !dataType.Valid() {
		return common.SendValidationError(c, "data_type", "unknown data type")
	}

	link, err := h.familyService.AddAttribute(ctx, tenantID, familyID, req.Name, dataType, req.IsRequired)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":          "Attribute linked to family",
		"family_attribute": link,
	})
}
