package handlers

import (
	"net/http"

	"catalogmart/internal/common"
	"catalogmart/internal/models"
	"catalogmart/internal/services"

	"github.com/labstack/echo/v4"
)

// AttributeHandlers handles HTTP requests for the tenant attribute pool
type AttributeHandlers struct {
	attributeService services.AttributeService
}

// NewAttributeHandlers creates a new attribute handlers instance
func NewAttributeHandlers(attributeService services.AttributeService) *AttributeHandlers {
	return &AttributeHandlers{attributeService: attributeService}
}

// CreateAttribute handles POST /attributes
func (h *AttributeHandlers) CreateAttribute(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		Name         string  `json:"name"`
		DataType     string  `json:"data_type"`
		DefaultValue *string `json:"default_value"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	dataType := models.DataType(req.DataType)
	if req.DataType == "" {
		dataType = models.DataTypeShortText
	}

	attribute, err := h.attributeService.Create(ctx, tenantID, req.Name, dataType, req.DefaultValue)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Attribute created successfully",
		"attribute": attribute,
	})
}

// ListAttributes handles GET /attributes
func (h *AttributeHandlers) ListAttributes(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	limit, offset, err := paginationFromQuery(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	attributes, err := h.attributeService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"attributes": attributes,
		"limit":      limit,
		"offset":     offset,
	})
}

// GetAttributeByID handles GET /attributes/:id
func (h *AttributeHandlers) GetAttributeByID(c echo.Context) error {
	ctx := c.Request().Context()

	attributeID, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	attribute, err := h.attributeService.GetByID(ctx, tenantID, attributeID)
	if err != nil {
		return common.SendNotFoundError(c, "Attribute")
	}

	return c.JSON(http.StatusOK, attribute)
}
