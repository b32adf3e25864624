package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"catalogmart/internal/common"
	"catalogmart/internal/models"
	"catalogmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
	familyService  services.FamilyService
}

// NewProductHandlers creates a new product handlers instance
func NewProductHandlers(productService services.ProductService, familyService services.FamilyService) *ProductHandlers {
	return &ProductHandlers{
		productService: productService,
		familyService:  familyService,
	}
}

func (h *ProductHandlers) validateUUID(idStr, fieldName string) (uuid.UUID, error) {
	id, err := common.ValidateUUID(idStr, fieldName)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func optionalUUID(raw *string, fieldName string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := common.ValidateUUID(*raw, fieldName)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return &id, nil
}

func paginationFromQuery(c echo.Context) (int, int, error) {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return common.ValidatePaginationParams(limit, offset)
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		SKU         string  `json:"sku"`
		Name        string  `json:"name"`
		ImageURL    *string `json:"image_url"`
		ProductLink *string `json:"product_link"`
		CategoryID  *string `json:"category_id"`
		FamilyID    *string `json:"family_id"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	product := &models.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		ProductLink: req.ProductLink,
	}

	categoryID, err := optionalUUID(req.CategoryID, "category_id")
	if err != nil {
		return err
	}
	product.CategoryID = categoryID

	familyID, err := optionalUUID(req.FamilyID, "family_id")
	if err != nil {
		return err
	}
	product.FamilyID = familyID

	if err := h.productService.Create(ctx, tenantID, product); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return common.SendConflictError(c, err.Error())
		}
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product created successfully",
		"product": product,
	})
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	limit, offset, err := paginationFromQuery(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	products, err := h.productService.List(ctx, tenantID, limit, offset)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// SearchProducts handles GET /products/search
func (h *ProductHandlers) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	limit, offset, err := paginationFromQuery(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	filter := &models.ProductSearchFilter{
		SortBy:    common.ValidateSortField(c.QueryParam("sort_by")),
		SortOrder: common.ValidateSortOrder(c.QueryParam("sort_order")),
		Limit:     limit,
		Offset:    offset,
	}

	if q := c.QueryParam("q"); q != "" {
		filter.Query = q
	}
	if status := c.QueryParam("status"); status != "" {
		if status != models.ProductStatusComplete && status != models.ProductStatusIncomplete {
			return common.SendValidationError(c, "status", "must be complete or incomplete")
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := h.validateUUID(raw, "category_id")
		if err != nil {
			return err
		}
		filter.CategoryID = &id
	}
	if raw := c.QueryParam("family_id"); raw != "" {
		id, err := h.validateUUID(raw, "family_id")
		if err != nil {
			return err
		}
		filter.FamilyID = &id
	}

	products, err := h.productService.Search(ctx, tenantID, filter)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetProductByID handles GET /products/:id
func (h *ProductHandlers) GetProductByID(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	product, err := h.productService.GetByID(ctx, tenantID, productID)
	if err != nil {
		return common.SendNotFoundError(c, "Product")
	}

	return c.JSON(http.StatusOK, product)
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		Name        string  `json:"name"`
		ImageURL    *string `json:"image_url"`
		ProductLink *string `json:"product_link"`
		CategoryID  *string `json:"category_id"`
		FamilyID    *string `json:"family_id"`
	}

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	existing, err := h.productService.GetByID(ctx, tenantID, productID)
	if err != nil {
		return common.SendNotFoundError(c, "Product")
	}

	existing.Name = req.Name
	existing.ImageURL = req.ImageURL
	existing.ProductLink = req.ProductLink

	categoryID, err := optionalUUID(req.CategoryID, "category_id")
	if err != nil {
		return err
	}
	existing.CategoryID = categoryID

	familyID, err := optionalUUID(req.FamilyID, "family_id")
	if err != nil {
		return err
	}
	existing.FamilyID = familyID

	if err := h.productService.Update(ctx, tenantID, existing); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Product updated successfully",
		"product": existing,
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	if err := h.productService.SoftDelete(ctx, tenantID, productID); err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
	})
}

// PurgeProduct handles DELETE /products/:id/permanent
func (h *ProductHandlers) PurgeProduct(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	if err := h.productService.PermanentDelete(ctx, tenantID, productID); err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Product permanently deleted",
	})
}

// ListVariants handles GET /products/:id/variants
func (h *ProductHandlers) ListVariants(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	variants, err := h.productService.ListVariants(ctx, tenantID, productID)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"variants": variants,
		"count":    len(variants),
	})
}

// SetParent handles PUT /products/:id/parent
func (h *ProductHandlers) SetParent(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		ParentID string `json:"parent_id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	parentID, err := h.validateUUID(req.ParentID, "parent_id")
	if err != nil {
		return err
	}

	if err := h.productService.SetParent(ctx, tenantID, productID, parentID); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Parent assigned successfully",
	})
}

// ClearParent handles DELETE /products/:id/parent
func (h *ProductHandlers) ClearParent(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	if err := h.productService.ClearParent(ctx, tenantID, productID); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Parent cleared successfully",
	})
}

// SetAttributeValue handles PUT /products/:id/attributes
func (h *ProductHandlers) SetAttributeValue(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	var req struct {
		AttributeID string `json:"attribute_id"`
		Value       string `json:"value"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	attributeID, err := h.validateUUID(req.AttributeID, "attribute_id")
	if err != nil {
		return err
	}

	if err := h.productService.SetAttributeValue(ctx, tenantID, productID, attributeID, req.Value, nil); err != nil {
		return common.SendClientError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Attribute value saved",
	})
}

// ListAttributeValues handles GET /products/:id/attributes
func (h *ProductHandlers) ListAttributeValues(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	values, err := h.productService.ListAttributeValues(ctx, tenantID, productID)
	if err != nil {
		return common.SendServerError(c, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"attributes": values,
		"count":      len(values),
	})
}

// GetCompleteness handles GET /products/:id/completeness
func (h *ProductHandlers) GetCompleteness(c echo.Context) error {
	ctx := c.Request().Context()

	productID, err := h.validateUUID(c.Param("id"), "id")
	if err != nil {
		return err
	}

	tenantID, ok := common.GetTenantIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Tenant not found")
	}

	report, err := h.familyService.Completeness(ctx, tenantID, productID)
	if err != nil {
		return common.SendNotFoundError(c, "Product")
	}

	return c.JSON(http.StatusOK, report)
}
