package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"stylesai-service/catalog"
	"stylesai-service/models"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalog *catalog.Reader
}

func NewProductHandler(catalogReader *catalog.Reader) *ProductHandler {
	return &ProductHandler{catalog: catalogReader}
}

// ListProducts handles GET /products with optional query filters.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListAll()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	if category := c.Query("category"); category != "" {
		products = catalog.FilterByCategory(products, category)
	}
	if subcategory := c.Query("subcategory"); subcategory != "" {
		products = catalog.FilterBySubcategory(products, subcategory)
	}
	if minStr := c.Query("min_price"); minStr != "" {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			products = catalog.FilterByMinPrice(products, min)
		}
	}
	if maxStr := c.Query("max_price"); maxStr != "" {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			products = catalog.FilterByMaxPrice(products, max)
		}
	}
	if style := c.Query("style"); style != "" {
		products = catalog.FilterByStyle(products, style)
	}
	if search := c.Query("search"); search != "" {
		products = catalog.Search(products, search)
	}

	c.JSON(http.StatusOK, products)
}

// GetCategories handles GET /products/categories.
func (h *ProductHandler) GetCategories(c *gin.Context) {
	tree, err := h.catalog.Categories()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, tree)
}

// GetProduct handles GET /products/:id.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseProductID(c, c.Param("id"))
	if !ok {
		return
	}

	product, err := h.catalog.GetByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "NOT_FOUND",
				Message: "Product not found",
			})
			return
		}
		catalogUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetByCategory handles GET /products/category/:category. Only the fixed
// category set is accepted.
func (h *ProductHandler) GetByCategory(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))
	if !catalog.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_CATEGORY",
			Message: "Invalid category. Must be one of: " + strings.Join(catalog.ValidCategories, ", "),
		})
		return
	}

	products, err := h.catalog.ListAll()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	c.JSON(http.StatusOK, catalog.FilterByCategory(products, category))
}

// GetBySubcategory handles GET /products/subcategory/:subcategory.
func (h *ProductHandler) GetBySubcategory(c *gin.Context) {
	products, err := h.catalog.ListAll()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	subcategory := strings.ToLower(c.Param("subcategory"))
	c.JSON(http.StatusOK, catalog.FilterBySubcategory(products, subcategory))
}

func parseProductID(c *gin.Context, raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid product ID",
			Details: "Product ID must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

func catalogUnavailable(c *gin.Context, err error) {
	log.Printf("Catalog unavailable: %v", err)
	c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
		Error:   "CATALOG_UNAVAILABLE",
		Message: "Product catalog could not be read",
		Details: err.Error(),
	})
}
