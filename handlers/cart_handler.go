package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"stylesai-service/cart"
	"stylesai-service/catalog"
	"stylesai-service/coupons"
	"stylesai-service/models"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	store  *cart.Store
	ledger *coupons.Ledger
}

func NewCartHandler(store *cart.Store, ledger *coupons.Ledger) *CartHandler {
	return &CartHandler{store: store, ledger: ledger}
}

// GetCart handles GET /cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	h.respondWithSnapshot(c)
}

// AddItem handles POST /cart. Adding a product already in the cart
// increments its quantity; size and color of the repeat request are
// ignored.
func (h *CartHandler) AddItem(c *gin.Context) {
	var line models.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	applyLineDefaults(&line)

	if err := h.store.AddItem(line.ProductID, line.Quantity, line.Size, line.Color); err != nil {
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

	log.Printf("Added %d of product %d to cart", line.Quantity, line.ProductID)
	h.respondWithSnapshot(c)
}

// UpdateItem handles PUT /cart/:productId. Unlike add, this replaces the
// line wholesale, including size and color.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	productID, ok := parseProductID(c, c.Param("productId"))
	if !ok {
		return
	}

	var line models.CartLine
	if err := c.ShouldBindJSON(&line); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}
	applyLineDefaults(&line)

	if err := h.store.UpdateItem(productID, line.Quantity, line.Size, line.Color); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Item not in cart",
		})
		return
	}

	h.respondWithSnapshot(c)
}

// RemoveItem handles DELETE /cart/:productId. Removing an absent product
// fails with 404, including a repeat remove.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, ok := parseProductID(c, c.Param("productId"))
	if !ok {
		return
	}

	if err := h.store.RemoveItem(productID); err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Item not in cart",
		})
		return
	}

	h.respondWithSnapshot(c)
}

// ClearCart handles DELETE /cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, models.CartSnapshot{Items: []models.SnapshotItem{}})
}

// ListCoupons handles GET /cart/coupons.
func (h *CartHandler) ListCoupons(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"coupons": h.ledger.List()})
}

// ApplyCoupon handles POST /cart/apply-coupon. The code may arrive in the
// body or as a query parameter. An unknown code is a normal miss, not an
// error.
func (h *CartHandler) ApplyCoupon(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		var req models.CouponRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			code = req.Code
		}
	}

	coupon, ok := h.ledger.Validate(code)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"message": "Invalid coupon code",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"code":     coupon.Code,
		"discount": coupon.DiscountPercent,
		"message":  fmt.Sprintf("Coupon applied! %d%% discount", coupon.DiscountPercent),
	})
}

func (h *CartHandler) respondWithSnapshot(c *gin.Context) {
	snapshot, err := h.store.Snapshot()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func applyLineDefaults(line *models.CartLine) {
	if line.Size == "" {
		line.Size = "M"
	}
	if line.Color == "" {
		line.Color = "Black"
	}
}
