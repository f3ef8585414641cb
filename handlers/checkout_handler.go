package handlers

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"stylesai-service/cart"
	"stylesai-service/coupons"
	"stylesai-service/models"

	"github.com/gin-gonic/gin"
)

// estimatedDelivery is a fixed business rule, not real calendar logic.
const estimatedDelivery = "5-7 business days"

// OrderPublisher sends a completed order to the order events queue.
type OrderPublisher interface {
	PublishOrder(order models.Order) error
}

type CheckoutHandler struct {
	store     *cart.Store
	ledger    *coupons.Ledger
	publisher OrderPublisher
	mu        sync.Mutex
	orderSeq  int
}

// NewCheckoutHandler creates the checkout orchestrator. publisher may be
// nil when no broker is configured; orders are then only returned to the
// caller.
func NewCheckoutHandler(store *cart.Store, ledger *coupons.Ledger, publisher OrderPublisher) *CheckoutHandler {
	return &CheckoutHandler{
		store:     store,
		ledger:    ledger,
		publisher: publisher,
	}
}

// Checkout handles POST /cart/checkout. The operation either fully
// commits (order built, cart cleared) or fully fails with the cart
// unchanged.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if h.store.Len() == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "EMPTY_CART",
			Message: "Cart is empty",
		})
		return
	}

	// Pricing and clearing happen in one critical section: a line added
	// concurrently either lands in this order or stays in the cart. A
	// catalog read failure leaves the cart untouched.
	snapshot, err := h.store.SnapshotAndClear()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	// An unknown or blank coupon contributes zero discount; it never
	// fails the checkout.
	percent := h.ledger.PercentFor(req.CouponCode)
	couponDiscount := snapshot.Subtotal * float64(percent) / 100

	finalTotal := snapshot.Total - couponDiscount
	if finalTotal < 0 {
		finalTotal = 0
	}

	order := models.Order{
		OrderID:           h.nextOrderID(),
		Items:             snapshot.Items,
		Subtotal:          snapshot.Subtotal,
		Discount:          cart.Round2(snapshot.Discount + couponDiscount),
		DeliveryCharge:    snapshot.DeliveryCharge,
		Total:             cart.Round2(finalTotal),
		DeliveryAddress:   req.DeliveryAddress,
		PaymentMethod:     req.PaymentMethod,
		EstimatedDelivery: estimatedDelivery,
	}

	log.Printf("Checked out order %s, total %.2f", order.OrderID, order.Total)

	if h.publisher != nil {
		if err := h.publisher.PublishOrder(order); err != nil {
			// The order has already committed; a missing side channel
			// must not fail the checkout.
			log.Printf("Failed to publish order %s: %v", order.OrderID, err)
		}
	}

	c.JSON(http.StatusOK, order)
}

// nextOrderID mints a time-derived order id. The sequence suffix keeps
// ids unique within the process lifetime even inside one second.
func (h *CheckoutHandler) nextOrderID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.orderSeq++
	return fmt.Sprintf("ORD%d%04d", time.Now().Unix(), h.orderSeq)
}
