package handlers

import (
	"net/http"
	"strings"
	"testing"

	"stylesai-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutBody(coupon string) models.CheckoutRequest {
	return models.CheckoutRequest{
		DeliveryAddress: models.DeliveryAddress{
			FullName:     "Asha Rao",
			Phone:        "9876543210",
			AddressLine1: "14 Lake View Road",
			City:         "Bengaluru",
			State:        "Karnataka",
			Pincode:      "560001",
		},
		PaymentMethod: "COD",
		CouponCode:    coupon,
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	w := doJSON(t, env.router, http.MethodPost, "/cart/checkout", checkoutBody(""))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMPTY_CART", decode[models.ErrorResponse](t, w).Error)
	assert.Empty(t, env.published)
}

func TestCheckout_CommitsAndClearsCart(t *testing.T) {
	env := newTestEnv(t)

	// Product 7: price 500, discount 10%, quantity 3 -> subtotal 1500,
	// discount 150, free delivery, total 1350.
	doJSON(t, env.router, http.MethodPost, "/cart", models.CartLine{ProductID: 7, Quantity: 3})

	w := doJSON(t, env.router, http.MethodPost, "/cart/checkout", checkoutBody(""))
	require.Equal(t, http.StatusOK, w.Code)

	order := decode[models.Order](t, w)
	assert.True(t, strings.HasPrefix(order.OrderID, "ORD"))
	require.Len(t, order.Items, 1)
	assert.InDelta(t, 1500.0, order.Subtotal, 1e-9)
	assert.InDelta(t, 150.0, order.Discount, 1e-9)
	assert.InDelta(t, 0.0, order.DeliveryCharge, 1e-9)
	assert.InDelta(t, 1350.0, order.Total, 1e-9)
	assert.Equal(t, "COD", order.PaymentMethod)
	assert.Equal(t, "5-7 business days", order.EstimatedDelivery)
	assert.Equal(t, "Asha Rao", order.DeliveryAddress.FullName)

	// Successful checkout clears the cart and publishes the order.
	assert.Equal(t, 0, env.store.Len())
	require.Len(t, env.published, 1)
	assert.Equal(t, order.OrderID, env.published[0].OrderID)
}

func TestCheckout_CouponDiscount(t *testing.T) {
	env := newTestEnv(t)

	// Product 2: price 1599, no product discount.
	doJSON(t, env.router, http.MethodPost, "/cart", models.CartLine{ProductID: 2, Quantity: 1})

	w := doJSON(t, env.router, http.MethodPost, "/cart/checkout", checkoutBody("style10"))
	require.Equal(t, http.StatusOK, w.Code)

	order := decode[models.Order](t, w)
	// Coupon code is normalized before lookup; 10% of 1599 = 159.90.
	assert.InDelta(t, 159.90, order.Discount, 1e-9)
	assert.InDelta(t, 1439.10, order.Total, 1e-9)
}

func TestCheckout_UnknownCouponIsNotAnError(t *testing.T) {
	env := newTestEnv(t)

	doJSON(t, env.router, http.MethodPost, "/cart", models.CartLine{ProductID: 2, Quantity: 1})

	w := doJSON(t, env.router, http.MethodPost, "/cart/checkout", checkoutBody("TOTALLYBOGUS"))
	require.Equal(t, http.StatusOK, w.Code)

	order := decode[models.Order](t, w)
	assert.InDelta(t, 0.0, order.Discount, 1e-9)
	assert.InDelta(t, 1599.0, order.Total, 1e-9)
}

func TestCheckout_TotalNeverNegative(t *testing.T) {
	env := newTestEnv(t)

	// Product 9: price 1000, product discount 100% -> snapshot total 0
	// (free delivery at subtotal 1000). Any coupon would push it negative.
	doJSON(t, env.router, http.MethodPost, "/cart", models.CartLine{ProductID: 9, Quantity: 1})

	w := doJSON(t, env.router, http.MethodPost, "/cart/checkout", checkoutBody("FASHION25"))
	require.Equal(t, http.StatusOK, w.Code)

	order := decode[models.Order](t, w)
	assert.InDelta(t, 0.0, order.Total, 1e-9)
}

func TestCheckout_InvalidBodyLeavesCartUntouched(t *testing.T) {
	env := newTestEnv(t)

	doJSON(t, env.router, http.MethodPost, "/cart", models.CartLine{ProductID: 7, Quantity: 1})

	w := doJSON(t, env.router, http.MethodPost, "/cart/checkout", map[string]any{"payment_method": "COD"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 1, env.store.Len())
	assert.Empty(t, env.published)
}

type failingPublisher struct{}

func (failingPublisher) PublishOrder(models.Order) error { return errExternal }

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	env := newTestEnv(t)
	checkoutHandler := NewCheckoutHandler(env.store, env.ledger, failingPublisher{})
	env.router.POST("/checkout-flaky", checkoutHandler.Checkout)

	doJSON(t, env.router, http.MethodPost, "/cart", models.CartLine{ProductID: 7, Quantity: 1})

	w := doJSON(t, env.router, http.MethodPost, "/checkout-flaky", checkoutBody(""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.store.Len())
}

func TestCheckout_OrderIDsUnique(t *testing.T) {
	env := newTestEnv(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		doJSON(t, env.router, http.MethodPost, "/cart", models.CartLine{ProductID: 8, Quantity: 1})
		w := doJSON(t, env.router, http.MethodPost, "/cart/checkout", checkoutBody(""))
		require.Equal(t, http.StatusOK, w.Code)

		order := decode[models.Order](t, w)
		assert.False(t, seen[order.OrderID], "order id %s repeated", order.OrderID)
		seen[order.OrderID] = true
	}
}
