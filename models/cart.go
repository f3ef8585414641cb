package models

// CartLine is one cart entry, keyed by product id. A product appears at
// most once in the cart.
type CartLine struct {
	ProductID int    `json:"product_id" binding:"required,min=1"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// SnapshotItem is a cart line joined with its product and priced out.
type SnapshotItem struct {
	Product      Product `json:"product"`
	Quantity     int     `json:"quantity"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	ItemSubtotal float64 `json:"item_subtotal"`
	ItemDiscount float64 `json:"item_discount"`
	ItemTotal    float64 `json:"item_total"`
}

// CartSnapshot is the derived view of the cart. It is recomputed from the
// cart lines and the catalog on every read, never stored.
type CartSnapshot struct {
	Items          []SnapshotItem `json:"items"`
	Subtotal       float64        `json:"subtotal"`
	Discount       float64        `json:"discount"`
	DeliveryCharge float64        `json:"delivery_charge"`
	Total          float64        `json:"total"`
	ItemCount      int            `json:"item_count"`
}

type DeliveryAddress struct {
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	AddressLine1 string `json:"address_line1" binding:"required"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Pincode      string `json:"pincode" binding:"required"`
	Landmark     string `json:"landmark"`
}

type CheckoutRequest struct {
	DeliveryAddress DeliveryAddress `json:"delivery_address" binding:"required"`
	PaymentMethod   string          `json:"payment_method" binding:"required"`
	CouponCode      string          `json:"coupon_code"`
}

type CouponRequest struct {
	Code string `json:"code"`
}
