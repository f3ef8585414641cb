package models

// Order is the result of a successful checkout. It is returned to the
// caller and published to the order events queue, but never persisted.
type Order struct {
	OrderID           string          `json:"order_id"`
	Items             []SnapshotItem  `json:"items"`
	Subtotal          float64         `json:"subtotal"`
	Discount          float64         `json:"discount"`
	DeliveryCharge    float64         `json:"delivery_charge"`
	Total             float64         `json:"total"`
	DeliveryAddress   DeliveryAddress `json:"delivery_address"`
	PaymentMethod     string          `json:"payment_method"`
	EstimatedDelivery string          `json:"estimated_delivery"`
}
