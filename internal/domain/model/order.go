package model

import "time"

// Order status values used by the backend.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderUser is the abbreviated user embedded in an order.
type OrderUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// OrderProduct is the abbreviated product embedded in an order.
type OrderProduct struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Order is a purchase record.
type Order struct {
	ID              int64         `json:"id"`
	OrderNumber     string        `json:"order_number"`
	UserID          int64         `json:"user_id"`
	ProductID       int64         `json:"product_id"`
	ProductName     string        `json:"product_name"`
	ProductPrice    float64       `json:"product_price"`
	Quantity        int           `json:"quantity"`
	TotalAmount     float64       `json:"total_amount"`
	PaymentMethod   string        `json:"payment_method"`
	Status          string        `json:"status"`
	DeliveryContent string        `json:"delivery_content,omitempty"`
	DeliveredAt     *time.Time    `json:"delivered_at,omitempty"`
	UserNote        string        `json:"user_note,omitempty"`
	AdminNote       string        `json:"admin_note,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	PaidAt          *time.Time    `json:"paid_at,omitempty"`
	User            *OrderUser    `json:"user,omitempty"`
	Product         *OrderProduct `json:"product,omitempty"`
}

// OrderCreate places a single-product order.
type OrderCreate struct {
	ProductID     int64  `json:"product_id"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
	UserNote      string `json:"user_note,omitempty"`
}

// OrderUpdate is the admin payload for a partial order update.
type OrderUpdate struct {
	Status    *string `json:"status,omitempty"`
	AdminNote *string `json:"admin_note,omitempty"`
}

// OrderList is the paginated envelope for order listings.
type OrderList struct {
	Items []Order `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Size  int     `json:"size"`
}

// CartItemPayload is the wire form of a cart line when creating an
// order from the cart. The local cart state lives in service/cart;
// this shape is only what the backend accepts.
type CartItemPayload struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price,omitempty"`
	Name      string  `json:"name,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// CartOrderCreate places an order for every item in the cart.
type CartOrderCreate struct {
	Items         []CartItemPayload `json:"items"`
	PaymentMethod string            `json:"payment_method"`
	UserNote      string            `json:"user_note,omitempty"`
}

// OrderSummary is the backend's acknowledgement of a cart order.
type OrderSummary struct {
	Items       []CartItemPayload `json:"items"`
	TotalAmount float64           `json:"total_amount"`
}
