package model

import "time"

// Category groups products for display.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Product is a storefront listing.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	CategoryID    *int64    `json:"category_id,omitempty"`
	Stock         int       `json:"stock"`
	SoldCount     int       `json:"sold_count"`
	AutoDelivery  bool      `json:"auto_delivery"`
	IsActive      bool      `json:"is_active"`
	SortOrder     int       `json:"sort_order"`
	ImageURL      string    `json:"image_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	Category      *Category `json:"category,omitempty"`
}

// ProductList is the paginated envelope for product listings.
type ProductList struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}

// ProductCreate is the admin payload for creating a product.
type ProductCreate struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	Stock         int      `json:"stock"`
	AutoDelivery  bool     `json:"auto_delivery"`
	IsActive      bool     `json:"is_active"`
	SortOrder     int      `json:"sort_order"`
	ImageURL      string   `json:"image_url,omitempty"`
}

// ProductUpdate is the admin payload for a partial product update.
type ProductUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	CategoryID    *int64   `json:"category_id,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
	AutoDelivery  *bool    `json:"auto_delivery,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
	SortOrder     *int     `json:"sort_order,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

// CategoryCreate is the admin payload for creating a category.
type CategoryCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

// CategoryUpdate is the admin payload for a partial category update.
type CategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}
