package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopfront/shopfront-go/internal/domain/model"
	"github.com/shopfront/shopfront-go/internal/gateway"
)

// Products wraps the /products endpoints, including the admin-gated
// mutations. The backend enforces the actual permissions; a 403 here
// surfaces through the usual classification.
type Products struct {
	client *gateway.Client
}

// NewProducts creates a Products wrapper.
func NewProducts(client *gateway.Client) *Products {
	return &Products{client: client}
}

// ProductListParams filters a product listing. Zero values are omitted.
type ProductListParams struct {
	Skip       int
	Limit      int
	CategoryID int64
	Search     string
	IsActive   *bool
}

func (p ProductListParams) values() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(p.CategoryID, 10))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.IsActive != nil {
		q.Set("is_active", strconv.FormatBool(*p.IsActive))
	}
	return q
}

// List fetches a page of products.
func (p *Products) List(ctx context.Context, params ProductListParams) (*model.ProductList, error) {
	var list model.ProductList
	if err := p.client.Get(ctx, "/products/", params.values(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get fetches one product.
func (p *Products) Get(ctx context.Context, productID int64) (*model.Product, error) {
	var product model.Product
	if err := p.client.Get(ctx, fmt.Sprintf("/products/%d", productID), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories fetches all categories.
func (p *Products) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := p.client.Get(ctx, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Create adds a product (admin).
func (p *Products) Create(ctx context.Context, req model.ProductCreate) (*model.Product, error) {
	var product model.Product
	if err := p.client.Post(ctx, "/products/", req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies a partial product update (admin).
func (p *Products) Update(ctx context.Context, productID int64, req model.ProductUpdate) (*model.Product, error) {
	var product model.Product
	if err := p.client.Put(ctx, fmt.Sprintf("/products/%d", productID), req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a product (admin).
func (p *Products) Delete(ctx context.Context, productID int64) error {
	return p.client.Delete(ctx, fmt.Sprintf("/products/%d", productID), nil)
}

// AdjustStock changes a product's stock by quantity, which may be
// negative (admin). The backend takes the delta as a query argument.
func (p *Products) AdjustStock(ctx context.Context, productID int64, quantity int) error {
	q := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return p.client.PostQuery(ctx, fmt.Sprintf("/products/%d/stock", productID), q, nil)
}

// CreateCategory adds a category (admin).
func (p *Products) CreateCategory(ctx context.Context, req model.CategoryCreate) (*model.Category, error) {
	var category model.Category
	if err := p.client.Post(ctx, "/products/categories", req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory applies a partial category update (admin).
func (p *Products) UpdateCategory(ctx context.Context, categoryID int64, req model.CategoryUpdate) (*model.Category, error) {
	var category model.Category
	if err := p.client.Put(ctx, fmt.Sprintf("/products/categories/%d", categoryID), req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category (admin).
func (p *Products) DeleteCategory(ctx context.Context, categoryID int64) error {
	return p.client.Delete(ctx, fmt.Sprintf("/products/categories/%d", categoryID), nil)
}
