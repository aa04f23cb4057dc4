package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopfront/shopfront-go/internal/domain/model"
	"github.com/shopfront/shopfront-go/internal/gateway"
)

// Orders wraps the /orders endpoints.
type Orders struct {
	client *gateway.Client
}

// NewOrders creates an Orders wrapper.
func NewOrders(client *gateway.Client) *Orders {
	return &Orders{client: client}
}

// OrderListParams filters an order listing. Zero values are omitted.
type OrderListParams struct {
	Skip   int
	Limit  int
	Status string
}

func (p OrderListParams) values() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

// List fetches the caller's orders.
func (o *Orders) List(ctx context.Context, params OrderListParams) (*model.OrderList, error) {
	var list model.OrderList
	if err := o.client.Get(ctx, "/orders/", params.values(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get fetches one order.
func (o *Orders) Get(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	if err := o.client.Get(ctx, fmt.Sprintf("/orders/%d", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Create places a single-product order.
func (o *Orders) Create(ctx context.Context, req model.OrderCreate) (*model.Order, error) {
	var order model.Order
	if err := o.client.Post(ctx, "/orders/", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CreateFromCart places an order for every cart line.
func (o *Orders) CreateFromCart(ctx context.Context, req model.CartOrderCreate) (*model.OrderSummary, error) {
	var summary model.OrderSummary
	if err := o.client.Post(ctx, "/orders/cart", req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// Update applies a partial order update (admin surface).
func (o *Orders) Update(ctx context.Context, orderID int64, req model.OrderUpdate) (*model.Order, error) {
	var order model.Order
	if err := o.client.Put(ctx, fmt.Sprintf("/orders/%d", orderID), req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Pay triggers payment for a pending order.
func (o *Orders) Pay(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	if err := o.client.Post(ctx, fmt.Sprintf("/orders/%d/pay", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// Cancel cancels a pending order.
func (o *Orders) Cancel(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	if err := o.client.Post(ctx, fmt.Sprintf("/orders/%d/cancel", orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
