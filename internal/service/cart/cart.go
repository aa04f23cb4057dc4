// Package cart maintains the local, ephemeral collection of purchase
// intents. It is never persisted and never talks to the network; an
// order is only placed when the checkout flow sends a snapshot of it
// through the orders API.
package cart

import (
	"sync"

	"github.com/shopfront/shopfront-go/internal/domain/model"
)

// Item is one cart line. Quantity is always positive while the item is
// stored; insertion order is preserved for display only.
type Item struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
	Name      string
	ImageURL  string
}

// Manager owns the cart state. All mutations are synchronous; derived
// aggregates are recomputed from the collection on every read and are
// never cached.
type Manager struct {
	mu    sync.Mutex
	items map[int64]*Item
	order []int64

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewManager creates an empty cart.
func NewManager() *Manager {
	return &Manager{
		items: make(map[int64]*Item),
		subs:  make(map[int]func()),
	}
}

// AddItem merges quantity into an existing line or appends a new one.
// When the product is already present only the quantity changes; the
// stored price, name, and image are kept as first seen.
func (m *Manager) AddItem(productID int64, quantity int, unitPrice float64, name, imageURL string) {
	if quantity <= 0 {
		quantity = 1
	}

	m.mu.Lock()
	if existing, ok := m.items[productID]; ok {
		existing.Quantity += quantity
	} else {
		m.items[productID] = &Item{
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Name:      name,
			ImageURL:  imageURL,
		}
		m.order = append(m.order, productID)
	}
	m.mu.Unlock()

	m.notify()
}

// RemoveItem deletes the matching line; absent keys are a no-op.
func (m *Manager) RemoveItem(productID int64) {
	m.mu.Lock()
	changed := m.removeLocked(productID)
	m.mu.Unlock()

	if changed {
		m.notify()
	}
}

// UpdateQuantity sets a line's quantity to exactly quantity. A value
// of zero or less removes the line; absent keys are a no-op.
func (m *Manager) UpdateQuantity(productID int64, quantity int) {
	m.mu.Lock()
	changed := false
	if quantity <= 0 {
		changed = m.removeLocked(productID)
	} else if item, ok := m.items[productID]; ok {
		item.Quantity = quantity
		changed = true
	}
	m.mu.Unlock()

	if changed {
		m.notify()
	}
}

// Clear empties the cart unconditionally.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.items = make(map[int64]*Item)
	m.order = nil
	m.mu.Unlock()

	m.notify()
}

// ItemCount returns the stored quantity for a product, or 0.
func (m *Manager) ItemCount(productID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[productID]; ok {
		return item.Quantity
	}
	return 0
}

// Items returns a copy of the cart lines in insertion order.
func (m *Manager) Items() []Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Item, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.items[id])
	}
	return out
}

// TotalItems returns the sum of line quantities.
func (m *Manager) TotalItems() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, item := range m.items {
		total += item.Quantity
	}
	return total
}

// TotalAmount returns the sum of quantity times unit price over all lines.
func (m *Manager) TotalAmount() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0.0
	for _, item := range m.items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// Payload converts the cart to the wire shape the order endpoint accepts.
func (m *Manager) Payload() []model.CartItemPayload {
	items := m.Items()
	out := make([]model.CartItemPayload, 0, len(items))
	for _, item := range items {
		out = append(out, model.CartItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.UnitPrice,
			Name:      item.Name,
			ImageURL:  item.ImageURL,
		})
	}
	return out
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Listeners are called synchronously after every mutation.
func (m *Manager) Subscribe(fn func()) func() {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// removeLocked deletes a line under m.mu and reports whether anything changed.
func (m *Manager) removeLocked(productID int64) bool {
	if _, ok := m.items[productID]; !ok {
		return false
	}
	delete(m.items, productID)
	for i, id := range m.order {
		if id == productID {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// notify runs outside the state lock so listeners can read back.
func (m *Manager) notify() {
	m.subMu.Lock()
	fns := make([]func(), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		if fn != nil {
			fn()
		}
	}
}
