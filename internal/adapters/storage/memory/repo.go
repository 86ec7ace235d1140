// Package memory provides the session-only order store backing the board.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/evanschultz/orderboard/internal/app"
	"github.com/evanschultz/orderboard/internal/domain"
)

// Repository keeps orders in a map keyed by order id.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

// New constructs an empty repository.
func New() *Repository {
	return &Repository{orders: map[string]domain.Order{}}
}

// Close is a no-op kept for parity with the sqlite store.
func (r *Repository) Close() error {
	return nil
}

// CreateOrder stores a new order.
func (r *Repository) CreateOrder(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return fmt.Errorf("create order %q: %w", order.ID, domain.ErrInvalidID)
	}
	r.orders[order.ID] = order
	return nil
}

// UpdateOrders replaces all given orders, or none of them when any id is unknown.
func (r *Repository) UpdateOrders(_ context.Context, orders ...domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range orders {
		if _, ok := r.orders[order.ID]; !ok {
			return app.ErrNotFound
		}
	}
	for _, order := range orders {
		r.orders[order.ID] = order
	}
	return nil
}

// GetOrder returns one order.
func (r *Repository) GetOrder(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, app.ErrNotFound
	}
	return order, nil
}

// ListOrders returns every order in no particular order.
func (r *Repository) ListOrders(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		out = append(out, order)
	}
	return out, nil
}

// DeleteOrder removes one order.
func (r *Repository) DeleteOrder(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return app.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}
