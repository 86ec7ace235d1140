package app

import (
	"context"

	"github.com/evanschultz/orderboard/internal/domain"
)

// Repository is the order store behind the service.
type Repository interface {
	CreateOrder(context.Context, domain.Order) error
	// UpdateOrders replaces every given order in one step; nothing is written when any id is unknown.
	UpdateOrders(context.Context, ...domain.Order) error
	GetOrder(context.Context, string) (domain.Order, error)
	ListOrders(context.Context) ([]domain.Order, error)
	DeleteOrder(context.Context, string) error
}
