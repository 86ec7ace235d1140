package app

import (
	"context"
	"time"

	"github.com/evanschultz/orderboard/internal/domain"
)

// SnapshotVersion identifies the exported board document layout.
const SnapshotVersion = "orderboard.board.v1"

// BoardSnapshot is a point-in-time copy of the whole board.
type BoardSnapshot struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Columns    []ColumnSnapshot `json:"columns" yaml:"columns"`
}

// ColumnSnapshot holds one column and its orders in display order.
type ColumnSnapshot struct {
	ID     domain.Column   `json:"id" yaml:"id"`
	Title  string          `json:"title" yaml:"title"`
	Orders []OrderSnapshot `json:"orders" yaml:"orders"`
}

// OrderSnapshot represents one exported order.
type OrderSnapshot struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Table     string    `json:"table" yaml:"table"`
	Position  int       `json:"position" yaml:"position"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// ExportBoard groups every order under its column.
func (s *Service) ExportBoard(ctx context.Context) (BoardSnapshot, error) {
	orders, err := s.ListOrders(ctx)
	if err != nil {
		return BoardSnapshot{}, err
	}
	snap := BoardSnapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.clock().UTC(),
		Columns:    make([]ColumnSnapshot, 0, len(domain.Columns())),
	}
	for _, column := range domain.Columns() {
		col := ColumnSnapshot{
			ID:     column,
			Title:  column.Title(),
			Orders: []OrderSnapshot{},
		}
		for _, order := range orders {
			if order.Column != column {
				continue
			}
			col.Orders = append(col.Orders, OrderSnapshot{
				ID:        order.ID,
				Title:     order.Title,
				Table:     order.Table,
				Position:  order.Position,
				CreatedAt: order.CreatedAt,
				UpdatedAt: order.UpdatedAt,
			})
		}
		snap.Columns = append(snap.Columns, col)
	}
	return snap, nil
}
