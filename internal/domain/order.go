package domain

import (
	"strings"
	"time"
)

type Order struct {
	ID        string
	Title     string
	Table     string
	Column    Column
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OrderInput struct {
	ID       string
	Title    string
	Table    string
	Column   Column
	Position int
}

// NewOrder builds an order; title and table are free text and may be empty.
func NewOrder(in OrderInput, now time.Time) (Order, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" {
		return Order{}, ErrInvalidID
	}
	if in.Column == "" {
		in.Column = ColumnOrdered
	}
	if !in.Column.Valid() {
		return Order{}, ErrInvalidColumn
	}
	if in.Position < 0 {
		return Order{}, ErrInvalidPosition
	}

	return Order{
		ID:        in.ID,
		Title:     strings.TrimSpace(in.Title),
		Table:     strings.TrimSpace(in.Table),
		Column:    in.Column,
		Position:  in.Position,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

func (o *Order) UpdateDetails(title, table string, now time.Time) {
	o.Title = strings.TrimSpace(title)
	o.Table = strings.TrimSpace(table)
	o.UpdatedAt = now.UTC()
}

func (o *Order) Move(column Column, position int, now time.Time) error {
	if !column.Valid() {
		return ErrInvalidColumn
	}
	if position < 0 {
		return ErrInvalidPosition
	}
	o.Column = column
	o.Position = position
	o.UpdatedAt = now.UTC()
	return nil
}

func (o *Order) SetPosition(position int, now time.Time) error {
	if position < 0 {
		return ErrInvalidPosition
	}
	o.Position = position
	o.UpdatedAt = now.UTC()
	return nil
}

// ShortID returns the leading id segment used on tickets.
func (o Order) ShortID() string {
	id := o.ID
	if idx := strings.IndexByte(id, '-'); idx > 0 {
		id = id[:idx]
	}
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}
