package domain

import (
	"slices"
	"strings"
)

// Column identifies the board column an order currently sits in.
type Column string

// ColumnOrdered and related constants define the fixed board columns.
const (
	ColumnOrdered   Column = "ordered"
	ColumnPreparing Column = "preparing"
	ColumnServed    Column = "served"
)

// columns stores the board columns in display order.
var columns = []Column{ColumnOrdered, ColumnPreparing, ColumnServed}

// columnTitles stores default display titles.
var columnTitles = map[Column]string{
	ColumnOrdered:   "Ordered",
	ColumnPreparing: "Preparing",
	ColumnServed:    "Served",
}

// Columns returns every board column in display order.
func Columns() []Column {
	return slices.Clone(columns)
}

// ParseColumn normalizes raw input into a known column.
func ParseColumn(raw string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", ErrInvalidColumn
	}
	return c, nil
}

// Valid reports whether the column is one of the known board columns.
func (c Column) Valid() bool {
	return slices.Contains(columns, c)
}

// Index returns the display index, or -1 for unknown columns.
func (c Column) Index() int {
	return slices.Index(columns, c)
}

// Title returns the default display title.
func (c Column) Title() string {
	if title, ok := columnTitles[c]; ok {
		return title
	}
	return string(c)
}

// Shift returns the neighbouring column delta steps away without wrapping.
func (c Column) Shift(delta int) (Column, bool) {
	idx := c.Index()
	if idx < 0 {
		return "", false
	}
	next := idx + delta
	if next < 0 || next >= len(columns) {
		return c, false
	}
	return columns[next], true
}
