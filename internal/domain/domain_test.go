package domain

import (
	"testing"
	"time"
)

func TestParseColumn(t *testing.T) {
	got, err := ParseColumn("  Preparing ")
	if err != nil {
		t.Fatalf("ParseColumn() error = %v", err)
	}
	if got != ColumnPreparing {
		t.Fatalf("unexpected column %q", got)
	}
	if _, err := ParseColumn("cooking"); err != ErrInvalidColumn {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if _, err := ParseColumn(""); err != ErrInvalidColumn {
		t.Fatalf("expected ErrInvalidColumn for blank input, got %v", err)
	}
}

func TestColumnsOrderAndShift(t *testing.T) {
	cols := Columns()
	if len(cols) != 3 || cols[0] != ColumnOrdered || cols[1] != ColumnPreparing || cols[2] != ColumnServed {
		t.Fatalf("unexpected columns %#v", cols)
	}
	cols[0] = "mutated"
	if Columns()[0] != ColumnOrdered {
		t.Fatal("expected Columns() to return a copy")
	}

	next, ok := ColumnOrdered.Shift(1)
	if !ok || next != ColumnPreparing {
		t.Fatalf("expected preparing, got %q ok=%t", next, ok)
	}
	same, ok := ColumnServed.Shift(1)
	if ok || same != ColumnServed {
		t.Fatalf("expected no wrap past served, got %q ok=%t", same, ok)
	}
	if _, ok := Column("bogus").Shift(1); ok {
		t.Fatal("expected unknown column shift to fail")
	}
	if ColumnServed.Index() != 2 || Column("x").Index() != -1 {
		t.Fatal("unexpected column index")
	}
	if ColumnOrdered.Title() != "Ordered" {
		t.Fatalf("unexpected title %q", ColumnOrdered.Title())
	}
}

func TestNewOrderDefaultsAndValidation(t *testing.T) {
	now := time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC)
	order, err := NewOrder(OrderInput{ID: " o1 ", Title: "  Margherita ", Table: " 4 "}, now)
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	if order.ID != "o1" || order.Title != "Margherita" || order.Table != "4" {
		t.Fatalf("unexpected normalized order %#v", order)
	}
	if order.Column != ColumnOrdered {
		t.Fatalf("expected default ordered column, got %q", order.Column)
	}
	if !order.CreatedAt.Equal(now) || !order.UpdatedAt.Equal(now) {
		t.Fatal("expected timestamps to be set")
	}

	if _, err := NewOrder(OrderInput{ID: "  "}, now); err != ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := NewOrder(OrderInput{ID: "o2", Column: "kitchen"}, now); err != ErrInvalidColumn {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if _, err := NewOrder(OrderInput{ID: "o3", Position: -1}, now); err != ErrInvalidPosition {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}
	if _, err := NewOrder(OrderInput{ID: "o4"}, now); err != nil {
		t.Fatalf("expected empty title/table to be accepted, got %v", err)
	}
}

func TestOrderMoveAndUpdate(t *testing.T) {
	now := time.Date(2026, 10, 18, 19, 30, 0, 0, time.UTC)
	order, err := NewOrder(OrderInput{ID: "o1", Title: "Soup", Table: "2"}, now)
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	later := now.Add(time.Minute)
	if err := order.Move(ColumnServed, 3, later); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if order.Column != ColumnServed || order.Position != 3 || !order.UpdatedAt.Equal(later) {
		t.Fatalf("unexpected moved order %#v", order)
	}
	if err := order.Move("nowhere", 0, later); err != ErrInvalidColumn {
		t.Fatalf("expected ErrInvalidColumn, got %v", err)
	}
	if order.Column != ColumnServed {
		t.Fatal("expected failed move to keep the column")
	}
	if err := order.SetPosition(-2, later); err != ErrInvalidPosition {
		t.Fatalf("expected ErrInvalidPosition, got %v", err)
	}

	order.UpdateDetails(" Tomato soup ", " 12 ", later)
	if order.ID != "o1" || order.Title != "Tomato soup" || order.Table != "12" {
		t.Fatalf("unexpected updated order %#v", order)
	}
}

func TestOrderShortID(t *testing.T) {
	cases := map[string]string{
		"3f2a9c1e-1111-2222-3333-444455556666": "3f2a9c1e",
		"abc":                                  "abc",
		"abcdefghijkl":                         "abcdefgh",
	}
	for id, want := range cases {
		if got := (Order{ID: id}).ShortID(); got != want {
			t.Fatalf("ShortID(%q) = %q, want %q", id, got, want)
		}
	}
}
