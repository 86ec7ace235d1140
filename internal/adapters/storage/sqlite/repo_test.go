package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evanschultz/orderboard/internal/app"
	"github.com/evanschultz/orderboard/internal/domain"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

func mustOrder(t *testing.T, id string, column domain.Column, position int) domain.Order {
	t.Helper()
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	o, err := domain.NewOrder(domain.OrderInput{
		ID:       id,
		Title:    "Order " + id,
		Table:    "4",
		Column:   column,
		Position: position,
	}, now)
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	return o
}

func TestRepository_OrderLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	o := mustOrder(t, "o1", domain.ColumnOrdered, 0)
	if err := repo.CreateOrder(ctx, o); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if err := repo.CreateOrder(ctx, o); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected duplicate id error, got %v", err)
	}

	loaded, err := repo.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if loaded.Title != "Order o1" || loaded.Table != "4" || loaded.Column != domain.ColumnOrdered {
		t.Fatalf("unexpected loaded order %#v", loaded)
	}
	if !loaded.CreatedAt.Equal(o.CreatedAt) {
		t.Fatalf("expected created_at round trip, got %v", loaded.CreatedAt)
	}

	if err := loaded.Move(domain.ColumnServed, 0, o.UpdatedAt.Add(time.Minute)); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if err := repo.UpdateOrders(ctx, loaded); err != nil {
		t.Fatalf("UpdateOrders() error = %v", err)
	}
	orders, err := repo.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(orders) != 1 || orders[0].Column != domain.ColumnServed {
		t.Fatalf("unexpected orders %#v", orders)
	}

	if err := repo.DeleteOrder(ctx, o.ID); err != nil {
		t.Fatalf("DeleteOrder() error = %v", err)
	}
	if _, err := repo.GetOrder(ctx, o.ID); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.DeleteOrder(ctx, o.ID); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestRepository_UpdateOrdersRollsBack(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	o := mustOrder(t, "o1", domain.ColumnOrdered, 0)
	if err := repo.CreateOrder(ctx, o); err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	moved := o
	moved.Column = domain.ColumnPreparing
	ghost := mustOrder(t, "ghost", domain.ColumnOrdered, 1)

	if err := repo.UpdateOrders(ctx, moved, ghost); !errors.Is(err, app.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	loaded, err := repo.GetOrder(ctx, o.ID)
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if loaded.Column != domain.ColumnOrdered {
		t.Fatalf("expected rollback to keep ordered column, got %q", loaded.Column)
	}
}

func TestRepository_ServesAppService(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)
	svc := app.NewService(repo, nil, nil)

	first, err := svc.AddOrder(ctx, app.AddOrderInput{Title: "Ramen", Table: "2"})
	if err != nil {
		t.Fatalf("AddOrder() error = %v", err)
	}
	second, err := svc.AddOrder(ctx, app.AddOrderInput{Title: "Gyoza", Table: "2"})
	if err != nil {
		t.Fatalf("AddOrder() error = %v", err)
	}
	if _, err := svc.MoveOrder(ctx, first.ID, domain.ColumnPreparing, -1); err != nil {
		t.Fatalf("MoveOrder() error = %v", err)
	}
	orders, err := svc.ListOrders(ctx)
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].ID != second.ID || orders[0].Position != 0 {
		t.Fatalf("expected remaining ordered order renumbered, got %#v", orders[0])
	}
	if orders[1].ID != first.ID || orders[1].Column != domain.ColumnPreparing {
		t.Fatalf("expected moved order in preparing, got %#v", orders[1])
	}
}
