package app

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/evanschultz/orderboard/internal/domain"
	"github.com/google/uuid"
)

// IDGenerator returns unique identifiers for new orders.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service owns the board state and applies every order mutation.
type Service struct {
	repo  Repository
	idGen IDGenerator
	clock Clock

	// mu serializes read-modify-write mutations issued from concurrent commands.
	mu sync.Mutex
}

// NewService constructs a new value for this package.
func NewService(repo Repository, idGen IDGenerator, clock Clock) *Service {
	if idGen == nil {
		idGen = uuid.NewString
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		repo:  repo,
		idGen: idGen,
		clock: clock,
	}
}

// AddOrderInput holds the add-form values.
type AddOrderInput struct {
	Title string
	Table string
}

// EditOrderInput holds the edit-form values.
type EditOrderInput struct {
	OrderID string
	Title   string
	Table   string
	Column  domain.Column
}

// SeedOrderInput describes one order loaded from a seed file.
type SeedOrderInput struct {
	Title  string
	Table  string
	Column domain.Column
}

// AddOrder creates an order at the end of the ordered column.
func (s *Service) AddOrder(ctx context.Context, in AddOrderInput) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.createOrder(ctx, domain.ColumnOrdered, in.Title, in.Table)
}

// SeedOrders creates the given orders in their requested columns, in input order.
func (s *Service) SeedOrders(ctx context.Context, in []SeedOrderInput) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Order, 0, len(in))
	for idx, seed := range in {
		column := seed.Column
		if column == "" {
			column = domain.ColumnOrdered
		}
		order, err := s.createOrder(ctx, column, seed.Title, seed.Table)
		if err != nil {
			return out, fmt.Errorf("seed order %d: %w", idx, err)
		}
		out = append(out, order)
	}
	return out, nil
}

// createOrder appends a new order to column.
func (s *Service) createOrder(ctx context.Context, column domain.Column, title, table string) (domain.Order, error) {
	if !column.Valid() {
		return domain.Order{}, domain.ErrInvalidColumn
	}
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	order, err := domain.NewOrder(domain.OrderInput{
		ID:       s.idGen(),
		Title:    title,
		Table:    table,
		Column:   column,
		Position: len(ordersInColumn(orders, column, "")),
	}, s.clock())
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// EditOrder overwrites title/table/column in place. The id never changes and a column change appends
// the order to the end of its new column.
func (s *Service) EditOrder(ctx context.Context, in EditOrderInput) (domain.Order, error) {
	if !in.Column.Valid() {
		return domain.Order{}, domain.ErrInvalidColumn
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	idx := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == strings.TrimSpace(in.OrderID) })
	if idx < 0 {
		return domain.Order{}, ErrNotFound
	}
	now := s.clock()
	order := orders[idx]
	order.UpdateDetails(in.Title, in.Table, now)

	position := -1
	if order.Column == in.Column {
		position = slices.IndexFunc(ordersInColumn(orders, order.Column, ""), func(o domain.Order) bool { return o.ID == order.ID })
	}
	changed, edited, err := relocate(orders, order, in.Column, position, now)
	if err != nil {
		return domain.Order{}, err
	}
	changed = upsertOrder(changed, edited)
	if err := s.repo.UpdateOrders(ctx, changed...); err != nil {
		return domain.Order{}, err
	}
	return edited, nil
}

// MoveOrder places an order at position inside column. A negative or out-of-range position appends.
// The moved order and every renumbered neighbour are written in one repository call.
func (s *Service) MoveOrder(ctx context.Context, orderID string, column domain.Column, position int) (domain.Order, error) {
	if !column.Valid() {
		return domain.Order{}, domain.ErrInvalidColumn
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return domain.Order{}, err
	}
	idx := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == strings.TrimSpace(orderID) })
	if idx < 0 {
		return domain.Order{}, ErrNotFound
	}
	changed, moved, err := relocate(orders, orders[idx], column, position, s.clock())
	if err != nil {
		return domain.Order{}, err
	}
	if len(changed) == 0 {
		return moved, nil
	}
	if err := s.repo.UpdateOrders(ctx, changed...); err != nil {
		return domain.Order{}, err
	}
	return moved, nil
}

// DeleteOrder removes an order from the store and closes the gap it leaves in its column.
func (s *Service) DeleteOrder(ctx context.Context, orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return domain.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == orderID })
	if idx < 0 {
		return ErrNotFound
	}
	if err := s.repo.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	now := s.clock()
	changed := make([]domain.Order, 0)
	for pos, candidate := range ordersInColumn(orders, orders[idx].Column, orderID) {
		if candidate.Position == pos {
			continue
		}
		if err := candidate.SetPosition(pos, now); err != nil {
			return err
		}
		changed = append(changed, candidate)
	}
	if len(changed) == 0 {
		return nil
	}
	if err := s.repo.UpdateOrders(ctx, changed...); err != nil {
		return fmt.Errorf("renumber %s: %w", orders[idx].Column, err)
	}
	return nil
}

// GetOrder returns one order by id.
func (s *Service) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return s.repo.GetOrder(ctx, strings.TrimSpace(orderID))
}

// ListOrders lists every order in board order: column, then position.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortFunc(orders, compareBoardOrder)
	return orders, nil
}

// relocate inserts order into column at position and renumbers both affected columns.
// It returns the orders whose column or position changed plus the relocated order.
func relocate(all []domain.Order, order domain.Order, column domain.Column, position int, now time.Time) ([]domain.Order, domain.Order, error) {
	target := ordersInColumn(all, column, order.ID)
	if position < 0 || position > len(target) {
		position = len(target)
	}
	target = slices.Insert(target, position, order)

	changed := make([]domain.Order, 0, len(target))
	var moved domain.Order
	for idx, candidate := range target {
		switch {
		case candidate.ID == order.ID:
			if candidate.Column != column || candidate.Position != idx {
				if err := candidate.Move(column, idx, now); err != nil {
					return nil, domain.Order{}, err
				}
				changed = append(changed, candidate)
			}
			moved = candidate
		case candidate.Position != idx:
			if err := candidate.SetPosition(idx, now); err != nil {
				return nil, domain.Order{}, err
			}
			changed = append(changed, candidate)
		}
	}
	if order.Column != column {
		for idx, candidate := range ordersInColumn(all, order.Column, order.ID) {
			if candidate.Position == idx {
				continue
			}
			if err := candidate.SetPosition(idx, now); err != nil {
				return nil, domain.Order{}, err
			}
			changed = append(changed, candidate)
		}
	}
	return changed, moved, nil
}

// ordersInColumn returns the orders of column sorted by position, skipping excludeID.
func ordersInColumn(all []domain.Order, column domain.Column, excludeID string) []domain.Order {
	out := make([]domain.Order, 0, len(all))
	for _, order := range all {
		if order.Column != column || order.ID == excludeID {
			continue
		}
		out = append(out, order)
	}
	slices.SortFunc(out, compareBoardOrder)
	return out
}

// upsertOrder replaces the entry with the same id or appends order.
func upsertOrder(orders []domain.Order, order domain.Order) []domain.Order {
	if idx := slices.IndexFunc(orders, func(o domain.Order) bool { return o.ID == order.ID }); idx >= 0 {
		orders[idx] = order
		return orders
	}
	return append(orders, order)
}

// compareBoardOrder sorts by column index, position, creation time, then id.
func compareBoardOrder(a, b domain.Order) int {
	return cmp.Or(
		cmp.Compare(a.Column.Index(), b.Column.Index()),
		cmp.Compare(a.Position, b.Position),
		a.CreatedAt.Compare(b.CreatedAt),
		strings.Compare(a.ID, b.ID),
	)
}
