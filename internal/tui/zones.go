package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/orderboard/internal/domain"
)

const (
	// boardTopRow is the first screen row of the columns (header plus one blank line above).
	boardTopRow = 2
	// boardFooterRows reserves the status line and the bordered help line.
	boardFooterRows = 3
	minColumnHeight = 8
	minColumnWidth  = 20
	// columnChromeRows is the heading plus the rule drawn above the first order.
	columnChromeRows = 2
)

// hitZone is one rectangle of the rendered board. Zones nest: board > column > order row.
type hitZone struct {
	x, y          int
	width, height int

	// column marks zones that resolve a drop column; order rows leave it empty.
	column  domain.Column
	orderID string
	index   int

	children []hitZone
}

func (z hitZone) contains(x, y int) bool {
	return x >= z.x && x < z.x+z.width && y >= z.y && y < z.y+z.height
}

// path returns every zone under (x, y), outermost first.
func (z hitZone) path(x, y int) []hitZone {
	if !z.contains(x, y) {
		return nil
	}
	out := []hitZone{z}
	for _, child := range z.children {
		if sub := child.path(x, y); len(sub) > 0 {
			return append(out, sub...)
		}
	}
	return out
}

// dropTarget is what a pointer position resolves to.
type dropTarget struct {
	column  domain.Column
	orderID string
	// index is the order row under the pointer, or -1 over empty column space.
	index int
}

// resolveTarget walks path from the innermost zone outward and stops at the first zone with a column.
func resolveTarget(path []hitZone) (dropTarget, bool) {
	target := dropTarget{index: -1}
	for i := len(path) - 1; i >= 0; i-- {
		zone := path[i]
		if target.orderID == "" && zone.orderID != "" {
			target.orderID = zone.orderID
			target.index = zone.index
		}
		if zone.column.Valid() {
			target.column = zone.column
			return target, true
		}
	}
	return dropTarget{}, false
}

type columnLayout struct {
	column  domain.Column
	view    string
	x       int
	width   int
	height  int
	orders  []domain.Order
	first   int
	visible int
}

type boardLayout struct {
	top     int
	columns []columnLayout
	rowSpan int
}

// zones builds the hit-zone tree for the layout.
func (l boardLayout) zones() hitZone {
	root := hitZone{y: l.top}
	for _, col := range l.columns {
		zone := hitZone{
			x:      col.x,
			y:      l.top,
			width:  col.width,
			height: col.height,
			column: col.column,
		}
		rowTop := l.top + 1 + columnChromeRows
		for k := 0; k < col.visible; k++ {
			idx := col.first + k
			if idx >= len(col.orders) {
				break
			}
			zone.children = append(zone.children, hitZone{
				x:       col.x + 1,
				y:       rowTop + k*l.rowSpan,
				width:   max(0, col.width-2),
				height:  l.rowSpan,
				orderID: col.orders[idx].ID,
				index:   idx,
			})
		}
		root.children = append(root.children, zone)
		root.width = max(root.width, col.x+col.width)
		root.height = max(root.height, col.height)
	}
	return root
}

func (m Model) orderRowSpan() int {
	if m.board.ShowTable || m.board.ShowIDs {
		return 3
	}
	return 2
}

// boardLayout renders every column and records where it landed on screen.
func (m Model) boardLayout() boardLayout {
	columns := domain.Columns()
	slot := max(minColumnWidth, m.width/len(columns))
	height := max(minColumnHeight, m.height-boardTopRow-boardFooterRows)
	rowSpan := m.orderRowSpan()
	// rounded border top and bottom
	capacity := max(1, (height-2-columnChromeRows)/rowSpan)

	layout := boardLayout{top: boardTopRow, rowSpan: rowSpan}
	x := 0
	for idx, column := range columns {
		orders := m.ordersInColumn(column)
		first := 0
		if idx == m.selectedColumn && m.selectedOrder >= capacity {
			first = m.selectedOrder - capacity + 1
		}
		first = clamp(first, 0, max(0, len(orders)-capacity))
		view := m.renderColumn(column, orders, first, capacity, slot, height)
		col := columnLayout{
			column:  column,
			view:    view,
			x:       x,
			width:   lipgloss.Width(view),
			height:  lipgloss.Height(view),
			orders:  orders,
			first:   first,
			visible: min(capacity, len(orders)-first),
		}
		layout.columns = append(layout.columns, col)
		x += col.width
	}
	return layout
}

// targetAt resolves a screen cell to a drop target.
func (m Model) targetAt(x, y int) (dropTarget, bool) {
	return resolveTarget(m.boardLayout().zones().path(x, y))
}
