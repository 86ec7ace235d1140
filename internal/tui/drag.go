package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleMouseClick picks up an order under the pointer, or selects the column under it.
func (m Model) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseLeft || m.mode != modeNone || m.help.ShowAll || m.err != nil {
		return m, nil
	}
	target, ok := m.targetAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.selectColumn(target.column)
	if target.orderID == "" {
		return m, nil
	}
	m.selectedOrder = target.index
	if m.drag.Start(target.orderID, target.column) {
		m.dragIndex = target.index
		m.logger.Debug("drag start", "order_id", target.orderID, "column", target.column)
	}
	return m, nil
}

// handleMouseMotion tracks the hovered column while a drag is active.
func (m Model) handleMouseMotion(msg tea.MouseMotionMsg) (tea.Model, tea.Cmd) {
	if !m.drag.Active() || m.overlayOpen() {
		return m, nil
	}
	target, ok := m.targetAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	if m.drag.Hover(target.column) {
		m.logger.Debug("drag over", "order_id", m.drag.OrderID, "column", target.column)
	}
	if target.column == m.drag.Source && target.orderID != "" && target.orderID != m.drag.OrderID {
		m.drag.MarkMoved()
	}
	return m, nil
}

// handleMouseRelease finishes a drag: a drop onto another row moves the order there,
// a drop on empty column space appends it, and a release in place opens the edit overlay.
func (m Model) handleMouseRelease(msg tea.MouseReleaseMsg) (tea.Model, tea.Cmd) {
	if !m.drag.Active() {
		return m, nil
	}
	if m.overlayOpen() {
		m.cancelDrag()
		return m, nil
	}
	origin := m.dragIndex
	done, ok := m.drag.End()
	m.dragIndex = -1
	if !ok {
		return m, nil
	}
	target, ok := m.targetAt(msg.X, msg.Y)
	if !ok {
		m.status = "drop cancelled"
		return m, nil
	}
	if target.column == done.Source && target.orderID == done.OrderID {
		if done.Moved {
			return m, nil
		}
		order, found := m.orderByID(done.OrderID)
		if !found {
			return m, nil
		}
		return m, m.startOrderForm(&order)
	}
	position := target.index
	if target.orderID == "" {
		position = -1
	}
	if target.column == done.Source && position == origin {
		return m, nil
	}
	m.logger.Debug("drop", "order_id", done.OrderID, "from", done.Source, "to", target.column, "position", position)
	m.selectColumn(target.column)
	return m, m.moveOrderCmd(done.OrderID, target.column, position)
}

// cancelDrag drops any drag in progress without touching the store.
func (m *Model) cancelDrag() {
	m.drag.Reset()
	m.dragIndex = -1
}

// overlayOpen reports whether a modal or the help overlay owns input.
func (m Model) overlayOpen() bool {
	return m.mode != modeNone || m.help.ShowAll
}
