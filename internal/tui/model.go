package tui

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/evanschultz/orderboard/internal/app"
	"github.com/evanschultz/orderboard/internal/domain"
)

// Service is the board's view of the application layer.
type Service interface {
	ListOrders(context.Context) ([]domain.Order, error)
	AddOrder(context.Context, app.AddOrderInput) (domain.Order, error)
	EditOrder(context.Context, app.EditOrderInput) (domain.Order, error)
	MoveOrder(context.Context, string, domain.Column, int) (domain.Order, error)
	DeleteOrder(context.Context, string) error
}

// inputMode selects which overlay owns key input.
type inputMode int

const (
	modeNone inputMode = iota
	modeAddOrder
	modeEditOrder
	modeConfirmDelete
)

const (
	orderFieldTitle = iota
	orderFieldTable
	orderFieldColumn
)

var orderFormFields = []string{"title", "table", "status"}

type Model struct {
	svc       Service
	logger    Logger
	clipboard ClipboardFunc
	markdown  *markdownRenderer

	ready  bool
	width  int
	height int
	err    error

	status string

	help help.Model
	keys keyMap

	board         BoardConfig
	confirmDelete bool

	orders         []domain.Order
	selectedColumn int
	selectedOrder  int
	pendingFocusID string

	mode           inputMode
	formInputs     []textinput.Model
	formFocus      int
	formColumn     int
	editingOrderID string

	pendingDelete domain.Order
	confirmChoice int
	confirmBack   inputMode

	drag domain.DragState
	// dragIndex is the row the dragged order was picked up from.
	dragIndex int
}

// loadedMsg carries a fresh store snapshot.
type loadedMsg struct {
	orders []domain.Order
	err    error
}

// actionMsg reports the outcome of one service mutation.
type actionMsg struct {
	err          error
	status       string
	reload       bool
	focusOrderID string
}

// NewModel constructs the board model around svc.
func NewModel(svc Service, opts ...Option) Model {
	h := help.New()
	h.ShowAll = false
	m := Model{
		svc:           svc,
		logger:        nopLogger{},
		clipboard:     defaultClipboard,
		markdown:      newMarkdownRenderer(),
		status:        "loading...",
		help:          h,
		keys:          newKeyMap(),
		board:         DefaultBoardConfig(),
		confirmDelete: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Init loads the board.
func (m Model) Init() tea.Cmd {
	return m.loadData
}

// Update applies one message to the board.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.logger.Error("load orders failed", "err", msg.err)
			return m, nil
		}
		m.err = nil
		m.orders = msg.orders
		if m.drag.Active() && !m.hasOrder(m.drag.OrderID) {
			m.drag.Reset()
		}
		if m.pendingFocusID != "" {
			m.focusOrderByID(m.pendingFocusID)
			m.pendingFocusID = ""
		}
		m.clampSelections()
		if m.status == "" || m.status == "loading..." || m.status == "reloading..." {
			m.status = "ready"
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			label := msg.status
			if label == "" {
				label = "error"
			}
			m.status = label + ": " + msg.err.Error()
			m.logger.Warn("board action failed", "action", label, "err", msg.err)
			// the store is the source of truth; redraw from it after a failed mutation
			return m, m.loadData
		}
		if msg.status != "" {
			m.status = msg.status
		}
		if msg.focusOrderID != "" {
			m.pendingFocusID = msg.focusOrderID
		}
		if msg.reload {
			return m, m.loadData
		}
		return m, nil

	case tea.KeyPressMsg:
		if m.mode != modeNone {
			return m.handleInputModeKey(msg)
		}
		return m.handleNormalModeKey(msg)

	case tea.MouseWheelMsg:
		return m.handleMouseWheel(msg)

	case tea.MouseClickMsg:
		return m.handleMouseClick(msg)

	case tea.MouseMotionMsg:
		return m.handleMouseMotion(msg)

	case tea.MouseReleaseMsg:
		return m.handleMouseRelease(msg)

	default:
		// cursor blink and similar ticks belong to the focused form field
		if (m.mode == modeAddOrder || m.mode == modeEditOrder) && m.formFocus < len(m.formInputs) {
			var cmd tea.Cmd
			m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

func (m Model) loadData() tea.Msg {
	orders, err := m.svc.ListOrders(context.Background())
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{orders: orders}
}

func (m Model) handleNormalModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.toggleHelp):
		m.cancelDrag()
		m.help.ShowAll = !m.help.ShowAll
		if m.help.ShowAll {
			m.status = "help"
		} else {
			m.status = "ready"
		}
		return m, nil
	case msg.String() == "esc":
		if m.help.ShowAll {
			m.help.ShowAll = false
			m.status = "ready"
		}
		if m.drag.Active() {
			m.drag.Reset()
			m.status = "drag cancelled"
		}
		return m, nil
	case key.Matches(msg, m.keys.reload):
		m.status = "reloading..."
		return m, m.loadData
	}

	if m.err != nil || m.help.ShowAll {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.moveLeft):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			m.selectedOrder = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveRight):
		if m.selectedColumn < len(domain.Columns())-1 {
			m.selectedColumn++
			m.selectedOrder = 0
		}
		return m, nil
	case key.Matches(msg, m.keys.moveDown):
		if orders := m.currentColumnOrders(); m.selectedOrder < len(orders)-1 {
			m.selectedOrder++
		}
		return m, nil
	case key.Matches(msg, m.keys.moveUp):
		if m.selectedOrder > 0 {
			m.selectedOrder--
		}
		return m, nil
	case key.Matches(msg, m.keys.addOrder):
		return m, m.startOrderForm(nil)
	case key.Matches(msg, m.keys.editOrder):
		order, ok := m.selectedOrderInCurrentColumn()
		if !ok {
			m.status = "no order selected"
			return m, nil
		}
		return m, m.startOrderForm(&order)
	case key.Matches(msg, m.keys.deleteOrder):
		order, ok := m.selectedOrderInCurrentColumn()
		if !ok {
			m.status = "no order selected"
			return m, nil
		}
		return m.requestDelete(order, modeNone)
	case key.Matches(msg, m.keys.orderLeft):
		return m.moveSelectedOrder(-1)
	case key.Matches(msg, m.keys.orderRight):
		return m.moveSelectedOrder(1)
	case key.Matches(msg, m.keys.yank):
		return m.yankSelectedOrder()
	default:
		return m, nil
	}
}

func (m Model) handleInputModeKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeConfirmDelete {
		switch msg.String() {
		case "esc", "n":
			m.mode = m.confirmBack
			m.pendingDelete = domain.Order{}
			m.status = "cancelled"
			return m, nil
		case "h", "left", "l", "right", "tab":
			m.confirmChoice = 1 - m.confirmChoice
			return m, nil
		case "y":
			return m.deleteOrder(m.pendingDelete)
		case "enter":
			if m.confirmChoice == 1 {
				m.mode = m.confirmBack
				m.pendingDelete = domain.Order{}
				m.status = "cancelled"
				return m, nil
			}
			return m.deleteOrder(m.pendingDelete)
		default:
			return m, nil
		}
	}

	switch {
	case msg.Code == tea.KeyEscape || msg.String() == "esc":
		m.closeOrderForm()
		m.status = "cancelled"
		return m, nil
	case msg.Code == tea.KeyEnter || msg.String() == "enter":
		return m.submitOrderForm()
	case msg.String() == "tab" || msg.String() == "down":
		return m, m.focusOrderFormField(m.formFocus + 1)
	case msg.String() == "shift+tab" || msg.String() == "up":
		return m, m.focusOrderFormField(m.formFocus - 1)
	case msg.String() == "ctrl+d" && m.mode == modeEditOrder:
		order, ok := m.orderByID(m.editingOrderID)
		if !ok {
			m.status = "order no longer exists"
			return m, nil
		}
		return m.requestDelete(order, modeEditOrder)
	}

	if m.formFocus == orderFieldColumn {
		switch msg.String() {
		case "h", "left":
			m.cycleFormColumn(-1)
		case "l", "right", "space", " ":
			m.cycleFormColumn(1)
		}
		return m, nil
	}
	if m.formFocus < 0 || m.formFocus >= len(m.formInputs) {
		return m, nil
	}
	var cmd tea.Cmd
	m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
	return m, cmd
}

func newModalInput(prompt, placeholder, value string, limit int) textinput.Model {
	in := textinput.New()
	in.Prompt = prompt
	in.Placeholder = placeholder
	in.CharLimit = limit
	if value != "" {
		in.SetValue(value)
	}
	return in
}

// startOrderForm opens the add overlay, or the edit overlay pre-filled from order.
func (m *Model) startOrderForm(order *domain.Order) tea.Cmd {
	m.cancelDrag()
	m.help.ShowAll = false
	m.formFocus = 0
	m.formColumn = 0
	m.formInputs = []textinput.Model{
		newModalInput("", "what was ordered", "", 120),
		newModalInput("", "table number or name", "", 32),
	}
	if order != nil {
		m.formInputs[orderFieldTitle].SetValue(order.Title)
		m.formInputs[orderFieldTable].SetValue(order.Table)
		m.formColumn = max(0, order.Column.Index())
		m.editingOrderID = order.ID
		m.mode = modeEditOrder
		m.status = "edit order"
	} else {
		m.editingOrderID = ""
		m.mode = modeAddOrder
		m.status = "new order"
	}
	return m.focusOrderFormField(orderFieldTitle)
}

func (m Model) orderFormFieldCount() int {
	if m.mode == modeEditOrder {
		return len(orderFormFields)
	}
	return len(m.formInputs)
}

func (m *Model) focusOrderFormField(idx int) tea.Cmd {
	if len(m.formInputs) == 0 {
		return nil
	}
	idx = clamp(idx, 0, m.orderFormFieldCount()-1)
	m.formFocus = idx
	for i := range m.formInputs {
		m.formInputs[i].Blur()
	}
	if idx >= len(m.formInputs) {
		return nil
	}
	return m.formInputs[idx].Focus()
}

func (m *Model) cycleFormColumn(delta int) {
	total := len(domain.Columns())
	m.formColumn = ((m.formColumn+delta)%total + total) % total
}

func (m *Model) closeOrderForm() {
	m.mode = modeNone
	m.formInputs = nil
	m.formFocus = 0
	m.formColumn = 0
	m.editingOrderID = ""
}

func (m Model) submitOrderForm() (tea.Model, tea.Cmd) {
	if len(m.formInputs) < 2 {
		m.closeOrderForm()
		return m, nil
	}
	title := strings.TrimSpace(m.formInputs[orderFieldTitle].Value())
	table := strings.TrimSpace(m.formInputs[orderFieldTable].Value())

	if m.mode == modeAddOrder {
		m.closeOrderForm()
		m.status = "adding order..."
		logger := m.logger
		return m, func() tea.Msg {
			order, err := m.svc.AddOrder(context.Background(), app.AddOrderInput{Title: title, Table: table})
			if err != nil {
				return actionMsg{err: err, status: "add order failed"}
			}
			logger.Info("order added", "order_id", order.ID, "table", order.Table)
			return actionMsg{status: "order added", reload: true, focusOrderID: order.ID}
		}
	}

	orderID := m.editingOrderID
	column := domain.Columns()[clamp(m.formColumn, 0, len(domain.Columns())-1)]
	m.closeOrderForm()
	m.status = "saving order..."
	logger := m.logger
	return m, func() tea.Msg {
		order, err := m.svc.EditOrder(context.Background(), app.EditOrderInput{
			OrderID: orderID,
			Title:   title,
			Table:   table,
			Column:  column,
		})
		if err != nil {
			return actionMsg{err: err, status: "edit order failed"}
		}
		logger.Info("order updated", "order_id", order.ID, "column", order.Column)
		return actionMsg{status: "order updated", reload: true, focusOrderID: order.ID}
	}
}

// requestDelete deletes order, going through the confirm overlay when enabled.
func (m Model) requestDelete(order domain.Order, back inputMode) (tea.Model, tea.Cmd) {
	if !m.confirmDelete {
		return m.deleteOrder(order)
	}
	m.cancelDrag()
	m.mode = modeConfirmDelete
	m.pendingDelete = order
	m.confirmBack = back
	m.confirmChoice = 1
	m.status = "confirm delete"
	return m, nil
}

func (m Model) deleteOrder(order domain.Order) (tea.Model, tea.Cmd) {
	m.closeOrderForm()
	m.pendingDelete = domain.Order{}
	m.confirmBack = modeNone
	m.confirmChoice = 0
	m.status = "deleting order..."
	orderID := order.ID
	logger := m.logger
	return m, func() tea.Msg {
		if err := m.svc.DeleteOrder(context.Background(), orderID); err != nil {
			return actionMsg{err: err, status: "delete order failed"}
		}
		logger.Info("order deleted", "order_id", orderID)
		return actionMsg{status: "order deleted", reload: true}
	}
}

func (m Model) moveSelectedOrder(delta int) (tea.Model, tea.Cmd) {
	order, ok := m.selectedOrderInCurrentColumn()
	if !ok {
		m.status = "no order selected"
		return m, nil
	}
	target, ok := order.Column.Shift(delta)
	if !ok {
		if delta < 0 {
			m.status = "already in the first column"
		} else {
			m.status = "already in the last column"
		}
		return m, nil
	}
	return m, m.moveOrderCmd(order.ID, target, -1)
}

// moveOrderCmd relocates one order; position < 0 appends to the target column.
func (m Model) moveOrderCmd(orderID string, column domain.Column, position int) tea.Cmd {
	title := m.columnTitle(column)
	logger := m.logger
	return func() tea.Msg {
		order, err := m.svc.MoveOrder(context.Background(), orderID, column, position)
		if err != nil {
			return actionMsg{err: err, status: "move order failed"}
		}
		logger.Info("order moved", "order_id", order.ID, "column", order.Column, "position", order.Position)
		return actionMsg{status: "order moved to " + title, reload: true, focusOrderID: order.ID}
	}
}

func (m Model) yankSelectedOrder() (tea.Model, tea.Cmd) {
	order, ok := m.selectedOrderInCurrentColumn()
	if !ok {
		m.status = "no order selected"
		return m, nil
	}
	ticket := m.orderTicket(order)
	write := m.clipboard
	return m, func() tea.Msg {
		if err := write(ticket); err != nil {
			return actionMsg{err: err, status: "copy failed"}
		}
		return actionMsg{status: "copied #" + order.ShortID()}
	}
}

// orderTicket formats the clipboard line for one order.
func (m Model) orderTicket(order domain.Order) string {
	title := strings.TrimSpace(order.Title)
	if title == "" {
		title = "(untitled)"
	}
	table := strings.TrimSpace(order.Table)
	if table == "" {
		table = "-"
	}
	return fmt.Sprintf("#%s %s (table %s) [%s]", order.ShortID(), title, table, m.columnTitle(order.Column))
}

func (m Model) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	if m.help.ShowAll || m.mode != modeNone {
		return m, nil
	}
	orders := m.currentColumnOrders()
	if len(orders) == 0 {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseWheelUp:
		if m.selectedOrder > 0 {
			m.selectedOrder--
		}
	case tea.MouseWheelDown:
		if m.selectedOrder < len(orders)-1 {
			m.selectedOrder++
		}
	}
	return m, nil
}

func (m Model) columnTitle(column domain.Column) string {
	if title := strings.TrimSpace(m.board.ColumnTitles[column]); title != "" {
		return title
	}
	return column.Title()
}

func (m Model) ordersInColumn(column domain.Column) []domain.Order {
	out := make([]domain.Order, 0)
	for _, order := range m.orders {
		if order.Column == column {
			out = append(out, order)
		}
	}
	return out
}

func (m Model) currentColumn() domain.Column {
	columns := domain.Columns()
	return columns[clamp(m.selectedColumn, 0, len(columns)-1)]
}

func (m Model) currentColumnOrders() []domain.Order {
	return m.ordersInColumn(m.currentColumn())
}

func (m Model) selectedOrderInCurrentColumn() (domain.Order, bool) {
	orders := m.currentColumnOrders()
	if len(orders) == 0 {
		return domain.Order{}, false
	}
	return orders[clamp(m.selectedOrder, 0, len(orders)-1)], true
}

func (m Model) orderByID(orderID string) (domain.Order, bool) {
	for _, order := range m.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return domain.Order{}, false
}

func (m Model) hasOrder(orderID string) bool {
	_, ok := m.orderByID(orderID)
	return ok
}

func (m *Model) focusOrderByID(orderID string) {
	order, ok := m.orderByID(orderID)
	if !ok {
		return
	}
	m.selectedColumn = max(0, order.Column.Index())
	for idx, candidate := range m.ordersInColumn(order.Column) {
		if candidate.ID == orderID {
			m.selectedOrder = idx
			return
		}
	}
}

func (m *Model) selectColumn(column domain.Column) {
	if idx := column.Index(); idx >= 0 && idx != m.selectedColumn {
		m.selectedColumn = idx
		m.selectedOrder = 0
	}
}

func (m *Model) clampSelections() {
	m.selectedColumn = clamp(m.selectedColumn, 0, len(domain.Columns())-1)
	m.selectedOrder = clamp(m.selectedOrder, 0, max(0, len(m.currentColumnOrders())-1))
}

// View renders the board from the current order snapshot.
func (m Model) View() tea.View {
	if m.err != nil {
		v := tea.NewView("error: " + m.err.Error() + "\n\npress r to retry • q quit\n")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}
	if !m.ready {
		v := tea.NewView("loading...")
		v.MouseMode = tea.MouseModeCellMotion
		v.AltScreen = true
		return v
	}

	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	statusStyle := lipgloss.NewStyle().Foreground(dim)

	header := titleStyle.Render("orderboard")
	header += statusStyle.Render("  [" + m.modeLabel() + "]")
	header += statusStyle.Render(fmt.Sprintf("  %d orders", len(m.orders)))
	if m.drag.Active() {
		header += statusStyle.Render("  dropping into: " + m.columnTitle(m.drag.Over))
	}

	layout := m.boardLayout()
	columnViews := make([]string, 0, len(layout.columns))
	for _, col := range layout.columns {
		columnViews = append(columnViews, col.view)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)

	sections := []string{header, "", body}
	if strings.TrimSpace(m.status) != "" && m.status != "ready" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	content := strings.Join(sections, "\n")

	helpBubble := m.help
	helpBubble.ShowAll = false
	helpBubble.SetWidth(max(0, m.width-2))
	helpLine := lipgloss.NewStyle().
		Foreground(muted).
		BorderTop(true).
		BorderForeground(dim).
		Padding(0, 1).
		Width(max(0, m.width)).
		Render(helpBubble.View(m.keys))

	if m.height > 0 {
		content = fitLines(content, max(0, m.height-lipgloss.Height(helpLine)))
	}
	fullContent := content + "\n" + helpLine

	overlay := m.renderModeOverlay(accent, muted, dim, m.width-8)
	if m.help.ShowAll {
		overlay = m.renderHelpOverlay(accent, muted, dim, m.width-8)
	}
	if overlay != "" {
		overlayHeight := lipgloss.Height(fullContent)
		if m.height > 0 {
			overlayHeight = m.height
		}
		fullContent = overlayOnContent(fullContent, overlay, max(1, m.width), max(1, overlayHeight))
	}

	view := tea.NewView(fullContent)
	view.MouseMode = tea.MouseModeCellMotion
	view.AltScreen = true
	return view
}

// renderColumn draws one column with the orders in [first, first+visible).
func (m Model) renderColumn(column domain.Column, orders []domain.Order, first, visible, width, height int) string {
	accent := lipgloss.Color("62")
	muted := lipgloss.Color("241")
	dim := lipgloss.Color("239")
	dropColor := lipgloss.Color("212")

	isCurrent := column.Index() == m.selectedColumn
	isDropTarget := m.drag.Active() && m.drag.Over == column

	border := color.Color(dim)
	switch {
	case isDropTarget:
		border = dropColor
	case isCurrent:
		border = accent
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width)
	innerWidth := max(1, width-style.GetHorizontalFrameSize())
	innerHeight := max(1, height-style.GetVerticalFrameSize())

	colTitle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	if isDropTarget {
		colTitle = colTitle.Foreground(dropColor)
	}
	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	draggedStyle := lipgloss.NewStyle().Foreground(muted).Italic(true)
	subStyle := lipgloss.NewStyle().Foreground(muted)

	heading := fmt.Sprintf("%s (%d)", m.columnTitle(column), len(orders))
	if isDropTarget && m.drag.Source != column {
		heading = "▸ " + heading
	}
	lines := []string{
		colTitle.Render(truncate(heading, innerWidth)),
		lipgloss.NewStyle().Foreground(dim).Render(strings.Repeat("─", innerWidth)),
	}
	if len(orders) == 0 {
		lines = append(lines, emptyStyle.Render("(empty)"))
	}
	textWidth := max(1, innerWidth-2)
	for idx := first; idx < first+visible && idx < len(orders); idx++ {
		order := orders[idx]
		selected := isCurrent && idx == m.selectedOrder
		dragged := m.drag.Active() && order.ID == m.drag.OrderID

		prefix := "  "
		switch {
		case dragged:
			prefix = "⠿ "
		case selected:
			prefix = "│ "
		}
		title := strings.TrimSpace(order.Title)
		if title == "" {
			title = "(untitled)"
		}
		line := prefix + truncate(title, textWidth)
		switch {
		case dragged:
			line = draggedStyle.Render(line)
		case selected:
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
		if sub := m.orderSecondary(order); sub != "" {
			lines = append(lines, prefix+subStyle.Render(truncate(sub, textWidth)))
		}
		lines = append(lines, "")
	}
	return style.Render(fitLines(strings.Join(lines, "\n"), innerHeight))
}

// orderSecondary returns the optional second row of an order; it is non-empty whenever the row is enabled.
func (m Model) orderSecondary(order domain.Order) string {
	parts := make([]string, 0, 2)
	if m.board.ShowTable {
		table := strings.TrimSpace(order.Table)
		if table == "" {
			table = "-"
		}
		parts = append(parts, "table "+table)
	}
	if m.board.ShowIDs {
		parts = append(parts, "#"+order.ShortID())
	}
	return strings.Join(parts, " • ")
}

func (m Model) renderModeOverlay(accent, muted, dim color.Color, maxWidth int) string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle := lipgloss.NewStyle().Foreground(muted)

	switch m.mode {
	case modeAddOrder, modeEditOrder:
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
		if maxWidth > 0 {
			style = style.Width(clamp(maxWidth, 40, 72))
		}
		heading := "New Order"
		if m.mode == modeEditOrder {
			heading = "Edit Order"
		}
		lines := []string{titleStyle.Render(heading)}
		fieldWidth := max(18, clamp(maxWidth, 40, 72)-20)
		for i := 0; i < m.orderFormFieldCount(); i++ {
			labelStyle := lipgloss.NewStyle().Foreground(muted)
			if i == m.formFocus {
				labelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
			}
			label := labelStyle.Render(fmt.Sprintf("%-8s", orderFormFields[i]+":"))
			if i == orderFieldColumn {
				lines = append(lines, label+" "+m.renderColumnPicker(accent, muted))
				continue
			}
			in := m.formInputs[i]
			in.SetWidth(fieldWidth)
			lines = append(lines, label+" "+in.View())
		}
		if m.mode == modeAddOrder {
			lines = append(lines, hintStyle.Render("new orders start in "+m.columnTitle(domain.ColumnOrdered)))
			lines = append(lines, hintStyle.Render("enter save • tab next field • esc cancel"))
		} else {
			lines = append(lines, hintStyle.Render("enter save • tab next field • ctrl+d delete • esc cancel"))
		}
		return style.Render(strings.Join(lines, "\n"))

	case modeConfirmDelete:
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
		if maxWidth > 0 {
			style = style.Width(clamp(maxWidth, 36, 72))
		}
		title := strings.TrimSpace(m.pendingDelete.Title)
		if title == "" {
			title = "(untitled)"
		}
		confirmStyle := lipgloss.NewStyle().Foreground(muted)
		cancelStyle := lipgloss.NewStyle().Foreground(muted)
		if m.confirmChoice == 0 {
			confirmStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
		} else {
			cancelStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
		}
		lines := []string{
			titleStyle.Render("Delete Order"),
			fmt.Sprintf("delete %q?", title),
			confirmStyle.Render("[delete]") + "  " + cancelStyle.Render("[cancel]"),
			hintStyle.Render("enter apply • esc cancel • h/l switch • y confirm • n cancel"),
		}
		return style.Render(strings.Join(lines, "\n"))

	default:
		return ""
	}
}

func (m Model) renderColumnPicker(accent, muted color.Color) string {
	columns := domain.Columns()
	parts := make([]string, 0, len(columns))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(accent)
	baseStyle := lipgloss.NewStyle().Foreground(muted)
	for i, column := range columns {
		label := m.columnTitle(column)
		if i == m.formColumn {
			label = activeStyle.Render("[" + label + "]")
		} else {
			label = baseStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderHelpOverlay(accent, muted, dim color.Color, maxWidth int) string {
	width := clamp(maxWidth, 56, 96)
	hb := m.help
	hb.ShowAll = true
	hb.SetWidth(width - 4)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render("Order Board Help"),
		"",
		m.markdown.render(m.helpMarkdown(), width-4),
		"",
		hb.View(m.keys),
		"",
		lipgloss.NewStyle().Foreground(muted).Render("press ? or esc to close"),
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1)
	if maxWidth > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) modeLabel() string {
	switch m.mode {
	case modeAddOrder:
		return "add-order"
	case modeEditOrder:
		return "edit-order"
	case modeConfirmDelete:
		return "confirm"
	default:
		if m.drag.Active() {
			return "drag"
		}
		return "board"
	}
}

func clamp(v, minV, maxV int) int {
	if maxV < minV {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// fitLines pads or cuts content to exactly maxLines lines.
func fitLines(content string, maxLines int) string {
	if maxLines <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	switch {
	case len(lines) > maxLines:
		if maxLines == 1 {
			lines = []string{"…"}
		} else {
			lines = append(lines[:maxLines-1], "…")
		}
	case len(lines) < maxLines:
		padding := make([]string, maxLines-len(lines))
		lines = append(lines, padding...)
	}
	return strings.Join(lines, "\n")
}

// overlayOnContent centers overlay above base on a layered canvas.
func overlayOnContent(base, overlay string, width, height int) string {
	if width <= 0 || height <= 0 {
		if strings.TrimSpace(overlay) == "" {
			return base
		}
		return overlay + "\n\n" + base
	}

	base = fitLines(base, height)
	canvas := lipgloss.NewCanvas(width, height)
	baseLayer := lipgloss.NewLayer(base).X(0).Y(0).Z(0)
	centeredOverlay := lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		overlay,
	)
	overlayLayer := lipgloss.NewLayer(centeredOverlay).X(0).Y(0).Z(10)

	canvas.Compose(baseLayer)
	canvas.Compose(overlayLayer)
	return canvas.Render()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	rs := []rune(s)
	if len(rs) <= max {
		return s
	}
	if max <= 1 {
		return string(rs[:max])
	}
	return string(rs[:max-1]) + "…"
}
