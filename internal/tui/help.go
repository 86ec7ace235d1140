package tui

import (
	"fmt"
	"strings"

	"github.com/evanschultz/orderboard/internal/domain"
)

// helpMarkdown describes the board workflow using the active bindings and column titles.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("## Orders\n\n")
	fmt.Fprintf(&b, "- **%s** opens the new order form. New orders always start in *%s*.\n",
		m.keys.addOrder.Help().Key, m.columnTitle(domain.ColumnOrdered))
	fmt.Fprintf(&b, "- **%s** or a click on an order opens it for editing.\n", m.keys.editOrder.Help().Key)
	fmt.Fprintf(&b, "- **%s** deletes the selected order; **ctrl+d** deletes from the edit form.\n", m.keys.deleteOrder.Help().Key)
	fmt.Fprintf(&b, "- **%s** copies a ticket line for the selected order.\n", m.keys.yank.Help().Key)
	b.WriteString("\n## Moving orders\n\n")
	b.WriteString("- Drag an order with the left mouse button and release it over another column or row.\n")
	fmt.Fprintf(&b, "- **%s** and **%s** move the selected order one column left or right.\n",
		m.keys.orderLeft.Help().Key, m.keys.orderRight.Help().Key)
	b.WriteString("\n## Forms\n\n")
	b.WriteString("- **tab** / **shift+tab** switch fields, **enter** saves, **esc** cancels.\n")
	b.WriteString("- In the edit form the status picker cycles with **←** / **→**.\n")
	return b.String()
}
