package tui

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"charm.land/bubbles/v2/key"
)

// keyMap holds every board binding shown in the help bar.
type keyMap struct {
	quit        key.Binding
	reload      key.Binding
	toggleHelp  key.Binding
	moveLeft    key.Binding
	moveRight   key.Binding
	moveUp      key.Binding
	moveDown    key.Binding
	addOrder    key.Binding
	editOrder   key.Binding
	deleteOrder key.Binding
	orderLeft   key.Binding
	orderRight  key.Binding
	yank        key.Binding
}

// KeyConfig overrides the configurable board bindings. Blank values keep the defaults.
type KeyConfig struct {
	AddOrder    string
	EditOrder   string
	DeleteOrder string
	MoveLeft    string
	MoveRight   string
	Help        string
	Yank        string
}

func newKeyMap() keyMap {
	return keyMap{
		quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		toggleHelp:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		moveLeft:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "column left")),
		moveRight:   key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "column right")),
		moveUp:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "order up")),
		moveDown:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "order down")),
		addOrder:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new order")),
		editOrder:   key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e/enter", "edit order")),
		deleteOrder: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete order")),
		orderLeft:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move order left")),
		orderRight:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move order right")),
		yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy ticket")),
	}
}

// applyConfig rebinds configurable keys. Edit always keeps enter as an alias.
func (k *keyMap) applyConfig(cfg KeyConfig) {
	configureBinding(&k.addOrder, cfg.AddOrder, "n", "new order")
	configureBinding(&k.deleteOrder, cfg.DeleteOrder, "d", "delete order")
	configureBinding(&k.orderLeft, cfg.MoveLeft, "[", "move order left")
	configureBinding(&k.orderRight, cfg.MoveRight, "]", "move order right")
	configureBinding(&k.toggleHelp, cfg.Help, "?", "toggle help")
	configureBinding(&k.yank, cfg.Yank, "y", "copy ticket")

	editKeys, editHelp := parseBindingKeys(cfg.EditOrder, "e")
	k.editOrder.SetKeys(append(editKeys, "enter")...)
	k.editOrder.SetHelp(editHelp+"/enter", "edit order")
}

// configureBinding replaces a binding's keys and help label from one raw config value.
func configureBinding(b *key.Binding, raw, fallback, desc string) {
	keys, help := parseBindingKeys(raw, fallback)
	b.SetKeys(keys...)
	b.SetHelp(help, desc)
}

// parseBindingKeys turns a config value into key matchers plus the help label.
func parseBindingKeys(raw, fallback string) ([]string, string) {
	value := strings.TrimSpace(raw)
	if raw == " " {
		value = "space"
	}
	if value == "" {
		value = fallback
	}
	if strings.EqualFold(value, "space") {
		return []string{" ", "space"}, "space"
	}
	if utf8.RuneCountInString(value) == 1 {
		r, _ := utf8.DecodeRuneInString(value)
		if unicode.IsUpper(r) {
			return []string{value, "shift+" + string(unicode.ToLower(r))}, value
		}
		return []string{value}, value
	}
	return []string{strings.ToLower(value)}, value
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.addOrder, k.editOrder, k.deleteOrder, k.orderLeft, k.orderRight, k.toggleHelp, k.quit,
	}
}

// FullHelp returns every binding grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.addOrder, k.editOrder, k.deleteOrder, k.yank, k.reload, k.toggleHelp, k.quit},
		{k.moveLeft, k.moveRight, k.moveUp, k.moveDown, k.orderLeft, k.orderRight},
	}
}
