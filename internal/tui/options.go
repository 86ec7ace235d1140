package tui

import (
	"github.com/atotto/clipboard"
	"github.com/evanschultz/orderboard/internal/domain"
)

// BoardConfig controls what each order row shows.
type BoardConfig struct {
	ShowTable    bool
	ShowIDs      bool
	ColumnTitles map[domain.Column]string
}

// Logger is the slice of the runtime logger the board writes to.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

// ClipboardFunc writes text to the system clipboard.
type ClipboardFunc func(string) error

type Option func(*Model)

func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		ShowTable: true,
		ShowIDs:   false,
	}
}

func WithBoardConfig(cfg BoardConfig) Option {
	return func(m *Model) {
		m.board = cfg
	}
}

func WithConfirmDelete(enabled bool) Option {
	return func(m *Model) {
		m.confirmDelete = enabled
	}
}

func WithKeyConfig(cfg KeyConfig) Option {
	return func(m *Model) {
		m.keys.applyConfig(cfg)
	}
}

func WithLogger(logger Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithClipboard(fn ClipboardFunc) Option {
	return func(m *Model) {
		if fn != nil {
			m.clipboard = fn
		}
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

var defaultClipboard ClipboardFunc = clipboard.WriteAll
