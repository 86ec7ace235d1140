package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	charmLog "github.com/charmbracelet/log"
	"github.com/evanschultz/orderboard/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

type StoreBackend string

const (
	StoreBackendMemory StoreBackend = "memory"
	StoreBackendSQLite StoreBackend = "sqlite"
)

type Config struct {
	Store   StoreConfig   `toml:"store"`
	Seed    SeedConfig    `toml:"seed"`
	Board   BoardConfig   `toml:"board"`
	Confirm ConfirmConfig `toml:"confirm"`
	Keys    KeyConfig     `toml:"keys"`
	Logging LoggingConfig `toml:"logging"`
}

type StoreConfig struct {
	Backend StoreBackend `toml:"backend"`
}

type SeedConfig struct {
	Path string `toml:"path"`
}

type BoardConfig struct {
	ShowTable bool           `toml:"show_table"`
	ShowIDs   bool           `toml:"show_ids"`
	Columns   []ColumnConfig `toml:"columns"`
}

// ColumnConfig renames one of the fixed board columns.
type ColumnConfig struct {
	ID    string `toml:"id"`
	Title string `toml:"title"`
}

type ConfirmConfig struct {
	Delete bool `toml:"delete"`
}

type KeyConfig struct {
	AddOrder    string `toml:"add_order"`
	EditOrder   string `toml:"edit_order"`
	DeleteOrder string `toml:"delete_order"`
	MoveLeft    string `toml:"move_left"`
	MoveRight   string `toml:"move_right"`
	Help        string `toml:"help"`
	Yank        string `toml:"yank"`
}

type LoggingConfig struct {
	Level   string        `toml:"level"`
	DevFile DevFileConfig `toml:"dev_file"`
}

type DevFileConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func defaultColumns() []ColumnConfig {
	columns := domain.Columns()
	out := make([]ColumnConfig, 0, len(columns))
	for _, column := range columns {
		out = append(out, ColumnConfig{ID: string(column), Title: column.Title()})
	}
	return out
}

func Default(seedPath string) Config {
	return Config{
		Store: StoreConfig{
			Backend: StoreBackendMemory,
		},
		Seed: SeedConfig{
			Path: seedPath,
		},
		Board: BoardConfig{
			ShowTable: true,
			ShowIDs:   false,
			Columns:   defaultColumns(),
		},
		Confirm: ConfirmConfig{
			Delete: true,
		},
		Keys: KeyConfig{
			AddOrder:    "n",
			EditOrder:   "e",
			DeleteOrder: "d",
			MoveLeft:    "[",
			MoveRight:   "]",
			Help:        "?",
			Yank:        "y",
		},
		Logging: LoggingConfig{
			Level: "info",
			DevFile: DevFileConfig{
				Enabled: true,
				Dir:     ".orderboard/log",
			},
		},
	}
}

func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	// a [[board.columns]] table in the file replaces the defaults instead of merging by index
	cfg.Board.Columns = nil
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}
	if len(cfg.Board.Columns) == 0 {
		cfg.Board.Columns = defaults.Board.Columns
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreBackendMemory, StoreBackendSQLite:
	default:
		return fmt.Errorf("invalid store.backend: %q", c.Store.Backend)
	}

	seen := map[domain.Column]struct{}{}
	for idx, column := range c.Board.Columns {
		id, err := domain.ParseColumn(column.ID)
		if err != nil {
			return fmt.Errorf("board.columns[%d].id: %w", idx, err)
		}
		if strings.TrimSpace(column.Title) == "" {
			return fmt.Errorf("board.columns[%d].title is required", idx)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("board.columns[%d].id is duplicated: %s", idx, id)
		}
		seen[id] = struct{}{}
	}

	if _, err := charmLog.ParseLevel(strings.TrimSpace(c.Logging.Level)); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	return nil
}

// ColumnTitles maps every board column to its display title, falling back to the built-in names.
func (c Config) ColumnTitles() map[domain.Column]string {
	out := make(map[domain.Column]string, len(domain.Columns()))
	for _, column := range domain.Columns() {
		out[column] = column.Title()
	}
	for _, column := range c.Board.Columns {
		id, err := domain.ParseColumn(column.ID)
		if err != nil {
			continue
		}
		if title := strings.TrimSpace(column.Title); title != "" {
			out[id] = title
		}
	}
	return out
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
