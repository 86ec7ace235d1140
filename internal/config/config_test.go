package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/evanschultz/orderboard/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/seed.yaml")
	if cfg.Seed.Path != "/tmp/seed.yaml" {
		t.Fatalf("unexpected seed path %q", cfg.Seed.Path)
	}
	if cfg.Store.Backend != StoreBackendMemory {
		t.Fatalf("unexpected store backend %q", cfg.Store.Backend)
	}
	if !cfg.Confirm.Delete {
		t.Fatal("expected delete confirmation enabled by default")
	}
	if !cfg.Board.ShowTable || cfg.Board.ShowIDs {
		t.Fatal("expected table visible and ids hidden by default")
	}
	if len(cfg.Board.Columns) != 3 {
		t.Fatalf("expected 3 default columns, got %d", len(cfg.Board.Columns))
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != defaults.Store.Backend {
		t.Fatalf("expected default backend, got %q", cfg.Store.Backend)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[store]
backend = "sqlite"

[seed]
path = "/srv/menu.yaml"

[board]
show_table = false
show_ids = true

[[board.columns]]
id = "preparing"
title = "Kitchen"

[confirm]
delete = false

[keys]
add_order = "a"

[logging]
level = "debug"
`)

	cfg, err := Load(path, Default(""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Backend != StoreBackendSQLite {
		t.Fatalf("unexpected backend %q", cfg.Store.Backend)
	}
	if cfg.Seed.Path != "/srv/menu.yaml" {
		t.Fatalf("unexpected seed path %q", cfg.Seed.Path)
	}
	if cfg.Board.ShowTable || !cfg.Board.ShowIDs {
		t.Fatal("expected board display overrides")
	}
	if cfg.Confirm.Delete {
		t.Fatal("expected delete confirmation disabled")
	}
	if cfg.Keys.AddOrder != "a" || cfg.Keys.EditOrder != "e" {
		t.Fatalf("expected add_order override and edit_order default, got %#v", cfg.Keys)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}

	titles := cfg.ColumnTitles()
	if titles[domain.ColumnPreparing] != "Kitchen" {
		t.Fatalf("expected renamed preparing column, got %q", titles[domain.ColumnPreparing])
	}
	if titles[domain.ColumnOrdered] != "Ordered" || titles[domain.ColumnServed] != "Served" {
		t.Fatalf("expected built-in titles for other columns, got %#v", titles)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"backend": `
[store]
backend = "postgres"
`,
		"unknown column": `
[[board.columns]]
id = "bar"
title = "Bar"
`,
		"duplicate column": `
[[board.columns]]
id = "served"
title = "Out"

[[board.columns]]
id = "Served"
title = "Again"
`,
		"log level": `
[logging]
level = "chatty"
`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content), Default("")); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnsureConfigDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "config.toml")
	if err := EnsureConfigDir(target); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(target)); err != nil {
		t.Fatalf("expected dir to exist, stat error %v", err)
	}
}
