package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/evanschultz/orderboard/internal/adapters/seed"
	"github.com/evanschultz/orderboard/internal/adapters/storage/memory"
	"github.com/evanschultz/orderboard/internal/adapters/storage/sqlite"
	"github.com/evanschultz/orderboard/internal/app"
	"github.com/evanschultz/orderboard/internal/config"
	"github.com/evanschultz/orderboard/internal/platform"
	"github.com/evanschultz/orderboard/internal/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var version = "dev"

// program is the part of a tea.Program the CLI drives.
type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	seedPath   string
	store      string
	appName    string
	devMode    bool
}

// run builds the command tree and executes args against it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return err
	}

	root := newRootCommand(stdout, stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return fang.Execute(ctx, root, fang.WithVersion(version), fang.WithoutManpage())
}

// loadDotEnv loads path into the process environment without overriding variables that are already set.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{appName: "orderboard", devMode: version == "dev"}
	if envDev, ok := parseBoolEnv("ORDERBOARD_DEV_MODE"); ok {
		opts.devMode = envDev
	}
	if envApp := strings.TrimSpace(os.Getenv("ORDERBOARD_APP_NAME")); envApp != "" {
		opts.appName = envApp
	}

	root := &cobra.Command{
		Use:   "orderboard",
		Short: "A restaurant order board for the terminal",
		Long: `orderboard shows restaurant orders in three columns (ordered, preparing, served).
Orders are added, edited and deleted in overlays and moved between columns by dragging
them with the mouse or with the keyboard. Board state lives in memory for the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBoard(cmd.Context(), opts, stderr)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config TOML")
	flags.StringVar(&opts.seedPath, "seed", "", "path to a YAML file of orders loaded at startup")
	flags.StringVar(&opts.store, "store", "", "order store backend (memory|sqlite)")
	flags.StringVar(&opts.appName, "app", opts.appName, "application name for config/data path resolution")
	flags.BoolVar(&opts.devMode, "dev", opts.devMode, "use dev mode paths (<app>-dev)")

	root.AddCommand(newPathsCommand(opts, stdout), newExportCommand(opts, stdout, stderr))
	return root
}

func newPathsCommand(opts *rootOptions, stdout io.Writer) *cobra.Command {
	var ensure bool
	cmd := &cobra.Command{
		Use:   "paths",
		Short: "Print the resolved config and data paths",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			paths, err := resolvePaths(opts)
			if err != nil {
				return err
			}
			if ensure {
				if err := config.EnsureConfigDir(paths.ConfigPath); err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintf(stdout, "app: %s\n", opts.appName)
			_, _ = fmt.Fprintf(stdout, "dev_mode: %t\n", opts.devMode)
			_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "seed: %s\n", paths.SeedPath)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ensure, "ensure", false, "create the config directory if it is missing")
	return cmd
}

func newExportCommand(opts *rootOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		format  string
		outPath string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load the seed orders and print the board as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := openRuntime(cmd.Context(), opts, stderr, "export")
			if err != nil {
				return err
			}
			defer env.close()

			env.logger.Info("command flow start", "command", "export", "format", format)
			if err := runExport(cmd.Context(), env, format, outPath, stdout); err != nil {
				env.logger.Error("command flow failed", "command", "export", "err", err)
				return fmt.Errorf("run export command: %w", err)
			}
			env.logger.Info("command flow complete", "command", "export")
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format (json|yaml)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "-", "output file path ('-' for stdout)")
	return cmd
}

// runtimeEnv is everything a command needs once config, logging and the store are resolved.
type runtimeEnv struct {
	cfg    config.Config
	logger *runtimeLogger
	svc    *app.Service
	closer func() error
	stderr io.Writer
}

func (e *runtimeEnv) close() {
	if e.closer != nil {
		if err := e.closer(); err != nil {
			e.logger.Warn("order store close failed", "backend", e.cfg.Store.Backend, "err", err)
		}
	}
	if err := e.logger.Close(); err != nil && e.logger.shouldLogToSink(e.logger.consoleSink) {
		_, _ = fmt.Fprintf(e.stderr, "warning: close runtime log sink: %v\n", err)
	}
}

func resolvePaths(opts *rootOptions) (platform.Paths, error) {
	return platform.DefaultPathsWithOptions(platform.Options{
		AppName: opts.appName,
		DevMode: opts.devMode,
	})
}

// openRuntime resolves config, logging, the order store and the seed for one command.
func openRuntime(ctx context.Context, opts *rootOptions, stderr io.Writer, command string) (*runtimeEnv, error) {
	paths, err := resolvePaths(opts)
	if err != nil {
		return nil, err
	}

	configPath := firstNonEmpty(opts.configPath, os.Getenv("ORDERBOARD_CONFIG"), paths.ConfigPath)
	seedOverride := firstNonEmpty(opts.seedPath, os.Getenv("ORDERBOARD_SEED"))
	storeOverride := firstNonEmpty(opts.store, os.Getenv("ORDERBOARD_STORE"))

	cfg, err := config.Load(configPath, config.Default(paths.SeedPath))
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}
	if seedOverride != "" {
		cfg.Seed.Path = seedOverride
	}
	if storeOverride != "" {
		cfg.Store.Backend = config.StoreBackend(strings.ToLower(storeOverride))
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("store override %q: %w", storeOverride, err)
		}
	}

	logger, err := newRuntimeLogger(stderr, opts.appName, opts.devMode, cfg.Logging, time.Now)
	if err != nil {
		return nil, fmt.Errorf("configure runtime logger: %w", err)
	}
	if command == "tui" {
		// the board owns the terminal; keep runtime events in the dev file only
		logger.SetConsoleEnabled(false)
	}
	logger.Info("startup configuration resolved", "app", opts.appName, "dev_mode", opts.devMode, "command", command)
	logger.Debug("runtime paths resolved", "config_path", configPath, "data_dir", paths.DataDir, "seed_path", cfg.Seed.Path)
	if devPath := logger.DevLogPath(); devPath != "" {
		logger.Info("dev file logging enabled", "path", devPath)
	}

	env := &runtimeEnv{cfg: cfg, logger: logger, stderr: stderr}
	repo, closer, err := openStore(cfg.Store.Backend)
	if err != nil {
		logger.Error("order store open failed", "backend", cfg.Store.Backend, "err", err)
		_ = logger.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	env.closer = closer
	env.svc = app.NewService(repo, nil, nil)
	logger.Info("order store ready", "backend", cfg.Store.Backend)

	explicitSeed := seedOverride != "" || filepath.Clean(cfg.Seed.Path) != filepath.Clean(paths.SeedPath)
	if err := applySeed(ctx, env, explicitSeed); err != nil {
		env.close()
		return nil, err
	}
	return env, nil
}

// openStore builds the configured repository; both backends live only for this process.
func openStore(backend config.StoreBackend) (app.Repository, func() error, error) {
	switch backend {
	case config.StoreBackendSQLite:
		repo, err := sqlite.OpenInMemory()
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	case config.StoreBackendMemory, "":
		repo := memory.New()
		return repo, repo.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", backend)
	}
}

// applySeed loads the seed file into the fresh store. A missing default seed file is skipped.
func applySeed(ctx context.Context, env *runtimeEnv, explicit bool) error {
	path := strings.TrimSpace(env.cfg.Seed.Path)
	orders, err := seed.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			env.logger.Debug("default seed file not found", "path", path)
			return nil
		}
		env.logger.Error("seed load failed", "path", path, "err", err)
		return err
	}
	if len(orders) == 0 {
		return nil
	}
	seeded, err := env.svc.SeedOrders(ctx, orders)
	if err != nil {
		env.logger.Error("seed apply failed", "path", path, "err", err)
		return fmt.Errorf("apply seed %s: %w", path, err)
	}
	env.logger.Info("seed orders loaded", "path", path, "count", len(seeded))
	return nil
}

func runBoard(ctx context.Context, opts *rootOptions, stderr io.Writer) error {
	env, err := openRuntime(ctx, opts, stderr, "tui")
	if err != nil {
		return err
	}
	defer env.close()

	env.logger.Info("command flow start", "command", "tui")
	m := tui.NewModel(
		env.svc,
		tui.WithBoardConfig(tui.BoardConfig{
			ShowTable:    env.cfg.Board.ShowTable,
			ShowIDs:      env.cfg.Board.ShowIDs,
			ColumnTitles: env.cfg.ColumnTitles(),
		}),
		tui.WithConfirmDelete(env.cfg.Confirm.Delete),
		tui.WithKeyConfig(toTUIKeyConfig(env.cfg.Keys)),
		tui.WithLogger(env.logger),
	)
	env.logger.Info("starting tui program loop")
	if _, err := programFactory(m).Run(); err != nil {
		env.logger.Error("tui program terminated with error", "err", err)
		return fmt.Errorf("run tui program: %w", err)
	}
	env.logger.Info("command flow complete", "command", "tui")
	return nil
}

func toTUIKeyConfig(keys config.KeyConfig) tui.KeyConfig {
	return tui.KeyConfig{
		AddOrder:    keys.AddOrder,
		EditOrder:   keys.EditOrder,
		DeleteOrder: keys.DeleteOrder,
		MoveLeft:    keys.MoveLeft,
		MoveRight:   keys.MoveRight,
		Help:        keys.Help,
		Yank:        keys.Yank,
	}
}

// runExport writes the board snapshot in the requested format.
func runExport(ctx context.Context, env *runtimeEnv, format, outPath string, stdout io.Writer) error {
	snap, err := env.svc.ExportBoard(ctx)
	if err != nil {
		return fmt.Errorf("export board: %w", err)
	}
	titles := env.cfg.ColumnTitles()
	for i := range snap.Columns {
		if title := strings.TrimSpace(titles[snap.Columns[i].ID]); title != "" {
			snap.Columns[i].Title = title
		}
	}

	encoded, err := encodeSnapshot(snap, format)
	if err != nil {
		return err
	}
	if outPath == "" || outPath == "-" {
		if _, err := stdout.Write(encoded); err != nil {
			return fmt.Errorf("write snapshot to stdout: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create export output dir: %w", err)
	}
	if err := os.WriteFile(outPath, encoded, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

func encodeSnapshot(snap app.BoardSnapshot, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		encoded, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode snapshot json: %w", err)
		}
		return append(encoded, '\n'), nil
	case "yaml", "yml":
		var b strings.Builder
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return nil, fmt.Errorf("encode snapshot yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode snapshot yaml: %w", err)
		}
		return []byte(b.String()), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// parseBoolEnv reports the boolean value of an environment variable and whether it was set.
func parseBoolEnv(name string) (bool, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
