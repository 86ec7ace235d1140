package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const defaultAppName = "orderboard"

// Paths holds the per-user locations the board reads from.
type Paths struct {
	ConfigPath string
	DataDir    string
	SeedPath   string
}

// Options picks the app directory name. DevMode keeps dev runs under "<app>-dev".
type Options struct {
	AppName string
	DevMode bool
}

func (o Options) dirName() string {
	name := strings.TrimSpace(o.AppName)
	if name == "" {
		name = defaultAppName
	}
	if o.DevMode {
		name += "-dev"
	}
	return name
}

// BaseDirs are the per-user roots the app directory lives under.
type BaseDirs struct {
	Config string
	Data   string
}

// envOverride names the variables that replace the OS config and data roots.
type envOverride struct {
	config string
	data   string
}

var envOverrides = map[string]envOverride{
	"linux":   {config: "XDG_CONFIG_HOME", data: "XDG_DATA_HOME"},
	"windows": {config: "APPDATA", data: "LOCALAPPDATA"},
}

// DefaultPathsWithOptions resolves the board paths for the running OS and environment.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	base, err := userBaseDirs(runtime.GOOS)
	if err != nil {
		return Paths{}, err
	}
	return Resolve(runtime.GOOS, os.Getenv, base, opts)
}

func userBaseDirs(goos string) (BaseDirs, error) {
	configRoot, err := os.UserConfigDir()
	if err != nil {
		return BaseDirs{}, fmt.Errorf("resolve config root: %w", err)
	}
	base := BaseDirs{Config: configRoot, Data: configRoot}
	if goos == "linux" {
		home, err := os.UserHomeDir()
		if err != nil {
			return BaseDirs{}, fmt.Errorf("resolve home dir: %w", err)
		}
		base.Data = filepath.Join(home, ".local", "share")
	}
	return base, nil
}

// Resolve lays out the app directories under base. On linux and windows a non-blank
// override variable read through getenv replaces the matching root.
func Resolve(goos string, getenv func(string) string, base BaseDirs, opts Options) (Paths, error) {
	if override, ok := envOverrides[goos]; ok && getenv != nil {
		if root := strings.TrimSpace(getenv(override.config)); root != "" {
			base.Config = root
		}
		if root := strings.TrimSpace(getenv(override.data)); root != "" {
			base.Data = root
		}
	}
	if base.Config == "" || base.Data == "" {
		return Paths{}, errors.New("config and data roots are required")
	}

	name := opts.dirName()
	dataDir := filepath.Join(base.Data, name)
	return Paths{
		ConfigPath: filepath.Join(base.Config, name, "config.toml"),
		DataDir:    dataDir,
		SeedPath:   filepath.Join(dataDir, "seed.yaml"),
	}, nil
}
