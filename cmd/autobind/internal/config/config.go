package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/autobind/pkg/engine"
)

// FileName is the name of the optional configuration file.
const FileName = "autobind.yaml"

// Config represents the optional autobind.yaml configuration.
type Config struct {
	App    AppConfig    `yaml:"app"`
	Engine EngineConfig `yaml:"engine"`
	Trace  TraceConfig  `yaml:"trace"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// EngineConfig contains frame loop settings.
type EngineConfig struct {
	FrameInterval string `yaml:"frame_interval,omitempty"`
	Verbose       bool   `yaml:"verbose,omitempty"`
}

// TraceConfig controls the refresh trace printed by the CLI.
type TraceConfig struct {
	// Color is "auto" (default), "always" or "never".
	Color string `yaml:"color,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root          string
	ModulePath    string
	AppName       string
	FrameInterval time.Duration
	Verbose       bool
	Color         string
}

// LoadOptional reads autobind.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads autobind.yaml (if present) and resolves defaults.
// The go.mod in dir, if any, names the app when app.name is unset.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultAppName(modulePath, dir)
	}

	frameInterval := engine.DefaultFrameInterval
	if s := strings.TrimSpace(cfg.Engine.FrameInterval); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("engine.frame_interval: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("engine.frame_interval must be positive (got %s)", s)
		}
		frameInterval = d
	}

	color := strings.ToLower(strings.TrimSpace(cfg.Trace.Color))
	switch color {
	case "":
		color = "auto"
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("trace.color must be auto, always or never (got %q)", cfg.Trace.Color)
	}

	return &Resolved{
		Root:          dir,
		ModulePath:    modulePath,
		AppName:       appName,
		FrameInterval: frameInterval,
		Verbose:       cfg.Engine.Verbose,
		Color:         color,
	}, nil
}

// FindProjectRoot walks up from start to the first directory holding
// autobind.yaml or go.mod. It returns start itself when neither is found.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Abs(start)
		}
		dir = parent
	}
}

// modulePath returns the module path declared in dir/go.mod, or "" when
// there is no go.mod.
func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultAppName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modulePath != "" {
		if modName, _, ok := module.SplitPathVersion(modulePath); ok {
			parts := strings.Split(modName, "/")
			base = parts[len(parts)-1]
		}
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "autobind_app"
	}
	return base
}
