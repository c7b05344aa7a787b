// Package configloader resolves the effective mdtouch configuration from
// defaults, YAML files, MDTOUCH_* environment variables and CLI flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/yaklabco/mdtouch/pkg/config"
)

// LoadOptions controls Load.
type LoadOptions struct {
	// WorkingDir is where the project config search starts. Empty means
	// the current directory.
	WorkingDir string

	// ExplicitPath is a config file given with --config.
	ExplicitPath string

	// NoConfig skips every config file; defaults, env and flags still apply.
	NoConfig bool

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values. It has the highest precedence.
	CLIConfig *config.Config

	// Getenv replaces os.Getenv, for tests.
	Getenv func(string) string
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string
	Warnings   []string
}

// Load resolves the configuration. Precedence, lowest first: defaults,
// system file, user file, project file, --config file, MDTOUCH_* variables,
// flags.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	result := &LoadResult{Paths: &ConfigPaths{}}
	cfg := config.NewConfig()

	if !opts.NoConfig {
		paths, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		paths.Explicit = opts.ExplicitPath
		result.Paths = paths

		layers := []struct {
			name string
			path string
			skip bool
		}{
			{"system", paths.System, opts.IgnoreSystemConfig},
			{"user", paths.User, opts.IgnoreUserConfig},
			{"project", paths.Project, opts.IgnoreProjectConfig},
			{"explicit", paths.Explicit, false},
		}

		for _, layer := range layers {
			if layer.skip || layer.path == "" {
				continue
			}

			fileCfg, err := loadConfigFile(layer.path)
			if err != nil {
				return nil, fmt.Errorf("load %s config: %w", layer.name, err)
			}

			validation := ValidateWithFile(fileCfg, layer.path)
			if err := validation.Err(); err != nil {
				return nil, err
			}
			for _, w := range validation.Warnings {
				result.Warnings = append(result.Warnings, w.Error())
			}

			cfg = merge(cfg, fileCfg)
			result.LoadedFrom = append(result.LoadedFrom, layer.path)
		}
	}

	if !opts.IgnoreEnv {
		getenv := opts.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		if err := loadFromEnv(cfg, getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	validation := Validate(cfg)
	if err := validation.Err(); err != nil {
		return nil, err
	}

	result.Config = cfg
	return result, nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// IsInteractive reports whether stdin is a terminal.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
