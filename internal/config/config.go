// Package config handles project configuration and the .rollup directory
// structure. Every project that uses the rollup tooling gets a .rollup/
// folder created in its root.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RollupDir is the name of the directory created in each project.
const RollupDir = ".rollup"

const defaultProjectConfigYAML = `# rollup project configuration
version: 1

# Pin the aggregation order of module manifests. Modules listed here
# contribute their exports first, in this order; any discovered module not
# listed follows in manifest path order.
modules: []
`

// ProjectConfig models .rollup/config.yaml.
type ProjectConfig struct {
	Version int      `yaml:"version"`
	Modules []string `yaml:"modules"`
}

// Config holds the runtime configuration for the rollup tooling.
type Config struct {
	// ProjectDir is the directory the tool was run from.
	ProjectDir string

	// RollupProjectDir is ProjectDir/.rollup.
	RollupProjectDir string

	Project ProjectConfig
}

// InitRollupDir creates the .rollup directory structure in the given
// project directory and seeds a default config.yaml when none exists.
//
// Structure created:
// .rollup/
// ├── modules/  <- YAML and Go module manifests
// └── logs/     <- Aggregation activity log
func InitRollupDir(projectDir string) error {
	rollupDir := filepath.Join(projectDir, RollupDir)
	dirs := []string{
		filepath.Join(rollupDir, "modules"),
		filepath.Join(rollupDir, "logs"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return ensureProjectConfig(filepath.Join(rollupDir, "config.yaml"))
}

// NewConfig creates a Config populated with project settings.
func NewConfig(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir:       projectDir,
		RollupProjectDir: filepath.Join(projectDir, RollupDir),
		Project:          defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ModulesDir returns the directory holding module manifests.
func (c *Config) ModulesDir() string {
	return filepath.Join(c.RollupProjectDir, "modules")
}

// LogsDir returns the path to the logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.RollupProjectDir, "logs")
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.RollupProjectDir, "config.yaml")
}

// ModuleOrder returns the configured aggregation-order pin list.
func (c *Config) ModuleOrder() []string {
	return c.Project.Modules
}

// SetModuleOrder replaces the aggregation-order pin list and persists the
// value back to .rollup/config.yaml.
func (c *Config) SetModuleOrder(ids []string) error {
	cleaned := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return fmt.Errorf("config: module id is required")
		}
		cleaned = append(cleaned, id)
	}
	c.Project.Modules = cleaned
	return c.saveProjectConfig()
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{Version: 1}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
}

func (pc *ProjectConfig) normalize() {
	for i := range pc.Modules {
		pc.Modules[i] = strings.TrimSpace(pc.Modules[i])
	}
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	seen := make(map[string]struct{}, len(pc.Modules))
	for i, id := range pc.Modules {
		if id == "" {
			return fmt.Errorf("modules[%d]: id is required", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("modules[%d]: duplicate id %s", i, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0644)
}

func (c *Config) saveProjectConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.Project.applyDefaults()
	c.Project.normalize()
	if err := c.Project.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.RollupProjectDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure rollup dir: %w", err)
	}
	data, err := yaml.Marshal(c.Project)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.ProjectConfigPath(), data, 0644); err != nil {
		return fmt.Errorf("config: write project config: %w", err)
	}
	return nil
}
