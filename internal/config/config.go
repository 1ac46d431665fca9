// Package config provides configuration types and defaults for colorid.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/tracing"
)

// SourceConfig declares one catalog source. Location is resolved relative
// to catalog_dir unless absolute.
type SourceConfig struct {
	ID       string `mapstructure:"id"`
	Name     string `mapstructure:"name"`
	Location string `mapstructure:"location"`
}

// SearchConfig holds interactive search tuning.
type SearchConfig struct {
	// Debounce is how long typing must pause before a search runs.
	Debounce time.Duration `mapstructure:"debounce"`

	// Sort orders results by name: "asc" (default) or "desc".
	Sort string `mapstructure:"sort"`
}

// MatchConfig holds nearest-match tuning.
type MatchConfig struct {
	// MemoTTL bounds how long a nearest-match result stays cached.
	MemoTTL time.Duration `mapstructure:"memo_ttl"`
}

// Config holds all configuration options for colorid.
type Config struct {
	// CatalogDir is the directory holding catalog files.
	CatalogDir string `mapstructure:"catalog_dir"`

	// Sources lists the catalog sources in precedence order. On duplicate
	// entries the earlier source wins.
	Sources []SourceConfig `mapstructure:"sources"`

	// AutoReload reloads sources when their backing files change.
	AutoReload bool `mapstructure:"auto_reload"`

	// AutoReloadDebounce is how long file change bursts are coalesced.
	AutoReloadDebounce time.Duration `mapstructure:"auto_reload_debounce"`

	// LogFile enables debug logging to the given path when set.
	LogFile string `mapstructure:"log_file"`

	Search  SearchConfig   `mapstructure:"search"`
	Match   MatchConfig    `mapstructure:"match"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CatalogDir:         ".",
		AutoReload:         false,
		AutoReloadDebounce: time.Second,
		Search: SearchConfig{
			Debounce: 300 * time.Millisecond,
			Sort:     "asc",
		},
		Match: MatchConfig{
			MemoTTL: 10 * time.Minute,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultConfigPath returns ~/.config/colorid/config.yaml, or an empty
// string if the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "colorid", "config.yaml")
}

// CatalogSources converts the configured sources to registry descriptors,
// resolving relative locations against CatalogDir.
func (c Config) CatalogSources() []catalog.Source {
	out := make([]catalog.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		loc := s.Location
		if loc != "" && !filepath.IsAbs(loc) && c.CatalogDir != "" {
			loc = filepath.Join(c.CatalogDir, loc)
		}
		out = append(out, catalog.Source{
			ID:       catalog.SourceID(s.ID),
			Name:     s.Name,
			Location: loc,
		})
	}
	return out
}

// ValidateSources checks source declarations. An empty list is valid.
func ValidateSources(sources []SourceConfig) error {
	seen := make(map[string]bool, len(sources))
	for i, s := range sources {
		if s.ID == "" {
			return fmt.Errorf("source %d: id is required", i)
		}
		if s.Location == "" {
			return fmt.Errorf("source %d: location is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("source %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# colorid configuration

# Directory holding catalog files (relative source locations resolve here)
catalog_dir: .

# Catalog sources, in precedence order. Earlier sources win on duplicates.
# sources:
#   - id: generic
#     name: Generic web colors
#     location: generic.json
#   - id: ral
#     name: RAL Classic
#     location: ral.yaml
#   - id: pantone
#     name: Pantone
#     location: pantone.db

# Reload sources when their backing files change
auto_reload: false
auto_reload_debounce: 1s

# Write debug logs to a file
# log_file: /tmp/colorid.log

search:
  debounce: 300ms # pause before a search runs while typing
  sort: asc       # result order by name: "asc" or "desc"

match:
  memo_ttl: 10m # how long nearest-match lookups stay cached

# Distributed tracing (spans around catalog loads and match queries)
tracing:
  enabled: false
  exporter: file # "none", "file", "stdout", "otlp"
  # file_path: ~/.config/colorid/traces/traces.jsonl
  # otlp_endpoint: localhost:4317
  sample_rate: 1.0
`
}

// WriteDefaultConfig writes the default config template to configPath,
// creating parent directories as needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
