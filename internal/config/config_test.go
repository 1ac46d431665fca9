package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, ".", cfg.CatalogDir)
	require.False(t, cfg.AutoReload)
	require.Equal(t, time.Second, cfg.AutoReloadDebounce)
	require.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	require.Equal(t, "asc", cfg.Search.Sort)
	require.Equal(t, 10*time.Minute, cfg.Match.MemoTTL)
	require.False(t, cfg.Tracing.Enabled)
}

func TestValidateSources_Empty(t *testing.T) {
	require.NoError(t, ValidateSources(nil))
}

func TestValidateSources_Valid(t *testing.T) {
	sources := []SourceConfig{
		{ID: "generic", Name: "Generic", Location: "generic.json"},
		{ID: "ral", Name: "RAL Classic", Location: "ral.yaml"},
	}
	require.NoError(t, ValidateSources(sources))
}

func TestValidateSources_MissingID(t *testing.T) {
	err := ValidateSources([]SourceConfig{{Location: "generic.json"}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "source 0: id is required")
}

func TestValidateSources_MissingLocation(t *testing.T) {
	err := ValidateSources([]SourceConfig{
		{ID: "generic", Location: "generic.json"},
		{ID: "ral"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "source 1: location is required")
}

func TestValidateSources_DuplicateID(t *testing.T) {
	err := ValidateSources([]SourceConfig{
		{ID: "generic", Location: "a.json"},
		{ID: "generic", Location: "b.json"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate id "generic"`)
}

func TestCatalogSources_ResolvesRelativeLocations(t *testing.T) {
	cfg := Config{
		CatalogDir: "/data/catalogs",
		Sources: []SourceConfig{
			{ID: "generic", Name: "Generic", Location: "generic.json"},
			{ID: "pantone", Location: "/srv/pantone.db"},
		},
	}

	got := cfg.CatalogSources()
	require.Equal(t, []catalog.Source{
		{ID: "generic", Name: "Generic", Location: filepath.Join("/data/catalogs", "generic.json")},
		{ID: "pantone", Location: "/srv/pantone.db"},
	}, got)
}

func TestWriteDefaultConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	// The template must parse back into a Config matching the defaults.
	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	require.Equal(t, ".", cfg.CatalogDir)
	require.False(t, cfg.AutoReload)
	require.Equal(t, time.Second, cfg.AutoReloadDebounce)
	require.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
	require.Equal(t, "asc", cfg.Search.Sort)
	require.Equal(t, 10*time.Minute, cfg.Match.MemoTTL)
	require.Equal(t, "file", cfg.Tracing.Exporter)
}
