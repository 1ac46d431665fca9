// Package cmd implements the colorid command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog/loader"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/catalog/registry"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/config"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/log"
	"github.com/gustavotuas/color-identifier-app-sub000/internal/tracing"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "colorid",
	Short: "Search and match colors across vendor catalogs",
	Long: `colorid searches color catalogs by name, vendor code, or hex fragment,
and finds the nearest catalog color to any target value.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/colorid/config.yaml)")
	rootCmd.PersistentFlags().String("catalog-dir", "",
		"directory holding catalog files")
	rootCmd.PersistentFlags().String("log-file", "",
		"write debug logs to this file")

	_ = viper.BindPFlag("catalog_dir", rootCmd.PersistentFlags().Lookup("catalog-dir"))
	_ = viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("catalog_dir", defaults.CatalogDir)
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("auto_reload_debounce", defaults.AutoReloadDebounce)
	viper.SetDefault("search.debounce", defaults.Search.Debounce)
	viper.SetDefault("search.sort", defaults.Search.Sort)
	viper.SetDefault("match.memo_ttl", defaults.Match.MemoTTL)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .colorid/config.yaml (current directory)
		// 2. ~/.config/colorid/config.yaml (user config)
		if _, err := os.Stat(".colorid/config.yaml"); err == nil {
			viper.SetConfigFile(".colorid/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "colorid"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path := config.DefaultConfigPath(); path != "" {
				if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
					viper.SetConfigFile(path)
					_ = viper.ReadInConfig()
				}
			}
			// If write fails, continue with defaults.
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// setup validates the configuration and builds the shared registry and
// tracing provider. The returned cleanup flushes logs and spans.
func setup() (*registry.Registry, func(), error) {
	if err := config.ValidateSources(cfg.Sources); err != nil {
		return nil, nil, fmt.Errorf("invalid source configuration: %w", err)
	}
	if len(cfg.Sources) == 0 {
		return nil, nil, fmt.Errorf("no catalog sources configured (edit %s)", viper.ConfigFileUsed())
	}

	logCleanup := func() {}
	if cfg.LogFile != "" {
		cleanup, err := log.Init(cfg.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		logCleanup = cleanup
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		logCleanup()
		return nil, nil, fmt.Errorf("configuring tracing: %w", err)
	}

	reg := registry.New(loader.NewOSLoader(), cfg.CatalogSources(),
		registry.WithTracer(provider.Tracer()))

	cleanup := func() {
		reg.Close()
		_ = provider.Shutdown(context.Background())
		logCleanup()
	}
	return reg, cleanup, nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
