// Package config binds command-line flags and environment variables to
// the settings the query command (cmd/gokittq) needs, following the
// flag+viper pattern grafana-tempo's frigg-query plugin uses for its own
// config file/env binding.
package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the evaluator's tunable knobs plus the on-disk locations it
// needs to open an index.
type Config struct {
	IndexDir      string `mapstructure:"index_dir"`
	AccLimit      int    `mapstructure:"acc_limit"`
	ScratchBudget int64  `mapstructure:"scratch_budget"`
	TopK          int    `mapstructure:"top_k"`
	LogLevel      string `mapstructure:"log_level"`
}

// Default returns the out-of-the-box settings.
func Default() Config {
	return Config{
		IndexDir:      "./index",
		AccLimit:      20000,
		ScratchBudget: 1 << 20,
		TopK:          10,
		LogLevel:      "info",
	}
}

// Load binds flags registered on fs, environment variables (prefixed
// GOKITTQ_), and an optional config file at configPath, in that priority
// order, over the defaults.
func Load(fs *pflag.FlagSet, configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("gokittq")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("index_dir", cfg.IndexDir)
	v.SetDefault("acc_limit", cfg.AccLimit)
	v.SetDefault("scratch_budget", cfg.ScratchBudget)
	v.SetDefault("top_k", cfg.TopK)
	v.SetDefault("log_level", cfg.LogLevel)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return cfg, err
		}
	}

	// BindPFlags registers each flag under its literal (dashed) name, which
	// would never match these underscored mapstructure keys; bind each flag
	// explicitly under its config key instead so --index-dir overrides
	// index_dir rather than silently being ignored.
	if fs != nil {
		for _, key := range []string{"index_dir", "acc_limit", "scratch_budget", "top_k", "log_level"} {
			flagName := strings.ReplaceAll(key, "_", "-")
			if flag := fs.Lookup(flagName); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return cfg, err
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
