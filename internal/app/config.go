package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the daemon runtime configuration.
type Config struct {
	ListenAddress string
	CatalogPath   string
	PrefsDBPath   string
	Watch         bool
	Observability ObservabilityConfig
}

type ObservabilityConfig struct {
	ListenAddress string
	EnableMetrics bool
	EnableHealthz bool
}

const (
	DefaultListenAddress              = "0.0.0.0:8080"
	DefaultPrefsDBPath                = "hexageeky.db"
	DefaultObservabilityListenAddress = "0.0.0.0:9090"
)

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setConfigDefaults(v)
	return v
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("listenAddress", DefaultListenAddress)
	v.SetDefault("catalogPath", "")
	v.SetDefault("prefsDBPath", DefaultPrefsDBPath)
	v.SetDefault("watch", false)
	v.SetDefault("observability.listenAddress", DefaultObservabilityListenAddress)
	v.SetDefault("observability.enableMetrics", true)
	v.SetDefault("observability.enableHealthz", true)
}

type rawConfig struct {
	ListenAddress string              `mapstructure:"listenAddress"`
	CatalogPath   string              `mapstructure:"catalogPath"`
	PrefsDBPath   string              `mapstructure:"prefsDBPath"`
	Watch         bool                `mapstructure:"watch"`
	Observability rawObservabilityCfg `mapstructure:"observability"`
}

type rawObservabilityCfg struct {
	ListenAddress string `mapstructure:"listenAddress"`
	EnableMetrics bool   `mapstructure:"enableMetrics"`
	EnableHealthz bool   `mapstructure:"enableHealthz"`
}

// LoadConfig reads the runtime config file. An empty path yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	v := newConfigViper()

	if strings.TrimSpace(path) != "" {
		file, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()
		if err := v.ReadConfig(file); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return normalizeConfig(raw)
}

func normalizeConfig(raw rawConfig) (Config, error) {
	cfg := Config{
		ListenAddress: strings.TrimSpace(raw.ListenAddress),
		CatalogPath:   strings.TrimSpace(raw.CatalogPath),
		PrefsDBPath:   strings.TrimSpace(raw.PrefsDBPath),
		Watch:         raw.Watch,
		Observability: ObservabilityConfig{
			ListenAddress: strings.TrimSpace(raw.Observability.ListenAddress),
			EnableMetrics: raw.Observability.EnableMetrics,
			EnableHealthz: raw.Observability.EnableHealthz,
		},
	}

	var problems []string
	if cfg.ListenAddress == "" {
		problems = append(problems, "listenAddress must not be blank")
	}
	if cfg.PrefsDBPath == "" {
		problems = append(problems, "prefsDBPath must not be blank")
	}
	if (cfg.Observability.EnableMetrics || cfg.Observability.EnableHealthz) && cfg.Observability.ListenAddress == "" {
		problems = append(problems, "observability.listenAddress must not be blank when endpoints are enabled")
	}
	if cfg.Watch && cfg.CatalogPath == "" {
		problems = append(problems, "watch requires catalogPath, the embedded catalog cannot change")
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}
