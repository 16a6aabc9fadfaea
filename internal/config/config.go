// Package config loads subscan's runtime configuration from SUBSCAN_*
// environment variables and an XDG-compliant config file, merged by viper
// with the environment taking precedence. CLI flags are overlaid on the
// returned Config by cmd/subscan/cli, not by viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/axrune/subscan/internal/appdir"
)

// CacheFilter selects which registered modules run for a scan.
// The zero value (both slices nil) accepts every module.
type CacheFilter struct {
	Allow []string
	Deny  []string
}

// Allows reports whether name passes the filter. Matching is case-insensitive.
// Deny always wins over Allow for the same name. An empty Allow list means
// "no restriction" rather than "reject everything".
func (f CacheFilter) Allows(name string) bool {
	lower := strings.ToLower(name)
	for _, d := range f.Deny {
		if strings.ToLower(d) == lower {
			return false
		}
	}
	if len(f.Allow) == 0 {
		return true
	}
	for _, a := range f.Allow {
		if strings.ToLower(a) == lower {
			return true
		}
	}
	return false
}

// ResolverConfig controls the DNS resolution stage shared by scan and brute.
type ResolverConfig struct {
	Timeout     time.Duration
	Concurrency int
	Disabled    bool
	ListFile    string
}

// RequesterConfig controls the HTTP client shared by every source adapter.
type RequesterConfig struct {
	Timeout     time.Duration
	Headers     map[string]string
	Proxy       string
	Credentials map[string]string
}

// Config is the core input accepted by internal/subscan. It is assembled
// by the CLI layer from flags, environment, and config file and passed
// down untouched; nothing below internal/subscan re-reads viper.
type Config struct {
	ConfigFile  string
	Concurrency int
	Filter      CacheFilter
	Print       bool
	Resolver    ResolverConfig
	Requester   RequesterConfig
	Stream      string
	Wordlist    string
}

const (
	defaultConcurrency        = 10
	defaultRequesterTimeout   = 30 * time.Second
	defaultResolverTimeout    = time.Second
	defaultResolverConc       = 20
	envPrefix                 = "SUBSCAN"
	configFileBaseName        = "config"
	configFileExtensionNoDot  = "yaml"
)

// Load initializes viper with SUBSCAN_* env var overrides and an XDG config
// file, applies defaults, and returns the resolved Config. configFile, when
// non-empty, overrides the default XDG path. A missing config file is not
// an error; Load creates a 0600 placeholder the first time it runs.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	path := configFile
	if path == "" {
		dir, err := appdir.ConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		path = filepath.Join(dir, configFileBaseName+"."+configFileExtensionNoDot)
		v.SetConfigName(configFileBaseName)
		v.SetConfigType(configFileExtensionNoDot)
		v.AddConfigPath(dir)
	} else {
		v.SetConfigFile(path)
	}

	if err := appdir.EnsureFile(path); err != nil {
		return nil, fmt.Errorf("ensuring config file: %w", err)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{
		ConfigFile:  path,
		Concurrency: v.GetInt("concurrency"),
		Print:       v.GetBool("print"),
		Stream:      v.GetString("stream"),
		Wordlist:    v.GetString("wordlist"),
		Filter: CacheFilter{
			Allow: v.GetStringSlice("modules"),
			Deny:  v.GetStringSlice("skips"),
		},
		Resolver: ResolverConfig{
			Timeout:     v.GetDuration("resolver.timeout"),
			Concurrency: v.GetInt("resolver.concurrency"),
			Disabled:    v.GetBool("resolver.disabled"),
			ListFile:    v.GetString("resolver.list"),
		},
		Requester: RequesterConfig{
			Timeout: v.GetDuration("requester.timeout"),
			Proxy:   v.GetString("requester.proxy"),
			Headers: v.GetStringMapString("requester.headers"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("print", false)
	v.SetDefault("resolver.timeout", defaultResolverTimeout)
	v.SetDefault("resolver.concurrency", defaultResolverConc)
	v.SetDefault("resolver.disabled", false)
	v.SetDefault("requester.timeout", defaultRequesterTimeout)
}
