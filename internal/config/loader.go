package config

import (
	"os"
	"reflect"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/wgalyen/kimchi/internal/domain"
)

// Load merges defaults, an optional TOML config file, and whatever CLI
// flags the caller has already bound onto v (via viper.BindPFlag),
// exactly the donor's layering order: defaults → file → env → CLI.
//
// configPath is the explicit --config value; "" falls back to
// DefaultConfigPath, and a missing file at the default path is not an
// error (ReadInConfig's ConfigFileNotFoundError is swallowed there,
// same as the donor does for its own optional config.yaml).
func Load(v *viper.Viper, configPath string) (*CheckerConfig, error) {
	setDefaults(v)

	if configPath == "" {
		configPath = DefaultConfigPath
	}
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")

	explicit := configPath != DefaultConfigPath
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !explicit && os.IsNotExist(err) {
				// default path absent: fine, defaults/flags/env still apply
			} else {
				return nil, &domain.ConfigError{Field: "config", Err: err}
			}
		} else if explicit {
			return nil, &domain.ConfigError{Field: "config", Err: err}
		}
	}

	// GITHUB_TOKEN is the one environment variable spec §6 says overrides
	// regardless of prefix; bind it explicitly since AutomaticEnv below
	// only recognizes the KIMCHI_ prefix.
	v.SetEnvPrefix("KIMCHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		v.Set("github_token", token)
	}

	var cfg CheckerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &domain.ConfigError{Field: "config", Err: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults registers every CheckerConfig key with viper so
// AutomaticEnv and BindPFlag resolve against a known key set, the same
// pattern the donor's setDefaults(v) follows.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("max_concurrency", d.MaxConcurrency)
	v.SetDefault("max_redirects", d.MaxRedirects)
	v.SetDefault("timeout_seconds", d.TimeoutSeconds)
	v.SetDefault("method", d.Method)
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("accepted_status", []uint16{})
	v.SetDefault("scheme", "")
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("exclude_private", false)
	v.SetDefault("exclude_link_local", false)
	v.SetDefault("exclude_loopback", false)
	v.SetDefault("headers", map[string]string{})
	v.SetDefault("github_token", "")
	v.SetDefault("allow_insecure_tls", false)
	v.SetDefault("base_url", "")
	v.SetDefault("glob_ignore_case", false)
	v.SetDefault("skip_missing_inputs", false)
	v.SetDefault("verbose", false)
}

// Save writes cfg as a starter TOML file at path, keys matching the
// option names from spec §6 exactly: each field is written under its
// mapstructure tag, the same key Load reads it back from.
func Save(cfg *CheckerConfig, path string) error {
	values := map[string]any{}
	rv := reflect.ValueOf(cfg).Elem()
	for i := 0; i < rv.NumField(); i++ {
		key := rv.Type().Field(i).Tag.Get("mapstructure")
		field := rv.Field(i)
		if key == "" || key == "-" || (field.Kind() == reflect.Pointer && field.IsNil()) {
			continue
		}
		values[key] = field.Interface()
	}
	data, err := toml.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
