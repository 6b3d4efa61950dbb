// Package config loads serviceform settings from an optional YAML file and
// SERVICEFORM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/goliatone/go-serviceform/pkg/catalog"
	"github.com/goliatone/go-serviceform/pkg/form"
	"github.com/goliatone/go-serviceform/pkg/renderers/tui"
)

// EnvPrefix is prepended to every key when read from the environment, e.g.
// SERVICEFORM_LOG_LEVEL.
const EnvPrefix = "SERVICEFORM"

// Keys understood by Load.
const (
	KeyVariant     = "variant"
	KeyOutput      = "output"
	KeyCatalogPath = "catalog_path"
	KeyLogLevel    = "log_level"
	KeyLogFormat   = "log_format"
)

// Config holds the resolved settings.
type Config struct {
	Variant     string `mapstructure:"variant" validate:"oneof=multi single"`
	Output      string `mapstructure:"output" validate:"oneof=json form pretty"`
	CatalogPath string `mapstructure:"catalog_path"`
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat   string `mapstructure:"log_format" validate:"oneof=json console"`
}

var defaults = map[string]any{
	KeyVariant:     string(form.VariantMulti),
	KeyOutput:      string(tui.OutputFormatJSON),
	KeyCatalogPath: "",
	KeyLogLevel:    "info",
	KeyLogFormat:   "console",
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Load resolves settings in increasing precedence: defaults, the file at
// path (skipped when empty), environment variables, then non-empty
// overrides such as command line flags.
func Load(path string, overrides map[string]string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	for key, value := range overrides {
		if strings.TrimSpace(value) == "" {
			continue
		}
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Variant = strings.ToLower(strings.TrimSpace(cfg.Variant))
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its allowed values.
func (c Config) Validate() error {
	err := structValidator().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("config: %s", strings.Join(messages, "; "))
}

// FormVariant returns the configured sub-service layout.
func (c Config) FormVariant() form.Variant {
	variant, err := form.ParseVariant(c.Variant)
	if err != nil {
		return form.VariantMulti
	}
	return variant
}

// OutputFormat returns the configured encoder name.
func (c Config) OutputFormat() tui.OutputFormat {
	return tui.OutputFormat(c.Output)
}

// Catalog returns the embedded catalog, merged with the overlay file when
// CatalogPath is set.
func (c Config) Catalog() (catalog.Catalog, error) {
	if c.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(c.CatalogPath)
}

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}
