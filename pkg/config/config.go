// Package config loads navigator settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/aretw0/navkit"
	"github.com/aretw0/navkit/internal/logging"
	"github.com/aretw0/navkit/pkg/domain"
	"github.com/aretw0/navkit/pkg/registry"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the decoded configuration file.
type Config struct {
	MaxHistory     int               `mapstructure:"max_history"`
	NestedOverlays bool              `mapstructure:"nested_overlays"`
	ClearPolicy    string            `mapstructure:"clear_policy"`
	LogLevel       string            `mapstructure:"log_level"`
	LogFormat      string            `mapstructure:"log_format"`
	Routes         map[string]string `mapstructure:"routes"`
}

// Default returns the settings used by the bundled demo.
func Default() *Config {
	return &Config{
		MaxHistory:  20,
		ClearPolicy: string(domain.ClearDispose),
		LogLevel:    "info",
		LogFormat:   string(logging.FormatText),
		Routes: map[string]string{
			"start":        "start",
			"users":        "users.list",
			"users.show":   "users.show",
			"users.create": "users.create",
			"users.edit":   "users.edit",
			"confirm":      "confirm",
		},
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default. A routes section replaces the default
// routes as a whole.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg := Default()
	if routes, ok := raw["routes"]; ok && routes != nil {
		cfg.Routes = nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and route identifiers.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxHistory < 0 {
		errs = append(errs, fmt.Errorf("%w: max_history must not be negative, got %d", ErrInvalid, c.MaxHistory))
	}
	if !domain.ClearPolicy(c.ClearPolicy).Valid() {
		errs = append(errs, fmt.Errorf("%w: unknown clear_policy %q", ErrInvalid, c.ClearPolicy))
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalid, err))
	}
	if len(c.Routes) == 0 {
		errs = append(errs, fmt.Errorf("%w: no routes", ErrInvalid))
	}
	for _, screen := range c.Screens() {
		if screen == "" || c.Routes[string(screen)] == "" {
			errs = append(errs, fmt.Errorf("%w: route %q has an empty identifier", ErrInvalid, screen))
		}
	}
	return errors.Join(errs...)
}

// Screens returns the configured screen ids, sorted.
func (c *Config) Screens() []domain.ScreenID {
	out := make([]domain.ScreenID, 0, len(c.Routes))
	for s := range c.Routes {
		out = append(out, domain.ScreenID(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Table builds the registration table from the routes.
func (c *Config) Table() (*registry.Table, error) {
	b := registry.NewBuilder()
	for screen, kind := range c.Routes {
		b.Register(domain.ScreenID(screen), domain.ViewModelKind(kind))
	}
	return b.Build()
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	return logging.ParseLevel(c.LogLevel)
}

// Format returns the configured log handler format.
// Validate rejects unknown names, so an invalid value falls back to text.
func (c *Config) Format() logging.Format {
	f, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return logging.FormatText
	}
	return f
}

// Options translates the settings into navigator options.
func (c *Config) Options() []navkit.Option {
	return []navkit.Option{
		navkit.WithMaxHistory(c.MaxHistory),
		navkit.WithNestedOverlays(c.NestedOverlays),
		navkit.WithClearPolicy(domain.ClearPolicy(c.ClearPolicy)),
	}
}
