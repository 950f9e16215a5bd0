// Package config loads the service configuration.
//
// Values come from the built-in defaults, then an optional YAML file, then
// ACTA_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the complete service configuration.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server"`

	// Generation configures document assembly.
	Generation GenerationConfig `yaml:"generation"`

	// Corrector configures the caption correction webhook.
	Corrector CorrectorConfig `yaml:"corrector"`

	// Log configures logging.
	Log LogConfig `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	// Port to listen on. Default: 9898
	Port int `yaml:"port"`
}

// GenerationConfig configures document assembly.
type GenerationConfig struct {
	// Timeout bounds one generation request. Default: 180s
	Timeout Duration `yaml:"timeout"`

	// Workers bounds how many sheets are laid out at once. 0 means one per CPU.
	Workers int `yaml:"workers"`

	// LogoPath is the company logo printed on every sheet. Empty leaves the logo out.
	LogoPath string `yaml:"logo_path"`
}

// CorrectorConfig configures the caption correction webhook.
type CorrectorConfig struct {
	// URL of the webhook. Empty disables correction.
	URL string `yaml:"url"`

	// Timeout bounds the whole exchange, retries included. Default: 120s
	Timeout Duration `yaml:"timeout"`

	// RetryMax is the number of retries after the first attempt. Default: 2
	RetryMax int `yaml:"retry_max"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is a zerolog level name. Default: info
	Level string `yaml:"level"`

	// Format is "json" or "console". Default: console
	Format string `yaml:"format"`
}

// Duration is a time.Duration written as "90s" or "2m" in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 9898},
		Generation: GenerationConfig{
			Timeout: Duration(180 * time.Second),
		},
		Corrector: CorrectorConfig{
			Timeout:  Duration(120 * time.Second),
			RetryMax: 2,
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load builds the configuration from the defaults, the file at path (skipped
// when path is empty) and the process environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile merges a YAML file into c.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// applyEnv applies ACTA_* overrides.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	dur := func(key string, dst *Duration) {
		if v, ok := lookup(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = Duration(d)
		}
	}

	num("ACTA_PORT", &c.Server.Port)
	dur("ACTA_GENERATION_TIMEOUT", &c.Generation.Timeout)
	num("ACTA_WORKERS", &c.Generation.Workers)
	str("ACTA_LOGO_PATH", &c.Generation.LogoPath)
	str("ACTA_WEBHOOK_URL", &c.Corrector.URL)
	dur("ACTA_WEBHOOK_TIMEOUT", &c.Corrector.Timeout)
	str("ACTA_LOG_LEVEL", &c.Log.Level)
	str("ACTA_LOG_FORMAT", &c.Log.Format)

	return errors.Join(errs...)
}

// Validate reports values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Generation.Timeout <= 0 {
		errs = append(errs, errors.New("generation.timeout must be positive"))
	}
	if c.Generation.Workers < 0 {
		errs = append(errs, errors.New("generation.workers must not be negative"))
	}
	if c.Corrector.Timeout <= 0 {
		errs = append(errs, errors.New("corrector.timeout must be positive"))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, fmt.Errorf("log.format %q: want json or console", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Logger builds the root logger writing to w.
func (l LogConfig) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if l.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
