package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"

	"github.com/ygrebnov/errorc"
	"gopkg.in/yaml.v3"

	"github.com/ygrebnov/bind/constants"
	"github.com/ygrebnov/bind/errors"
)

// Config holds the context-wide defaults of a binding context.
type Config struct {
	// Nillable is the default for classes and properties without an explicit nillable directive.
	Nillable bool `yaml:"nillable"`
	// DateFormat is a time layout used when a property declares no date format.
	DateFormat string `yaml:"date_format"`
	Locale     string `yaml:"locale"`

	PropertyNaming NamingStrategy `yaml:"property_naming"`
	PropertyOrder  OrderStrategy  `yaml:"property_order"`
}

// Default returns the configuration used when none is supplied.
func Default() Config {
	var c Config
	applyDefaults(&c)
	return c
}

// WithDefaults returns a copy of c with every unset field filled in.
func (c Config) WithDefaults() Config {
	applyDefaults(&c)
	return c
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errorc.With(
			errors.ErrInvalidConfig,
			errorc.String(errors.ErrorFieldConfigKey, "path"),
			errorc.String(errors.ErrorFieldConfigValue, path),
			errorc.Error(errors.ErrorFieldCause, err),
		)
	}
	defer f.Close()

	return Load(f)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (Config, error) {
	return Load(bytes.NewReader(data))
}

// Load decodes YAML from r, fills in defaults and validates the result.
// Unknown keys are rejected. Empty input yields Default().
func Load(r io.Reader) (Config, error) {
	var c Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !stderrors.Is(err, io.EOF) {
		return Config{}, errorc.With(errors.ErrInvalidConfig, errorc.Error(errors.ErrorFieldCause, err))
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.DateFormat == "" {
		c.DateFormat = constants.DefaultDateFormat
	}
	if c.Locale == "" {
		c.Locale = constants.DefaultLocale
	}
	if c.PropertyNaming == "" {
		c.PropertyNaming = Identity
	}
	if c.PropertyOrder == "" {
		c.PropertyOrder = Lexicographical
	}
}

// Validate checks that every strategy is known and that a date format is set.
func (c Config) Validate() error {
	if !c.PropertyNaming.valid() {
		return errorc.With(
			errors.ErrUnknownNamingStrategy,
			errorc.String(errors.ErrorFieldConfigKey, "property_naming"),
			errorc.String(errors.ErrorFieldConfigValue, string(c.PropertyNaming)),
		)
	}
	if !c.PropertyOrder.valid() {
		return errorc.With(
			errors.ErrUnknownOrderStrategy,
			errorc.String(errors.ErrorFieldConfigKey, "property_order"),
			errorc.String(errors.ErrorFieldConfigValue, string(c.PropertyOrder)),
		)
	}
	if c.DateFormat == "" {
		return errorc.With(errors.ErrInvalidConfig, errorc.String(errors.ErrorFieldConfigKey, "date_format"))
	}
	return nil
}
