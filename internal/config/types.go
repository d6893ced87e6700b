package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
)

const (
	// DefaultMarker is the marker line the TOC is spliced between.
	DefaultMarker = "[](TOC)"

	DefaultDialect          = "github"
	DefaultKeepHeaderLevels = 3
)

const dialectTokens = "github cmark gitlab redcarpet"

// Config is one mdtoc.toml, immutable for the duration of a run.
type Config struct {
	Defaults  Defaults          `koanf:"defaults"`
	Targets   map[string]Target `koanf:"targets" validate:"dive"`
	ConfigDir string            `koanf:"-"`
}

// Defaults apply to every target and to ad-hoc builds that do not override
// them on the command line.
type Defaults struct {
	Dialect          string `koanf:"dialect"            validate:"omitempty,oneof=github cmark gitlab redcarpet"`
	KeepHeaderLevels int    `koanf:"keep_header_levels" validate:"omitempty,min=1,max=6"`
	Ordered          bool   `koanf:"ordered"`
	NoLinks          bool   `koanf:"no_links"`
	Marker           string `koanf:"marker"`
}

// Target names a set of files to keep a TOC spliced into.
type Target struct {
	Pattern          string `koanf:"pattern"            validate:"required"`
	Dialect          string `koanf:"dialect"            validate:"omitempty,oneof=github cmark gitlab redcarpet"`
	KeepHeaderLevels int    `koanf:"keep_header_levels" validate:"omitempty,min=1,max=6"`
	Marker           string `koanf:"marker"`
}

func (c *Config) ApplyDefaults() {
	if c.Defaults.Dialect == "" {
		c.Defaults.Dialect = DefaultDialect
	}
	if c.Defaults.KeepHeaderLevels == 0 {
		c.Defaults.KeepHeaderLevels = DefaultKeepHeaderLevels
	}
	if c.Defaults.Marker == "" {
		c.Defaults.Marker = DefaultMarker
	}
}

// DialectFor returns the dialect token effective for a target.
func (c *Config) DialectFor(t Target) string {
	if t.Dialect != "" {
		return t.Dialect
	}

	return c.Defaults.Dialect
}

// KeepHeaderLevelsFor returns the heading depth effective for a target.
func (c *Config) KeepHeaderLevelsFor(t Target) int {
	if t.KeepHeaderLevels != 0 {
		return t.KeepHeaderLevels
	}

	return c.Defaults.KeepHeaderLevels
}

// MarkerFor returns the marker line effective for a target.
func (c *Config) MarkerFor(t Target) string {
	if t.Marker != "" {
		return t.Marker
	}

	return c.Defaults.Marker
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if valErr := v.Struct(c.Defaults); valErr != nil {
		return mapValidationError("defaults", valErr)
	}

	for targetName, targetCfg := range c.Targets {
		if valErr := v.Struct(targetCfg); valErr != nil {
			return mapValidationError(targetName, valErr)
		}
	}

	return nil
}

func mapValidationError(section string, valErr error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(valErr, &validationErrors) {
		return oops.
			Code("CONFIG_INVALID").
			With("section", section).
			Wrapf(valErr, "validating %q", section)
	}

	for _, fe := range validationErrors {
		field := strings.ToLower(fe.Field())

		switch {
		case fe.Tag() == "oneof" && field == "dialect":
			return oops.
				Code("UNKNOWN_DIALECT").
				With("section", section).
				With("dialect", fe.Value()).
				Hint("Supported dialects: " + dialectTokens).
				Errorf("unknown dialect %q in %q", fe.Value(), section)

		case fe.Tag() == "required" && field == "pattern":
			return oops.
				Code("CONFIG_INVALID").
				With("target", section).
				With("field", "pattern").
				Hint("Set pattern to a file path or doublestar glob").
				Errorf("missing pattern for target %q", section)

		case field == "keepheaderlevels":
			return oops.
				Code("CONFIG_INVALID").
				With("section", section).
				With("field", "keep_header_levels").
				Hint("keep_header_levels must be between 1 and 6").
				Errorf("invalid keep_header_levels in %q", section)

		default:
			return oops.
				Code("CONFIG_INVALID").
				With("section", section).
				With("field", field).
				With("tag", fe.Tag()).
				Errorf("validation failed for field %q in %q", field, section)
		}
	}

	return nil
}
