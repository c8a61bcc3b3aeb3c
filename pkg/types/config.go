package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/yardstick/pkg/fractions"
	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// Config holds backend selection and parameters for Logbook.Attach.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendSQLite: true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	return nil
}

// Format styles.
const (
	StyleDecimal  = "decimal"
	StyleFraction = "fraction"
)

// FormatConfig selects and parameterizes a measurement renderer. Scale is
// used by the decimal style, Denominator by the fraction style. Units is a
// comma-separated abbreviation list, largest unit first.
type FormatConfig struct {
	Style       string `json:"style" yaml:"style" mapstructure:"style"`
	Scale       int    `json:"scale" yaml:"scale" mapstructure:"scale"`
	Denominator int    `json:"denominator" yaml:"denominator" mapstructure:"denominator"`
	Units       string `json:"units" yaml:"units" mapstructure:"units"`
}

// Format configuration errors.
var (
	ErrUnknownStyle       = errors.New("unknown format style")
	ErrInvalidScale       = errors.New("scale must not be negative")
	ErrInvalidDenominator = errors.New("invalid denominator")
)

// DefaultFormatConfig renders yards, feet, and inches to the nearest
// sixteenth.
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		Style:       StyleFraction,
		Scale:       3,
		Denominator: 16,
		Units:       "yd,ft,in",
	}
}

// Validate checks the style, the parameter the style uses, and that every
// unit name is recognized. Unit ordering is checked when the renderer is
// built.
func (c FormatConfig) Validate() error {
	switch strings.ToLower(c.Style) {
	case StyleDecimal:
		if c.Scale < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidScale, c.Scale)
		}
	case StyleFraction:
		if err := fractions.ValidatePrecision(c.Denominator); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDenominator, err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStyle, c.Style)
	}
	if _, err := units.ParseList(c.Units); err != nil {
		return err
	}
	return nil
}
