package cli

import (
	"errors"

	"github.com/mesh-intelligence/yardstick/pkg/format"
	"github.com/mesh-intelligence/yardstick/pkg/fractions"
	"github.com/mesh-intelligence/yardstick/pkg/measure"
	"github.com/mesh-intelligence/yardstick/pkg/types"
	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userErrors are caused by bad input and exit with exitUserError.
var userErrors = []error{
	units.ErrUnrecognizedUnit,
	measure.ErrNumberFormat,
	measure.ErrDivisionByZero,
	measure.ErrUnknownOperator,
	fractions.ErrInvalidPrecision,
	format.ErrNoUnits,
	format.ErrUnitsNotDescending,
	format.ErrInvalidScale,
	types.ErrUnknownStyle,
	types.ErrInvalidScale,
	types.ErrInvalidDenominator,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidEntry,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
}

// classify wraps err with the exit code its cause calls for.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return &exitError{code: exitUserError, err: err}
		}
	}
	return &exitError{code: exitSysError, err: err}
}

func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}
