package types

import (
	"fmt"
	"time"

	"github.com/mesh-intelligence/yardstick/pkg/units"
)

// Entry operations, one per CLI command that can save its result.
const (
	OperationConvert = "convert"
	OperationCalc    = "calc"
	OperationFormat  = "format"
	OperationParse   = "parse"
)

var validOperations = map[string]bool{
	OperationConvert: true,
	OperationCalc:    true,
	OperationFormat:  true,
	OperationParse:   true,
}

// Entry is one recorded measurement result.
type Entry struct {
	EntryID     string    `json:"entry_id"`    // UUID v7, generated on record.
	Operation   string    `json:"operation"`   // One of the Operation constants.
	Expression  string    `json:"expression"`  // The input as typed, e.g. "3ft + 4in".
	Millimeters string    `json:"millimeters"` // Exact result in millimeters.
	Unit        string    `json:"unit"`        // Result unit abbreviation.
	Result      string    `json:"result"`      // Result in its own unit, e.g. "3.3333333333ft".
	Formatted   string    `json:"formatted"`   // Rendered text, when a formatter ran.
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks that the entry names a known operation and unit and
// carries an expression and a result.
func (e *Entry) Validate() error {
	if !validOperations[e.Operation] {
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidEntry, e.Operation)
	}
	if e.Expression == "" {
		return fmt.Errorf("%w: empty expression", ErrInvalidEntry)
	}
	if e.Millimeters == "" {
		return fmt.Errorf("%w: empty result", ErrInvalidEntry)
	}
	if _, err := units.Lookup(e.Unit); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	return nil
}

// EntryFilter narrows List results. Zero values match everything.
type EntryFilter struct {
	Operation string
	Unit      string
	Limit     int
}
