package measure

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOperator is returned by ParseOperator for unrecognized symbols.
var ErrUnknownOperator = errors.New("unknown operator")

// Operator is one of the four arithmetic operations on measurements.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
)

var operatorSymbols = [...]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "×",
	Divide:   "÷",
}

// aliases maps accepted spellings to operators. Symbols are matched
// exactly, words ignoring case.
var aliases = map[string]Operator{
	"+":        Add,
	"add":      Add,
	"plus":     Add,
	"-":        Subtract,
	"subtract": Subtract,
	"minus":    Subtract,
	"×":        Multiply,
	"*":        Multiply,
	"x":        Multiply,
	"multiply": Multiply,
	"times":    Multiply,
	"÷":        Divide,
	"/":        Divide,
	"divide":   Divide,
}

// Symbol returns the display symbol: + - × ÷.
func (o Operator) Symbol() string {
	if o < Add || o > Divide {
		return "?"
	}
	return operatorSymbols[o]
}

func (o Operator) String() string {
	return o.Symbol()
}

// ParseOperator resolves a symbol or word to an Operator.
func ParseOperator(text string) (Operator, error) {
	if op, ok := aliases[strings.ToLower(strings.TrimSpace(text))]; ok {
		return op, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, text)
}

// Apply evaluates a <op> b. The result is displayed in a's unit.
func (o Operator) Apply(a, b Measurement) (Measurement, error) {
	switch o {
	case Add:
		return a.Add(b), nil
	case Subtract:
		return a.Subtract(b), nil
	case Multiply:
		return a.Multiply(b), nil
	case Divide:
		return a.Divide(b)
	default:
		return Measurement{}, fmt.Errorf("%w: %d", ErrUnknownOperator, int(o))
	}
}
