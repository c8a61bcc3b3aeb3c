package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryValidate(t *testing.T) {
	valid := func() *Entry {
		return &Entry{
			Operation:   OperationConvert,
			Expression:  "3ft",
			Millimeters: "914.4",
			Unit:        "yd",
			Result:      "1yd",
		}
	}

	assert.NoError(t, valid().Validate())

	e := valid()
	e.Unit = "YD"
	assert.NoError(t, e.Validate())

	e = valid()
	e.Operation = "measure"
	assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)

	e = valid()
	e.Expression = ""
	assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)

	e = valid()
	e.Millimeters = ""
	assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)

	e = valid()
	e.Unit = "furlong"
	assert.ErrorIs(t, e.Validate(), ErrInvalidEntry)
}
