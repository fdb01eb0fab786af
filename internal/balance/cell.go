package balance

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cell is one position in a balance column. A blank cell marks a side that
// does not apply to the account, which is distinct from a zero balance.
type Cell struct {
	Value decimal.Decimal
	Valid bool
}

// Blank is the empty marker.
var Blank = Cell{}

// Amount returns a non-blank cell holding d.
func Amount(d decimal.Decimal) Cell {
	return Cell{Value: d, Valid: true}
}

// IsBlank reports whether c is the empty marker.
func (c Cell) IsBlank() bool {
	return !c.Valid
}

func (c Cell) String() string {
	if !c.Valid {
		return ""
	}
	return c.Value.String()
}

// MarshalJSON renders a blank cell as "" and a value as a decimal string.
func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte(`""`), nil
	}
	return c.Value.MarshalJSON()
}

// UnmarshalJSON accepts "" (or null) as blank and anything decimal accepts as a value.
func (c *Cell) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`""`)) || bytes.Equal(data, []byte("null")) {
		*c = Blank
		return nil
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decoding balance cell: %w", err)
	}
	*c = Amount(d)
	return nil
}
