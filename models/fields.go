package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Check is a 0/1 flag that also accepts JSON booleans and quoted digits.
type Check bool

func (c *Check) UnmarshalJSON(b []byte) error {
	switch strings.Trim(string(b), `"`) {
	case "1", "true":
		*c = true
	case "0", "false", "", "null":
		*c = false
	default:
		return fmt.Errorf("invalid check value %s", b)
	}
	return nil
}

func (c Check) MarshalJSON() ([]byte, error) {
	if c {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

// Float is a lenient number: JSON numbers, numeric strings, empty string and
// null are all accepted, the last two as zero.
type Float struct {
	decimal.Decimal
}

func NewFloat(d decimal.Decimal) Float {
	return Float{d}
}

func (f *Float) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		f.Decimal = decimal.Zero
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	if s == "" {
		f.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	f.Decimal = d
	return nil
}
