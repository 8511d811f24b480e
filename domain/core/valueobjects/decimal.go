package valueobjects

import (
	"errors"
	"math"
	"strconv"
)

// Decimal is a fixed-precision number kept in its decimal text form so it
// reaches the store exactly as rounded, e.g. "87.4" rather than
// "87.40000000000001".
type Decimal struct {
	value string
}

// NewDecimal rounds f half away from zero to the given number of decimal
// places.
func NewDecimal(f float64, places int) Decimal {
	if places < 0 {
		places = 0
	}
	scale := math.Pow(10, float64(places))
	rounded := math.Round(f*scale) / scale
	return Decimal{value: strconv.FormatFloat(rounded, 'f', places, 64)}
}

// ParseDecimal creates a Decimal from its text form
func ParseDecimal(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, errors.New("decimal cannot be empty")
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return Decimal{}, errors.New("decimal must be numeric")
	}
	return Decimal{value: s}, nil
}

// String returns the exact decimal text
func (d Decimal) String() string {
	return d.value
}

// Float64 returns the nearest float64, for comparisons only
func (d Decimal) Float64() float64 {
	f, _ := strconv.ParseFloat(d.value, 64)
	return f
}

// Places returns the number of digits after the decimal point
func (d Decimal) Places() int {
	for i := 0; i < len(d.value); i++ {
		if d.value[i] == '.' {
			return len(d.value) - i - 1
		}
	}
	return 0
}

// IsZero checks if the Decimal is the zero value (unset)
func (d Decimal) IsZero() bool {
	return d.value == ""
}

// MarshalJSON writes the decimal as a bare JSON number
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d.value == "" {
		return []byte("null"), nil
	}
	return []byte(d.value), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Decimal) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Decimal{}
		return nil
	}
	parsed, err := ParseDecimal(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
