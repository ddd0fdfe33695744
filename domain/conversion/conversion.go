// Package conversion provides the temperature conversion formulas.
// Every function here is PURE.
package conversion

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrNotNumeric is returned when a path value is not a finite number.
	ErrNotNumeric = errors.New("conversion: value is not a finite number")
	// ErrOutOfRange is returned when a finite input converts to a value
	// outside the float64 range.
	ErrOutOfRange = errors.New("conversion: result is out of range")
)

// Temperature is the response payload of both conversions.
type Temperature struct {
	Fahrenheit float64 `json:"fahrenheit" example:"212"`
	Celsius    float64 `json:"celsius" example:"100"`
}

// Finite reports whether both fields are finite numbers.
func (t Temperature) Finite() bool {
	return !math.IsInf(t.Fahrenheit, 0) && !math.IsNaN(t.Fahrenheit) &&
		!math.IsInf(t.Celsius, 0) && !math.IsNaN(t.Celsius)
}

// ToCelsius converts degrees Fahrenheit.
func ToCelsius(f float64) Temperature {
	return Temperature{
		Fahrenheit: f,
		Celsius:    (f - 32) / 1.8,
	}
}

// ToFahrenheit converts degrees Celsius.
func ToFahrenheit(c float64) Temperature {
	return Temperature{
		Fahrenheit: c*1.8 + 32,
		Celsius:    c,
	}
}

// ParseValue parses a path parameter into a finite float.
func ParseValue(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, ErrNotNumeric
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotNumeric
	}
	return v, nil
}
