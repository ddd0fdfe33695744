// Package app contains the application services that sit between the HTTP
// adapter and the stores.
package app

import (
	"github.com/artpar/thermogate/domain/conversion"
	"github.com/artpar/thermogate/domain/usage"
	"github.com/artpar/thermogate/ports"
)

// ConversionService performs temperature conversions and accounts for each
// one in the usage counters.
type ConversionService struct {
	recorder ports.UsageRecorder
}

// NewConversionService creates a conversion service.
func NewConversionService(recorder ports.UsageRecorder) *ConversionService {
	return &ConversionService{recorder: recorder}
}

// ToCelsius converts f degrees Fahrenheit. The usage increment is queued and
// not awaited.
func (s *ConversionService) ToCelsius(f float64) (conversion.Temperature, error) {
	return s.account(usage.OpToCelsius, conversion.ToCelsius(f))
}

// ToFahrenheit converts c degrees Celsius. The usage increment is queued and
// not awaited.
func (s *ConversionService) ToFahrenheit(c float64) (conversion.Temperature, error) {
	return s.account(usage.OpToFahrenheit, conversion.ToFahrenheit(c))
}

// account records op only for results that can be returned to the caller.
func (s *ConversionService) account(op usage.Operation, result conversion.Temperature) (conversion.Temperature, error) {
	if !result.Finite() {
		return conversion.Temperature{}, conversion.ErrOutOfRange
	}
	s.recorder.Record(op)
	return result, nil
}
