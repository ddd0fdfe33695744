package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/artpar/thermogate/domain/conversion"
	"github.com/artpar/thermogate/pkg/jsonapi"
)

// Converter performs accounted conversions. app.ConversionService implements it.
type Converter interface {
	ToCelsius(f float64) (conversion.Temperature, error)
	ToFahrenheit(c float64) (conversion.Temperature, error)
}

// ConversionHandler serves the conversion endpoints.
type ConversionHandler struct {
	converter Converter
}

// NewConversionHandler creates a conversion handler.
func NewConversionHandler(converter Converter) *ConversionHandler {
	return &ConversionHandler{converter: converter}
}

// ToCelsius converts a Fahrenheit path value.
//
//	@Summary		Convert Fahrenheit to Celsius
//	@Tags			Conversion
//	@Produce		json
//	@Param			value	path		number	true	"Degrees Fahrenheit"
//	@Success		200		{object}	conversion.Temperature
//	@Failure		400		{object}	jsonapi.Document
//	@Failure		401		{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/api/to-celsius/{value} [get]
func (h *ConversionHandler) ToCelsius(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, h.converter.ToCelsius)
}

// ToFahrenheit converts a Celsius path value.
//
//	@Summary		Convert Celsius to Fahrenheit
//	@Tags			Conversion
//	@Produce		json
//	@Param			value	path		number	true	"Degrees Celsius"
//	@Success		200		{object}	conversion.Temperature
//	@Failure		400		{object}	jsonapi.Document
//	@Failure		401		{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/api/to-fahrenheit/{value} [get]
func (h *ConversionHandler) ToFahrenheit(w http.ResponseWriter, r *http.Request) {
	h.convert(w, r, h.converter.ToFahrenheit)
}

func (h *ConversionHandler) convert(w http.ResponseWriter, r *http.Request, fn func(float64) (conversion.Temperature, error)) {
	value, err := conversion.ParseValue(chi.URLParam(r, "value"))
	if err != nil {
		jsonapi.WriteError(w, jsonapi.ErrInvalidParameter("value", "value must be a finite number"))
		return
	}

	result, err := fn(value)
	if err != nil {
		jsonapi.WriteError(w, jsonapi.ErrInvalidParameter("value", "conversion result is out of range"))
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		jsonapi.WriteError(w, jsonapi.ErrInternal())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}
