package http

import (
	"net/http"

	"github.com/artpar/thermogate/pkg/jsonapi"
	"github.com/artpar/thermogate/ports"
)

// UsageHandler exposes the usage counters.
type UsageHandler struct {
	counters ports.UsageCounters
}

// NewUsageHandler creates a usage handler.
func NewUsageHandler(counters ports.UsageCounters) *UsageHandler {
	return &UsageHandler{counters: counters}
}

// Get returns a snapshot of the counters.
//
//	@Summary		Usage counters
//	@Description	Number of conversions served per operation since startup
//	@Tags			Usage
//	@Produce		json
//	@Success		200	{object}	jsonapi.Document
//	@Failure		401	{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/api/usage [get]
func (h *UsageHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap := h.counters.Snapshot().WithKnown()

	rb := jsonapi.NewResource("usage", "current")
	for op, n := range snap {
		rb.Attr(string(op), n)
	}
	rb.Meta("total", snap.Total())

	jsonapi.WriteResource(w, http.StatusOK, rb.Build())
}
