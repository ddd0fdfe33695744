package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/app"
	"github.com/artpar/thermogate/domain/subscriber"
	"github.com/artpar/thermogate/pkg/jsonapi"
)

//go:embed static/index.html
var indexPage []byte

const maxSubscribeBody = 64 << 10

// SubscriberService records and lists subscribers. app.SubscriberService
// implements it.
type SubscriberService interface {
	Subscribe(ctx context.Context, in subscriber.Input) (subscriber.Subscriber, error)
	List(ctx context.Context, limit, offset int) ([]subscriber.Subscriber, int, error)
}

// SubscriberHandler serves the index page and the subscriber endpoints.
type SubscriberHandler struct {
	service SubscriberService
	logger  zerolog.Logger
}

// NewSubscriberHandler creates a subscriber handler.
func NewSubscriberHandler(service SubscriberService, logger zerolog.Logger) *SubscriberHandler {
	return &SubscriberHandler{service: service, logger: logger}
}

// Index serves the landing page with the subscription form.
func (h *SubscriberHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

// Subscribe registers a subscriber from a form post or a JSON body.
//
//	@Summary		Subscribe to the newsletter
//	@Tags			Subscribers
//	@Accept			x-www-form-urlencoded
//	@Accept			json
//	@Param			body	body	subscriber.Input	true	"Subscriber"
//	@Success		204
//	@Failure		409	{object}	jsonapi.Document
//	@Failure		415	{object}	jsonapi.Document
//	@Failure		422	{object}	jsonapi.Document
//	@Router			/subscribe [post]
func (h *SubscriberHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	in, errDoc := decodeSubscriber(w, r)
	if errDoc != nil {
		jsonapi.WriteError(w, *errDoc)
		return
	}

	_, err := h.service.Subscribe(r.Context(), in)
	var verr *app.ValidationError
	switch {
	case err == nil:
		jsonapi.WriteNoContent(w)
	case errors.As(err, &verr):
		jsonapi.WriteError(w, jsonapi.ErrValidation(verr.Field, verr.Err.Error()))
	case errors.Is(err, subscriber.ErrAlreadySubscribed):
		jsonapi.WriteError(w, jsonapi.ErrConflict("This email is already subscribed"))
	default:
		h.logger.Error().Err(err).Msg("store subscriber failed")
		jsonapi.WriteError(w, jsonapi.ErrInternal())
	}
}

func decodeSubscriber(w http.ResponseWriter, r *http.Request) (subscriber.Input, *jsonapi.Error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSubscribeBody)

	mediaType := "application/x-www-form-urlencoded"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		parsed, _, err := mime.ParseMediaType(ct)
		if err != nil {
			e := jsonapi.ErrUnsupportedMediaType(ct)
			return subscriber.Input{}, &e
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json", jsonapi.ContentType:
		var in subscriber.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			e := jsonapi.ErrBadRequest("Request body is not valid JSON")
			return subscriber.Input{}, &e
		}
		return in, nil
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxSubscribeBody); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			e := jsonapi.ErrBadRequest("Request body is not a valid form")
			return subscriber.Input{}, &e
		}
		return subscriber.Input{
			Name:  r.PostFormValue("name"),
			Email: r.PostFormValue("email"),
		}, nil
	default:
		e := jsonapi.ErrUnsupportedMediaType(mediaType)
		return subscriber.Input{}, &e
	}
}

// List returns one page of subscribers.
//
//	@Summary		List subscribers
//	@Tags			Subscribers
//	@Produce		json
//	@Param			page[number]	query		int	false	"Page number"
//	@Param			page[size]		query		int	false	"Page size"
//	@Success		200				{object}	jsonapi.Document
//	@Failure		401				{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/api/subscribers [get]
func (h *SubscriberHandler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := jsonapi.ParsePage(r.URL.Query())
	p := jsonapi.NewPagination(0, page, perPage, r.URL.Path)

	subs, total, err := h.service.List(r.Context(), p.Limit(), p.Offset())
	if err != nil {
		h.logger.Error().Err(err).Msg("list subscribers failed")
		jsonapi.WriteError(w, jsonapi.ErrInternal())
		return
	}
	p.Total = total

	resources := make([]jsonapi.Resource, 0, len(subs))
	for _, s := range subs {
		resources = append(resources, jsonapi.NewResource("subscribers", s.ID).
			Attr("name", s.Name).
			Attr("email", s.Email).
			Attr("created_at", s.CreatedAt.Format(time.RFC3339)).
			Build())
	}

	jsonapi.WriteCollection(w, http.StatusOK, resources, p)
}
