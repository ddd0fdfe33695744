package http

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/domain/key"
	"github.com/artpar/thermogate/pkg/jsonapi"
)

// Authenticator decides whether a presented token grants access.
// app.KeyService implements it.
type Authenticator interface {
	// Authenticate returns "" for a valid token, otherwise a key.Reason*
	// value. A non-nil error means the answer is unknown.
	Authenticate(ctx context.Context, token string) (string, error)

	// Reject records a failure detected before the token could be read.
	Reject(reason string)
}

type contextKey int

const tokenKey contextKey = iota

// TokenFromContext returns the API key that authenticated the request.
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// RequireAPIKey guards next with HTTP Basic authentication. The username is
// the API key and the password is ignored. Rejected requests never reach next.
func RequireAPIKey(auth Authenticator, logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _, ok := r.BasicAuth()
			if !ok {
				if r.Header.Get("Authorization") == "" {
					auth.Reject(key.ReasonMissing)
				} else {
					auth.Reject(key.ReasonMalformed)
				}
				writeUnauthorized(w)
				return
			}

			reason, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				logger.Error().Err(err).Str("path", r.URL.Path).Msg("api key validation failed")
				jsonapi.WriteError(w, jsonapi.ErrInternal())
				return
			}
			if reason != "" {
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), tokenKey, token)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Basic realm="thermogate"`)
	jsonapi.WriteError(w, jsonapi.ErrUnauthorized())
}
