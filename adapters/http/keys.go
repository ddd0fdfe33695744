package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/artpar/thermogate/domain/key"
	"github.com/artpar/thermogate/pkg/jsonapi"
)

// KeyManager issues and revokes API keys. app.KeyService implements it.
type KeyManager interface {
	Issue(ctx context.Context) (string, error)
	Revoke(ctx context.Context, token string) error
	RevokeOther(ctx context.Context, caller, target string) error
}

// KeyHandler serves the /api-key endpoints.
type KeyHandler struct {
	keys   KeyManager
	logger zerolog.Logger
}

// NewKeyHandler creates a key handler.
func NewKeyHandler(keys KeyManager, logger zerolog.Logger) *KeyHandler {
	return &KeyHandler{keys: keys, logger: logger}
}

// Issue creates a new API key.
//
//	@Summary		Request an API key
//	@Description	Issues a new API key. No authentication is required. The body is the key followed by CRLF.
//	@Tags			Keys
//	@Produce		plain
//	@Success		200	{string}	string	"tg_3f9c..."
//	@Failure		500	{object}	jsonapi.Document
//	@Router			/api-key [get]
func (h *KeyHandler) Issue(w http.ResponseWriter, r *http.Request) {
	token, err := h.keys.Issue(r.Context())
	if err != nil {
		jsonapi.WriteError(w, jsonapi.ErrInternal())
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(token + "\r\n"))
}

// RevokeSelf revokes the key presented as the Basic credential.
//
//	@Summary		Revoke the presented API key
//	@Tags			Keys
//	@Success		204
//	@Failure		401	{object}	jsonapi.Document
//	@Failure		404	{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/api-key [delete]
func (h *KeyHandler) RevokeSelf(w http.ResponseWriter, r *http.Request) {
	h.writeRevokeResult(w, h.keys.Revoke(r.Context(), TokenFromContext(r.Context())))
}

// RevokeOther revokes the key named in the path.
//
//	@Summary		Revoke another API key
//	@Description	Disabled unless auth.allow_foreign_revoke is set.
//	@Tags			Keys
//	@Param			token	path	string	true	"API key to revoke"
//	@Success		204
//	@Failure		401	{object}	jsonapi.Document
//	@Failure		403	{object}	jsonapi.Document
//	@Failure		404	{object}	jsonapi.Document
//	@Security		BasicAuth
//	@Router			/api-key/{token} [delete]
func (h *KeyHandler) RevokeOther(w http.ResponseWriter, r *http.Request) {
	caller := TokenFromContext(r.Context())
	target := chi.URLParam(r, "token")
	h.writeRevokeResult(w, h.keys.RevokeOther(r.Context(), caller, target))
}

func (h *KeyHandler) writeRevokeResult(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		jsonapi.WriteNoContent(w)
	case errors.Is(err, key.ErrNotFound):
		jsonapi.WriteError(w, jsonapi.ErrNotFound("api key"))
	case errors.Is(err, key.ErrRevocationScope):
		jsonapi.WriteError(w, jsonapi.ErrForbidden("revocation_scope", "Only the presented API key can be revoked"))
	default:
		jsonapi.WriteError(w, jsonapi.ErrInternal())
	}
}
