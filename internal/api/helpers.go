// Package api implements the hub's HTTP surface: one group of routes per
// launcher page, all backed by the shared session client.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/seezee/launcherhub/internal/audio"
	"github.com/seezee/launcherhub/internal/colorwheel"
	"github.com/seezee/launcherhub/internal/commandcenter"
	"github.com/seezee/launcherhub/internal/discovery"
	"github.com/seezee/launcherhub/internal/identity"
	"github.com/seezee/launcherhub/internal/lighting"
	"github.com/seezee/launcherhub/internal/models"
	"github.com/seezee/launcherhub/internal/monitor"
	"github.com/seezee/launcherhub/internal/session"
	"github.com/seezee/launcherhub/internal/theme"
)

const maxRequestBody = 1 << 20

// EventBus is the interface for subscribing to snapshot events.
type EventBus interface {
	Subscribe(id string) <-chan models.Snapshot
	Unsubscribe(id string)
}

// BrowseFunc finds agents on the LAN.
type BrowseFunc func(ctx context.Context, timeout time.Duration) ([]discovery.Agent, error)

// Deps are the components the handlers drive. Monitor, Poller and Browse
// may be nil; their routes then answer 503.
type Deps struct {
	Info     identity.Info
	Session  *session.Client
	Theme    *theme.Theme
	Lighting *lighting.Controller
	Audio    *audio.Controller
	Poller   *audio.Poller
	Monitor  *monitor.Service
	GitHub   *commandcenter.GitHub
	Vercel   *commandcenter.Vercel
	Wheel    colorwheel.Wheel
	Browse   BrowseFunc
	Events   EventBus
}

// Handlers holds dependencies for all HTTP handlers.
type Handlers struct {
	Deps
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an AppError as a JSON response.
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		w.WriteHeader(appErr.Status)
		_ = json.NewEncoder(w).Encode(appErr)
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(models.ErrInternal(err.Error()))
}

// decodeBody decodes a JSON request body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) *models.AppError {
	err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return models.ErrBadRequest("invalid JSON: " + err.Error())
}

// sessionFailure reports the session's last failure: 503 when no PC is
// configured, otherwise 502 with the stored message.
func (h *Handlers) sessionFailure(w http.ResponseWriter, fallback string) {
	if h.Session.ServerURL() == "" {
		writeError(w, models.ErrNotConnected)
		return
	}
	msg := h.Session.Error()
	if msg == "" {
		msg = fallback
	}
	writeError(w, models.ErrUpstream(msg))
}

var errUnavailable = &models.AppError{Code: "UNAVAILABLE", Message: "feature disabled", Status: http.StatusServiceUnavailable}
