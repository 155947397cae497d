package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// sseEvents streams session snapshots.
// Clients receive the current snapshot immediately, then updates as they happen.
func (h *Handlers) sseEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := startSSE(w)
	if !ok {
		return
	}

	id := uuid.New().String()
	ch := h.Events.Subscribe(id)
	defer h.Events.Unsubscribe(id)

	sendSSE(w, flusher, h.Session.Snapshot())

	for {
		select {
		case snap, ok := <-ch:
			if !ok {
				return
			}
			sendSSE(w, flusher, snap)
		case <-r.Context().Done():
			return
		}
	}
}

// sseAudio streams the audio state while the client stays connected.
func (h *Handlers) sseAudio(w http.ResponseWriter, r *http.Request) {
	if h.Poller == nil {
		writeError(w, errUnavailable)
		return
	}
	flusher, ok := startSSE(w)
	if !ok {
		return
	}

	id, ch := h.Poller.Subscribe()
	defer h.Poller.Unsubscribe(id)

	if last := h.Audio.Last(); last != nil {
		sendSSE(w, flusher, last)
	}

	for {
		select {
		case st, ok := <-ch:
			if !ok {
				return
			}
			sendSSE(w, flusher, st)
		case <-r.Context().Done():
			return
		}
	}
}

func startSSE(w http.ResponseWriter) (http.Flusher, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return nil, false
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	return flusher, true
}

func sendSSE(w http.ResponseWriter, flusher http.Flusher, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
