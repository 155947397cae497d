package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) getAudioState(w http.ResponseWriter, r *http.Request) {
	st, appErr := h.Audio.State(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handlers) setVolume(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Volume *int `json:"volume"`
	}
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	if req.Volume == nil {
		writeError(w, fieldError("volume required", "volume"))
		return
	}
	res, appErr := h.Audio.SetVolume(r.Context(), *req.Volume)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) spotifyAction(w http.ResponseWriter, r *http.Request) {
	res, appErr := h.Audio.Spotify(r.Context(), chi.URLParam(r, "action"))
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) spotifyShuffle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	res, appErr := h.Audio.Shuffle(r.Context(), req.Enabled)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) spotifyRepeat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mode string `json:"mode"`
	}
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	res, appErr := h.Audio.Repeat(r.Context(), req.Mode)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) spotifySeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PositionMs *int `json:"positionMs"`
	}
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	if req.PositionMs == nil {
		writeError(w, fieldError("positionMs required", "positionMs"))
		return
	}
	res, appErr := h.Audio.Seek(r.Context(), *req.PositionMs)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) spotifyToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	res, appErr := h.Audio.SaveToken(r.Context(), req.AccessToken, req.RefreshToken)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
