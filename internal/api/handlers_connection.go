package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/seezee/launcherhub/internal/models"
)

// connectionView is the settings page's view of the session.
type connectionView struct {
	models.ConnectionSettings
	IsConnected bool   `json:"isConnected"`
	ServerURL   string `json:"serverUrl"`
	Error       string `json:"error,omitempty"`
}

func (h *Handlers) connectionView() connectionView {
	snap := h.Session.Snapshot()
	return connectionView{
		ConnectionSettings: snap.ConnectionSettings,
		IsConnected:        snap.IsConnected,
		ServerURL:          h.Session.ServerURL(),
		Error:              snap.Error,
	}
}

func (h *Handlers) getInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Info)
}

func (h *Handlers) getHub(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Session.Snapshot())
}

func (h *Handlers) getConnection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.connectionView())
}

func (h *Handlers) putConnection(w http.ResponseWriter, r *http.Request) {
	var upd models.ConnectionUpdate
	if appErr := decodeBody(r, &upd); appErr != nil {
		writeError(w, appErr)
		return
	}
	if _, appErr := h.Session.SetSettings(upd); appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, h.connectionView())
}

// testConnection always answers 200; the outcome is in the body.
func (h *Handlers) testConnection(w http.ResponseWriter, r *http.Request) {
	h.Session.TestConnection(r.Context())
	writeJSON(w, http.StatusOK, h.connectionView())
}

func (h *Handlers) resetConnection(w http.ResponseWriter, r *http.Request) {
	h.Session.ResetSettings()
	writeJSON(w, http.StatusOK, h.connectionView())
}

func (h *Handlers) discover(w http.ResponseWriter, r *http.Request) {
	if h.Browse == nil {
		writeError(w, errUnavailable)
		return
	}
	timeout := 3 * time.Second
	if s := r.URL.Query().Get("timeout"); s != "" {
		secs, err := strconv.ParseFloat(s, 64)
		if err != nil || secs <= 0 || secs > 30 {
			writeError(w, models.ErrBadRequest("timeout must be between 0 and 30 seconds"))
			return
		}
		timeout = time.Duration(secs * float64(time.Second))
	}

	agents, err := h.Browse(r.Context(), timeout)
	if err != nil {
		writeError(w, models.ErrInternal("discovery failed: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"agents": agents})
}

func (h *Handlers) getBackups(w http.ResponseWriter, r *http.Request) {
	if h.Monitor == nil {
		writeError(w, errUnavailable)
		return
	}
	files, err := h.Monitor.Backups()
	if err != nil {
		writeError(w, models.ErrInternal(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"backups": files})
}

func (h *Handlers) createBackup(w http.ResponseWriter, r *http.Request) {
	if h.Monitor == nil {
		writeError(w, errUnavailable)
		return
	}
	path, err := h.Monitor.RunBackupNow()
	if err != nil {
		writeError(w, models.ErrInternal(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"file": path})
}

func (h *Handlers) getMonitorDevices(w http.ResponseWriter, r *http.Request) {
	if h.Monitor == nil {
		writeError(w, errUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, h.Monitor.Devices())
}
