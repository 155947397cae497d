package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/seezee/launcherhub/internal/models"
)

func (h *Handlers) getFolders(w http.ResponseWriter, r *http.Request) {
	folders, ok := h.Session.FetchFolders(r.Context())
	if !ok {
		h.sessionFailure(w, "Failed to fetch folders")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"folders": folders})
}

func (h *Handlers) addFolder(w http.ResponseWriter, r *http.Request) {
	var req models.AddFolderRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, &models.AppError{Code: "BAD_REQUEST", Message: "path is required", Field: "path", Status: http.StatusBadRequest})
		return
	}
	if req.Type != "" && !req.Type.Valid() {
		writeError(w, &models.AppError{Code: "BAD_REQUEST", Message: "type must be games or tools", Field: "type", Status: http.StatusBadRequest})
		return
	}

	folder := h.Session.AddFolder(r.Context(), req.Label, req.Path, req.Type)
	if folder == nil {
		h.sessionFailure(w, "Failed to add folder")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"folder":  folder,
		"folders": h.Session.Folders(),
	})
}

func (h *Handlers) removeFolder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.Session.RemoveFolder(r.Context(), id) {
		h.sessionFailure(w, "Failed to remove folder")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"folders": h.Session.Folders()})
}

func (h *Handlers) getGames(w http.ResponseWriter, r *http.Request) {
	games, ok := h.Session.FetchGames(r.Context())
	if !ok {
		h.sessionFailure(w, "Failed to fetch games")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"games": games, "count": len(games)})
}

// launch accepts either a full item or just an id from the cached library.
func (h *Handlers) launch(w http.ResponseWriter, r *http.Request) {
	var item models.GameItem
	if appErr := decodeBody(r, &item); appErr != nil {
		writeError(w, appErr)
		return
	}
	if !item.Launchable() && item.ID != "" {
		for _, g := range h.Session.Games() {
			if g.ID == item.ID {
				item = g
				break
			}
		}
	}
	if !item.Launchable() {
		writeError(w, models.ErrBadRequest("No launch target: steamAppId or execPath required"))
		return
	}

	if !h.Session.LaunchGame(r.Context(), item) {
		h.sessionFailure(w, "Failed to launch")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "id": item.ID})
}

func (h *Handlers) getFavorites(w http.ResponseWriter, r *http.Request) {
	favs, ok := h.Session.Favorites(r.Context())
	if !ok {
		h.sessionFailure(w, "Failed to load favorites")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"favorites": favs})
}

func (h *Handlers) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	favs, ok := h.Session.ToggleFavorite(r.Context(), chi.URLParam(r, "id"))
	if !ok {
		h.sessionFailure(w, "Failed to update favorites")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"favorites": favs})
}

func (h *Handlers) getRecent(w http.ResponseWriter, r *http.Request) {
	recent, ok := h.Session.RecentPlays(r.Context())
	if !ok {
		h.sessionFailure(w, "Failed to load recent plays")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"recentPlays": recent})
}

func (h *Handlers) getDrives(w http.ResponseWriter, r *http.Request) {
	drives, ok := h.Session.ListDrives(r.Context())
	if !ok {
		h.sessionFailure(w, "Failed to list drives")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"drives": drives})
}

func (h *Handlers) listDirectory(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if strings.TrimSpace(path) == "" {
		writeError(w, models.ErrBadRequest("path is required"))
		return
	}
	resolved, dirs, ok := h.Session.ListDirectory(r.Context(), path)
	if !ok {
		h.sessionFailure(w, "Failed to list directory")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"path": resolved, "directories": dirs})
}

func (h *Handlers) createDirectory(w http.ResponseWriter, r *http.Request) {
	var req models.PathRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, models.ErrBadRequest("path is required"))
		return
	}
	created, ok := h.Session.CreateDirectory(r.Context(), req.Path)
	if !ok {
		h.sessionFailure(w, "Failed to create folder")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"path": created})
}
