package api

import (
	"net/http"
	"strings"

	"github.com/seezee/launcherhub/internal/models"
)

// Command-center proxies take the user's token in the body and never store it.
// Tokens are trimmed; validation is left to the proxies.

func (h *Handlers) githubRepos(w http.ResponseWriter, r *http.Request) {
	var req models.ProxyRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	repos, appErr := h.GitHub.Repos(r.Context(), strings.TrimSpace(req.Token), strings.TrimSpace(req.Owner))
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"repos": repos})
}

func (h *Handlers) vercelProjects(w http.ResponseWriter, r *http.Request) {
	var req models.ProxyRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	projects, appErr := h.Vercel.Projects(r.Context(), strings.TrimSpace(req.Token), strings.TrimSpace(req.TeamID))
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"projects": projects})
}
