package api

import (
	"net/http"

	"github.com/seezee/launcherhub/internal/colorwheel"
	"github.com/seezee/launcherhub/internal/models"
	"github.com/seezee/launcherhub/internal/theme"
)

type accentView struct {
	colorView
	CSSVar     string `json:"cssVar"`
	CSSVarName string `json:"cssVarName"`
}

func newAccentView(rgb models.RGB) accentView {
	return accentView{
		colorView:  newColorView(colorwheel.RGBToHSV(rgb), rgb),
		CSSVar:     rgb.CSSVar(),
		CSSVarName: theme.CSSVarName,
	}
}

func (h *Handlers) getAccent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newAccentView(h.Theme.Accent()))
}

func (h *Handlers) putAccent(w http.ResponseWriter, r *http.Request) {
	var in models.RGBInput
	if appErr := decodeBody(r, &in); appErr != nil {
		writeError(w, appErr)
		return
	}
	rgb, appErr := h.Theme.SetAccentInput(in)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, newAccentView(rgb))
}

func (h *Handlers) resetAccent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newAccentView(h.Theme.Reset()))
}
