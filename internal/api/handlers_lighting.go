package api

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/seezee/launcherhub/internal/colorwheel"
	"github.com/seezee/launcherhub/internal/models"
)

const maxWheelSize = 1024

func (h *Handlers) getLightingDevices(w http.ResponseWriter, r *http.Request) {
	devices, appErr := h.Lighting.Devices(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"devices": devices})
}

func (h *Handlers) applyLighting(w http.ResponseWriter, r *http.Request) {
	var req models.LightingApplyRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	res, appErr := h.Lighting.Apply(r.Context(), req)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) getCooldown(w http.ResponseWriter, r *http.Request) {
	remaining := h.Lighting.CooldownRemaining()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"remaining": remaining,
		"active":    remaining > 0,
	})
}

func (h *Handlers) getLightingLog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": h.Lighting.Log().Entries()})
}

// colorView is a colour in every notation the pages use.
type colorView struct {
	RGB models.RGB     `json:"rgb"`
	Hex string         `json:"hex"`
	HSV colorwheel.HSV `json:"hsv"`
}

func newColorView(hsv colorwheel.HSV, rgb models.RGB) colorView {
	return colorView{RGB: rgb, Hex: rgb.Hex(), HSV: hsv.Rounded()}
}

// pickColor maps a pointer position to a colour. With ?size=N the position
// is relative to a wheel drawn N pixels wide.
func (h *Handlers) pickColor(w http.ResponseWriter, r *http.Request) {
	var req models.PickRequest
	if appErr := decodeBody(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}
	x, y := req.X, req.Y
	if s := r.URL.Query().Get("size"); s != "" {
		size, err := strconv.Atoi(s)
		if err != nil || size <= 0 || size > maxWheelSize {
			writeError(w, fieldError("size must be between 1 and 1024", "size"))
			return
		}
		scale := float64(h.Wheel.Size()) / float64(size)
		x, y = x*scale, y*scale
	}
	hsv, rgb := h.Wheel.Pick(x, y)
	writeJSON(w, http.StatusOK, newColorView(hsv, rgb))
}

func (h *Handlers) wheelPNG(w http.ResponseWriter, r *http.Request) {
	size := h.Wheel.Size()
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxWheelSize {
			writeError(w, fieldError("size must be between 1 and 1024", "size"))
			return
		}
		size = n
	}

	var buf bytes.Buffer
	if err := h.Wheel.WritePNG(&buf, size); err != nil {
		writeError(w, models.ErrInternal(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) getAgentTheme(w http.ResponseWriter, r *http.Request) {
	st, appErr := h.Lighting.Theme(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handlers) setAgentTheme(w http.ResponseWriter, r *http.Request) {
	var t models.Theme
	if appErr := decodeBody(r, &t); appErr != nil {
		writeError(w, appErr)
		return
	}
	res, appErr := h.Lighting.SetTheme(r.Context(), t)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) syncLighting(w http.ResponseWriter, r *http.Request) {
	res, appErr := h.Lighting.Sync(r.Context())
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func fieldError(msg, field string) *models.AppError {
	e := models.ErrBadRequest(msg)
	e.Field = field
	return e
}
