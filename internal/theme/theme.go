// Package theme owns the accent colour that tints every page.
package theme

import (
	"log/slog"
	"sync"

	"github.com/seezee/launcherhub/internal/config"
	"github.com/seezee/launcherhub/internal/models"
)

// CSSVarName is the custom property front-ends read the accent from.
const CSSVarName = "--seezee-accent"

// Theme holds the current accent. It reads and writes the shared settings
// document so the accent survives restarts.
type Theme struct {
	mu       sync.Mutex
	mgr      *config.Manager
	onChange func()
}

// New creates a Theme backed by mgr. onChange runs after every accent change
// (the hub uses it to publish a fresh snapshot); it may be nil.
func New(mgr *config.Manager, onChange func()) *Theme {
	return &Theme{mgr: mgr, onChange: onChange}
}

// SetOnChange replaces the change hook.
func (t *Theme) SetOnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Accent returns the current accent colour.
func (t *Theme) Accent() models.RGB {
	return t.mgr.Get().Accent.Clamp()
}

// SetAccent clamps rgb to 0..255 per channel, persists it and returns the stored value.
func (t *Theme) SetAccent(rgb models.RGB) models.RGB {
	rgb = rgb.Clamp()
	if _, err := t.mgr.Update(func(s *models.Settings) { s.Accent = rgb }); err != nil {
		slog.Warn("theme: save accent", "err", err)
	}
	t.changed()
	return rgb
}

// SetAccentInput applies a colour whose channels may be fractional or out of range.
func (t *Theme) SetAccentInput(in models.RGBInput) (models.RGB, *models.AppError) {
	if !in.Valid() {
		appErr := models.ErrBadRequest("rgb requires numeric r, g and b")
		appErr.Field = "rgb"
		return models.RGB{}, appErr
	}
	return t.SetAccent(in.RGB()), nil
}

// Reset restores the brand red.
func (t *Theme) Reset() models.RGB {
	return t.SetAccent(models.DefaultAccent)
}

// CSSVar returns the accent formatted for CSSVarName ("r g b").
func (t *Theme) CSSVar() string {
	return t.Accent().CSSVar()
}

// Reload notifies listeners after the settings file changed on disk. The
// caller has already replaced the shared settings.
func (t *Theme) Reload(previous models.RGB) {
	if previous != t.Accent() {
		t.changed()
	}
}

func (t *Theme) changed() {
	t.mu.Lock()
	fn := t.onChange
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}
