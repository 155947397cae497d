// Package audio relays the audio page's volume and Spotify controls to the agent.
package audio

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/seezee/launcherhub/internal/models"
	"github.com/seezee/launcherhub/internal/session"
)

// Agent is the part of the session client the controller needs.
type Agent interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Controller issues audio commands and remembers the last state it saw.
type Controller struct {
	agent Agent

	mu   sync.Mutex
	last *models.AudioState
}

// New creates a Controller.
func New(agent Agent) *Controller {
	return &Controller{agent: agent}
}

// State fetches the PC's audio state.
func (c *Controller) State(ctx context.Context) (*models.AudioState, *models.AppError) {
	var st models.AudioState
	if err := c.agent.Do(ctx, http.MethodGet, "/api/audio/state", nil, nil, &st); err != nil {
		return nil, session.AsAppError(err, "Failed to load audio state")
	}
	c.mu.Lock()
	cp := st
	c.last = &cp
	c.mu.Unlock()
	return &st, nil
}

// Last returns the most recently fetched state, or nil.
func (c *Controller) Last() *models.AudioState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return nil
	}
	cp := *c.last
	return &cp
}

// VolumeResult is the agent's reply to a volume change.
type VolumeResult struct {
	Success bool   `json:"success"`
	Volume  *int   `json:"volume,omitempty"`
	Error   string `json:"error,omitempty"`
	Skipped bool   `json:"skipped,omitempty"`
}

// SetVolume sets the master volume (0..100). When the last known state says
// the PC cannot control its volume, nothing is sent.
func (c *Controller) SetVolume(ctx context.Context, volume int) (*VolumeResult, *models.AppError) {
	if volume < 0 || volume > 100 {
		return nil, fieldError("volume must be between 0 and 100", "volume")
	}
	if last := c.Last(); last != nil && !last.System.Supported {
		return &VolumeResult{Skipped: true, Error: last.System.Error}, nil
	}

	var res VolumeResult
	if err := c.agent.Do(ctx, http.MethodPost, "/api/audio/system/volume", nil, map[string]int{"volume": volume}, &res); err != nil {
		return nil, session.AsAppError(err, "Failed to set volume")
	}
	if res.Volume == nil {
		res.Volume = &volume
	}

	c.mu.Lock()
	if c.last != nil {
		v := *res.Volume
		c.last.System.Volume = &v
	}
	c.mu.Unlock()
	return &res, nil
}

// ActionResult is the agent's reply to a Spotify command.
type ActionResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Enabled    *bool  `json:"enabled,omitempty"`
	Mode       string `json:"mode,omitempty"`
	PositionMs *int   `json:"positionMs,omitempty"`
}

// Spotify sends a transport action: play, pause, next or previous.
func (c *Controller) Spotify(ctx context.Context, action string) (*ActionResult, *models.AppError) {
	switch action {
	case models.SpotifyPlay, models.SpotifyPause, models.SpotifyNext, models.SpotifyPrevious:
	default:
		return nil, models.ErrNotFound("unknown Spotify action: " + action)
	}
	return c.post(ctx, "/api/audio/spotify/"+action, struct{}{}, "Spotify "+action+" failed")
}

// Shuffle turns shuffle on or off.
func (c *Controller) Shuffle(ctx context.Context, enabled bool) (*ActionResult, *models.AppError) {
	return c.post(ctx, "/api/audio/spotify/shuffle", map[string]bool{"enabled": enabled}, "Spotify shuffle failed")
}

// Repeat sets the repeat mode: off, context or track.
func (c *Controller) Repeat(ctx context.Context, mode string) (*ActionResult, *models.AppError) {
	switch mode {
	case models.RepeatOff, models.RepeatContext, models.RepeatTrack:
	default:
		return nil, fieldError("mode must be one of: off, context, track", "mode")
	}
	return c.post(ctx, "/api/audio/spotify/repeat", map[string]string{"mode": mode}, "Spotify repeat failed")
}

// Seek jumps to positionMs in the current track.
func (c *Controller) Seek(ctx context.Context, positionMs int) (*ActionResult, *models.AppError) {
	if positionMs < 0 {
		return nil, fieldError("positionMs must not be negative", "positionMs")
	}
	return c.post(ctx, "/api/audio/spotify/seek", map[string]int{"positionMs": positionMs}, "Spotify seek failed")
}

// SaveToken stores Spotify OAuth tokens on the agent. refresh may be empty.
func (c *Controller) SaveToken(ctx context.Context, access, refresh string) (*ActionResult, *models.AppError) {
	access = strings.TrimSpace(access)
	if access == "" {
		return nil, fieldError("accessToken required", "accessToken")
	}
	body := map[string]string{"accessToken": access}
	if r := strings.TrimSpace(refresh); r != "" {
		body["refreshToken"] = r
	}
	return c.post(ctx, "/api/audio/spotify/token", body, "Failed to save Spotify token")
}

func (c *Controller) post(ctx context.Context, path string, body any, fallback string) (*ActionResult, *models.AppError) {
	var res ActionResult
	if err := c.agent.Do(ctx, http.MethodPost, path, nil, body, &res); err != nil {
		return nil, session.AsAppError(err, fallback)
	}
	return &res, nil
}

func fieldError(msg, field string) *models.AppError {
	e := models.ErrBadRequest(msg)
	e.Field = field
	return e
}
