// Package lighting drives the agent's Govee and SignalRGB lighting on behalf
// of the lighting page.
package lighting

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/seezee/launcherhub/internal/models"
	"github.com/seezee/launcherhub/internal/session"
)

const (
	// MaxDevices caps how many devices one apply may target.
	MaxDevices = 5
	// DefaultDelay is the spacing between per-device commands.
	DefaultDelay = 1.1
	// MaxDelay bounds the requested spacing, in seconds.
	MaxDelay = 30.0
)

// Agent is the part of the session client the controller needs.
type Agent interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	ServerURL() string
}

// AccentSetter receives the colour of every successful apply.
type AccentSetter interface {
	SetAccent(models.RGB) models.RGB
}

// Controller runs lighting applies against the agent.
type Controller struct {
	agent    Agent
	accent   AccentSetter
	cooldown *Cooldown
	log      *Log
	now      func() time.Time

	applying sync.Mutex

	mu      sync.Mutex
	devices []models.LightingDevice
}

// New creates a Controller. accent may be nil.
func New(agent Agent, accent AccentSetter) *Controller {
	return &Controller{
		agent:    agent,
		accent:   accent,
		cooldown: NewCooldown(CooldownPeriod),
		log:      NewLog(),
		now:      time.Now,
	}
}

// Cooldown returns the controller's cooldown guard.
func (c *Controller) Cooldown() *Cooldown { return c.cooldown }

// Log returns the activity log.
func (c *Controller) Log() *Log { return c.log }

// CooldownRemaining returns the seconds left before the next apply.
func (c *Controller) CooldownRemaining() int {
	return c.cooldown.Remaining(c.now())
}

// Devices lists the Govee devices known to the agent.
func (c *Controller) Devices(ctx context.Context) ([]models.LightingDevice, *models.AppError) {
	c.log.Addf(LogInfo, "Loading Govee devices...")

	var body struct {
		Success bool                    `json:"success"`
		Devices []models.LightingDevice `json:"devices"`
		Error   string                  `json:"error"`
	}
	if err := c.agent.Do(ctx, http.MethodGet, "/api/lighting/govee/devices", nil, nil, &body); err != nil {
		appErr := session.AsAppError(err, "Device list failed")
		c.log.Addf(LogError, "Failed to load devices: %s", appErr.Message)
		return nil, appErr
	}
	if body.Devices == nil {
		body.Devices = []models.LightingDevice{}
	}

	c.mu.Lock()
	c.devices = body.Devices
	c.mu.Unlock()

	c.log.Addf(LogSuccess, "Found %d Govee device(s)", len(body.Devices))
	return body.Devices, nil
}

// deviceName returns the cached display name for mac, or mac itself.
func (c *Controller) deviceName(mac string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.devices {
		if d.Device == mac && d.DeviceName != "" {
			return d.DeviceName
		}
	}
	return mac
}

// validate checks req and fills in defaults.
func (c *Controller) validate(req *models.LightingApplyRequest) (models.RGB, *models.AppError) {
	if c.agent.ServerURL() == "" {
		c.log.Addf(LogError, "Not connected to PC")
		return models.RGB{}, models.ErrNotConnected
	}
	if remaining := c.CooldownRemaining(); remaining > 0 {
		c.log.Addf(LogWarning, "Cooldown: %ds remaining", remaining)
		return models.RGB{}, models.ErrTooManyRequests(fmt.Sprintf("Cooldown: %ds remaining", remaining))
	}
	if !req.RGB.Valid() {
		return models.RGB{}, fieldError("rgb requires numeric r, g and b", "rgb")
	}
	if req.Brightness < 0 || req.Brightness > 100 {
		return models.RGB{}, fieldError("brightness must be between 0 and 100", "brightness")
	}
	if req.Delay < 0 || req.Delay > MaxDelay || math.IsNaN(req.Delay) {
		return models.RGB{}, fieldError(fmt.Sprintf("delay must be between 0 and %.0f seconds", MaxDelay), "delay")
	}
	if req.Delay == 0 {
		req.Delay = DefaultDelay
	}
	switch req.Mode {
	case "":
		req.Mode = models.LightingAll
	case models.LightingAll, models.LightingIndividual:
	default:
		return models.RGB{}, fieldError("mode must be all or individual", "mode")
	}
	if len(req.Devices) > MaxDevices {
		c.log.Addf(LogWarning, "Maximum %d devices", MaxDevices)
		return models.RGB{}, fieldError(fmt.Sprintf("at most %d devices may be selected", MaxDevices), "devices")
	}
	if req.EnableGovee && len(req.Devices) == 0 {
		c.log.Addf(LogWarning, "No devices selected")
		return models.RGB{}, fieldError("No devices selected", "devices")
	}
	return req.RGB.RGB(), nil
}

// Apply sends a colour to the selected devices. On success it starts the
// cooldown and makes the colour the hub's accent.
func (c *Controller) Apply(ctx context.Context, req models.LightingApplyRequest) (*models.LightingResult, *models.AppError) {
	if !c.applying.TryLock() {
		return nil, models.ErrConflict("a lighting command is already running")
	}
	defer c.applying.Unlock()

	rgb, appErr := c.validate(&req)
	if appErr != nil {
		return nil, appErr
	}

	c.log.Addf(LogInfo, "Executing lighting command")
	c.log.Addf(LogInfo, "RGB: (%d, %d, %d)", rgb.R, rgb.G, rgb.B)
	c.log.Addf(LogInfo, "Brightness: %d%%", req.Brightness)
	c.log.Addf(LogInfo, "Mode: %s", req.Mode)
	c.log.Addf(LogInfo, "Delay: %.1fs between commands", req.Delay)

	result := &models.LightingResult{Mode: req.Mode, RGB: rgb}
	switch req.Mode {
	case models.LightingAll:
		batch, appErr := c.applyBatch(ctx, req, rgb)
		if appErr != nil {
			c.log.Addf(LogError, "Error: %s", appErr.Message)
			return nil, appErr
		}
		result.Batch = batch
	case models.LightingIndividual:
		devices, err := c.applyEach(ctx, req, rgb)
		if err != nil {
			c.log.Addf(LogError, "Error: %v", err)
			return nil, models.ErrInternal("lighting command interrupted: " + err.Error())
		}
		result.Devices = devices
	}

	c.cooldown.Mark(c.now())
	if c.accent != nil {
		c.accent.SetAccent(rgb)
	}
	c.log.Addf(LogSuccess, "Command execution complete")
	result.Cooldown = c.CooldownRemaining()
	return result, nil
}

// applyBatch hands every device to the agent's queue in one request.
func (c *Controller) applyBatch(ctx context.Context, req models.LightingApplyRequest, rgb models.RGB) (*models.LightingBatchResult, *models.AppError) {
	devices := req.Devices
	if devices == nil {
		devices = []string{}
	}
	body := map[string]any{
		"devices":         devices,
		"rgb":             rgb,
		"brightness":      req.Brightness,
		"delay":           req.Delay,
		"enableSignalRGB": req.EnableSignalRGB,
		"enableGovee":     req.EnableGovee,
	}

	var out models.LightingBatchResult
	if err := c.agent.Do(ctx, http.MethodPost, "/api/lighting/batch", nil, body, &out); err != nil {
		return nil, session.AsAppError(err, "Lighting batch failed")
	}

	if out.Govee != nil && out.Govee.Queued > 0 {
		c.log.Addf(LogSuccess, "Queued %d device(s)", out.Govee.Queued)
		c.log.Addf(LogInfo, "ETA: ~%.1fs", float64(out.Govee.Queued)*req.Delay)
	}
	if out.SignalRGB != nil {
		msg := out.SignalRGB.Message
		if msg == "" {
			msg = "Applied"
		}
		c.log.Addf(LogSuccess, "SignalRGB: %s", msg)
	}
	return &out, nil
}

// applyEach sends one command per device, spaced by req.Delay. A failing
// device is logged and skipped; only cancellation aborts the loop.
func (c *Controller) applyEach(ctx context.Context, req models.LightingApplyRequest, rgb models.RGB) ([]models.DeviceResult, error) {
	limiter := rate.NewLimiter(rate.Every(time.Duration(req.Delay*float64(time.Second))), 1)
	results := make([]models.DeviceResult, 0, len(req.Devices))

	for i, mac := range req.Devices {
		if i > 0 {
			c.log.Addf(LogInfo, "Waiting %.1fs...", req.Delay)
		}
		if err := limiter.Wait(ctx); err != nil {
			return results, err
		}

		name := c.deviceName(mac)
		c.log.Addf(LogInfo, "Sending to %s...", name)

		body := map[string]any{"device": mac, "rgb": rgb, "brightness": req.Brightness}
		res := models.DeviceResult{Device: mac, Name: name}
		if err := c.agent.Do(ctx, http.MethodPost, "/api/lighting/device", nil, body, nil); err != nil {
			res.Error = session.AsAppError(err, "device command failed").Message
			c.log.Addf(LogError, "%s failed", name)
		} else {
			res.Success = true
			c.log.Addf(LogSuccess, "%s updated", name)
		}
		results = append(results, res)
	}
	return results, nil
}

// ThemeState is the agent's stored theme plus its lighting cache.
type ThemeState struct {
	Theme models.Theme   `json:"theme"`
	Cache map[string]any `json:"cache"`
}

// Theme returns the agent's current theme.
func (c *Controller) Theme(ctx context.Context) (*ThemeState, *models.AppError) {
	var out ThemeState
	if err := c.agent.Do(ctx, http.MethodGet, "/api/theme/current", nil, nil, &out); err != nil {
		return nil, session.AsAppError(err, "Failed to load theme")
	}
	return &out, nil
}

// ActionResult is the agent's reply to theme and sync commands.
type ActionResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Results map[string]any `json:"results,omitempty"`
}

// SetTheme stores and applies a named theme or colour on the agent.
func (c *Controller) SetTheme(ctx context.Context, t models.Theme) (*ActionResult, *models.AppError) {
	if t.Name == "" && t.RGB == nil {
		return nil, models.ErrBadRequest("Theme name or RGB values required")
	}
	body := map[string]any{}
	if t.Name != "" {
		body["name"] = t.Name
	}
	if t.RGB != nil {
		body["rgb"] = t.RGB.Clamp()
	}
	if t.Brightness > 0 {
		body["brightness"] = t.Brightness
	}

	var out ActionResult
	if err := c.agent.Do(ctx, http.MethodPost, "/api/theme/set", nil, body, &out); err != nil {
		return nil, session.AsAppError(err, "Failed to set theme")
	}
	c.log.Addf(LogSuccess, "%s", out.Message)
	return &out, nil
}

// Sync forces the agent to re-send the current theme to every device.
func (c *Controller) Sync(ctx context.Context) (*ActionResult, *models.AppError) {
	var out ActionResult
	if err := c.agent.Do(ctx, http.MethodPost, "/api/lighting/sync", nil, struct{}{}, &out); err != nil {
		return nil, session.AsAppError(err, "Lighting sync failed")
	}
	c.log.Addf(LogSuccess, "Forced lighting sync")
	return &out, nil
}

func fieldError(msg, field string) *models.AppError {
	e := models.ErrBadRequest(msg)
	e.Field = field
	return e
}
