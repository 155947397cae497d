package tui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/seezee/launcherhub/internal/models"
)

// HubClient talks to a running hub's JSON API.
type HubClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewHubClient returns a client for the hub at baseURL ("http://host:port").
func NewHubClient(baseURL, apiKey string) *HubClient {
	return &HubClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HubClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.APIKey != "" {
		req.Header.Set("X-Api-Key", c.APIKey)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var appErr models.AppError
		if json.NewDecoder(resp.Body).Decode(&appErr) == nil && appErr.Message != "" {
			appErr.Status = resp.StatusCode
			return &appErr
		}
		return fmt.Errorf("hub returned status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Hub returns the session snapshot.
func (c *HubClient) Hub(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := c.do(ctx, http.MethodGet, "/api/hub", nil, &snap)
	return snap, err
}

// Games refreshes the library from the PC.
func (c *HubClient) Games(ctx context.Context) ([]models.GameItem, error) {
	var body struct {
		Games []models.GameItem `json:"games"`
	}
	err := c.do(ctx, http.MethodGet, "/api/library/games", nil, &body)
	return body.Games, err
}

// Launch starts item on the PC.
func (c *HubClient) Launch(ctx context.Context, item models.GameItem) error {
	return c.do(ctx, http.MethodPost, "/api/library/launch", item, nil)
}

// TestConnection asks the hub to probe the PC and returns the outcome.
func (c *HubClient) TestConnection(ctx context.Context) (connected bool, errText string, err error) {
	var body struct {
		IsConnected bool   `json:"isConnected"`
		Error       string `json:"error"`
	}
	err = c.do(ctx, http.MethodPost, "/api/connection/test", nil, &body)
	return body.IsConnected, body.Error, err
}

// SetAddress stores a new PC address.
func (c *HubClient) SetAddress(ctx context.Context, ip string) error {
	return c.do(ctx, http.MethodPut, "/api/connection", models.ConnectionUpdate{PCIPAddress: &ip}, nil)
}

// Audio fetches the PC's audio state.
func (c *HubClient) Audio(ctx context.Context) (models.AudioState, error) {
	var st models.AudioState
	err := c.do(ctx, http.MethodGet, "/api/audio/state", nil, &st)
	return st, err
}

// SetVolume sets the PC's master volume.
func (c *HubClient) SetVolume(ctx context.Context, volume int) error {
	return c.do(ctx, http.MethodPost, "/api/audio/volume", map[string]int{"volume": volume}, nil)
}

// Spotify sends a transport action.
func (c *HubClient) Spotify(ctx context.Context, action string) error {
	return c.do(ctx, http.MethodPost, "/api/audio/spotify/"+action, struct{}{}, nil)
}

// ApplyLighting sends rgb to SignalRGB.
func (c *HubClient) ApplyLighting(ctx context.Context, rgb models.RGB) error {
	r, g, b := float64(rgb.R), float64(rgb.G), float64(rgb.B)
	req := models.LightingApplyRequest{
		RGB:             models.RGBInput{R: &r, G: &g, B: &b},
		Brightness:      100,
		Mode:            models.LightingAll,
		EnableSignalRGB: true,
	}
	return c.do(ctx, http.MethodPost, "/api/lighting/apply", req, nil)
}

// MonitorDevices returns the latest device monitor report.
func (c *HubClient) MonitorDevices(ctx context.Context) ([]models.DeviceStats, error) {
	var body struct {
		Devices []models.DeviceStats `json:"devices"`
		Error   string               `json:"error"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/monitor/devices", nil, &body); err != nil {
		return nil, err
	}
	if body.Error != "" {
		return body.Devices, fmt.Errorf("%s", body.Error)
	}
	return body.Devices, nil
}
