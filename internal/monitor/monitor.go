// Package monitor runs the hub's background loops: agent reachability,
// device stats and the daily settings backup.
package monitor

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/seezee/launcherhub/internal/models"
)

// Default loop intervals.
const (
	DefaultProbeInterval  = 10 * time.Second
	DefaultDeviceInterval = 2 * time.Second
)

// Agent is the part of the session client the monitor needs.
type Agent interface {
	Heartbeat(ctx context.Context) bool
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
	ServerURL() string
}

// Options configures a Service. Zero intervals use the defaults; an empty
// BackupDir disables backups.
type Options struct {
	ProbeInterval  time.Duration
	DeviceInterval time.Duration
	OnChange       func(connected bool)
	SettingsPath   string
	BackupDir      string
}

// Service manages the background goroutines.
type Service struct {
	agent Agent
	opts  Options

	mu         sync.Mutex
	devices    []models.DeviceStats
	devicesAt  time.Time
	devicesErr string
}

// New creates a Service.
func New(agent Agent, opts Options) *Service {
	if opts.ProbeInterval <= 0 {
		opts.ProbeInterval = DefaultProbeInterval
	}
	if opts.DeviceInterval <= 0 {
		opts.DeviceInterval = DefaultDeviceInterval
	}
	return &Service{agent: agent, opts: opts}
}

// Start launches the background goroutines.
// Blocks until ctx is cancelled; all goroutines respect the context.
func (s *Service) Start(ctx context.Context) {
	go s.runProbe(ctx)
	go s.runDevices(ctx)
	if s.opts.BackupDir != "" && s.opts.SettingsPath != "" {
		go s.runBackup(ctx)
	}
	<-ctx.Done()
}

// DeviceReport is the cached device list with its freshness.
type DeviceReport struct {
	Devices   []models.DeviceStats `json:"devices"`
	UpdatedAt *time.Time           `json:"updatedAt,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// Devices returns the last device list fetched from the agent.
func (s *Service) Devices() DeviceReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := DeviceReport{Devices: make([]models.DeviceStats, len(s.devices)), Error: s.devicesErr}
	copy(r.Devices, s.devices)
	if !s.devicesAt.IsZero() {
		at := s.devicesAt
		r.UpdatedAt = &at
	}
	return r
}

// runProbe tests the agent connection on every tick and reports transitions.
func (s *Service) runProbe(ctx context.Context) {
	last := false
	first := true

	check := func() {
		if s.agent.ServerURL() == "" {
			return
		}
		online := s.agent.Heartbeat(ctx)
		if ctx.Err() != nil {
			return
		}
		if first || online != last {
			first = false
			last = online
			if s.opts.OnChange != nil {
				s.opts.OnChange(online)
			}
			slog.Info("monitor: agent status", "connected", online)
		}
	}

	check() // immediate first check

	ticker := time.NewTicker(s.opts.ProbeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// runDevices refreshes the device stats list.
func (s *Service) runDevices(ctx context.Context) {
	ticker := time.NewTicker(s.opts.DeviceInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RefreshDevices(ctx)
		}
	}
}

// RefreshDevices fetches GET /api/devices once. A failure keeps the previous list.
func (s *Service) RefreshDevices(ctx context.Context) {
	if s.agent.ServerURL() == "" {
		return
	}
	var body struct {
		Devices []models.DeviceStats `json:"devices"`
	}
	err := s.agent.Do(ctx, http.MethodGet, "/api/devices", nil, nil, &body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		if ctx.Err() == nil {
			slog.Debug("monitor: device refresh failed", "err", err)
			s.devicesErr = err.Error()
		}
		return
	}
	if body.Devices == nil {
		body.Devices = []models.DeviceStats{}
	}
	s.devices = body.Devices
	s.devicesAt = time.Now()
	s.devicesErr = ""
}
