// Package session holds the hub's connection to the remote PC agent: the
// persisted address, the connectivity flag, and the cached folder and game
// lists every page reads.
package session

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/seezee/launcherhub/internal/config"
	"github.com/seezee/launcherhub/internal/events"
	"github.com/seezee/launcherhub/internal/models"
)

// DefaultTimeout bounds a single agent request when the caller supplies no client.
const DefaultTimeout = 10 * time.Second

// Client is the single session shared by every page controller.
// Remote operations make exactly one attempt and never return a Go error
// for agent failures; the failure text is stored and published instead.
type Client struct {
	mu       sync.Mutex
	mgr      *config.Manager
	bus      events.Publisher
	http     *http.Client
	decorate func(*models.Snapshot)

	connected bool
	folders   []models.FolderConfig
	games     []models.GameItem
	inflight  int
	err       string
	beatErr   string

	folderSeq, folderApplied uint64
	gameSeq, gameApplied     uint64
}

// New creates a Client. A nil httpClient uses one with DefaultTimeout.
func New(mgr *config.Manager, bus events.Publisher, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		mgr:     mgr,
		bus:     bus,
		http:    httpClient,
		folders: []models.FolderConfig{},
		games:   []models.GameItem{},
	}
}

// SetDecorator registers a hook that fills in snapshot fields owned by other
// controllers (accent, lighting cooldown). It must not call back into c.
func (c *Client) SetDecorator(fn func(*models.Snapshot)) {
	c.mu.Lock()
	c.decorate = fn
	c.mu.Unlock()
}

// Snapshot returns the current session state.
func (c *Client) Snapshot() models.Snapshot {
	settings := c.mgr.Get()

	c.mu.Lock()
	snap := models.Snapshot{
		ConnectionSettings: settings.Connection,
		IsConnected:        c.connected,
		Folders:            c.folders,
		Games:              c.games,
		IsLoading:          c.inflight > 0,
		Error:              c.err,
		Accent:             settings.Accent,
	}
	snap = snap.Clone()
	decorate := c.decorate
	c.mu.Unlock()

	if decorate != nil {
		decorate(&snap)
	}
	return snap
}

// Settings returns the persisted connection settings.
func (c *Client) Settings() models.ConnectionSettings {
	return c.mgr.Get().Connection
}

// ServerURL is the agent's base URL, or "" when no address is configured.
func (c *Client) ServerURL() string {
	conn := c.Settings()
	if conn.PCIPAddress == "" {
		return ""
	}
	port := conn.PCPort
	if port == 0 {
		port = models.DefaultPort
	}
	return "http://" + net.JoinHostPort(conn.PCIPAddress, strconv.Itoa(port))
}

// Connected reports the last known connectivity.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Error returns the last stored failure text.
func (c *Client) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Folders returns a copy of the cached folder list.
func (c *Client) Folders() []models.FolderConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.FolderConfig, len(c.folders))
	copy(out, c.folders)
	return out
}

// Games returns a copy of the cached game list.
func (c *Client) Games() []models.GameItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.GameItem, len(c.games))
	copy(out, c.games)
	return out
}

// SetConnected overrides the connectivity flag.
func (c *Client) SetConnected(connected bool) {
	c.mu.Lock()
	changed := c.connected != connected
	c.connected = connected
	c.mu.Unlock()
	if changed {
		c.Notify()
	}
}

// SetError stores msg as the session's failure text.
func (c *Client) SetError(msg string) {
	c.mu.Lock()
	c.err = msg
	c.mu.Unlock()
	c.Notify()
}

// Notify publishes the current snapshot.
func (c *Client) Notify() {
	if c.bus != nil {
		c.bus.Publish(c.Snapshot())
	}
}

// SetSettings validates and persists a partial connection update. Changing
// the address or port drops the connected flag until the next test.
func (c *Client) SetSettings(upd models.ConnectionUpdate) (models.ConnectionSettings, *models.AppError) {
	if upd.PCPort != nil && (*upd.PCPort < 1 || *upd.PCPort > 65535) {
		return models.ConnectionSettings{}, &models.AppError{
			Code: "BAD_REQUEST", Message: "pcPort must be between 1 and 65535", Field: "pcPort", Status: http.StatusBadRequest,
		}
	}
	if upd.ConnectionType != nil && !upd.ConnectionType.Valid() {
		return models.ConnectionSettings{}, &models.AppError{
			Code: "BAD_REQUEST", Message: "connectionType must be wifi, ethernet or usb", Field: "connectionType", Status: http.StatusBadRequest,
		}
	}

	before := c.Settings()
	next, err := c.mgr.Update(func(s *models.Settings) {
		if upd.PCIPAddress != nil {
			s.Connection.PCIPAddress = *upd.PCIPAddress
		}
		if upd.PCPort != nil {
			s.Connection.PCPort = *upd.PCPort
		}
		if upd.ConnectionType != nil {
			s.Connection.ConnectionType = *upd.ConnectionType
		}
	})
	if err != nil {
		slog.Warn("session: save settings", "err", err)
	}

	if before.PCIPAddress != next.Connection.PCIPAddress || before.PCPort != next.Connection.PCPort {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}
	c.Notify()
	return next.Connection, nil
}

// ResetSettings restores default connection settings and clears the cached
// lists, connectivity and error.
func (c *Client) ResetSettings() {
	if _, err := c.mgr.Update(func(s *models.Settings) {
		s.Connection = models.DefaultConnection()
	}); err != nil {
		slog.Warn("session: save settings", "err", err)
	}

	c.mu.Lock()
	c.connected = false
	c.folders = []models.FolderConfig{}
	c.games = []models.GameItem{}
	c.err = ""
	// Responses from fetches started before the reset are discarded.
	c.folderApplied, c.folderSeq = c.folderSeq+1, c.folderSeq+1
	c.gameApplied, c.gameSeq = c.gameSeq+1, c.gameSeq+1
	c.mu.Unlock()
	c.Notify()
}

// ApplySettings adopts settings reloaded from disk by another writer.
func (c *Client) ApplySettings(settings models.Settings) {
	before := c.Settings()
	c.mgr.Replace(settings)
	if before.PCIPAddress != settings.Connection.PCIPAddress || before.PCPort != settings.Connection.PCPort {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}
	c.Notify()
}

// begin marks a loading operation as started and clears the stored error.
func (c *Client) begin() {
	c.mu.Lock()
	c.inflight++
	c.err = ""
	c.mu.Unlock()
	c.Notify()
}

// finish ends a loading operation, applying fn under the lock and storing errText when set.
func (c *Client) finish(errText string, fn func()) {
	c.mu.Lock()
	if c.inflight > 0 {
		c.inflight--
	}
	if fn != nil {
		fn()
	}
	if errText != "" {
		c.err = errText
	}
	c.mu.Unlock()
	c.Notify()
}

// status asks GET /api/status and returns the failure text, or "" when the
// agent reports "online".
func (c *Client) status(ctx context.Context) string {
	var status struct {
		Status string `json:"status"`
	}
	if err := c.Do(ctx, http.MethodGet, "/api/status", nil, nil, &status); err != nil {
		return failure(err, "Server returned error")
	}
	if status.Status != "online" {
		return "PC agent reported status " + strconv.Quote(status.Status)
	}
	return ""
}

func (c *Client) stampConnected() {
	now := time.Now().UTC()
	if _, err := c.mgr.Update(func(s *models.Settings) {
		s.Connection.LastConnected = &now
	}); err != nil {
		slog.Warn("session: save settings", "err", err)
	}
}

// TestConnection probes GET /api/status. Only an "online" status counts as connected.
func (c *Client) TestConnection(ctx context.Context) bool {
	c.begin()
	if msg := c.status(ctx); msg != "" {
		c.finish(msg, func() { c.connected = false })
		return false
	}
	c.stampConnected()
	c.finish("", func() { c.connected = true })
	return true
}

// Heartbeat is the background form of TestConnection. It does not count
// toward isLoading and only clears an error that an earlier failed heartbeat
// stored. lastConnected is persisted when the agent comes back.
func (c *Client) Heartbeat(ctx context.Context) bool {
	msg := c.status(ctx)

	c.mu.Lock()
	was, prevErr := c.connected, c.err
	if msg != "" {
		c.connected = false
		c.err, c.beatErr = msg, msg
	} else {
		c.connected = true
		if c.beatErr != "" && c.err == c.beatErr {
			c.err = ""
		}
		c.beatErr = ""
	}
	changed := was != c.connected || prevErr != c.err
	c.mu.Unlock()

	if msg == "" && !was {
		c.stampConnected()
	}
	if changed {
		c.Notify()
	}
	return msg == ""
}
