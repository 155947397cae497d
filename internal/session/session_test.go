package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/seezee/launcherhub/internal/config"
	"github.com/seezee/launcherhub/internal/events"
	"github.com/seezee/launcherhub/internal/models"
	"github.com/seezee/launcherhub/internal/session"
)

// fakeAgent is an in-memory stand-in for the PC agent.
type fakeAgent struct {
	mu        sync.Mutex
	status    string
	failAll   bool
	folders   []models.FolderConfig
	games     []models.GameItem
	favorites []string
	recent    []models.RecentPlay
	launches  []models.LaunchRequest
	requests  atomic.Int32
	nextID    int
}

func newFakeAgent() *fakeAgent {
	return &fakeAgent{
		status: "online",
		folders: []models.FolderConfig{
			{ID: "f1", Label: "Steam", Path: `C:\Steam`, Type: models.FolderGames, Enabled: true},
		},
		games: []models.GameItem{
			{ID: "steam_620", Title: "Portal 2", Source: models.SourceSteam, SteamAppID: "620"},
			{ID: "local_1", Title: "Tool", Source: models.SourceTool, ExecPath: `D:\Tools\tool.exe`},
		},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *fakeAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.requests.Add(1)
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.failAll {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "agent exploded"})
		return
	}

	switch r.Method + " " + r.URL.Path {
	case "GET /api/status":
		writeJSON(w, http.StatusOK, map[string]string{"status": a.status, "version": "2.0.0", "platform": "windows"})
	case "GET /api/folders":
		writeJSON(w, http.StatusOK, map[string]any{"folders": a.folders})
	case "POST /api/folders":
		var req models.AddFolderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Path == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Path is required"})
			return
		}
		a.nextID++
		depth := 2
		f := models.FolderConfig{
			ID: "new" + strconv.Itoa(a.nextID), Label: req.Label, Path: req.Path,
			Type: req.Type, ScanDepth: &depth, Enabled: true,
		}
		a.folders = append(a.folders, f)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "folder": f, "folders": a.folders})
	case "DELETE /api/folders":
		id := r.URL.Query().Get("id")
		for i, f := range a.folders {
			if f.ID == id {
				a.folders = append(a.folders[:i:i], a.folders[i+1:]...)
				writeJSON(w, http.StatusOK, map[string]any{"success": true, "folders": a.folders})
				return
			}
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Folder not found"})
	case "GET /api/games":
		writeJSON(w, http.StatusOK, map[string]any{"games": a.games, "count": len(a.games)})
	case "POST /api/launch":
		var req models.LaunchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		a.launches = append(a.launches, req)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Launching"})
	case "POST /api/track-recent":
		var req struct {
			ID string `json:"id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		a.recent = append([]models.RecentPlay{{ID: req.ID, Timestamp: "2026-01-01T00:00:00Z"}}, a.recent...)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "recentPlays": a.recent})
	case "GET /api/recent-plays":
		writeJSON(w, http.StatusOK, map[string]any{"recentPlays": a.recent})
	case "GET /api/favorites":
		writeJSON(w, http.StatusOK, map[string]any{"favorites": a.favorites})
	case "POST /api/favorites":
		var req models.FavoriteRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		next := []string{}
		for _, f := range a.favorites {
			if f != req.ID {
				next = append(next, f)
			}
		}
		if req.Action == "add" {
			next = append(next, req.ID)
		}
		a.favorites = next
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "favorites": a.favorites})
	case "GET /api/fs/drives":
		writeJSON(w, http.StatusOK, map[string]any{"drives": []string{`C:\`, `D:\`}})
	case "GET /api/fs/list":
		p := r.URL.Query().Get("path")
		writeJSON(w, http.StatusOK, map[string]any{
			"path":        p,
			"directories": []models.DirectoryEntry{{Name: "Games", Path: p + `Games`}},
		})
	case "POST /api/fs/create":
		var req models.PathRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "path": req.Path})
	default:
		http.NotFound(w, r)
	}
}

// newTestClient points a fresh client at handler.
func newTestClient(t *testing.T, handler http.Handler) (*session.Client, *config.MemStore, *events.Bus) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatal(err)
	}
	port, _ := strconv.Atoi(portStr)

	store := config.NewMemStore()
	mgr, err := config.NewManager(store)
	if err != nil {
		t.Fatal(err)
	}
	bus := events.NewBus()
	c := session.New(mgr, bus, srv.Client())
	if _, appErr := c.SetSettings(models.ConnectionUpdate{PCIPAddress: &host, PCPort: &port}); appErr != nil {
		t.Fatalf("SetSettings: %v", appErr)
	}
	return c, store, bus
}

func TestServerURL(t *testing.T) {
	store := config.NewMemStore()
	mgr, _ := config.NewManager(store)
	c := session.New(mgr, nil, nil)

	if got := c.ServerURL(); got != "" {
		t.Errorf("ServerURL() with no address = %q, want empty", got)
	}

	ip := "192.168.1.20"
	if _, err := c.SetSettings(models.ConnectionUpdate{PCIPAddress: &ip}); err != nil {
		t.Fatal(err)
	}
	if got, want := c.ServerURL(), "http://192.168.1.20:5555"; got != want {
		t.Errorf("ServerURL() = %q, want %q", got, want)
	}

	v6 := "fe80::1"
	c.SetSettings(models.ConnectionUpdate{PCIPAddress: &v6})
	if got, want := c.ServerURL(), "http://[fe80::1]:5555"; got != want {
		t.Errorf("ServerURL() = %q, want %q", got, want)
	}
}

func TestDo_NoAddressFailsFast(t *testing.T) {
	mgr, _ := config.NewManager(config.NewMemStore())
	c := session.New(mgr, nil, nil)

	err := c.Do(context.Background(), http.MethodGet, "/api/status", nil, nil, nil)
	if !errors.Is(err, session.ErrNoAgent) {
		t.Errorf("Do() error = %v, want ErrNoAgent", err)
	}
	if c.TestConnection(context.Background()) {
		t.Error("TestConnection() = true with no address")
	}
	if c.Error() == "" {
		t.Error("expected stored error")
	}
}

func TestDo_RemoteErrorCarriesMessage(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)

	err := c.Do(context.Background(), http.MethodDelete, "/api/folders", url.Values{"id": {"nope"}}, nil, nil)
	var remote *session.RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("Do() error = %v, want *RemoteError", err)
	}
	if remote.Status != http.StatusNotFound || remote.Message != "Folder not found" {
		t.Errorf("RemoteError = %+v", remote)
	}
}

func TestSetSettings_Validation(t *testing.T) {
	mgr, _ := config.NewManager(config.NewMemStore())
	c := session.New(mgr, nil, nil)

	bad := 70000
	if _, err := c.SetSettings(models.ConnectionUpdate{PCPort: &bad}); err == nil || err.Field != "pcPort" {
		t.Errorf("SetSettings(port 70000) error = %v, want pcPort error", err)
	}
	typ := models.ConnectionType("bluetooth")
	if _, err := c.SetSettings(models.ConnectionUpdate{ConnectionType: &typ}); err == nil || err.Field != "connectionType" {
		t.Errorf("SetSettings(bluetooth) error = %v, want connectionType error", err)
	}
}

func TestSetSettings_Persists(t *testing.T) {
	store := config.NewMemStore()
	mgr, _ := config.NewManager(store)
	c := session.New(mgr, nil, nil)

	ip := "10.0.0.9"
	typ := models.ConnectionEthernet
	got, err := c.SetSettings(models.ConnectionUpdate{PCIPAddress: &ip, ConnectionType: &typ})
	if err != nil {
		t.Fatal(err)
	}
	if got.PCIPAddress != ip || got.PCPort != models.DefaultPort || got.ConnectionType != typ {
		t.Errorf("SetSettings() = %+v", got)
	}
	saved, _ := store.Load()
	if saved.Connection.PCIPAddress != ip {
		t.Errorf("persisted address = %q, want %q", saved.Connection.PCIPAddress, ip)
	}
}

func TestTestConnection_Online(t *testing.T) {
	agent := newFakeAgent()
	c, store, _ := newTestClient(t, agent)

	if !c.TestConnection(context.Background()) {
		t.Fatalf("TestConnection() = false, error %q", c.Error())
	}
	snap := c.Snapshot()
	if !snap.IsConnected || snap.Error != "" || snap.IsLoading {
		t.Errorf("snapshot = connected %v error %q loading %v", snap.IsConnected, snap.Error, snap.IsLoading)
	}
	saved, _ := store.Load()
	if saved.Connection.LastConnected == nil {
		t.Error("lastConnected not persisted")
	}
}

func TestTestConnection_NotOnline(t *testing.T) {
	agent := newFakeAgent()
	agent.status = "starting"
	c, _, _ := newTestClient(t, agent)

	if c.TestConnection(context.Background()) {
		t.Error("TestConnection() = true for status starting")
	}
	if c.Connected() {
		t.Error("Connected() = true")
	}
	if c.Error() == "" {
		t.Error("expected stored error")
	}
}

func TestTestConnection_FailureKeepsCachedLists(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()

	c.FetchFolders(ctx)
	c.FetchGames(ctx)
	if len(c.Folders()) != 1 || len(c.Games()) != 2 {
		t.Fatalf("initial lists: folders %d games %d", len(c.Folders()), len(c.Games()))
	}

	agent.mu.Lock()
	agent.failAll = true
	agent.mu.Unlock()

	if c.TestConnection(ctx) {
		t.Fatal("TestConnection() = true against failing agent")
	}
	snap := c.Snapshot()
	if snap.IsConnected {
		t.Error("isConnected = true after failure")
	}
	if snap.Error != "agent exploded" {
		t.Errorf("error = %q, want agent's message", snap.Error)
	}
	if len(snap.Folders) != 1 || len(snap.Games) != 2 {
		t.Errorf("lists changed: folders %d games %d", len(snap.Folders), len(snap.Games))
	}
}

func TestFetchGames_MarksConnected(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)

	games, ok := c.FetchGames(context.Background())
	if !ok || len(games) != 2 {
		t.Fatalf("FetchGames() len = %d, want 2", len(games))
	}
	if !c.Connected() {
		t.Error("Connected() = false after successful game fetch")
	}
}

func TestFetchFolders_MalformedKeepsStale(t *testing.T) {
	var broken atomic.Bool
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if broken.Load() {
			writeJSON(w, http.StatusOK, map[string]string{"unexpected": "shape"})
			return
		}
		agent.ServeHTTP(w, r)
	}))

	c.FetchFolders(context.Background())
	broken.Store(true)
	got, ok := c.FetchFolders(context.Background())
	if ok {
		t.Error("FetchFolders() ok = true for malformed body")
	}
	if len(got) != 1 {
		t.Errorf("FetchFolders() len = %d, want stale 1", len(got))
	}
	if c.Error() == "" {
		t.Error("expected stored error for malformed response")
	}
}

func TestFetchFolders_OverlappingResponsesApplyNewest(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(arrived)
			<-release
			writeJSON(w, http.StatusOK, map[string]any{"folders": []models.FolderConfig{{ID: "old"}}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"folders": []models.FolderConfig{{ID: "new"}}})
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.FetchFolders(context.Background())
	}()
	<-arrived

	c.FetchFolders(context.Background())
	close(release)
	<-done

	got := c.Folders()
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("Folders() = %+v, want the newer response", got)
	}
	if c.Snapshot().IsLoading {
		t.Error("isLoading still set after both fetches finished")
	}
}

func TestAddFolder_EmptyPathNoNetwork(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	before := agent.requests.Load()

	if f := c.AddFolder(context.Background(), "Games", "   ", models.FolderGames); f != nil {
		t.Errorf("AddFolder(empty path) = %+v, want nil", f)
	}
	if agent.requests.Load() != before {
		t.Error("AddFolder with empty path reached the agent")
	}
	if c.Error() != "path is required" {
		t.Errorf("error = %q", c.Error())
	}
}

func TestAddFolder_AppendsEnabledEntry(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()
	c.FetchFolders(ctx)

	f := c.AddFolder(ctx, "Games", `D:\Games`, models.FolderGames)
	if f == nil {
		t.Fatalf("AddFolder() = nil, error %q", c.Error())
	}
	if f.Path != `D:\Games` || f.Type != models.FolderGames || !f.Enabled {
		t.Errorf("folder = %+v", f)
	}

	got := c.Folders()
	if len(got) != 2 {
		t.Fatalf("Folders() len = %d, want 2", len(got))
	}
	matches := 0
	for _, g := range got {
		if g.Path == `D:\Games` {
			matches++
		}
	}
	if matches != 1 {
		t.Errorf("entries with new path = %d, want 1", matches)
	}
}

func TestAddFolder_DefaultLabel(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)

	tests := []struct {
		path string
		want string
	}{
		{`D:\Games\Indie\`, "Indie"},
		{"/home/me/roms", "roms"},
	}
	for _, tt := range tests {
		f := c.AddFolder(context.Background(), "", tt.path, "")
		if f == nil {
			t.Fatalf("AddFolder(%q) = nil", tt.path)
		}
		if f.Label != tt.want {
			t.Errorf("AddFolder(%q).Label = %q, want %q", tt.path, f.Label, tt.want)
		}
		if f.Type != models.FolderGames {
			t.Errorf("AddFolder(%q).Type = %q, want games", tt.path, f.Type)
		}
	}
}

func TestRemoveFolder(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()
	c.FetchFolders(ctx)

	if c.RemoveFolder(ctx, "missing") {
		t.Error("RemoveFolder(missing) = true")
	}
	if len(c.Folders()) != 1 {
		t.Errorf("list changed after failed remove: %+v", c.Folders())
	}
	if c.Error() != "Folder not found" {
		t.Errorf("error = %q, want agent's message", c.Error())
	}

	if !c.RemoveFolder(ctx, "f1") {
		t.Fatalf("RemoveFolder(f1) = false, error %q", c.Error())
	}
	if len(c.Folders()) != 0 {
		t.Errorf("Folders() = %+v, want empty", c.Folders())
	}
}

func TestLaunchGame(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()

	before := agent.requests.Load()
	if c.LaunchGame(ctx, models.GameItem{ID: "x", Title: "Nothing"}) {
		t.Error("LaunchGame(no target) = true")
	}
	if agent.requests.Load() != before {
		t.Error("LaunchGame without target reached the agent")
	}

	both := models.GameItem{ID: "steam_620", Title: "Portal 2", SteamAppID: "620", ExecPath: `C:\portal2.exe`}
	if !c.LaunchGame(ctx, both) {
		t.Fatalf("LaunchGame() = false, error %q", c.Error())
	}

	agent.mu.Lock()
	defer agent.mu.Unlock()
	if len(agent.launches) != 1 || agent.launches[0].SteamAppID != "620" || agent.launches[0].ExecPath != "" {
		t.Errorf("launch body = %+v, want steamAppId only", agent.launches)
	}
	if len(agent.recent) != 1 || agent.recent[0].ID != "steam_620" {
		t.Errorf("recent = %+v, want launched item tracked", agent.recent)
	}
}

func TestToggleFavorite(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()

	favs, ok := c.ToggleFavorite(ctx, "steam_620")
	if !ok || len(favs) != 1 || favs[0] != "steam_620" {
		t.Fatalf("first toggle = %v %v", favs, ok)
	}
	favs, ok = c.ToggleFavorite(ctx, "steam_620")
	if !ok || len(favs) != 0 {
		t.Errorf("second toggle = %v %v, want empty", favs, ok)
	}
}

func TestBrowse(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()

	drives, ok := c.ListDrives(ctx)
	if !ok || len(drives) != 2 {
		t.Errorf("ListDrives() = %v %v", drives, ok)
	}
	path, dirs, ok := c.ListDirectory(ctx, `D:\`)
	if !ok || path != `D:\` || len(dirs) != 1 || dirs[0].Name != "Games" {
		t.Errorf("ListDirectory() = %q %v %v", path, dirs, ok)
	}
	if _, _, ok := c.ListDirectory(ctx, ""); ok {
		t.Error("ListDirectory(\"\") = ok")
	}
	created, ok := c.CreateDirectory(ctx, `D:\New`)
	if !ok || created != `D:\New` {
		t.Errorf("CreateDirectory() = %q %v", created, ok)
	}
}

func TestResetSettings(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()
	c.TestConnection(ctx)
	c.FetchFolders(ctx)

	c.ResetSettings()
	snap := c.Snapshot()
	if snap.IsConnected || len(snap.Folders) != 0 || snap.PCIPAddress != "" || snap.PCPort != models.DefaultPort {
		t.Errorf("snapshot after reset = %+v", snap)
	}
}

func TestStateChangesArePublished(t *testing.T) {
	agent := newFakeAgent()
	c, _, bus := newTestClient(t, agent)
	ch := bus.Subscribe("test")
	defer bus.Unsubscribe("test")

	c.TestConnection(context.Background())

	var last models.Snapshot
drain:
	for {
		select {
		case last = <-ch:
		default:
			break drain
		}
	}
	if !last.IsConnected {
		t.Errorf("last published snapshot isConnected = false")
	}
}

func TestFetchGames_OverlappingResponsesApplyNewest(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(arrived)
			<-release
			writeJSON(w, http.StatusOK, map[string]any{"games": []models.GameItem{{ID: "old", Title: "Old"}}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"games": []models.GameItem{{ID: "new", Title: "New"}}})
	}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		c.FetchGames(context.Background())
	}()
	<-arrived

	c.FetchGames(context.Background())
	close(release)
	<-done

	got := c.Games()
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("Games() = %+v, want the newer response", got)
	}
	if !c.Connected() {
		t.Error("Connected() = false after a successful fetch")
	}
}

func TestLaunchGame_RecentTrackingFailureIsQuiet(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/launch" {
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
			return
		}
		http.NotFound(w, r)
	}))

	item := models.GameItem{ID: "steam_620", Title: "Portal 2", SteamAppID: "620"}
	if !c.LaunchGame(context.Background(), item) {
		t.Fatalf("LaunchGame() = false, error %q", c.Error())
	}
	if c.Error() != "" {
		t.Errorf("error = %q after a successful launch, want empty", c.Error())
	}
}

func TestLaunchGame_AgentRejects(t *testing.T) {
	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"error field", map[string]any{"success": false, "error": "Executable not found"}, "Executable not found"},
		{"message field", map[string]any{"success": false, "message": "Steam is not running"}, "Steam is not running"},
		{"no text", map[string]any{"success": false}, "Failed to launch Portal 2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, tc.body)
			}))
			item := models.GameItem{ID: "steam_620", Title: "Portal 2", SteamAppID: "620"}
			if c.LaunchGame(context.Background(), item) {
				t.Fatal("LaunchGame() = true")
			}
			if c.Error() != tc.want {
				t.Errorf("error = %q, want %q", c.Error(), tc.want)
			}
		})
	}
}

func TestHeartbeat_KeepsOperationErrors(t *testing.T) {
	agent := newFakeAgent()
	c, store, _ := newTestClient(t, agent)
	ctx := context.Background()

	c.SetError("Failed to add folder")
	saves := store.Saves()
	if !c.Heartbeat(ctx) {
		t.Fatal("Heartbeat() = false")
	}
	if c.Error() != "Failed to add folder" {
		t.Errorf("error = %q, want the folder error kept", c.Error())
	}
	if c.Snapshot().IsLoading {
		t.Error("heartbeat left isLoading set")
	}
	if store.Saves() != saves+1 {
		t.Errorf("saves = %d, want lastConnected stamped once on reconnect", store.Saves()-saves)
	}

	saves = store.Saves()
	c.Heartbeat(ctx)
	if store.Saves() != saves {
		t.Error("heartbeat while connected wrote settings")
	}
}

func TestHeartbeat_ClearsItsOwnError(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()

	agent.mu.Lock()
	agent.failAll = true
	agent.mu.Unlock()
	if c.Heartbeat(ctx) {
		t.Fatal("Heartbeat() = true against a failing agent")
	}
	if c.Error() != "agent exploded" || c.Connected() {
		t.Errorf("after failure: error %q connected %v", c.Error(), c.Connected())
	}

	agent.mu.Lock()
	agent.failAll = false
	agent.mu.Unlock()
	if !c.Heartbeat(ctx) {
		t.Fatal("Heartbeat() = false after recovery")
	}
	if c.Error() != "" || !c.Connected() {
		t.Errorf("after recovery: error %q connected %v", c.Error(), c.Connected())
	}
}

func TestBrowse_ClearsStaleError(t *testing.T) {
	agent := newFakeAgent()
	c, _, _ := newTestClient(t, agent)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() bool
	}{
		{"drives", func() bool { _, ok := c.ListDrives(ctx); return ok }},
		{"list", func() bool { _, _, ok := c.ListDirectory(ctx, `C:\`); return ok }},
		{"create", func() bool { _, ok := c.CreateDirectory(ctx, `C:\New`); return ok }},
	}
	for _, tc := range cases {
		c.SetError("Failed to list directory")
		if !tc.call() {
			t.Fatalf("%s failed: %q", tc.name, c.Error())
		}
		if c.Error() != "" {
			t.Errorf("%s: error = %q, want cleared", tc.name, c.Error())
		}
	}
}
