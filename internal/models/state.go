// Package models defines the data structures shared by the launcher hub.
// JSON field names match the remote agent's wire format.
package models

import "time"

// ConnectionType is the physical link the hub uses to reach the PC.
type ConnectionType string

const (
	ConnectionWiFi     ConnectionType = "wifi"
	ConnectionEthernet ConnectionType = "ethernet"
	ConnectionUSB      ConnectionType = "usb"
)

// Valid reports whether t is a known connection type.
func (t ConnectionType) Valid() bool {
	switch t {
	case ConnectionWiFi, ConnectionEthernet, ConnectionUSB:
		return true
	}
	return false
}

// ConnectionSettings is the persisted part of the session.
type ConnectionSettings struct {
	PCIPAddress    string         `json:"pcIpAddress"`
	PCPort         int            `json:"pcPort"`
	ConnectionType ConnectionType `json:"connectionType"`
	LastConnected  *time.Time     `json:"lastConnected,omitempty"`
}

// FolderType tags a scan root as holding games or tools.
type FolderType string

const (
	FolderGames FolderType = "games"
	FolderTools FolderType = "tools"
)

// Valid reports whether t is a known folder type.
func (t FolderType) Valid() bool {
	return t == FolderGames || t == FolderTools
}

// FolderConfig is a scan root tracked by the remote agent.
type FolderConfig struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	Path      string     `json:"path"`
	Type      FolderType `json:"type"`
	ScanDepth *int       `json:"scanDepth,omitempty"`
	Enabled   bool       `json:"enabled"`
}

// GameSource is where a GameItem was discovered.
type GameSource string

const (
	SourceSteam GameSource = "steam"
	SourceEpic  GameSource = "epic"
	SourceLocal GameSource = "local"
	SourceTool  GameSource = "tool"
)

// GameItem is a launchable entity reported by the remote agent.
type GameItem struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Source       GameSource `json:"source"`
	SteamAppID   string     `json:"steamAppId,omitempty"`
	ExecPath     string     `json:"execPath,omitempty"`
	CoverImage   string     `json:"coverImage,omitempty"`
	FolderSource string     `json:"folderSource,omitempty"`
}

// Launchable reports whether the item carries a launch target.
func (g GameItem) Launchable() bool {
	return g.SteamAppID != "" || g.ExecPath != ""
}

// DirectoryEntry is one subdirectory returned by the agent's filesystem browser.
type DirectoryEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// RecentPlay records when an item was last launched.
type RecentPlay struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Snapshot is the session state visible to every page, published on each change.
type Snapshot struct {
	ConnectionSettings
	IsConnected bool           `json:"isConnected"`
	Folders     []FolderConfig `json:"folders"`
	Games       []GameItem     `json:"games"`
	IsLoading   bool           `json:"isLoading"`
	Error       string         `json:"error,omitempty"`
	Accent      RGB            `json:"accent"`
	Cooldown    int            `json:"cooldownRemaining"`
}

// Clone returns a copy that shares no slices with s.
func (s Snapshot) Clone() Snapshot {
	next := s
	next.Folders = make([]FolderConfig, len(s.Folders))
	for i, f := range s.Folders {
		nf := f
		if f.ScanDepth != nil {
			d := *f.ScanDepth
			nf.ScanDepth = &d
		}
		next.Folders[i] = nf
	}
	next.Games = make([]GameItem, len(s.Games))
	copy(next.Games, s.Games)
	if s.LastConnected != nil {
		t := *s.LastConnected
		next.LastConnected = &t
	}
	return next
}
