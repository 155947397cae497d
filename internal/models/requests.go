package models

// AddFolderRequest is the body for adding a scan root.
type AddFolderRequest struct {
	Label string     `json:"label"`
	Path  string     `json:"path"`
	Type  FolderType `json:"type"`
}

// LaunchRequest is the body sent to the agent's /api/launch. Exactly one field is set.
type LaunchRequest struct {
	SteamAppID string `json:"steamAppId,omitempty"`
	ExecPath   string `json:"execPath,omitempty"`
}

// FavoriteRequest is the body sent to the agent's POST /api/favorites.
type FavoriteRequest struct {
	ID     string `json:"id"`
	Action string `json:"action"` // "add" | "remove"
}

// PathRequest carries a single filesystem path.
type PathRequest struct {
	Path string `json:"path"`
}

// ConnectionUpdate is the body of PUT /api/connection.
type ConnectionUpdate struct {
	PCIPAddress    *string         `json:"pcIpAddress,omitempty"`
	PCPort         *int            `json:"pcPort,omitempty"`
	ConnectionType *ConnectionType `json:"connectionType,omitempty"`
}

// PickRequest is a pointer position on the colour wheel.
type PickRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ProxyRequest is the body of the command-center proxy routes.
type ProxyRequest struct {
	Token  string `json:"token"`
	Owner  string `json:"owner,omitempty"`
	TeamID string `json:"teamId,omitempty"`
}
