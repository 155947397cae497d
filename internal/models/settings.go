package models

// SettingsVersion is stamped into every settings file written by the hub.
const SettingsVersion = 1

// DefaultPort is the remote agent's default listen port.
const DefaultPort = 5555

// Settings is the document persisted in the hub's config directory.
type Settings struct {
	Version    int                `json:"version"`
	Connection ConnectionSettings `json:"connection"`
	Accent     RGB                `json:"accent"`
}

// DefaultConnection returns the connection settings used before anything is configured.
func DefaultConnection() ConnectionSettings {
	return ConnectionSettings{
		PCPort:         DefaultPort,
		ConnectionType: ConnectionWiFi,
	}
}

// DefaultSettings returns the settings used when no file exists or it cannot be parsed.
func DefaultSettings() Settings {
	return Settings{
		Version:    SettingsVersion,
		Connection: DefaultConnection(),
		Accent:     DefaultAccent,
	}
}

// Clone returns a deep copy of s.
func (s Settings) Clone() Settings {
	next := s
	if s.Connection.LastConnected != nil {
		t := *s.Connection.LastConnected
		next.Connection.LastConnected = &t
	}
	return next
}
