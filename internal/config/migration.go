package config

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/seezee/launcherhub/internal/models"
)

// settingsFile mirrors models.Settings with every section left raw so that one
// malformed section does not discard the others.
type settingsFile struct {
	Version    int             `json:"version"`
	Connection json.RawMessage `json:"connection"`
	Accent     json.RawMessage `json:"accent"`
}

type connectionFile struct {
	PCIPAddress    *string `json:"pcIpAddress"`
	PCPort         *int    `json:"pcPort"`
	ConnectionType *string `json:"connectionType"`
	LastConnected  *string `json:"lastConnected"`
}

// Decode parses a settings document. Only a document that is not a JSON object
// is an error; anything structurally wrong inside it falls back to defaults.
func Decode(data []byte) (*models.Settings, error) {
	var file settingsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	settings := models.DefaultSettings()
	settings.Connection = decodeConnection(file.Connection)
	settings.Accent = decodeAccent(file.Accent)
	if file.Version > models.SettingsVersion {
		slog.Warn("config: settings written by a newer version", "version", file.Version)
	}
	return &settings, nil
}

func decodeConnection(raw json.RawMessage) models.ConnectionSettings {
	conn := models.DefaultConnection()
	if len(raw) == 0 {
		return conn
	}

	var in connectionFile
	if err := json.Unmarshal(raw, &in); err != nil {
		slog.Warn("config: invalid connection section, using defaults", "err", err)
		return conn
	}

	if in.PCIPAddress != nil {
		conn.PCIPAddress = *in.PCIPAddress
	}
	if in.PCPort != nil {
		if *in.PCPort >= 1 && *in.PCPort <= 65535 {
			conn.PCPort = *in.PCPort
		} else {
			slog.Warn("config: invalid port, using default", "port", *in.PCPort)
		}
	}
	if in.ConnectionType != nil {
		if ct := models.ConnectionType(*in.ConnectionType); ct.Valid() {
			conn.ConnectionType = ct
		} else {
			slog.Warn("config: unknown connection type, using wifi", "type", *in.ConnectionType)
		}
	}
	if in.LastConnected != nil {
		if t, err := time.Parse(time.RFC3339Nano, *in.LastConnected); err == nil {
			conn.LastConnected = &t
		}
	}
	return conn
}

func decodeAccent(raw json.RawMessage) models.RGB {
	if len(raw) == 0 {
		return models.DefaultAccent
	}
	var in models.RGBInput
	if err := json.Unmarshal(raw, &in); err != nil || !in.Valid() {
		slog.Warn("config: invalid accent, using default")
		return models.DefaultAccent
	}
	return in.RGB()
}
