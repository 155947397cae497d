// Package identity describes the running hub: host name, version and the
// instance name it advertises on the LAN.
package identity

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// DefaultVersion is used when metadata.json is missing or unreadable.
const DefaultVersion = "2.0.0"

// Info is returned by GET /api/info.
type Info struct {
	Hostname string `json:"hostname"`
	Instance string `json:"instance"`
	Version  string `json:"version"`
}

// Load builds the hub's identity, reading the version from configDir.
func Load(configDir string) Info {
	host := Hostname()
	return Info{
		Hostname: host,
		Instance: InstanceName(host),
		Version:  VersionFromDir(configDir),
	}
}

// Hostname returns the system hostname, or "launcherhub" when it cannot be read.
func Hostname() string {
	h, err := os.Hostname()
	if err != nil || h == "" {
		return "launcherhub"
	}
	return h
}

// InstanceName is the mDNS instance name for a host: the short host name
// prefixed with "launcherhub-".
func InstanceName(host string) string {
	short, _, _ := strings.Cut(host, ".")
	if short == "" || short == "launcherhub" {
		return "launcherhub"
	}
	return "launcherhub-" + short
}

// VersionFromDir reads "version" from dir/metadata.json.
func VersionFromDir(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return DefaultVersion
	}

	var meta struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &meta); err != nil || meta.Version == "" {
		return DefaultVersion
	}
	return meta.Version
}
