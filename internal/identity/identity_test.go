package identity_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/seezee/launcherhub/internal/identity"
)

func TestVersionFromDir(t *testing.T) {
	cases := []struct {
		name    string
		content string // "" means no file
		want    string
	}{
		{"missing file", "", identity.DefaultVersion},
		{"from file", `{"version":"2.1.3"}`, "2.1.3"},
		{"invalid json", "not json", identity.DefaultVersion},
		{"empty version", `{"version":""}`, identity.DefaultVersion},
		{"wrong type", `{"version":7}`, identity.DefaultVersion},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.content != "" {
				if err := os.WriteFile(filepath.Join(dir, "metadata.json"), []byte(tc.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			if got := identity.VersionFromDir(dir); got != tc.want {
				t.Errorf("VersionFromDir = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestInstanceName(t *testing.T) {
	cases := map[string]string{
		"kiosk":         "launcherhub-kiosk",
		"kiosk.local":   "launcherhub-kiosk",
		"launcherhub":   "launcherhub",
		"":              "launcherhub",
		"pi4.home.arpa": "launcherhub-pi4",
	}
	for host, want := range cases {
		if got := identity.InstanceName(host); got != want {
			t.Errorf("InstanceName(%q) = %q; want %q", host, got, want)
		}
	}
}

func TestLoad(t *testing.T) {
	info := identity.Load(t.TempDir())
	if info.Hostname == "" {
		t.Error("Hostname is empty")
	}
	if info.Instance != identity.InstanceName(info.Hostname) {
		t.Errorf("Instance = %q", info.Instance)
	}
	if info.Version != identity.DefaultVersion {
		t.Errorf("Version = %q", info.Version)
	}
}
