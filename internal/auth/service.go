// Package auth protects the hub API with static API keys kept in keys.json.
// With no keys configured the hub runs in open mode.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const keysFileName = "keys.json"

// Key is one named API key.
type Key struct {
	Key     string `json:"key"`
	Created string `json:"created,omitempty"`
}

// Service holds the configured keys and reloads them when keys.json changes.
type Service struct {
	mu        sync.RWMutex
	configDir string
	keys      map[string]Key
	watcher   *fsnotify.Watcher
}

// NewService creates a new auth service watching the given config directory.
func NewService(configDir string) (*Service, error) {
	s := &Service{
		configDir: configDir,
		keys:      make(map[string]Key),
	}

	// Missing file is OK: open mode.
	if err := s.Reload(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Warn("auth: could not create fsnotify watcher", "err", err)
		return s, nil
	}
	s.watcher = watcher

	keysPath := s.KeysPath()
	if err := watcher.Add(filepath.Dir(keysPath)); err != nil {
		slog.Warn("auth: could not watch config dir", "err", err)
	}

	go s.watchLoop(keysPath)
	return s, nil
}

// KeysPath returns the location of keys.json.
func (s *Service) KeysPath() string {
	return filepath.Join(s.configDir, keysFileName)
}

// Reload re-reads keys.json.
func (s *Service) Reload() error {
	data, err := os.ReadFile(s.KeysPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.mu.Lock()
			s.keys = make(map[string]Key)
			s.mu.Unlock()
			return nil
		}
		return err
	}

	var keys map[string]Key
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	if keys == nil {
		keys = make(map[string]Key)
	}

	s.mu.Lock()
	s.keys = keys
	s.mu.Unlock()
	slog.Debug("auth: reloaded keys", "count", len(keys))
	return nil
}

// IsOpenMode returns true if no non-empty key is configured.
// In open mode, all requests are allowed without authentication.
func (s *Service) IsOpenMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range s.keys {
		if k.Key != "" {
			return false
		}
	}
	return true
}

// VerifyKey returns true if key matches any configured key.
// Uses constant-time comparison to prevent timing attacks.
func (s *Service) VerifyKey(key string) bool {
	if key == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	match := false
	for _, k := range s.keys {
		if k.Key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(k.Key)) == 1 {
			match = true
		}
	}
	return match
}

// CreateKey generates a random key under name, writes keys.json and returns the key.
func (s *Service) CreateKey(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("key name is required")
	}
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	key := hex.EncodeToString(buf)

	s.mu.Lock()
	next := make(map[string]Key, len(s.keys)+1)
	for n, k := range s.keys {
		next[n] = k
	}
	next[name] = Key{Key: key, Created: time.Now().UTC().Format(time.RFC3339)}
	s.keys = next
	data, err := json.MarshalIndent(next, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.configDir, 0755); err != nil {
		return "", err
	}
	tmp := s.KeysPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, s.KeysPath()); err != nil {
		return "", err
	}
	return key, nil
}

// Close stops the file watcher.
func (s *Service) Close() {
	if s.watcher != nil {
		s.watcher.Close()
	}
}

func (s *Service) watchLoop(keysPath string) {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Name == keysPath && (event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove)) {
				if err := s.Reload(); err != nil {
					slog.Warn("auth: failed to reload keys", "err", err)
				}
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("auth: watcher error", "err", err)
		}
	}
}
