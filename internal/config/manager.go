package config

import (
	"sync"

	"github.com/seezee/launcherhub/internal/models"
)

// Manager owns the in-memory settings document shared by the session and the
// theme. Every mutation goes through Update, which persists the result.
type Manager struct {
	mu       sync.RWMutex
	settings models.Settings
	store    Store
}

// NewManager loads the current settings from store.
func NewManager(store Store) (*Manager, error) {
	settings, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Manager{settings: settings.Clone(), store: store}, nil
}

// Get returns a copy of the current settings.
func (m *Manager) Get() models.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.Clone()
}

// Update applies fn to a copy of the settings, keeps the result and schedules a save.
func (m *Manager) Update(fn func(*models.Settings)) (models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := m.settings.Clone()
	fn(&next)
	m.settings = next
	return next.Clone(), m.store.Save(&m.settings)
}

// Replace swaps in settings read from disk without writing them back.
func (m *Manager) Replace(settings models.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings.Clone()
}

// Flush writes any pending save immediately.
func (m *Manager) Flush() error {
	return m.store.Flush()
}

// Store returns the backing store.
func (m *Manager) Store() Store { return m.store }
