package lighting

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/seezee/launcherhub/internal/models"
)

// LogSize is how many activity entries are kept.
const LogSize = 100

// Log entry types.
const (
	LogInfo    = "info"
	LogWarning = "warning"
	LogError   = "error"
	LogSuccess = "success"
)

// Log is a bounded activity log shown next to the lighting controls.
type Log struct {
	mu      sync.Mutex
	entries []models.LogEntry
	now     func() time.Time
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// Addf appends an entry, dropping the oldest beyond LogSize.
func (l *Log) Addf(typ, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	slog.Debug("lighting: "+msg, "type", typ)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, models.LogEntry{
		Timestamp: l.now().Format(time.RFC3339),
		Type:      typ,
		Message:   msg,
	})
	if over := len(l.entries) - LogSize; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

// Entries returns the log, oldest first.
func (l *Log) Entries() []models.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the log.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
