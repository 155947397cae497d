package lighting

import (
	"sync"
	"time"
)

// CooldownPeriod is the minimum spacing between two successful applies.
const CooldownPeriod = 60 * time.Second

// Cooldown is an elapsed-time guard. The zero value is not usable; call NewCooldown.
type Cooldown struct {
	mu     sync.Mutex
	period time.Duration
	last   time.Time
}

// NewCooldown creates a guard with the given period.
func NewCooldown(period time.Duration) *Cooldown {
	return &Cooldown{period: period}
}

// Remaining returns the whole seconds left before the next apply is allowed.
func (c *Cooldown) Remaining(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last.IsZero() {
		return 0
	}
	elapsed := int(now.Sub(c.last) / time.Second)
	total := int(c.period / time.Second)
	if elapsed < 0 {
		return total
	}
	if elapsed >= total {
		return 0
	}
	return total - elapsed
}

// Allow reports whether an apply may run at now.
func (c *Cooldown) Allow(now time.Time) bool {
	return c.Remaining(now) == 0
}

// Mark starts a new cooldown at now.
func (c *Cooldown) Mark(now time.Time) {
	c.mu.Lock()
	c.last = now
	c.mu.Unlock()
}
