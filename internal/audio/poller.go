package audio

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seezee/launcherhub/internal/models"
)

// PollInterval is how often the audio state is refreshed while someone is watching.
const PollInterval = time.Second

// Poller refreshes the audio state on a ticker and fans it out to
// subscribers. It only talks to the agent while it has subscribers.
type Poller struct {
	ctrl     *Controller
	interval time.Duration

	mu   sync.Mutex
	subs map[string]chan models.AudioState
}

// NewPoller creates a Poller. A zero interval uses PollInterval.
func NewPoller(ctrl *Controller, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = PollInterval
	}
	return &Poller{ctrl: ctrl, interval: interval, subs: make(map[string]chan models.AudioState)}
}

// Subscribe registers a watcher and returns its id and channel.
func (p *Poller) Subscribe() (string, <-chan models.AudioState) {
	id := uuid.New().String()
	ch := make(chan models.AudioState, 1)
	p.mu.Lock()
	p.subs[id] = ch
	p.mu.Unlock()
	return id, ch
}

// Unsubscribe removes a watcher and closes its channel.
func (p *Poller) Unsubscribe(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ch, ok := p.subs[id]; ok {
		delete(p.subs, id)
		close(ch)
	}
}

func (p *Poller) active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs) > 0
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.active() {
				continue
			}
			st, appErr := p.ctrl.State(ctx)
			if appErr != nil {
				slog.Debug("audio: poll failed", "err", appErr.Message)
				continue
			}
			p.broadcast(*st)
		}
	}
}

// broadcast replaces any undelivered state with st.
func (p *Poller) broadcast(st models.AudioState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}
