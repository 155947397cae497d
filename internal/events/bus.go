// Package events fans session snapshots out to live views (SSE clients, the TUI).
package events

import (
	"sync"

	"github.com/seezee/launcherhub/internal/models"
)

const subBufferSize = 8

// Publisher is what state holders need from the bus.
type Publisher interface {
	Publish(models.Snapshot)
}

// Bus is a non-blocking publish-subscribe bus for snapshots.
// A slow subscriber loses its oldest queued snapshots, never the newest, so
// every view converges on the current state.
type Bus struct {
	mu   sync.Mutex
	subs map[string]chan models.Snapshot
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]chan models.Snapshot),
	}
}

// Subscribe registers a subscriber under id and returns its channel.
// Call Unsubscribe when done to clean up.
func (b *Bus) Subscribe(id string) <-chan models.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan models.Snapshot, subBufferSize)
	b.subs[id] = ch
	return ch
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish hands snap to every subscriber without blocking.
func (b *Bus) Publish(snap models.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		for {
			select {
			case ch <- snap.Clone():
			default:
				// Full: discard the oldest and retry.
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}

// SubscriberCount returns the current number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

var _ Publisher = (*Bus)(nil)
