package events_test

import (
	"testing"
	"time"

	"github.com/seezee/launcherhub/internal/events"
	"github.com/seezee/launcherhub/internal/models"
)

func TestBusSubscribePublish(t *testing.T) {
	bus := events.NewBus()

	ch := bus.Subscribe("test1")
	bus.Publish(models.Snapshot{Error: "boom", IsConnected: true})

	select {
	case got := <-ch:
		if got.Error != "boom" || !got.IsConnected {
			t.Errorf("got %+v", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for event")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe("test-unsub")

	bus.Unsubscribe("test-unsub")

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed after unsubscribe")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for channel close")
	}

	// Unsubscribing twice is harmless.
	bus.Unsubscribe("test-unsub")
}

func TestBusDropsEventsWhenFull(t *testing.T) {
	bus := events.NewBus()
	bus.Subscribe("slow-reader")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 20; i++ {
			bus.Publish(models.Snapshot{})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("Publish blocked for too long (should drop events)")
	}
	bus.Unsubscribe("slow-reader")
}

func TestBusSubscriberCount(t *testing.T) {
	bus := events.NewBus()
	if n := bus.SubscriberCount(); n != 0 {
		t.Errorf("expected 0 subscribers, got %d", n)
	}
	bus.Subscribe("s1")
	bus.Subscribe("s2")
	if n := bus.SubscriberCount(); n != 2 {
		t.Errorf("expected 2 subscribers, got %d", n)
	}
	bus.Unsubscribe("s1")
	if n := bus.SubscriberCount(); n != 1 {
		t.Errorf("expected 1 subscriber, got %d", n)
	}
}

func TestBusKeepsNewestWhenFull(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe("slow")

	for i := 0; i < 20; i++ {
		bus.Publish(models.Snapshot{Cooldown: i})
	}

	var last models.Snapshot
	for {
		select {
		case s := <-ch:
			last = s
			continue
		default:
		}
		break
	}
	if last.Cooldown != 19 {
		t.Errorf("last delivered snapshot = %d, want 19", last.Cooldown)
	}
}
