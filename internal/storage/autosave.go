package storage

import (
	"context"
	"log"
	"time"

	"golang.org/x/time/rate"

	"github.com/lukia82-netizen/LALK-Stats/internal/events"
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// SnapshotSource produces the snapshot to persist. The session
// controller's Snapshot method satisfies it.
type SnapshotSource func() *game.Snapshot

// Autosaver persists a snapshot after state changes, rate limited so a
// burst of actions coalesces into one write. It listens for
// state-changed events from its own goroutine; the dispatch side only
// flips a dirty signal, so observers never write to the database while
// the session lock is held.
type Autosaver struct {
	store   *SnapshotStore
	source  SnapshotSource
	limiter *rate.Limiter

	dirty  chan struct{}
	done   chan struct{}
	cancel context.CancelFunc
}

// NewAutosaver creates an autosaver writing to the current slot at most
// once per interval.
func NewAutosaver(store *SnapshotStore, source SnapshotSource, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Autosaver{
		store:   store,
		source:  source,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		dirty:   make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Start launches the save loop and registers the autosaver with the
// dispatcher.
func (a *Autosaver) Start(dispatcher *events.Dispatcher) {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	go a.run(ctx)
	dispatcher.Register(a)
}

// Stop flushes a final snapshot and stops the save loop.
func (a *Autosaver) Stop() {
	if a.cancel != nil {
		a.cancel()
		<-a.done
	}
	a.Flush()
}

// Flush writes the current snapshot immediately, outside the rate limit.
func (a *Autosaver) Flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.store.Save(ctx, CurrentSlot, a.source()); err != nil {
		log.Printf("[Autosave] Flush failed: %v", err)
	}
}

func (a *Autosaver) run(ctx context.Context) {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			return
		case <-a.dirty:
		}
		if err := a.limiter.Wait(ctx); err != nil {
			return
		}
		saveCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := a.store.Save(saveCtx, CurrentSlot, a.source())
		cancel()
		if err != nil {
			log.Printf("[Autosave] Save failed: %v", err)
		}
	}
}

// OnEvent marks the state dirty. Coalesces while a save is pending.
func (a *Autosaver) OnEvent(events.Event) error {
	select {
	case a.dirty <- struct{}{}:
	default:
	}
	return nil
}

// Name identifies the autosaver in dispatcher logs.
func (a *Autosaver) Name() string { return "autosaver" }

// ShouldHandle filters for state changes and game completion.
func (a *Autosaver) ShouldHandle(eventType string) bool {
	return eventType == events.TypeStateChanged || eventType == events.TypeGameOver
}
