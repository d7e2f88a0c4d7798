// Package events distributes session notifications to registered
// observers: audio cues, operator notices and state-changed signals.
// Cue playback is fire-and-forget; observers carry no game state.
package events

import (
	"log"
	"sync"
)

// Known event types.
const (
	// TypeCueDisqualification fires the buzzer/whistle cue when a player
	// fouls out.
	TypeCueDisqualification = "cue:disqualification"
	// TypeCuePeriodEnd fires the period-end buzzer.
	TypeCuePeriodEnd = "cue:period-end"
	// TypeCueTimeoutOver fires when a timeout countdown reaches zero.
	TypeCueTimeoutOver = "cue:timeout-over"
	// TypeNotice carries an operator-facing message.
	TypeNotice = "notice"
	// TypeStateChanged signals that the game state mutated; the autosave
	// listener keys off it.
	TypeStateChanged = "state:changed"
	// TypeGameOver carries the final score string.
	TypeGameOver = "game:over"
)

// Event is one notification. Data is event-type specific; for notices it
// is the message string.
type Event struct {
	Type string
	Data any
}

// Observer receives dispatched events.
type Observer interface {
	// OnEvent handles one event. Errors are logged, never propagated.
	OnEvent(event Event) error
	// Name identifies the observer in logs.
	Name() string
	// ShouldHandle filters the event types the observer cares about.
	ShouldHandle(eventType string) bool
}

// Dispatcher fans events out to observers in registration order. Safe
// for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	observers []Observer
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds an observer.
func (d *Dispatcher) Register(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
	log.Printf("[Events] Registered observer: %s", o.Name())
}

// Unregister removes an observer.
func (d *Dispatcher) Unregister(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, obs := range d.observers {
		if obs == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// Dispatch notifies every interested observer sequentially. An observer
// error is logged and dispatch continues.
func (d *Dispatcher) Dispatch(event Event) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, o := range observers {
		if !o.ShouldHandle(event.Type) {
			continue
		}
		if err := o.OnEvent(event); err != nil {
			log.Printf("[Events] Observer %s failed on %s: %v", o.Name(), event.Type, err)
		}
	}
}

// Notice is shorthand for dispatching an operator message.
func (d *Dispatcher) Notice(message string) {
	d.Dispatch(Event{Type: TypeNotice, Data: message})
}

// ObserverFunc adapts a function to the Observer interface with a fixed
// name and type filter. An empty filter accepts every event.
type ObserverFunc struct {
	ObserverName string
	Types        []string
	Fn           func(Event) error
}

func (o ObserverFunc) OnEvent(event Event) error { return o.Fn(event) }

func (o ObserverFunc) Name() string { return o.ObserverName }

func (o ObserverFunc) ShouldHandle(eventType string) bool {
	if len(o.Types) == 0 {
		return true
	}
	for _, t := range o.Types {
		if t == eventType {
			return true
		}
	}
	return false
}
