// Package session owns the game state for one scored game and serializes
// every mutation behind a single lock: operator actions and the 1 Hz
// ticks of the game clock and the timeout countdown all funnel through
// the controller, so the rules and undo code never see concurrent
// access.
//
// The two countdowns are mutually exclusive by construction: starting
// the game clock cancels an active timeout countdown, and starting a
// timeout countdown pauses the game clock.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lukia82-netizen/LALK-Stats/internal/events"
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
	"github.com/lukia82-netizen/LALK-Stats/internal/rules"
	"github.com/lukia82-netizen/LALK-Stats/internal/stats"
)

// ErrInvalidClockInput rejects a manual clock entry that is not numeric
// MM:SS with seconds below 60. The previous clock value is retained.
var ErrInvalidClockInput = errors.New("clock time must be MM:SS with seconds 00-59")

// ErrRosterLocked rejects lineup changes once the game is live.
var ErrRosterLocked = errors.New("lineup is locked while the game is live")

// ErrCourtFull rejects placing a sixth player on court.
var ErrCourtFull = errors.New("five players are already on court")

// ErrNotReady rejects starting a game without named teams and rosters.
var ErrNotReady = errors.New("both teams need a name and at least one player")

// Config holds the modeled game parameters.
type Config struct {
	QuarterMinutes     int
	OvertimeMinutes    int
	TimeoutSeconds     int
	TimeoutsFirstHalf  int
	TimeoutsSecondHalf int
	TimeoutsOvertime   int
}

// DefaultConfig returns the standard parameters: 10 minute quarters,
// 5 minute overtimes, 60 second timeouts, 2+3+1 timeout allotments.
func DefaultConfig() Config {
	return Config{
		QuarterMinutes:     10,
		OvertimeMinutes:    5,
		TimeoutSeconds:     60,
		TimeoutsFirstHalf:  2,
		TimeoutsSecondHalf: 3,
		TimeoutsOvertime:   1,
	}
}

// ConfirmFunc asks the operator to confirm a period transition. The
// default confirms everything, which suits headless use and tests.
type ConfirmFunc func(prompt string) bool

// Controller orchestrates one game session.
type Controller struct {
	mu         sync.Mutex
	state      *game.State
	cfg        Config
	dispatcher *events.Dispatcher
	confirm    ConfirmFunc

	clock       countdown
	timeout     countdown
	timeoutOf   game.TeamID // team whose timeout countdown is running
	timeoutLeft int         // seconds remaining on that countdown
}

// New creates a controller around a fresh state.
func New(cfg Config, dispatcher *events.Dispatcher) *Controller {
	if dispatcher == nil {
		dispatcher = events.NewDispatcher()
	}
	return &Controller{
		state:      game.NewState("", "", cfg.QuarterMinutes),
		cfg:        cfg,
		dispatcher: dispatcher,
		confirm:    func(string) bool { return true },
	}
}

// SetConfirm installs the operator confirmation hook.
func (c *Controller) SetConfirm(fn ConfirmFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if fn != nil {
		c.confirm = fn
	}
}

// Dispatcher returns the event dispatcher observers register with.
func (c *Controller) Dispatcher() *events.Dispatcher { return c.dispatcher }

// Read runs fn with the state under the controller lock. The callback
// must not retain the pointer.
func (c *Controller) Read(fn func(s *game.State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.state)
}

// Snapshot captures the persisted form of the current state.
func (c *Controller) Snapshot() *game.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return game.TakeSnapshot(c.state)
}

// Restore replaces the session state from a persisted snapshot. Any
// running countdowns are stopped.
func (c *Controller) Restore(snap *game.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock.stop()
	c.stopTimeoutLocked()
	c.state = game.RestoreState(snap)
}

// SelectPlayer marks the player the next action applies to. Selecting a
// fouled-out player is rejected. If an action is pending, selection
// executes it immediately.
func (c *Controller) SelectPlayer(team game.TeamID, number string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.state.Team(team).FindPlayer(number)
	if p == nil {
		return rules.ErrUnknownPlayer
	}
	if p.FouledOut {
		return rules.ErrPlayerDisqualified
	}
	c.state.Selected = &game.Selection{Team: team, Number: p.Number, Name: p.Name}
	if c.state.Pending != nil {
		out, err := rules.ApplyPending(c.state)
		return c.finishLocked(out, err)
	}
	return nil
}

// CancelSelection clears the current selection and any pending action.
func (c *Controller) CancelSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ClearTransient()
}

// FieldGoal records a 2- or 3-point field goal, or queues it when no
// player is selected.
func (c *Controller) FieldGoal(team game.TeamID, points int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := rules.RecordFieldGoal(c.state, team, points)
	return c.finishLocked(out, err)
}

// FreeThrow records a made or missed free throw, or queues it. The
// one-point scoring action is identical to a made free throw.
func (c *Controller) FreeThrow(team game.TeamID, made bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := rules.RecordFreeThrow(c.state, team, made)
	return c.finishLocked(out, err)
}

// Foul charges a personal foul to the selected player, or queues it.
func (c *Controller) Foul(team game.TeamID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := rules.RecordFoul(c.state, team)
	return c.finishLocked(out, err)
}

// Timeout records a timeout and starts its countdown, pausing the game
// clock. Recording is never blocked on the remaining allotment.
func (c *Controller) Timeout(team game.TeamID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := rules.RecordTimeout(c.state, team)
	if err != nil {
		return err
	}
	c.startTimeoutLocked(team)
	return c.finishLocked(out, nil)
}

// Substitute swaps an outgoing and incoming player. An invalid pairing
// (both on court or both benched) is reported as a notice and treated as
// a reselection rather than a hard error.
func (c *Controller) Substitute(team game.TeamID, outNumber, inNumber string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	out, err := rules.RecordSubstitution(c.state, team, outNumber, inNumber)
	if errors.Is(err, rules.ErrInvalidSubstitution) {
		c.dispatcher.Notice("Substitution needs one player on court and one on the bench - pick again")
		return nil
	}
	return c.finishLocked(out, err)
}

// UndoLast removes the most recent log entry and reverses it. Undoing a
// timeout cancels its countdown if still running.
func (c *Controller) UndoLast() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed, err := rules.UndoLast(c.state)
	return c.afterRemovalLocked(removed, err)
}

// DeleteLogEntry removes the log entry at the given index (oldest
// first) and reverses it.
func (c *Controller) DeleteLogEntry(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed, err := rules.DeleteEntry(c.state, index)
	return c.afterRemovalLocked(removed, err)
}

// SetPossession points the possession arrow, or clears it when id is
// empty.
func (c *Controller) SetPossession(id game.TeamID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Possession = id
	c.changedLocked()
}

// FoulStatus derives the penalty status for a team's current quarter.
func (c *Controller) FoulStatus(team game.TeamID) rules.FoulStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return rules.TeamFoulStatus(c.state.Team(team).QuarterFouls)
}

// AvailableTimeouts returns the allotment remaining for the current
// period's bucket. Negative values mean the team went over.
func (c *Controller) AvailableTimeouts(team game.TeamID) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.state.Team(team)
	return c.allotment(c.state.Period) - t.UsedTimeouts(c.state.Period)
}

func (c *Controller) allotment(period int) int {
	switch game.TimeoutBucket(period) {
	case game.BucketFirstHalf:
		return c.cfg.TimeoutsFirstHalf
	case game.BucketSecondHalf:
		return c.cfg.TimeoutsSecondHalf
	default:
		return c.cfg.TimeoutsOvertime
	}
}

// afterRemovalLocked reacts to an undone log entry: a removed timeout
// cancels its countdown.
func (c *Controller) afterRemovalLocked(removed *game.Event, err error) error {
	if err != nil {
		return err
	}
	if removed != nil && removed.Kind == game.KindTimeout && c.timeoutOf == removed.Team {
		c.stopTimeoutLocked()
	}
	c.changedLocked()
	return nil
}

// finishLocked turns a rules outcome into notifications.
func (c *Controller) finishLocked(out rules.Outcome, err error) error {
	if err != nil {
		return err
	}
	if out.Queued {
		c.dispatcher.Notice("Action queued - select a player to apply it")
		return nil
	}
	if out.Disqualified != nil {
		c.dispatcher.Dispatch(events.Event{Type: events.TypeCueDisqualification, Data: *out.Disqualified})
		c.dispatcher.Notice(fmt.Sprintf("%s has fouled out (%d fouls)",
			out.Disqualified.Label(), rules.DisqualificationFouls))
	}
	c.changedLocked()
	return nil
}

func (c *Controller) changedLocked() {
	c.dispatcher.Dispatch(events.Event{Type: events.TypeStateChanged})
}

// Reconcile recomputes team aggregates from the log and verifies the
// cached counters match.
func (c *Controller) Reconcile() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return stats.Reconcile(c.state)
}
