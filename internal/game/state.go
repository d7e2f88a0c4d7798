package game

import "fmt"

// PendingKind discriminates a queued action awaiting player selection.
type PendingKind string

const (
	PendingPoints    PendingKind = "points"
	PendingFoul      PendingKind = "foul"
	PendingFreeThrow PendingKind = "freeThrow"
)

// PendingAction is a scoring, foul or free throw action pressed before a
// player was selected. At most one exists at a time; it is cleared on
// application or cancellation.
type PendingAction struct {
	Kind   PendingKind
	Team   TeamID
	Points int
	Made   bool
}

// Selection is the transient reference to the player the next action
// applies to. It is cleared after every applied action.
type Selection struct {
	Team   TeamID
	Number string
	Name   string
}

// Ref returns the log identity for the selected player.
func (s Selection) Ref() *PlayerRef {
	return &PlayerRef{Number: s.Number, Name: s.Name}
}

// State is the single mutable aggregate for a game session. It is owned
// by the session controller and passed explicitly to the rules, undo and
// stats code; nothing here is safe for unserialized concurrent mutation.
type State struct {
	TeamA *Team
	TeamB *Team

	// Log is the append-only event log, the source of truth for all
	// player-level statistics.
	Log []Event

	Period       int
	ClockMinutes int
	ClockSeconds int

	// Possession is the possession arrow: empty means unset.
	Possession TeamID

	// Live is set between game start and full reset; rosters are locked
	// while it is set.
	Live bool
	// Over marks the terminal state after a decided final period.
	Over bool

	Selected *Selection
	Pending  *PendingAction
}

// NewState creates a fresh game state for the two named teams with the
// clock set to the given quarter length.
func NewState(teamA, teamB string, quarterMinutes int) *State {
	return &State{
		TeamA:        NewTeam(teamA),
		TeamB:        NewTeam(teamB),
		Period:       1,
		ClockMinutes: quarterMinutes,
	}
}

// Team resolves a side identifier to its aggregate.
func (s *State) Team(id TeamID) *Team {
	if id == TeamA {
		return s.TeamA
	}
	return s.TeamB
}

// ClockTime formats the current game clock as MM:SS.
func (s *State) ClockTime() string {
	return FormatClock(s.ClockMinutes, s.ClockSeconds)
}

// Append logs an event, stamping it with the current clock time and the
// possession arrow value it can restore on undo.
func (s *State) Append(ev Event) {
	ev.ClockTime = s.ClockTime()
	ev.PossessionBefore = s.Possession
	s.Log = append(s.Log, ev)
}

// ClearTransient drops the current selection and pending action.
func (s *State) ClearTransient() {
	s.Selected = nil
	s.Pending = nil
}

// FinalScore returns the human-readable final score string, e.g.
// "72 - 68".
func (s *State) FinalScore() string {
	return fmt.Sprintf("%d - %d", s.TeamA.Score, s.TeamB.Score)
}

// FormatClock renders minutes and seconds as MM:SS.
func FormatClock(minutes, seconds int) string {
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
