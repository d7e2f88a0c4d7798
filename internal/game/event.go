package game

import "fmt"

// EventKind discriminates the log entry payload. Every state mutation in
// forward play appends exactly one event; undo removes one and reverses
// its effect keyed off this kind.
type EventKind string

const (
	KindFieldGoal       EventKind = "FieldGoal"
	KindFreeThrowMade   EventKind = "FreeThrowMade"
	KindFreeThrowMissed EventKind = "FreeThrowMissed"
	KindFoul            EventKind = "Foul"
	KindTimeout         EventKind = "Timeout"
	KindSubstitution    EventKind = "Substitution"
)

// PlayerRef is the immutable identity of a player as recorded in the log.
// Roster entries may be mutated or reordered afterwards; log entries are
// not.
type PlayerRef struct {
	Number string `json:"number"`
	Name   string `json:"name"`
}

// Label returns the protocol label, e.g. "#7 Jordan".
func (r PlayerRef) Label() string {
	if r.Name == "" {
		return "#" + r.Number
	}
	return fmt.Sprintf("#%s %s", r.Number, r.Name)
}

// Event is one append-only log entry, immutable once logged.
//
// SubOut/SubIn are set only for KindSubstitution: undoing a substitution
// is a swap-back of those two players, not a counter adjustment.
// PossessionBefore snapshots the possession arrow at the time the event
// was applied so that undoing the most recent event can restore it.
type Event struct {
	Team             TeamID     `json:"team"`
	TeamName         string     `json:"teamName"`
	Kind             EventKind  `json:"kind"`
	Player           *PlayerRef `json:"player,omitempty"`
	Period           int        `json:"period"`
	Points           int        `json:"points"`
	ClockTime        string     `json:"time"`
	SubOut           *PlayerRef `json:"subOut,omitempty"`
	SubIn            *PlayerRef `json:"subIn,omitempty"`
	PossessionBefore TeamID     `json:"possessionBefore,omitempty"`
}

// Description returns the action text used in the protocol log.
func (e Event) Description() string {
	switch e.Kind {
	case KindFieldGoal:
		switch e.Points {
		case 3:
			return "3-Point FG"
		case 2:
			return "2-Point FG"
		default:
			return "1-Point"
		}
	case KindFreeThrowMade:
		return "1 Point FT"
	case KindFreeThrowMissed:
		return "FT Missed"
	case KindFoul:
		return "Foul"
	case KindTimeout:
		return "Timeout"
	case KindSubstitution:
		if e.SubOut != nil && e.SubIn != nil {
			return fmt.Sprintf("Substitution: OUT %s, IN %s", e.SubOut.Label(), e.SubIn.Label())
		}
		return "Substitution"
	default:
		return string(e.Kind)
	}
}

// Names reports whether the event references the given player on the
// given team, either as the acting player or as a substitution
// participant.
func (e Event) Names(team TeamID, number string) bool {
	if e.Team != team {
		return false
	}
	if e.Player != nil && e.Player.Number == number {
		return true
	}
	if e.SubOut != nil && e.SubOut.Number == number {
		return true
	}
	if e.SubIn != nil && e.SubIn.Number == number {
		return true
	}
	return false
}
