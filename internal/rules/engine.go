// Package rules encodes the game rules as operations over the game state:
// scoring, fouls with disqualification, timeouts, substitutions, and the
// undo logic that inverts any logged event exactly.
//
// Every operation either mutates the state and appends exactly one log
// event, queues a pending action when no player is selected, or rejects
// with a typed error leaving the state untouched. Foul-out and
// bonus/warning status are derived, never stored counters: the per-player
// foul count is always recomputed from the log so it stays consistent
// under undo.
package rules

import (
	"errors"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
	"github.com/lukia82-netizen/LALK-Stats/internal/stats"
)

var (
	// ErrWrongTeamSelection rejects an action targeting a player on the
	// other team.
	ErrWrongTeamSelection = errors.New("selected player belongs to the other team")
	// ErrPlayerDisqualified rejects fouls, selections and substitutions
	// onto a player with five logged fouls.
	ErrPlayerDisqualified = errors.New("player has fouled out")
	// ErrInvalidSubstitution rejects a substitution whose participants
	// share the same court/bench status. Callers treat it as a
	// reselection, not a hard failure.
	ErrInvalidSubstitution = errors.New("substitution needs one player on court and one on the bench")
	// ErrUnknownPlayer rejects an action naming a jersey number missing
	// from the roster.
	ErrUnknownPlayer = errors.New("no such player on roster")
	// ErrNoSuchEntry rejects an undo of a log entry that does not exist.
	ErrNoSuchEntry = errors.New("no such log entry")
)

// DisqualificationFouls is the personal foul count that fouls a player
// out of the game.
const DisqualificationFouls = 5

// FoulStatus is the derived team penalty situation for the current
// quarter.
type FoulStatus string

const (
	StatusOK      FoulStatus = "OK"
	StatusWarning FoulStatus = "WARNING"
	StatusBonus   FoulStatus = "BONUS"
)

// TeamFoulStatus derives the penalty status from the quarter foul count.
func TeamFoulStatus(quarterFouls int) FoulStatus {
	switch {
	case quarterFouls >= game.QuarterFoulCap:
		return StatusBonus
	case quarterFouls == game.QuarterFoulCap-1:
		return StatusWarning
	default:
		return StatusOK
	}
}

// Outcome describes what an operation did.
type Outcome struct {
	// Event is the appended log entry; nil when the action was queued.
	Event *game.Event
	// Queued is set when the action was stored as pending because no
	// player was selected.
	Queued bool
	// Disqualified is set when a foul brought its player to the
	// disqualification threshold.
	Disqualified *game.Player
}

// RecordFieldGoal scores a 2- or 3-point field goal for the selected
// player of the given team. With no selection the action is queued as
// pending instead of failing.
func RecordFieldGoal(s *game.State, team game.TeamID, points int) (Outcome, error) {
	if s.Selected == nil {
		s.Pending = &game.PendingAction{Kind: game.PendingPoints, Team: team, Points: points}
		return Outcome{Queued: true}, nil
	}
	if s.Selected.Team != team {
		return Outcome{}, ErrWrongTeamSelection
	}
	return applyPoints(s, team, points)
}

// RecordFreeThrow records a free throw attempt for the selected player.
// A miss is logged too, with zero points. The one-point scoring action is
// identical to a made free throw.
func RecordFreeThrow(s *game.State, team game.TeamID, made bool) (Outcome, error) {
	if s.Selected == nil {
		s.Pending = &game.PendingAction{Kind: game.PendingFreeThrow, Team: team, Made: made}
		return Outcome{Queued: true}, nil
	}
	if s.Selected.Team != team {
		return Outcome{}, ErrWrongTeamSelection
	}
	return applyFreeThrow(s, team, made)
}

// RecordFoul charges a personal foul to the selected player. The player's
// foul count is derived by counting Foul events in the log; a fifth foul
// disqualifies the player, removes them from court and moves them to the
// end of the roster.
func RecordFoul(s *game.State, team game.TeamID) (Outcome, error) {
	if s.Selected == nil {
		s.Pending = &game.PendingAction{Kind: game.PendingFoul, Team: team}
		return Outcome{Queued: true}, nil
	}
	if s.Selected.Team != team {
		return Outcome{}, ErrWrongTeamSelection
	}
	return applyFoul(s, team)
}

// RecordTimeout charges a timeout to the bucket for the current period.
// The engine never rejects a timeout; allotment display is the UI's
// concern.
func RecordTimeout(s *game.State, team game.TeamID) (Outcome, error) {
	t := s.Team(team)
	t.AddTimeout(s.Period)
	ev := game.Event{
		Team:     team,
		TeamName: t.Name,
		Kind:     game.KindTimeout,
		Period:   s.Period,
	}
	s.Append(ev)
	return Outcome{Event: &s.Log[len(s.Log)-1]}, nil
}

// RecordSubstitution swaps the court status of an outgoing and an
// incoming player. Exactly one of the pair must be on court; a fouled-out
// incoming player is rejected outright.
func RecordSubstitution(s *game.State, team game.TeamID, outNumber, inNumber string) (Outcome, error) {
	t := s.Team(team)
	pOut := t.FindPlayer(outNumber)
	pIn := t.FindPlayer(inNumber)
	if pOut == nil || pIn == nil {
		return Outcome{}, ErrUnknownPlayer
	}
	if pIn.FouledOut {
		return Outcome{}, ErrPlayerDisqualified
	}
	if pOut.OnCourt == pIn.OnCourt {
		return Outcome{}, ErrInvalidSubstitution
	}
	if !pOut.OnCourt {
		// Caller got the direction backwards; normalize.
		pOut, pIn = pIn, pOut
	}
	pOut.OnCourt = false
	pIn.OnCourt = true

	outRef := &game.PlayerRef{Number: pOut.Number, Name: pOut.Name}
	inRef := &game.PlayerRef{Number: pIn.Number, Name: pIn.Name}
	ev := game.Event{
		Team:     team,
		TeamName: t.Name,
		Kind:     game.KindSubstitution,
		Player:   inRef,
		Period:   s.Period,
		SubOut:   outRef,
		SubIn:    inRef,
	}
	s.Append(ev)
	return Outcome{Event: &s.Log[len(s.Log)-1]}, nil
}

// ApplyPending executes the queued pending action against the player that
// was just selected. The pending action is cleared before execution so a
// rejection cannot re-fire it.
func ApplyPending(s *game.State) (Outcome, error) {
	if s.Pending == nil || s.Selected == nil {
		return Outcome{}, nil
	}
	pending := *s.Pending
	s.Pending = nil

	if s.Selected.Team != pending.Team {
		s.Selected = nil
		return Outcome{}, ErrWrongTeamSelection
	}

	switch pending.Kind {
	case game.PendingPoints:
		if pending.Points == 1 {
			return applyFreeThrow(s, pending.Team, true)
		}
		return applyPoints(s, pending.Team, pending.Points)
	case game.PendingFoul:
		return applyFoul(s, pending.Team)
	case game.PendingFreeThrow:
		return applyFreeThrow(s, pending.Team, pending.Made)
	default:
		return Outcome{}, nil
	}
}

func applyPoints(s *game.State, team game.TeamID, points int) (Outcome, error) {
	t := s.Team(team)
	t.AddPoints(points)
	ev := game.Event{
		Team:     team,
		TeamName: t.Name,
		Kind:     game.KindFieldGoal,
		Player:   s.Selected.Ref(),
		Period:   s.Period,
		Points:   points,
	}
	s.Append(ev)
	s.Selected = nil
	return Outcome{Event: &s.Log[len(s.Log)-1]}, nil
}

func applyFreeThrow(s *game.State, team game.TeamID, made bool) (Outcome, error) {
	t := s.Team(team)
	t.AddFreeThrow(made)
	kind := game.KindFreeThrowMissed
	points := 0
	if made {
		kind = game.KindFreeThrowMade
		points = 1
	}
	ev := game.Event{
		Team:     team,
		TeamName: t.Name,
		Kind:     kind,
		Player:   s.Selected.Ref(),
		Period:   s.Period,
		Points:   points,
	}
	s.Append(ev)
	s.Selected = nil
	return Outcome{Event: &s.Log[len(s.Log)-1]}, nil
}

func applyFoul(s *game.State, team game.TeamID) (Outcome, error) {
	t := s.Team(team)
	count := stats.PlayerFouls(s.Log, team, s.Selected.Number)
	if count >= DisqualificationFouls {
		return Outcome{}, ErrPlayerDisqualified
	}

	t.AddFoul()
	ev := game.Event{
		Team:     team,
		TeamName: t.Name,
		Kind:     game.KindFoul,
		Player:   s.Selected.Ref(),
		Period:   s.Period,
	}
	s.Append(ev)

	out := Outcome{Event: &s.Log[len(s.Log)-1]}
	if count+1 == DisqualificationFouls {
		if p := t.FindPlayer(s.Selected.Number); p != nil {
			p.FouledOut = true
			p.OnCourt = false
			t.SortFouledOutLast()
			out.Disqualified = p
		}
	}
	s.Selected = nil
	return out, nil
}
