package rules

import (
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
	"github.com/lukia82-netizen/LALK-Stats/internal/stats"
)

// UndoLast removes the most recent log entry and reverses its effect,
// restoring the possession arrow to its value before the event. It
// returns the removed entry so the caller can react to it, for instance
// by cancelling a running timeout countdown.
func UndoLast(s *game.State) (*game.Event, error) {
	return DeleteEntry(s, len(s.Log)-1)
}

// DeleteEntry removes the log entry at index and reverses its effect on
// the team aggregates, keyed off the entry's own kind. Any entry may be
// removed, not just the most recent; only removing the most recent one
// restores the possession arrow.
func DeleteEntry(s *game.State, index int) (*game.Event, error) {
	if index < 0 || index >= len(s.Log) {
		return nil, ErrNoSuchEntry
	}
	ev := s.Log[index]
	last := index == len(s.Log)-1
	s.Log = append(s.Log[:index], s.Log[index+1:]...)

	t := s.Team(ev.Team)
	switch ev.Kind {
	case game.KindFieldGoal:
		t.Score -= ev.Points

	case game.KindFreeThrowMade:
		t.FreeThrowsMade = max(0, t.FreeThrowsMade-1)
		t.FreeThrowsTotal = max(0, t.FreeThrowsTotal-1)
		t.Score -= ev.Points

	case game.KindFreeThrowMissed:
		t.FreeThrowsTotal = max(0, t.FreeThrowsTotal-1)

	case game.KindFoul:
		t.RemoveFoul()
		reinstateIfUnderLimit(s, t, ev)

	case game.KindTimeout:
		t.RemoveTimeout(ev.Period)

	case game.KindSubstitution:
		// Not reversible by a counter decrement: swap the same two
		// players back.
		if ev.SubOut != nil {
			if p := t.FindPlayer(ev.SubOut.Number); p != nil {
				p.OnCourt = true
			}
		}
		if ev.SubIn != nil {
			if p := t.FindPlayer(ev.SubIn.Number); p != nil {
				p.OnCourt = false
			}
		}
	}

	if last {
		s.Possession = ev.PossessionBefore
	}
	return &ev, nil
}

// reinstateIfUnderLimit re-derives the foul count for the player named by
// a removed Foul event, now that the log no longer contains it, and
// clears the disqualification if the count dropped below the threshold.
// The player returns to the court only if the team has an open slot.
func reinstateIfUnderLimit(s *game.State, t *game.Team, ev game.Event) {
	if ev.Player == nil {
		return
	}
	p := t.FindPlayer(ev.Player.Number)
	if p == nil || !p.FouledOut {
		return
	}
	if stats.PlayerFouls(s.Log, ev.Team, p.Number) >= DisqualificationFouls {
		return
	}
	p.FouledOut = false
	if len(t.CourtPlayers()) < game.CourtSize {
		p.OnCourt = true
	}
	t.SortFouledOutLast()
}
