// Package stats derives read-only statistics by folding over the game
// event log. Nothing here mutates state and nothing is cached: every
// query replays the ordered log, so results stay correct after any log
// mutation, including undo.
package stats

import (
	"fmt"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// PlayerPoints sums the points of all scoring events credited to the
// player.
func PlayerPoints(log []game.Event, team game.TeamID, number string) int {
	total := 0
	for _, ev := range log {
		if ev.Team == team && ev.Player != nil && ev.Player.Number == number && ev.Points > 0 {
			total += ev.Points
		}
	}
	return total
}

// PlayerFouls counts the Foul events logged for the player. This count is
// the authority for disqualification decisions.
func PlayerFouls(log []game.Event, team game.TeamID, number string) int {
	count := 0
	for _, ev := range log {
		if ev.Team == team && ev.Kind == game.KindFoul && ev.Player != nil && ev.Player.Number == number {
			count++
		}
	}
	return count
}

// PlayerFreeThrows counts the player's made and attempted free throws.
func PlayerFreeThrows(log []game.Event, team game.TeamID, number string) (made, total int) {
	for _, ev := range log {
		if ev.Team != team || ev.Player == nil || ev.Player.Number != number {
			continue
		}
		switch ev.Kind {
		case game.KindFreeThrowMade:
			made++
			total++
		case game.KindFreeThrowMissed:
			total++
		}
	}
	return made, total
}

// PlayerFreeThrowPercent formats the player's free throw percentage, or
// "-" when no attempts were taken.
func PlayerFreeThrowPercent(log []game.Event, team game.TeamID, number string) string {
	made, total := PlayerFreeThrows(log, team, number)
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", game.Percentage(made, total))
}

// DidPlay reports whether the player appears in any log entry.
func DidPlay(log []game.Event, team game.TeamID, number string) bool {
	for _, ev := range log {
		if ev.Names(team, number) {
			return true
		}
	}
	return false
}

// StatusGlyph returns the protocol played-status mark: "O" for a
// starter, "X" for a substitute who entered the game, "--" for a player
// who did not play.
func StatusGlyph(p game.Player, played bool) string {
	switch {
	case p.WasStarter:
		return "O"
	case played:
		return "X"
	default:
		return "--"
	}
}

// QuarterScore sums the points a team scored in one period.
func QuarterScore(log []game.Event, team game.TeamID, period int) int {
	total := 0
	for _, ev := range log {
		if ev.Team == team && ev.Period == period && ev.Points > 0 {
			total += ev.Points
		}
	}
	return total
}

// ScoreAt returns both running scores after the log entry at index has
// been applied.
func ScoreAt(log []game.Event, index int) (scoreA, scoreB int) {
	for i, ev := range log {
		if i > index {
			break
		}
		if ev.Points <= 0 {
			continue
		}
		if ev.Team == game.TeamA {
			scoreA += ev.Points
		} else {
			scoreB += ev.Points
		}
	}
	return scoreA, scoreB
}

// ScoreLineAt formats the running score after the entry at index, e.g.
// "54:49".
func ScoreLineAt(log []game.Event, index int) string {
	a, b := ScoreAt(log, index)
	return fmt.Sprintf("%d:%d", a, b)
}

// PlusMinus computes the net score while the player was on court. Court
// presence is replayed from the log: it starts from the starter flag and
// toggles on every substitution naming the player; scoring events while
// the player is on count positive for their own team and negative for
// the opponent.
func PlusMinus(log []game.Event, team game.TeamID, p game.Player) int {
	on := p.WasStarter
	net := 0
	for _, ev := range log {
		if ev.Kind == game.KindSubstitution && ev.Team == team {
			if ev.SubIn != nil && ev.SubIn.Number == p.Number {
				on = true
				continue
			}
			if ev.SubOut != nil && ev.SubOut.Number == p.Number {
				on = false
				continue
			}
		}
		if !on || ev.Points <= 0 {
			continue
		}
		if ev.Team == team {
			net += ev.Points
		} else {
			net -= ev.Points
		}
	}
	return net
}

// Reconcile recomputes the scoring aggregates of both teams from the log
// and compares them to the cached Team counters. It returns a
// descriptive error on the first mismatch, nil when the cache is
// consistent with the log.
func Reconcile(s *game.State) error {
	for _, id := range []game.TeamID{game.TeamA, game.TeamB} {
		t := s.Team(id)
		score, ftMade, ftTotal := 0, 0, 0
		for _, ev := range s.Log {
			if ev.Team != id {
				continue
			}
			score += ev.Points
			switch ev.Kind {
			case game.KindFreeThrowMade:
				ftMade++
				ftTotal++
			case game.KindFreeThrowMissed:
				ftTotal++
			}
		}
		if t.Score != score {
			return fmt.Errorf("team %s score %d does not match log total %d", id, t.Score, score)
		}
		if t.FreeThrowsMade != ftMade || t.FreeThrowsTotal != ftTotal {
			return fmt.Errorf("team %s free throws %d/%d do not match log %d/%d",
				id, t.FreeThrowsMade, t.FreeThrowsTotal, ftMade, ftTotal)
		}
	}
	return nil
}

// HalfLog filters the log down to the entries of one half: first half
// periods 1-2, otherwise periods 3 and later.
func HalfLog(log []game.Event, firstHalf bool) []game.Event {
	var out []game.Event
	for _, ev := range log {
		if game.IsFirstHalf(ev.Period) == firstHalf {
			out = append(out, ev)
		}
	}
	return out
}

// Reversed returns the log newest-first for display.
func Reversed(log []game.Event) []game.Event {
	out := make([]game.Event, len(log))
	for i, ev := range log {
		out[len(log)-1-i] = ev
	}
	return out
}
