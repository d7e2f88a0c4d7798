// Package game defines the authoritative state for a single scored game:
// the two team aggregates, the player roster entries, the append-only
// event log, and the transient operator state (selection, pending action,
// possession arrow). The event log is the system of record; the Team
// counters are a cache that must stay reconcilable with it.
package game

import "fmt"

// TeamID identifies one of the two sides of a game.
type TeamID string

const (
	// TeamA is the home side.
	TeamA TeamID = "A"
	// TeamB is the visiting side.
	TeamB TeamID = "B"
)

// Opponent returns the other side.
func (id TeamID) Opponent() TeamID {
	if id == TeamA {
		return TeamB
	}
	return TeamA
}

// Valid reports whether id is one of the two known sides.
func (id TeamID) Valid() bool {
	return id == TeamA || id == TeamB
}

// QuarterFoulCap is the display cap for team fouls within a quarter.
// Team fouls past the cap still count toward TotalFouls.
const QuarterFoulCap = 5

// CourtSize is the number of players a team fields at once.
const CourtSize = 5

// Player is one roster entry. Exactly CourtSize players per team may have
// OnCourt set at any time; that is enforced where players are placed on
// court, not as a standing check.
type Player struct {
	Number     string `json:"number"`
	Name       string `json:"name"`
	OnCourt    bool   `json:"onCourt"`
	WasStarter bool   `json:"wasStarter"`
	FouledOut  bool   `json:"fouledOut"`
}

// Label returns the protocol label for the player, e.g. "#7 Jordan".
func (p *Player) Label() string {
	if p.Name == "" {
		return "#" + p.Number
	}
	return fmt.Sprintf("#%s %s", p.Number, p.Name)
}

// Timeouts tracks used timeouts per allotment bucket. The overtime bucket
// is shared by all overtime periods and resets when a new one begins.
type Timeouts struct {
	FirstHalf  int `json:"firstHalf"`
	SecondHalf int `json:"secondHalf"`
	Overtime   int `json:"overtime"`
}

// Team is the per-side mutable aggregate. QuarterFouls resets at quarter
// boundaries and is capped at QuarterFoulCap; TotalFouls never resets
// within a game.
type Team struct {
	Name            string    `json:"name"`
	Score           int       `json:"score"`
	QuarterFouls    int       `json:"fouls"`
	TotalFouls      int       `json:"totalFouls"`
	FreeThrowsMade  int       `json:"freeThrowsMade"`
	FreeThrowsTotal int       `json:"freeThrowsTotal"`
	Timeouts        Timeouts  `json:"timeouts"`
	Players         []*Player `json:"players"`
}

// NewTeam creates an empty team with the given display name.
func NewTeam(name string) *Team {
	return &Team{Name: name}
}

// AddPlayer appends a roster entry.
func (t *Team) AddPlayer(number, name string) *Player {
	p := &Player{Number: number, Name: name}
	t.Players = append(t.Players, p)
	return p
}

// RemovePlayer deletes the roster entry at index i.
func (t *Team) RemovePlayer(i int) {
	if i < 0 || i >= len(t.Players) {
		return
	}
	t.Players = append(t.Players[:i], t.Players[i+1:]...)
}

// FindPlayer returns the roster entry with the given jersey number.
func (t *Team) FindPlayer(number string) *Player {
	for _, p := range t.Players {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// CourtPlayers returns the players currently on court, in roster order.
func (t *Team) CourtPlayers() []*Player {
	var out []*Player
	for _, p := range t.Players {
		if p.OnCourt {
			out = append(out, p)
		}
	}
	return out
}

// BenchPlayers returns the players currently on the bench, in roster order.
func (t *Team) BenchPlayers() []*Player {
	var out []*Player
	for _, p := range t.Players {
		if !p.OnCourt {
			out = append(out, p)
		}
	}
	return out
}

// AddPoints credits points to the team score.
func (t *Team) AddPoints(points int) {
	t.Score += points
}

// AddFoul increments the quarter foul count (capped for display) and the
// uncapped game total.
func (t *Team) AddFoul() {
	if t.QuarterFouls < QuarterFoulCap {
		t.QuarterFouls++
	}
	t.TotalFouls++
}

// RemoveFoul reverses AddFoul. The quarter count is lossy past the cap;
// both counters floor at zero.
func (t *Team) RemoveFoul() {
	t.QuarterFouls = max(0, t.QuarterFouls-1)
	t.TotalFouls = max(0, t.TotalFouls-1)
}

// AddFreeThrow records a free throw attempt. A made attempt also scores
// one point.
func (t *Team) AddFreeThrow(made bool) {
	t.FreeThrowsTotal++
	if made {
		t.FreeThrowsMade++
		t.Score++
	}
}

// AddTimeout charges a timeout to the bucket for the given period.
func (t *Team) AddTimeout(period int) {
	switch TimeoutBucket(period) {
	case BucketFirstHalf:
		t.Timeouts.FirstHalf++
	case BucketSecondHalf:
		t.Timeouts.SecondHalf++
	case BucketOvertime:
		t.Timeouts.Overtime++
	}
}

// RemoveTimeout reverses AddTimeout for the bucket of the given period.
func (t *Team) RemoveTimeout(period int) {
	switch TimeoutBucket(period) {
	case BucketFirstHalf:
		t.Timeouts.FirstHalf = max(0, t.Timeouts.FirstHalf-1)
	case BucketSecondHalf:
		t.Timeouts.SecondHalf = max(0, t.Timeouts.SecondHalf-1)
	case BucketOvertime:
		t.Timeouts.Overtime = max(0, t.Timeouts.Overtime-1)
	}
}

// UsedTimeouts returns the timeouts already charged for the bucket of the
// given period.
func (t *Team) UsedTimeouts(period int) int {
	switch TimeoutBucket(period) {
	case BucketFirstHalf:
		return t.Timeouts.FirstHalf
	case BucketSecondHalf:
		return t.Timeouts.SecondHalf
	default:
		return t.Timeouts.Overtime
	}
}

// FreeThrowPercentage returns the team free throw percentage rounded to a
// whole number, or 0 when no attempts were taken.
func (t *Team) FreeThrowPercentage() int {
	return Percentage(t.FreeThrowsMade, t.FreeThrowsTotal)
}

// Reset zeroes every counter. The roster is never cleared by a reset.
func (t *Team) Reset() {
	t.Score = 0
	t.QuarterFouls = 0
	t.TotalFouls = 0
	t.FreeThrowsMade = 0
	t.FreeThrowsTotal = 0
	t.Timeouts = Timeouts{}
}

// SortFouledOutLast moves fouled-out players to the end of the roster,
// preserving the relative order inside each group.
func (t *Team) SortFouledOutLast() {
	active := make([]*Player, 0, len(t.Players))
	var out []*Player
	for _, p := range t.Players {
		if p.FouledOut {
			out = append(out, p)
		} else {
			active = append(active, p)
		}
	}
	t.Players = append(active, out...)
}

// Percentage returns made/total rounded to a whole percentage, or 0 when
// total is zero.
func Percentage(made, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(made)/float64(total)*100 + 0.5)
}
