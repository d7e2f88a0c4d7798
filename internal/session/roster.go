package session

import (
	"fmt"
	"strings"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// SetTeamName renames a side. Names are editable at any time; the log
// keeps the name each event was recorded under.
func (c *Controller) SetTeamName(team game.TeamID, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Team(team).Name = strings.TrimSpace(name)
	c.changedLocked()
}

// AddPlayer appends a roster entry. Rosters are locked while the game is
// live.
func (c *Controller) AddPlayer(team game.TeamID, number, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Live {
		return ErrRosterLocked
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return fmt.Errorf("jersey number is required")
	}
	if c.state.Team(team).FindPlayer(number) != nil {
		return fmt.Errorf("number %s is already on the roster", number)
	}
	c.state.Team(team).AddPlayer(number, strings.TrimSpace(name))
	c.changedLocked()
	return nil
}

// RemovePlayer deletes a roster entry by jersey number.
func (c *Controller) RemovePlayer(team game.TeamID, number string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Live {
		return ErrRosterLocked
	}
	t := c.state.Team(team)
	for i, p := range t.Players {
		if p.Number == number {
			t.RemovePlayer(i)
			c.changedLocked()
			return nil
		}
	}
	return fmt.Errorf("number %s is not on the roster", number)
}

// TogglePlayerCourt moves a player between bench and court during setup.
// Placing a sixth player on court is rejected.
func (c *Controller) TogglePlayerCourt(team game.TeamID, number string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Live {
		return ErrRosterLocked
	}
	t := c.state.Team(team)
	p := t.FindPlayer(number)
	if p == nil {
		return fmt.Errorf("number %s is not on the roster", number)
	}
	if !p.OnCourt && len(t.CourtPlayers()) >= game.CourtSize {
		return ErrCourtFull
	}
	p.OnCourt = !p.OnCourt
	c.changedLocked()
	return nil
}

// ReplaceTeam swaps in a full team from its snapshot form, typically an
// imported team document. Name, roster, counters, timeouts and court
// flags all come from the snapshot. Rejected while the game is live.
func (c *Controller) ReplaceTeam(team game.TeamID, snap game.TeamSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Live {
		return ErrRosterLocked
	}
	restored := snap.Restore()
	restored.Name = strings.TrimSpace(restored.Name)
	if team == game.TeamA {
		c.state.TeamA = restored
	} else {
		c.state.TeamB = restored
	}
	c.changedLocked()
	return nil
}

// StartGame locks the rosters and opens period 1. Players on court at
// this moment become the recorded starters. Counters, log and clock are
// reset so a game can only ever start from a clean slate.
func (c *Controller) StartGame() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	if s.Live {
		return nil
	}
	if strings.TrimSpace(s.TeamA.Name) == "" || strings.TrimSpace(s.TeamB.Name) == "" ||
		len(s.TeamA.Players) == 0 || len(s.TeamB.Players) == 0 {
		return ErrNotReady
	}
	for _, t := range []*game.Team{s.TeamA, s.TeamB} {
		t.Reset()
		for _, p := range t.Players {
			p.WasStarter = p.OnCourt
			p.FouledOut = false
		}
	}
	s.Log = nil
	s.Period = 1
	s.Possession = ""
	s.Over = false
	s.Live = true
	s.ClearTransient()
	c.resetClockLocked()
	c.dispatcher.Notice(fmt.Sprintf("Game on: %s vs %s", s.TeamA.Name, s.TeamB.Name))
	c.changedLocked()
	return nil
}

// ResetGame wipes the session back to setup after operator confirmation.
// Rosters survive; counters, log, clock, starter flags and transient
// state do not. The confirm hook blocks on operator input, so it runs
// without the lock held.
func (c *Controller) ResetGame() {
	c.mu.Lock()
	confirm := c.confirm
	c.mu.Unlock()
	if !confirm("Reset the game? All recorded play is discarded.") {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clock.stop()
	c.stopTimeoutLocked()
	s := c.state
	for _, t := range []*game.Team{s.TeamA, s.TeamB} {
		t.Reset()
		for _, p := range t.Players {
			p.WasStarter = false
			p.FouledOut = false
			p.OnCourt = false
		}
	}
	s.Log = nil
	s.Period = 1
	s.Possession = ""
	s.Live = false
	s.Over = false
	s.ClearTransient()
	c.resetClockLocked()
	c.dispatcher.Notice("Game reset")
	c.changedLocked()
}
