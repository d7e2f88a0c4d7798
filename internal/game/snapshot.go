package game

// TeamSnapshot is the wire form of a Team, shared by the persistence
// layer and the team export/import documents.
//
// Decoding is forward-compatible: fields added after early document
// versions are optional and default rather than fail. TotalFouls is a
// pointer so that documents written before the counter existed can fall
// back to the quarter foul count.
type TeamSnapshot struct {
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	QuarterFouls    int      `json:"fouls"`
	TotalFouls      *int     `json:"totalFouls,omitempty"`
	FreeThrowsMade  int      `json:"freeThrowsMade"`
	FreeThrowsTotal int      `json:"freeThrowsTotal"`
	Timeouts        Timeouts `json:"timeouts"`
	Players         []Player `json:"players"`
}

// Snapshot is the full persisted game state.
type Snapshot struct {
	TeamA           TeamSnapshot `json:"teamA"`
	TeamB           TeamSnapshot `json:"teamB"`
	GameLog         []Event      `json:"gameLog"`
	CurrentPeriod   int          `json:"currentPeriod"`
	ClockMinutes    int          `json:"clockMinutes"`
	ClockSeconds    int          `json:"clockSeconds"`
	PossessionArrow TeamID       `json:"possessionArrow,omitempty"`
	Live            bool         `json:"live"`
	Over            bool         `json:"over"`
}

// TakeTeamSnapshot captures the wire form of a team.
func TakeTeamSnapshot(t *Team) TeamSnapshot {
	total := t.TotalFouls
	players := make([]Player, len(t.Players))
	for i, p := range t.Players {
		players[i] = *p
	}
	return TeamSnapshot{
		Name:            t.Name,
		Score:           t.Score,
		QuarterFouls:    t.QuarterFouls,
		TotalFouls:      &total,
		FreeThrowsMade:  t.FreeThrowsMade,
		FreeThrowsTotal: t.FreeThrowsTotal,
		Timeouts:        t.Timeouts,
		Players:         players,
	}
}

// Restore rebuilds a Team aggregate from its wire form, applying the
// compatibility defaults for fields the document may predate.
func (ts TeamSnapshot) Restore() *Team {
	t := &Team{
		Name:            ts.Name,
		Score:           ts.Score,
		QuarterFouls:    ts.QuarterFouls,
		FreeThrowsMade:  ts.FreeThrowsMade,
		FreeThrowsTotal: ts.FreeThrowsTotal,
		Timeouts:        ts.Timeouts,
	}
	if ts.TotalFouls != nil {
		t.TotalFouls = *ts.TotalFouls
	} else {
		// Older documents tracked only the quarter count.
		t.TotalFouls = ts.QuarterFouls
	}
	for i := range ts.Players {
		p := ts.Players[i]
		t.Players = append(t.Players, &p)
	}
	return t
}

// TakeSnapshot captures the full persisted form of the state.
func TakeSnapshot(s *State) *Snapshot {
	log := make([]Event, len(s.Log))
	copy(log, s.Log)
	return &Snapshot{
		TeamA:           TakeTeamSnapshot(s.TeamA),
		TeamB:           TakeTeamSnapshot(s.TeamB),
		GameLog:         log,
		CurrentPeriod:   s.Period,
		ClockMinutes:    s.ClockMinutes,
		ClockSeconds:    s.ClockSeconds,
		PossessionArrow: s.Possession,
		Live:            s.Live,
		Over:            s.Over,
	}
}

// RestoreState rebuilds a full State from a persisted snapshot. Missing
// optional fields default: period to 1, the possession arrow to unset.
func RestoreState(snap *Snapshot) *State {
	s := &State{
		TeamA:        snap.TeamA.Restore(),
		TeamB:        snap.TeamB.Restore(),
		Log:          append([]Event(nil), snap.GameLog...),
		Period:       snap.CurrentPeriod,
		ClockMinutes: snap.ClockMinutes,
		ClockSeconds: snap.ClockSeconds,
		Possession:   snap.PossessionArrow,
		Live:         snap.Live,
		Over:         snap.Over,
	}
	if s.Period < 1 {
		s.Period = 1
	}
	return s
}
