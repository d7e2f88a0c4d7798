package export

import (
	"fmt"
	"io"
	"time"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
	"github.com/lukia82-netizen/LALK-Stats/internal/stats"
)

// PlayerRow is one line of the per-player protocol table.
type PlayerRow struct {
	Team       string `csv:"team"`
	Number     string `csv:"number"`
	Name       string `csv:"name"`
	Status     string `csv:"status"`
	Points     int    `csv:"points"`
	Fouls      int    `csv:"fouls"`
	FTMade     int    `csv:"ft_made"`
	FTAttempts int    `csv:"ft_attempts"`
	FTPercent  string `csv:"ft_percent"`
	PlusMinus  int    `csv:"plus_minus"`
}

// LogRow is one line of the protocol play log, with the running score
// after the play.
type LogRow struct {
	Period string `csv:"period"`
	Clock  string `csv:"clock"`
	Team   string `csv:"team"`
	Player string `csv:"player"`
	Action string `csv:"action"`
	Score  string `csv:"score"`
}

// BuildPlayerRows derives the protocol statistics of one team's roster
// from the event log.
func BuildPlayerRows(s *game.State, id game.TeamID) []PlayerRow {
	t := s.Team(id)
	var rows []PlayerRow
	for _, p := range t.Players {
		made, total := stats.PlayerFreeThrows(s.Log, id, p.Number)
		played := stats.DidPlay(s.Log, id, p.Number)
		rows = append(rows, PlayerRow{
			Team:       t.Name,
			Number:     p.Number,
			Name:       p.Name,
			Status:     stats.StatusGlyph(*p, played),
			Points:     stats.PlayerPoints(s.Log, id, p.Number),
			Fouls:      stats.PlayerFouls(s.Log, id, p.Number),
			FTMade:     made,
			FTAttempts: total,
			FTPercent:  stats.PlayerFreeThrowPercent(s.Log, id, p.Number),
			PlusMinus:  stats.PlusMinus(s.Log, id, *p),
		})
	}
	return rows
}

// BuildLogRows renders the full play log oldest-first with running
// scores.
func BuildLogRows(s *game.State) []LogRow {
	var rows []LogRow
	for i, ev := range s.Log {
		player := ""
		if ev.Player != nil {
			player = ev.Player.Label()
		}
		rows = append(rows, LogRow{
			Period: game.PeriodLabel(ev.Period),
			Clock:  ev.ClockTime,
			Team:   ev.TeamName,
			Player: player,
			Action: ev.Description(),
			Score:  stats.ScoreLineAt(s.Log, i),
		})
	}
	return rows
}

// ProtocolDocument bundles the tabular protocol for structured export:
// both teams' player rows and the play log with running scores.
type ProtocolDocument struct {
	Date       string      `json:"date"`
	FinalScore string      `json:"finalScore"`
	Players    []PlayerRow `json:"players"`
	Log        []LogRow    `json:"log"`
}

// BuildProtocolDocument derives the full protocol from the state.
func BuildProtocolDocument(s *game.State, playedAt time.Time) ProtocolDocument {
	players := append(BuildPlayerRows(s, game.TeamA), BuildPlayerRows(s, game.TeamB)...)
	return ProtocolDocument{
		Date:       playedAt.Format("2006-01-02"),
		FinalScore: s.FinalScore(),
		Players:    players,
		Log:        BuildLogRows(s),
	}
}

// WriteProtocol writes the human-readable protocol: a header block,
// both player tables and the play log.
func WriteProtocol(w io.Writer, s *game.State, playedAt time.Time) error {
	fmt.Fprintf(w, "%s vs %s\n", s.TeamA.Name, s.TeamB.Name)
	fmt.Fprintf(w, "Date: %s\n", playedAt.Format("2006-01-02"))
	fmt.Fprintf(w, "Final Score: %s\n", s.FinalScore())
	fmt.Fprintf(w, "Quarters:")
	last := s.Period
	for period := 1; period <= last; period++ {
		fmt.Fprintf(w, " %s %d:%d",
			game.PeriodLabel(period),
			stats.QuarterScore(s.Log, game.TeamA, period),
			stats.QuarterScore(s.Log, game.TeamB, period))
	}
	fmt.Fprintln(w)

	for _, id := range []game.TeamID{game.TeamA, game.TeamB} {
		t := s.Team(id)
		fmt.Fprintf(w, "\n%s  (team fouls %d, free throws %d/%d, %d%%)\n",
			t.Name, t.TotalFouls, t.FreeThrowsMade, t.FreeThrowsTotal, t.FreeThrowPercentage())
		fmt.Fprintf(w, "%-4s %-20s %-6s %6s %6s %8s %6s %5s\n",
			"No", "Player", "Status", "Pts", "Fouls", "FT", "FT%", "+/-")
		for _, row := range BuildPlayerRows(s, id) {
			fmt.Fprintf(w, "%-4s %-20s %-6s %6d %6d %5d/%-2d %6s %+5d\n",
				row.Number, row.Name, row.Status, row.Points, row.Fouls,
				row.FTMade, row.FTAttempts, row.FTPercent, row.PlusMinus)
		}
	}

	fmt.Fprintf(w, "\nPlay Log\n")
	fmt.Fprintf(w, "%-6s %-6s %-16s %-20s %-28s %s\n",
		"Period", "Clock", "Team", "Player", "Action", "Score")
	for _, row := range BuildLogRows(s) {
		fmt.Fprintf(w, "%-6s %-6s %-16s %-20s %-28s %s\n",
			row.Period, row.Clock, row.Team, row.Player, row.Action, row.Score)
	}
	return nil
}
