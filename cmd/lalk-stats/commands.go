package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lukia82-netizen/LALK-Stats/internal/charts"
	"github.com/lukia82-netizen/LALK-Stats/internal/export"
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
	"github.com/lukia82-netizen/LALK-Stats/internal/importer"
	"github.com/lukia82-netizen/LALK-Stats/internal/stats"
)

func (a *app) runTextCommand(args []string) error {
	if len(args) == 0 {
		return nil
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "help":
		printHelp()
		return nil
	case "status":
		a.printStatus()
		return nil
	case "log":
		a.printLog()
		return nil
	case "team":
		if len(rest) < 2 {
			return fmt.Errorf("usage: team <a|b> <name>")
		}
		a.controller.SetTeamName(teamID(rest[0]), strings.Join(rest[1:], " "))
		return nil
	case "add":
		if len(rest) < 2 {
			return fmt.Errorf("usage: add <a|b> <number> [name]")
		}
		return a.controller.AddPlayer(teamID(rest[0]), rest[1], strings.Join(rest[2:], " "))
	case "remove":
		if len(rest) != 2 {
			return fmt.Errorf("usage: remove <a|b> <number>")
		}
		return a.controller.RemovePlayer(teamID(rest[0]), rest[1])
	case "court":
		if len(rest) != 2 {
			return fmt.Errorf("usage: court <a|b> <number>")
		}
		return a.controller.TogglePlayerCourt(teamID(rest[0]), rest[1])
	case "start":
		return a.controller.StartGame()
	case "reset":
		a.controller.ResetGame()
		return nil
	case "select":
		if len(rest) != 2 {
			return fmt.Errorf("usage: select <a|b> <number>")
		}
		return a.controller.SelectPlayer(teamID(rest[0]), rest[1])
	case "sub":
		if len(rest) != 3 {
			return fmt.Errorf("usage: sub <a|b> <out-number> <in-number>")
		}
		return a.controller.Substitute(teamID(rest[0]), rest[1], rest[2])
	case "clock":
		return a.clockCommand(rest)
	case "period":
		if len(rest) == 1 && rest[0] == "end" {
			a.controller.ForcePeriodEnd()
			return nil
		}
		return fmt.Errorf("usage: period end")
	case "possession":
		if len(rest) != 1 {
			return fmt.Errorf("usage: possession <a|b|none>")
		}
		if strings.EqualFold(rest[0], "none") {
			a.controller.SetPossession("")
		} else {
			a.controller.SetPossession(teamID(rest[0]))
		}
		return nil
	case "del":
		if len(rest) != 1 {
			return fmt.Errorf("usage: del <log-index>")
		}
		index, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("log index must be a number")
		}
		return a.controller.DeleteLogEntry(index)
	case "protocol":
		return a.protocolCommand(rest)
	case "export-team":
		if len(rest) != 2 {
			return fmt.Errorf("usage: export-team <a|b> <path>")
		}
		return a.exportTeam(teamID(rest[0]), rest[1])
	case "import-team":
		if len(rest) != 2 {
			return fmt.Errorf("usage: import-team <a|b> <path>")
		}
		return a.importTeam(teamID(rest[0]), rest[1])
	case "export-game":
		if len(rest) != 1 {
			return fmt.Errorf("usage: export-game <path>")
		}
		return a.exportGame(rest[0])
	case "archive":
		return a.archiveGame()
	case "games":
		return a.listGames()
	case "load":
		if len(rest) != 1 {
			return fmt.Errorf("usage: load <game-id>")
		}
		id, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return fmt.Errorf("game id must be a number")
		}
		return a.loadGame(id)
	case "charts":
		if len(rest) != 1 {
			return fmt.Errorf("usage: charts <output-dir>")
		}
		return a.renderCharts(rest[0])
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func (a *app) clockCommand(rest []string) error {
	if len(rest) == 0 {
		return fmt.Errorf("usage: clock <start|stop|reset|MM:SS>")
	}
	switch rest[0] {
	case "start":
		a.controller.StartClock()
	case "stop", "pause":
		a.controller.PauseClock()
	case "reset":
		a.controller.ResetClock()
	default:
		return a.controller.SetClock(rest[0])
	}
	return nil
}

// protocolCommand prints the text protocol, or writes it to a file. A
// .csv or .json extension selects the structured export instead.
func (a *app) protocolCommand(rest []string) error {
	if len(rest) == 0 {
		var err error
		a.controller.Read(func(s *game.State) {
			err = export.WriteProtocol(os.Stdout, s, time.Now())
		})
		return err
	}

	path := rest[0]
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return a.exportProtocolCSV(path)
	case ".json":
		return a.exportProtocolJSON(path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create protocol file: %w", err)
	}
	defer f.Close()
	a.controller.Read(func(s *game.State) {
		err = export.WriteProtocol(f, s, time.Now())
	})
	return err
}

func (a *app) exportProtocolJSON(path string) error {
	var doc export.ProtocolDocument
	a.controller.Read(func(s *game.State) {
		doc = export.BuildProtocolDocument(s, time.Now())
	})
	exporter := export.NewExporter(export.Options{
		Format: export.FormatJSON, FilePath: path, PrettyJSON: true, Overwrite: true,
	})
	if err := exporter.Export(doc); err != nil {
		return err
	}
	fmt.Printf("Protocol written to %s\n", path)
	return nil
}

// exportProtocolCSV writes the player table to the given path and the
// play log next to it, since a CSV file holds one table.
func (a *app) exportProtocolCSV(path string) error {
	var doc export.ProtocolDocument
	a.controller.Read(func(s *game.State) {
		doc = export.BuildProtocolDocument(s, time.Now())
	})
	players := export.NewExporter(export.Options{
		Format: export.FormatCSV, FilePath: path, Overwrite: true,
	})
	if err := players.Export(doc.Players); err != nil {
		return err
	}
	logPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_log.csv"
	if len(doc.Log) > 0 {
		plays := export.NewExporter(export.Options{
			Format: export.FormatCSV, FilePath: logPath, Overwrite: true,
		})
		if err := plays.Export(doc.Log); err != nil {
			return err
		}
	}
	fmt.Printf("Protocol written to %s and %s\n", path, logPath)
	return nil
}

func (a *app) exportGame(path string) error {
	snap := a.controller.Snapshot()
	doc := export.BuildGameDocument(snap, time.Now())
	exporter := export.NewExporter(export.Options{
		Format: export.FormatJSON, FilePath: path, PrettyJSON: true, Overwrite: true,
	})
	if err := exporter.Export(doc); err != nil {
		return err
	}
	fmt.Printf("Exported game document (%s) to %s\n", doc.FinalScore, path)
	return nil
}

func (a *app) exportTeam(team game.TeamID, path string) error {
	var doc export.TeamDocument
	a.controller.Read(func(s *game.State) {
		doc = export.BuildTeamDocument(s.Team(team))
	})
	if err := export.SaveTeamDocument(doc, path); err != nil {
		return err
	}
	fmt.Printf("Exported %s (%d players) to %s\n", doc.Name, len(doc.Players), path)
	return nil
}

func (a *app) importTeam(team game.TeamID, path string) error {
	doc, err := importer.ImportTeam(path)
	if err != nil {
		return err
	}
	if err := a.controller.ReplaceTeam(team, doc.TeamSnapshot); err != nil {
		return err
	}
	fmt.Printf("Imported %s (%d players) as team %s\n", doc.Name, len(doc.Players), team)
	return nil
}

func (a *app) archiveGame() error {
	snap := a.controller.Snapshot()
	if !snap.Over {
		return fmt.Errorf("the game is not over yet")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	id, err := a.archive.Store(ctx, snap, time.Now())
	if err != nil {
		return err
	}
	fmt.Printf("Archived game %d: %s %d - %d %s\n",
		id, snap.TeamA.Name, snap.TeamA.Score, snap.TeamB.Score, snap.TeamB.Name)
	return nil
}

func (a *app) listGames() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	games, err := a.archive.List(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No archived games.")
		return nil
	}
	for _, g := range games {
		locked := ""
		if g.Encrypted {
			locked = " [encrypted]"
		}
		fmt.Printf("%4d  %s  %s vs %s  %s%s\n",
			g.ID, g.PlayedAt.Format("2006-01-02"), g.TeamA, g.TeamB, g.FinalScore, locked)
	}
	return nil
}

func (a *app) loadGame(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	snap, err := a.archive.Load(ctx, id)
	if err != nil {
		return err
	}
	a.controller.Restore(snap)
	fmt.Printf("Loaded game %d: %s vs %s\n", id, snap.TeamA.Name, snap.TeamB.Name)
	return nil
}

func (a *app) renderCharts(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	var err error
	a.controller.Read(func(s *game.State) {
		cfg := charts.DefaultChartConfig()
		if err = charts.RenderScoreProgression(s, cfg, dir+"/score_progression.html"); err != nil {
			return
		}
		err = charts.RenderQuarterScores(s, cfg, dir+"/quarter_scores.html")
	})
	if err == nil {
		fmt.Printf("Charts written to %s\n", dir)
	}
	return err
}

func (a *app) printStatus() {
	available := map[game.TeamID]int{
		game.TeamA: a.controller.AvailableTimeouts(game.TeamA),
		game.TeamB: a.controller.AvailableTimeouts(game.TeamB),
	}
	a.controller.Read(func(s *game.State) {
		fmt.Printf("%s %d - %d %s   %s %s",
			s.TeamA.Name, s.TeamA.Score, s.TeamB.Score, s.TeamB.Name,
			game.PeriodLabel(s.Period), s.ClockTime())
		if s.Possession != "" {
			fmt.Printf("   possession: %s", s.Possession)
		}
		if s.Over {
			fmt.Print("   FINAL")
		}
		fmt.Println()

		for _, id := range []game.TeamID{game.TeamA, game.TeamB} {
			t := s.Team(id)
			fmt.Printf("[%s] %s  fouls Q:%d total:%d  FT %d/%d  timeouts left: %d\n",
				id, t.Name, t.QuarterFouls, t.TotalFouls,
				t.FreeThrowsMade, t.FreeThrowsTotal, available[id])
			for i, p := range t.CourtPlayers() {
				fmt.Printf("  %d. %-20s pts %2d  fouls %d\n",
					i+1, p.Label(),
					stats.PlayerPoints(s.Log, id, p.Number),
					stats.PlayerFouls(s.Log, id, p.Number))
			}
		}
		if s.Selected != nil {
			fmt.Printf("Selected: team %s %s\n", s.Selected.Team, s.Selected.Name)
		}
		if s.Pending != nil {
			fmt.Printf("Pending: %s for team %s\n", s.Pending.Kind, s.Pending.Team)
		}
	})
}

func (a *app) printLog() {
	a.controller.Read(func(s *game.State) {
		if len(s.Log) == 0 {
			fmt.Println("Log is empty.")
			return
		}
		for i, ev := range s.Log {
			player := ""
			if ev.Player != nil {
				player = ev.Player.Label()
			}
			fmt.Printf("%3d  %-4s %-6s %-16s %-20s %-28s %s\n",
				i, game.PeriodLabel(ev.Period), ev.ClockTime, ev.TeamName,
				player, ev.Description(), stats.ScoreLineAt(s.Log, i))
		}
	})
}

func printHelp() {
	fmt.Print(`Setup
  team <a|b> <name>          name a team
  add <a|b> <no> [name]      add a roster player
  remove <a|b> <no>          remove a roster player
  court <a|b> <no>           toggle bench/court
  import-team <a|b> <path>   load a team file
  export-team <a|b> <path>   save a team file
  start                      lock rosters and start the game

Scoring keys (team A / team B)
  q w e / a s d              1, 2, 3 points
  r / f                      foul
  t y / g h                  free throw made, missed
  z / x                      timeout
  1-5 / 6-0                  select on-court player
  space                      start or pause the clock
  u                          undo last entry
  esc                        cancel selection

Game
  select <a|b> <no>          select a player by number
  sub <a|b> <out> <in>       substitution
  clock <start|stop|reset|MM:SS>
  period end                 end the period now
  possession <a|b|none>      set the possession arrow
  del <index>                delete a log entry
  status / log               show state or the play log
  protocol [path]            print or save the game protocol
                             (.csv and .json select structured export)
  export-game <path>         save the full game document as JSON
  charts <dir>               render score charts
  archive / games / load <id>
  reset                      wipe the game back to setup
  quit
`)
}
