// Command lalk-stats runs the court-side scoring console: live game
// state, keyboard scoring, undo, and protocol export for a single game.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lukia82-netizen/LALK-Stats/internal/config"
	"github.com/lukia82-netizen/LALK-Stats/internal/events"
	"github.com/lukia82-netizen/LALK-Stats/internal/export"
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
	"github.com/lukia82-netizen/LALK-Stats/internal/importer"
	"github.com/lukia82-netizen/LALK-Stats/internal/keymap"
	"github.com/lukia82-netizen/LALK-Stats/internal/session"
	"github.com/lukia82-netizen/LALK-Stats/internal/storage"
)

var (
	configPath = flag.String("config", "", "Path to config.toml (default: ~/.lalk-stats/config.toml)")
	dbPath     = flag.String("db-path", "", "Path to the SQLite database (default: ~/.lalk-stats/games.db)")
	resume     = flag.Bool("resume", true, "Restore the last autosaved session on startup")
	noAutosave = flag.Bool("no-autosave", false, "Disable snapshot autosaving")
	debugMode  = flag.Bool("debug-mode", false, "Enable verbose debug logging")
)

func main() {
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if !*debugMode && !cfg.App.DebugMode {
		log.SetFlags(log.Ltime)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer func() { _ = db.Close() }()

	app, err := newApp(cfg, db)
	if err != nil {
		log.Fatalf("Error starting session: %v", err)
	}
	defer app.shutdown()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		app.shutdown()
		os.Exit(0)
	}()

	app.runConsole()
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*storage.DB, error) {
	path := *dbPath
	if path == "" {
		path = cfg.Storage.DatabasePath
	}
	if path == "" {
		var err error
		path, err = storage.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	dbCfg := storage.DefaultConfig(path)
	dbCfg.AutoMigrate = true
	return storage.Open(dbCfg)
}

// app wires the session controller to storage, import watching and the
// console. stdin is the single reader for both the command loop and
// confirmation prompts; both run on the console goroutine, so they
// never compete for input.
type app struct {
	cfg        *config.Config
	controller *session.Controller
	keys       *keymap.Keymap
	snapshots  *storage.SnapshotStore
	archive    *storage.Archive
	autosaver  *storage.Autosaver
	watcher    *importer.Watcher
	watchStop  context.CancelFunc
	stdin      *bufio.Scanner
}

func newApp(cfg *config.Config, db *storage.DB) (*app, error) {
	sessionCfg := session.Config{
		QuarterMinutes:     cfg.Game.QuarterMinutes,
		OvertimeMinutes:    cfg.Game.OvertimeMinutes,
		TimeoutSeconds:     cfg.Game.TimeoutSeconds,
		TimeoutsFirstHalf:  cfg.Game.TimeoutsFirstHalf,
		TimeoutsSecondHalf: cfg.Game.TimeoutsSecondHalf,
		TimeoutsOvertime:   cfg.Game.TimeoutsOvertime,
	}
	controller := session.New(sessionCfg, events.NewDispatcher())

	keys := keymap.Default()
	if err := keys.Apply(cfg.Keys); err != nil {
		return nil, err
	}

	a := &app{
		cfg:        cfg,
		controller: controller,
		keys:       keys,
		snapshots:  storage.NewSnapshotStore(db),
		archive:    storage.NewArchive(db, archiveEncryption(cfg)),
		stdin:      bufio.NewScanner(os.Stdin),
	}
	controller.SetConfirm(a.confirm)

	a.registerObservers()

	if *resume {
		snap, err := a.snapshots.Load(context.Background(), storage.CurrentSlot)
		switch {
		case err == nil:
			controller.Restore(snap)
			fmt.Printf("Restored session: %s vs %s\n", snap.TeamA.Name, snap.TeamB.Name)
		case errors.Is(err, storage.ErrNoSnapshot):
			// Fresh start.
		default:
			return nil, err
		}
	}

	if cfg.Storage.Autosave && !*noAutosave {
		interval, _ := cfg.GetAutosaveInterval()
		a.autosaver = storage.NewAutosaver(a.snapshots, controller.Snapshot, interval)
		a.autosaver.Start(controller.Dispatcher())
	}

	if cfg.Import.Enabled {
		a.watcher = importer.NewWatcher(cfg.Import.WatchDir, a.onTeamDropped)
		ctx, cancel := context.WithCancel(context.Background())
		a.watchStop = cancel
		go func() {
			if err := a.watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[Import] Watcher stopped: %v", err)
			}
		}()
	}

	return a, nil
}

func (a *app) shutdown() {
	if a.watchStop != nil {
		a.watchStop()
		a.watchStop = nil
	}
	a.controller.PauseClock()
	if a.autosaver != nil {
		a.autosaver.Stop()
		a.autosaver = nil
	}
}

func archiveEncryption(cfg *config.Config) *storage.EncryptionConfig {
	if !cfg.Storage.EncryptArchives {
		return nil
	}
	passphrase := os.Getenv(cfg.Storage.PassphraseEnv)
	if passphrase == "" {
		log.Printf("[Archive] %s is not set, storing archives in plaintext", cfg.Storage.PassphraseEnv)
		return nil
	}
	return storage.DefaultEncryptionConfig(passphrase)
}

func (a *app) registerObservers() {
	d := a.controller.Dispatcher()
	d.Register(events.ObserverFunc{
		ObserverName: "console-notices",
		Types:        []string{events.TypeNotice},
		Fn: func(ev events.Event) error {
			fmt.Printf(">> %s\n", ev.Data)
			return nil
		},
	})
	d.Register(events.ObserverFunc{
		ObserverName: "cue-log",
		Types: []string{
			events.TypeCueDisqualification,
			events.TypeCuePeriodEnd,
			events.TypeCueTimeoutOver,
			events.TypeGameOver,
		},
		Fn: func(ev events.Event) error {
			log.Printf("[Cue] %s", ev.Type)
			return nil
		},
	})
}

// onTeamDropped offers a team document found in the watch directory to
// the operator.
func (a *app) onTeamDropped(path string, doc export.TeamDocument) {
	fmt.Printf(">> Found team file %s (%s, %d players)\n", path, doc.Name, len(doc.Players))
	fmt.Println(">> Apply it with: import-team a <path> or import-team b <path>")
}

func (a *app) confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	if !a.stdin.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.stdin.Text()))
	return answer == "y" || answer == "yes"
}

func (a *app) runConsole() {
	fmt.Println("lalk-stats scoring console. Type 'help' for commands.")
	for {
		fmt.Print("> ")
		if !a.stdin.Scan() {
			return
		}
		line := a.stdin.Text()
		if strings.TrimSpace(line) == "quit" || strings.TrimSpace(line) == "exit" {
			return
		}
		if err := a.handleLine(line); err != nil {
			fmt.Printf("!! %v\n", err)
		}
	}
}

func (a *app) handleLine(line string) error {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" && line != " " {
		return nil
	}

	// Single-key scoring input goes through the keymap; longer input is
	// a textual command.
	if line == " " || len([]rune(trimmed)) == 1 {
		key := line
		if line != " " {
			key = trimmed
		}
		if cmd := a.keys.Resolve(key); cmd != keymap.CmdNone {
			return a.runCommand(cmd)
		}
	}
	return a.runTextCommand(strings.Fields(trimmed))
}

func (a *app) runCommand(cmd keymap.Command) error {
	if side, slot, ok := keymap.SelectSlot(cmd); ok {
		return a.selectCourtSlot(teamID(side), slot)
	}

	switch cmd {
	case keymap.CmdPointsA1:
		return a.controller.FreeThrow(game.TeamA, true)
	case keymap.CmdPointsA2:
		return a.controller.FieldGoal(game.TeamA, 2)
	case keymap.CmdPointsA3:
		return a.controller.FieldGoal(game.TeamA, 3)
	case keymap.CmdPointsB1:
		return a.controller.FreeThrow(game.TeamB, true)
	case keymap.CmdPointsB2:
		return a.controller.FieldGoal(game.TeamB, 2)
	case keymap.CmdPointsB3:
		return a.controller.FieldGoal(game.TeamB, 3)
	case keymap.CmdFoulA:
		return a.controller.Foul(game.TeamA)
	case keymap.CmdFoulB:
		return a.controller.Foul(game.TeamB)
	case keymap.CmdFreeThrowMadeA:
		return a.controller.FreeThrow(game.TeamA, true)
	case keymap.CmdFreeThrowMadeB:
		return a.controller.FreeThrow(game.TeamB, true)
	case keymap.CmdFreeThrowMissedA:
		return a.controller.FreeThrow(game.TeamA, false)
	case keymap.CmdFreeThrowMissedB:
		return a.controller.FreeThrow(game.TeamB, false)
	case keymap.CmdTimeoutA:
		return a.controller.Timeout(game.TeamA)
	case keymap.CmdTimeoutB:
		return a.controller.Timeout(game.TeamB)
	case keymap.CmdToggleClock:
		a.controller.ToggleClock()
		return nil
	case keymap.CmdUndo:
		return a.controller.UndoLast()
	case keymap.CmdCancel:
		a.controller.CancelSelection()
		return nil
	}
	return nil
}

func (a *app) selectCourtSlot(team game.TeamID, slot int) error {
	var number string
	a.controller.Read(func(s *game.State) {
		court := s.Team(team).CourtPlayers()
		if slot < len(court) {
			number = court[slot].Number
		}
	})
	if number == "" {
		return fmt.Errorf("no player in court slot %d of team %s", slot+1, team)
	}
	return a.controller.SelectPlayer(team, number)
}

func teamID(side string) game.TeamID {
	if strings.EqualFold(side, "b") {
		return game.TeamB
	}
	return game.TeamA
}
