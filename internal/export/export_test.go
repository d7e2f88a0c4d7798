package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

func protocolState() *game.State {
	s := game.NewState("Lions", "Bears", 10)
	s.TeamA.AddPlayer("7", "Jordan")
	s.TeamA.AddPlayer("9", "Miller")
	s.TeamA.AddPlayer("11", "Novak")
	s.TeamB.AddPlayer("4", "Stone")
	s.TeamA.FindPlayer("7").WasStarter = true
	s.TeamB.FindPlayer("4").WasStarter = true

	s.TeamA.AddPoints(2)
	s.Append(game.Event{Team: game.TeamA, TeamName: "Lions", Kind: game.KindFieldGoal,
		Player: &game.PlayerRef{Number: "7", Name: "Jordan"}, Period: 1, Points: 2})
	s.TeamB.AddPoints(3)
	s.Append(game.Event{Team: game.TeamB, TeamName: "Bears", Kind: game.KindFieldGoal,
		Player: &game.PlayerRef{Number: "4", Name: "Stone"}, Period: 1, Points: 3})
	s.Append(game.Event{Team: game.TeamA, TeamName: "Lions", Kind: game.KindSubstitution,
		Player: &game.PlayerRef{Number: "9", Name: "Miller"}, Period: 2,
		SubOut: &game.PlayerRef{Number: "7", Name: "Jordan"},
		SubIn:  &game.PlayerRef{Number: "9", Name: "Miller"}})
	s.TeamA.AddFreeThrow(true)
	s.Append(game.Event{Team: game.TeamA, TeamName: "Lions", Kind: game.KindFreeThrowMade,
		Player: &game.PlayerRef{Number: "9", Name: "Miller"}, Period: 2, Points: 1})
	s.Period = 2
	return s
}

func TestBuildPlayerRows(t *testing.T) {
	s := protocolState()
	rows := BuildPlayerRows(s, game.TeamA)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	byNumber := map[string]PlayerRow{}
	for _, r := range rows {
		byNumber[r.Number] = r
	}
	if r := byNumber["7"]; r.Status != "O" || r.Points != 2 {
		t.Errorf("starter row = %+v", r)
	}
	if r := byNumber["9"]; r.Status != "X" || r.Points != 1 || r.FTMade != 1 || r.FTPercent != "100%" {
		t.Errorf("substitute row = %+v", r)
	}
	if r := byNumber["11"]; r.Status != "--" || r.Points != 0 {
		t.Errorf("did-not-play row = %+v", r)
	}
	// #7: on for +2 -3, off for the free throw.
	if r := byNumber["7"]; r.PlusMinus != -1 {
		t.Errorf("plus-minus(#7) = %d, want -1", r.PlusMinus)
	}
}

func TestBuildLogRowsRunningScore(t *testing.T) {
	rows := BuildLogRows(protocolState())
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].Score != "2:0" || rows[1].Score != "2:3" || rows[3].Score != "3:3" {
		t.Errorf("running scores = %s, %s, %s", rows[0].Score, rows[1].Score, rows[3].Score)
	}
	if rows[2].Action != "Substitution: OUT #7 Jordan, IN #9 Miller" {
		t.Errorf("substitution action = %q", rows[2].Action)
	}
	if rows[3].Period != "Q2" {
		t.Errorf("period = %q, want Q2", rows[3].Period)
	}
}

func TestWriteProtocol(t *testing.T) {
	var buf bytes.Buffer
	playedAt := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if err := WriteProtocol(&buf, protocolState(), playedAt); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Lions vs Bears",
		"Date: 2026-03-14",
		"Final Score: 3 - 3",
		"Play Log",
		"3-Point FG",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("protocol missing %q", want)
		}
	}
}

func TestCSVExportOfPlayerRows(t *testing.T) {
	var buf bytes.Buffer
	rows := BuildPlayerRows(protocolState(), game.TeamA)
	if err := ExportToWriter(&buf, FormatCSV, rows, false); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d CSV lines, want header + 3 rows", len(lines))
	}
	if lines[0] != "team,number,name,status,points,fouls,ft_made,ft_attempts,ft_percent,plus_minus" {
		t.Errorf("header = %q", lines[0])
	}
}

func TestBuildProtocolDocument(t *testing.T) {
	doc := BuildProtocolDocument(protocolState(), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))
	if doc.Date != "2026-03-14" || doc.FinalScore != "3 - 3" {
		t.Errorf("header = %s %s", doc.Date, doc.FinalScore)
	}
	if len(doc.Players) != 4 {
		t.Errorf("got %d player rows, want both rosters", len(doc.Players))
	}
	if len(doc.Log) != 4 {
		t.Errorf("got %d log rows, want 4", len(doc.Log))
	}
	if doc.Players[3].Team != "Bears" {
		t.Errorf("last row team = %q, want Bears", doc.Players[3].Team)
	}
}

func TestExporterWritesFiles(t *testing.T) {
	dir := t.TempDir()
	doc := BuildProtocolDocument(protocolState(), time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC))

	jsonPath := filepath.Join(dir, "protocol.json")
	exporter := NewExporter(Options{Format: FormatJSON, FilePath: jsonPath, PrettyJSON: true, Overwrite: true})
	if err := exporter.Export(doc); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var back ProtocolDocument
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.FinalScore != "3 - 3" || len(back.Players) != 4 {
		t.Errorf("round-tripped document = %+v", back)
	}

	csvPath := filepath.Join(dir, "players.csv")
	exporter = NewExporter(Options{Format: FormatCSV, FilePath: csvPath, Overwrite: true})
	if err := exporter.Export(doc.Players); err != nil {
		t.Fatal(err)
	}
	csvData, err := os.ReadFile(csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(csvData), "team,number,name,") {
		t.Errorf("CSV starts with %q", string(csvData)[:20])
	}

	// Without Overwrite an existing file is left alone.
	exporter = NewExporter(Options{Format: FormatCSV, FilePath: csvPath})
	if err := exporter.Export(doc.Players); err == nil {
		t.Error("expected an error for an existing file without overwrite")
	}
}

func TestBuildGameDocument(t *testing.T) {
	s := protocolState()
	snap := game.TakeSnapshot(s)
	doc := BuildGameDocument(snap, time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC))
	if doc.Date != "2026-03-14" {
		t.Errorf("date = %q", doc.Date)
	}
	if doc.FinalScore != "Lions 3 - 3 Bears" {
		t.Errorf("final score = %q", doc.FinalScore)
	}
	if len(doc.Snapshot.GameLog) != 4 {
		t.Errorf("log = %d entries", len(doc.Snapshot.GameLog))
	}
}

func TestBuildTeamDocumentCarriesFullTeam(t *testing.T) {
	s := protocolState()
	s.TeamA.Timeouts = game.Timeouts{FirstHalf: 2, SecondHalf: 1}
	s.TeamA.FindPlayer("7").OnCourt = true

	doc := BuildTeamDocument(s.TeamA)
	if doc.Version != TeamDocumentVersion || doc.Name != "Lions" {
		t.Errorf("doc = %+v", doc)
	}
	if len(doc.Players) != 3 {
		t.Fatalf("got %d players, want 3", len(doc.Players))
	}
	if doc.Players[0].Number != "7" || doc.Players[0].Name != "Jordan" {
		t.Errorf("first player = %+v", doc.Players[0])
	}
	if doc.Timeouts != (game.Timeouts{FirstHalf: 2, SecondHalf: 1}) {
		t.Errorf("timeouts = %+v", doc.Timeouts)
	}
	if !doc.Players[0].OnCourt {
		t.Error("court flag must survive export")
	}
	if doc.Score != s.TeamA.Score {
		t.Errorf("score = %d, want %d", doc.Score, s.TeamA.Score)
	}

	rebuilt := doc.TeamSnapshot.Restore()
	if rebuilt.Timeouts != s.TeamA.Timeouts {
		t.Errorf("timeouts lost in round-trip: got %+v, want %+v", rebuilt.Timeouts, s.TeamA.Timeouts)
	}
	if !rebuilt.FindPlayer("7").OnCourt {
		t.Error("onCourt lost in round-trip")
	}
}
