package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukia82-netizen/LALK-Stats/internal/export"
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "team.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportTeamRoundTrip(t *testing.T) {
	team := game.NewTeam("Lions")
	team.AddPlayer("7", "Jordan").OnCourt = true
	team.AddPlayer("9", "Miller")
	team.Timeouts = game.Timeouts{FirstHalf: 2, SecondHalf: 1}

	path := filepath.Join(t.TempDir(), "lions.json")
	if err := export.SaveTeamDocument(export.BuildTeamDocument(team), path); err != nil {
		t.Fatal(err)
	}

	doc, err := ImportTeam(path)
	if err != nil {
		t.Fatal(err)
	}

	target := game.NewTeam("")
	ApplyTeam(doc, target)
	if target.Name != "Lions" || len(target.Players) != 2 {
		t.Errorf("applied team = %+v", target)
	}
	if p := target.FindPlayer("9"); p == nil || p.Name != "Miller" {
		t.Errorf("player #9 = %+v", p)
	}
	if target.Timeouts != team.Timeouts {
		t.Errorf("timeouts = %+v, want %+v", target.Timeouts, team.Timeouts)
	}
	if !target.FindPlayer("7").OnCourt || target.FindPlayer("9").OnCourt {
		t.Error("court flags must survive the round-trip")
	}
}

func TestImportTeamDefaultsForOlderDocuments(t *testing.T) {
	// Documents written before timeouts and totalFouls existed still load.
	path := writeDoc(t, `{"version":1,"name":"Lions","fouls":3,"players":[{"number":"7","name":"Jordan"}]}`)
	doc, err := ImportTeam(path)
	if err != nil {
		t.Fatal(err)
	}

	target := game.NewTeam("")
	ApplyTeam(doc, target)
	if target.Timeouts != (game.Timeouts{}) {
		t.Errorf("timeouts = %+v, want zeroes", target.Timeouts)
	}
	if target.TotalFouls != 3 {
		t.Errorf("TotalFouls = %d, want fallback to the quarter count", target.TotalFouls)
	}
	if target.Players[0].OnCourt {
		t.Error("missing onCourt must default to false")
	}
}

func TestImportTeamRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{not json`},
		{"empty name", `{"version":1,"name":"  ","players":[{"number":"7"}]}`},
		{"empty roster", `{"version":1,"name":"Lions","players":[]}`},
		{"blank number", `{"version":1,"name":"Lions","players":[{"number":" "}]}`},
		{"duplicate number", `{"version":1,"name":"Lions","players":[{"number":"7"},{"number":"7"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportTeam(writeDoc(t, tt.content))
			if !errors.Is(err, ErrMalformedImport) {
				t.Errorf("err = %v, want ErrMalformedImport", err)
			}
		})
	}
}

func TestImportTeamMissingFile(t *testing.T) {
	_, err := ImportTeam(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if errors.Is(err, ErrMalformedImport) {
		t.Error("a missing file is an I/O error, not a malformed document")
	}
}

func TestApplyTeamReplacesExistingRoster(t *testing.T) {
	target := game.NewTeam("Old")
	target.AddPlayer("1", "Stale")

	doc := export.TeamDocument{
		Version: export.TeamDocumentVersion,
		TeamSnapshot: game.TeamSnapshot{
			Name:    "Lions",
			Players: []game.Player{{Number: "7", Name: "Jordan"}},
		},
	}
	ApplyTeam(doc, target)
	if len(target.Players) != 1 || target.Players[0].Number != "7" {
		t.Errorf("roster = %+v", target.Players)
	}
}
