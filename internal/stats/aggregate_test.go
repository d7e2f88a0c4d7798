package stats

import (
	"testing"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

func ref(number string) *game.PlayerRef {
	return &game.PlayerRef{Number: number}
}

func sampleLog() []game.Event {
	return []game.Event{
		{Team: game.TeamA, Kind: game.KindFieldGoal, Player: ref("7"), Period: 1, Points: 2},
		{Team: game.TeamB, Kind: game.KindFieldGoal, Player: ref("4"), Period: 1, Points: 3},
		{Team: game.TeamA, Kind: game.KindFoul, Player: ref("7"), Period: 1},
		{Team: game.TeamA, Kind: game.KindFreeThrowMade, Player: ref("7"), Period: 2, Points: 1},
		{Team: game.TeamA, Kind: game.KindFreeThrowMissed, Player: ref("7"), Period: 2},
		{Team: game.TeamA, Kind: game.KindSubstitution, Player: ref("9"), Period: 2,
			SubOut: ref("7"), SubIn: ref("9")},
		{Team: game.TeamB, Kind: game.KindFieldGoal, Player: ref("4"), Period: 3, Points: 2},
		{Team: game.TeamA, Kind: game.KindFieldGoal, Player: ref("9"), Period: 3, Points: 3},
	}
}

func TestPlayerPoints(t *testing.T) {
	log := sampleLog()
	if got := PlayerPoints(log, game.TeamA, "7"); got != 3 {
		t.Errorf("points(#7) = %d, want 3", got)
	}
	if got := PlayerPoints(log, game.TeamB, "4"); got != 5 {
		t.Errorf("points(#4) = %d, want 5", got)
	}
	if got := PlayerPoints(log, game.TeamA, "99"); got != 0 {
		t.Errorf("points(#99) = %d, want 0", got)
	}
}

func TestPlayerFouls(t *testing.T) {
	if got := PlayerFouls(sampleLog(), game.TeamA, "7"); got != 1 {
		t.Errorf("fouls = %d, want 1", got)
	}
}

func TestPlayerFreeThrows(t *testing.T) {
	made, total := PlayerFreeThrows(sampleLog(), game.TeamA, "7")
	if made != 1 || total != 2 {
		t.Errorf("free throws = %d/%d, want 1/2", made, total)
	}
	if got := PlayerFreeThrowPercent(sampleLog(), game.TeamA, "7"); got != "50%" {
		t.Errorf("percent = %q, want 50%%", got)
	}
	if got := PlayerFreeThrowPercent(sampleLog(), game.TeamA, "9"); got != "-" {
		t.Errorf("percent with no attempts = %q, want -", got)
	}
}

func TestDidPlayCountsSubstitutions(t *testing.T) {
	log := sampleLog()
	if !DidPlay(log, game.TeamA, "9") {
		t.Error("a substituted-in player did play")
	}
	if DidPlay(log, game.TeamA, "12") {
		t.Error("an absent player did not play")
	}
}

func TestStatusGlyph(t *testing.T) {
	if got := StatusGlyph(game.Player{WasStarter: true}, true); got != "O" {
		t.Errorf("starter glyph = %q", got)
	}
	if got := StatusGlyph(game.Player{}, true); got != "X" {
		t.Errorf("substitute glyph = %q", got)
	}
	if got := StatusGlyph(game.Player{}, false); got != "--" {
		t.Errorf("did-not-play glyph = %q", got)
	}
}

func TestQuarterScore(t *testing.T) {
	log := sampleLog()
	tests := []struct {
		team   game.TeamID
		period int
		want   int
	}{
		{game.TeamA, 1, 2},
		{game.TeamA, 2, 1},
		{game.TeamA, 3, 3},
		{game.TeamB, 1, 3},
		{game.TeamB, 3, 2},
		{game.TeamB, 4, 0},
	}
	for _, tt := range tests {
		if got := QuarterScore(log, tt.team, tt.period); got != tt.want {
			t.Errorf("QuarterScore(%s, %d) = %d, want %d", tt.team, tt.period, got, tt.want)
		}
	}
}

func TestScoreAt(t *testing.T) {
	log := sampleLog()
	if got := ScoreLineAt(log, 0); got != "2:0" {
		t.Errorf("line after entry 0 = %q, want 2:0", got)
	}
	if got := ScoreLineAt(log, 3); got != "3:3" {
		t.Errorf("line after entry 3 = %q, want 3:3", got)
	}
	if got := ScoreLineAt(log, len(log)-1); got != "6:5" {
		t.Errorf("final line = %q, want 6:5", got)
	}
}

func TestPlusMinusReplaysCourtPresence(t *testing.T) {
	log := sampleLog()
	// #7 starts, is on for +2 -3 +1, subs out before B's +2 and #9's +3.
	if got := PlusMinus(log, game.TeamA, game.Player{Number: "7", WasStarter: true}); got != 0 {
		t.Errorf("plus-minus(#7) = %d, want 0", got)
	}
	// #9 enters at the substitution: sees -2 +3.
	if got := PlusMinus(log, game.TeamA, game.Player{Number: "9"}); got != 1 {
		t.Errorf("plus-minus(#9) = %d, want 1", got)
	}
}

func TestReconcileDetectsDrift(t *testing.T) {
	s := game.NewState("Lions", "Bears", 10)
	s.TeamA.AddPlayer("7", "")
	s.Selected = &game.Selection{Team: game.TeamA, Number: "7"}
	s.TeamA.AddPoints(2)
	s.Append(game.Event{Team: game.TeamA, Kind: game.KindFieldGoal, Player: ref("7"), Period: 1, Points: 2})

	if err := Reconcile(s); err != nil {
		t.Fatalf("consistent state: %v", err)
	}
	s.TeamA.Score = 99
	if err := Reconcile(s); err == nil {
		t.Fatal("drifted score cache should fail reconciliation")
	}
}

func TestHalfLogAndReversed(t *testing.T) {
	log := sampleLog()
	first := HalfLog(log, true)
	second := HalfLog(log, false)
	if len(first) != 6 || len(second) != 2 {
		t.Errorf("halves = %d/%d entries, want 6/2", len(first), len(second))
	}
	rev := Reversed(log)
	if rev[0].Points != 3 || rev[0].Player.Number != "9" {
		t.Errorf("reversed head = %+v", rev[0])
	}
	if len(rev) != len(log) {
		t.Errorf("reversed length = %d", len(rev))
	}
}
