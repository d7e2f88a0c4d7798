package rules

import (
	"errors"
	"testing"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

func newTestState() *game.State {
	s := game.NewState("Lions", "Bears", 10)
	for _, n := range []string{"4", "5", "6", "7", "8", "9"} {
		s.TeamA.AddPlayer(n, "")
		s.TeamB.AddPlayer(n, "")
	}
	for i := 0; i < game.CourtSize; i++ {
		s.TeamA.Players[i].OnCourt = true
		s.TeamB.Players[i].OnCourt = true
	}
	return s
}

func selectPlayer(s *game.State, team game.TeamID, number string) {
	p := s.Team(team).FindPlayer(number)
	s.Selected = &game.Selection{Team: team, Number: p.Number, Name: p.Name}
}

func TestFieldGoalWithSelection(t *testing.T) {
	s := newTestState()
	selectPlayer(s, game.TeamA, "7")

	out, err := RecordFieldGoal(s, game.TeamA, 3)
	if err != nil {
		t.Fatal(err)
	}
	if out.Event == nil || out.Event.Points != 3 || out.Event.Kind != game.KindFieldGoal {
		t.Errorf("event = %+v", out.Event)
	}
	if s.TeamA.Score != 3 {
		t.Errorf("score = %d, want 3", s.TeamA.Score)
	}
	if s.Selected != nil {
		t.Error("selection should clear after an applied action")
	}
}

func TestFieldGoalQueuesWithoutSelection(t *testing.T) {
	s := newTestState()

	out, err := RecordFieldGoal(s, game.TeamA, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Queued {
		t.Fatal("action should queue when no player is selected")
	}
	if s.TeamA.Score != 0 || len(s.Log) != 0 {
		t.Error("queued action must not mutate scores or the log")
	}

	selectPlayer(s, game.TeamA, "7")
	out, err = ApplyPending(s)
	if err != nil {
		t.Fatal(err)
	}
	if s.TeamA.Score != 2 || len(s.Log) != 1 {
		t.Errorf("score = %d, log = %d entries", s.TeamA.Score, len(s.Log))
	}
	if s.Pending != nil {
		t.Error("pending should clear after application")
	}
}

func TestPendingWrongTeamRejects(t *testing.T) {
	s := newTestState()
	if _, err := RecordFoul(s, game.TeamA); err != nil {
		t.Fatal(err)
	}
	selectPlayer(s, game.TeamB, "4")

	_, err := ApplyPending(s)
	if !errors.Is(err, ErrWrongTeamSelection) {
		t.Fatalf("err = %v, want ErrWrongTeamSelection", err)
	}
	if s.Pending != nil || s.Selected != nil {
		t.Error("both pending and selection should clear on a wrong-team apply")
	}
	if len(s.Log) != 0 {
		t.Error("rejected apply must not log")
	}
}

func TestPendingOnePointRoutesToFreeThrow(t *testing.T) {
	s := newTestState()
	if _, err := RecordFieldGoal(s, game.TeamA, 1); err != nil {
		t.Fatal(err)
	}
	selectPlayer(s, game.TeamA, "7")
	if _, err := ApplyPending(s); err != nil {
		t.Fatal(err)
	}
	if s.Log[0].Kind != game.KindFreeThrowMade {
		t.Errorf("kind = %s, want FreeThrowMade", s.Log[0].Kind)
	}
	if s.TeamA.FreeThrowsMade != 1 || s.TeamA.Score != 1 {
		t.Errorf("team = %+v", s.TeamA)
	}
}

func TestFreeThrowMissLogsZeroPoints(t *testing.T) {
	s := newTestState()
	selectPlayer(s, game.TeamA, "7")
	out, err := RecordFreeThrow(s, game.TeamA, false)
	if err != nil {
		t.Fatal(err)
	}
	if out.Event.Kind != game.KindFreeThrowMissed || out.Event.Points != 0 {
		t.Errorf("event = %+v", out.Event)
	}
	if s.TeamA.Score != 0 || s.TeamA.FreeThrowsTotal != 1 {
		t.Errorf("team = %+v", s.TeamA)
	}
}

func TestWrongTeamDirectAction(t *testing.T) {
	s := newTestState()
	selectPlayer(s, game.TeamB, "4")
	_, err := RecordFieldGoal(s, game.TeamA, 2)
	if !errors.Is(err, ErrWrongTeamSelection) {
		t.Fatalf("err = %v, want ErrWrongTeamSelection", err)
	}
}

func TestFifthFoulDisqualifies(t *testing.T) {
	s := newTestState()
	for i := 0; i < 4; i++ {
		selectPlayer(s, game.TeamA, "7")
		if _, err := RecordFoul(s, game.TeamA); err != nil {
			t.Fatal(err)
		}
	}

	selectPlayer(s, game.TeamA, "7")
	out, err := RecordFoul(s, game.TeamA)
	if err != nil {
		t.Fatal(err)
	}
	if out.Disqualified == nil || out.Disqualified.Number != "7" {
		t.Fatalf("Disqualified = %+v", out.Disqualified)
	}
	p := s.TeamA.FindPlayer("7")
	if !p.FouledOut || p.OnCourt {
		t.Errorf("player = %+v, want fouled out and off court", p)
	}
	if last := s.TeamA.Players[len(s.TeamA.Players)-1]; last.Number != "7" {
		t.Errorf("fouled-out player should sort last, roster ends with #%s", last.Number)
	}

	// A sixth foul on the same player is rejected outright.
	selectPlayer(s, game.TeamA, "7")
	if _, err := RecordFoul(s, game.TeamA); !errors.Is(err, ErrPlayerDisqualified) {
		t.Fatalf("err = %v, want ErrPlayerDisqualified", err)
	}
	if got := len(s.Log); got != 5 {
		t.Errorf("log has %d entries, want 5", got)
	}
}

func TestTimeoutIsNeverBlocked(t *testing.T) {
	s := newTestState()
	for i := 0; i < 4; i++ {
		if _, err := RecordTimeout(s, game.TeamA); err != nil {
			t.Fatal(err)
		}
	}
	if s.TeamA.Timeouts.FirstHalf != 4 {
		t.Errorf("FirstHalf = %d, want 4", s.TeamA.Timeouts.FirstHalf)
	}
}

func TestSubstitutionNormalizesDirection(t *testing.T) {
	s := newTestState()
	// "9" is on the bench, "4" on court; caller passes them backwards.
	out, err := RecordSubstitution(s, game.TeamA, "9", "4")
	if err != nil {
		t.Fatal(err)
	}
	if s.TeamA.FindPlayer("4").OnCourt || !s.TeamA.FindPlayer("9").OnCourt {
		t.Error("substitution did not swap court status")
	}
	ev := out.Event
	if ev.SubOut.Number != "4" || ev.SubIn.Number != "9" {
		t.Errorf("event = OUT %s IN %s, want OUT 4 IN 9", ev.SubOut.Number, ev.SubIn.Number)
	}
}

func TestSubstitutionRejections(t *testing.T) {
	s := newTestState()
	if _, err := RecordSubstitution(s, game.TeamA, "4", "99"); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("unknown player: err = %v", err)
	}
	if _, err := RecordSubstitution(s, game.TeamA, "4", "5"); !errors.Is(err, ErrInvalidSubstitution) {
		t.Errorf("both on court: err = %v", err)
	}
	s.TeamA.FindPlayer("9").FouledOut = true
	if _, err := RecordSubstitution(s, game.TeamA, "4", "9"); !errors.Is(err, ErrPlayerDisqualified) {
		t.Errorf("fouled-out incoming: err = %v", err)
	}
}

func TestTeamFoulStatus(t *testing.T) {
	tests := []struct {
		fouls int
		want  FoulStatus
	}{
		{0, StatusOK},
		{3, StatusOK},
		{4, StatusWarning},
		{5, StatusBonus},
	}
	for _, tt := range tests {
		if got := TeamFoulStatus(tt.fouls); got != tt.want {
			t.Errorf("TeamFoulStatus(%d) = %s, want %s", tt.fouls, got, tt.want)
		}
	}
}
