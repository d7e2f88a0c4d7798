package game

import (
	"encoding/json"
	"testing"
)

func TestAddFoulCapsQuarterCount(t *testing.T) {
	team := NewTeam("Lions")
	for i := 0; i < 7; i++ {
		team.AddFoul()
	}
	if team.QuarterFouls != QuarterFoulCap {
		t.Errorf("QuarterFouls = %d, want %d", team.QuarterFouls, QuarterFoulCap)
	}
	if team.TotalFouls != 7 {
		t.Errorf("TotalFouls = %d, want 7", team.TotalFouls)
	}
}

func TestRemoveFoulFloorsAtZero(t *testing.T) {
	team := NewTeam("Lions")
	team.RemoveFoul()
	if team.QuarterFouls != 0 || team.TotalFouls != 0 {
		t.Errorf("fouls = %d/%d, want 0/0", team.QuarterFouls, team.TotalFouls)
	}
}

func TestAddFreeThrow(t *testing.T) {
	team := NewTeam("Lions")
	team.AddFreeThrow(true)
	team.AddFreeThrow(false)
	team.AddFreeThrow(true)
	if team.FreeThrowsMade != 2 || team.FreeThrowsTotal != 3 {
		t.Errorf("free throws = %d/%d, want 2/3", team.FreeThrowsMade, team.FreeThrowsTotal)
	}
	if team.Score != 2 {
		t.Errorf("Score = %d, want 2", team.Score)
	}
	if got := team.FreeThrowPercentage(); got != 67 {
		t.Errorf("FreeThrowPercentage = %d, want 67", got)
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		made, total, want int
	}{
		{0, 0, 0},
		{1, 2, 50},
		{2, 3, 67},
		{1, 3, 33},
		{5, 5, 100},
	}
	for _, tt := range tests {
		if got := Percentage(tt.made, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.made, tt.total, got, tt.want)
		}
	}
}

func TestTimeoutBuckets(t *testing.T) {
	team := NewTeam("Lions")
	team.AddTimeout(1)
	team.AddTimeout(2)
	team.AddTimeout(3)
	team.AddTimeout(5)
	team.AddTimeout(6)
	want := Timeouts{FirstHalf: 2, SecondHalf: 1, Overtime: 2}
	if team.Timeouts != want {
		t.Errorf("Timeouts = %+v, want %+v", team.Timeouts, want)
	}
	team.RemoveTimeout(5)
	if team.Timeouts.Overtime != 1 {
		t.Errorf("Overtime = %d, want 1", team.Timeouts.Overtime)
	}
}

func TestTimeoutBucketPerPeriod(t *testing.T) {
	tests := []struct {
		period int
		want   TimeoutPool
	}{
		{1, BucketFirstHalf},
		{2, BucketFirstHalf},
		{3, BucketSecondHalf},
		{4, BucketSecondHalf},
		{5, BucketOvertime},
		{7, BucketOvertime},
	}
	for _, tt := range tests {
		if got := TimeoutBucket(tt.period); got != tt.want {
			t.Errorf("TimeoutBucket(%d) = %v, want %v", tt.period, got, tt.want)
		}
	}
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		period int
		want   string
	}{
		{1, "Q1"},
		{4, "Q4"},
		{5, "OT1"},
		{6, "OT2"},
	}
	for _, tt := range tests {
		if got := PeriodLabel(tt.period); got != tt.want {
			t.Errorf("PeriodLabel(%d) = %q, want %q", tt.period, got, tt.want)
		}
	}
}

func TestSortFouledOutLastIsStable(t *testing.T) {
	team := NewTeam("Lions")
	team.AddPlayer("4", "a")
	team.AddPlayer("5", "b")
	team.AddPlayer("6", "c")
	team.AddPlayer("7", "d")
	team.FindPlayer("5").FouledOut = true
	team.FindPlayer("4").FouledOut = true

	team.SortFouledOutLast()

	var order []string
	for _, p := range team.Players {
		order = append(order, p.Number)
	}
	want := []string{"6", "7", "4", "5"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("roster order = %v, want %v", order, want)
		}
	}
}

func TestResetKeepsRoster(t *testing.T) {
	team := NewTeam("Lions")
	team.AddPlayer("4", "a")
	team.AddPoints(12)
	team.AddFoul()
	team.AddFreeThrow(true)
	team.AddTimeout(1)

	team.Reset()

	if team.Score != 0 || team.TotalFouls != 0 || team.FreeThrowsTotal != 0 {
		t.Errorf("counters not reset: %+v", team)
	}
	if team.Timeouts != (Timeouts{}) {
		t.Errorf("timeouts not reset: %+v", team.Timeouts)
	}
	if len(team.Players) != 1 {
		t.Errorf("roster cleared by reset")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewState("Lions", "Bears", 10)
	s.TeamA.AddPlayer("7", "Jordan").OnCourt = true
	s.TeamA.AddPoints(5)
	s.Possession = TeamB
	s.Append(Event{Team: TeamA, Kind: KindFieldGoal, Points: 2, Period: 1})
	s.Period = 3
	s.Live = true

	data, err := json.Marshal(TakeSnapshot(s))
	if err != nil {
		t.Fatal(err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatal(err)
	}
	got := RestoreState(&snap)

	if got.TeamA.Score != 5 || got.TeamA.Name != "Lions" {
		t.Errorf("team A = %+v", got.TeamA)
	}
	if len(got.Log) != 1 || got.Log[0].Kind != KindFieldGoal {
		t.Errorf("log = %+v", got.Log)
	}
	if got.Period != 3 || got.Possession != TeamB || !got.Live {
		t.Errorf("state = period %d possession %q live %v", got.Period, got.Possession, got.Live)
	}
	if !got.TeamA.Players[0].OnCourt {
		t.Error("on-court flag lost")
	}
}

// Documents written before some counters existed must still load, with
// the missing fields defaulted.
func TestSnapshotCompatibilityDefaults(t *testing.T) {
	legacy := []byte(`{
		"teamA": {"name": "Lions", "score": 10, "fouls": 3,
			"players": [{"number": "7", "name": "Jordan"}]},
		"teamB": {"name": "Bears", "score": 8, "fouls": 1, "players": []},
		"gameLog": []
	}`)
	var snap Snapshot
	if err := json.Unmarshal(legacy, &snap); err != nil {
		t.Fatal(err)
	}
	s := RestoreState(&snap)

	if s.TeamA.TotalFouls != 3 {
		t.Errorf("TotalFouls = %d, want fallback to quarter fouls 3", s.TeamA.TotalFouls)
	}
	if s.TeamA.Timeouts != (Timeouts{}) {
		t.Errorf("Timeouts = %+v, want zeros", s.TeamA.Timeouts)
	}
	if s.Period != 1 {
		t.Errorf("Period = %d, want default 1", s.Period)
	}
	if s.TeamA.Players[0].OnCourt || s.TeamA.Players[0].WasStarter {
		t.Error("player flags should default to false")
	}
}
