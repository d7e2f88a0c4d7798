package export

import (
	"fmt"
	"time"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// GameDocument is the on-disk form of a finished game: the date it was
// played, the final score line, and the full snapshot including the
// event log.
type GameDocument struct {
	Date       string         `json:"date"`
	FinalScore string         `json:"finalScore"`
	Snapshot   *game.Snapshot `json:"snapshot"`
}

// BuildGameDocument wraps a snapshot into a dated game document.
func BuildGameDocument(snap *game.Snapshot, playedAt time.Time) GameDocument {
	return GameDocument{
		Date:       playedAt.Format("2006-01-02"),
		FinalScore: scoreLine(snap),
		Snapshot:   snap,
	}
}

func scoreLine(snap *game.Snapshot) string {
	a, b := snap.TeamA, snap.TeamB
	return fmt.Sprintf("%s %d - %d %s", a.Name, a.Score, b.Score, b.Name)
}
