package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// TeamDocumentVersion is written into every exported team file.
const TeamDocumentVersion = 1

// TeamDocument is the on-disk form of a team: the full team snapshot,
// counters and timeouts included, so a team exported mid-setup or after
// a game rebuilds exactly. It round-trips through the importer, which
// applies the snapshot's compatibility defaults to older documents.
type TeamDocument struct {
	Version int `json:"version"`
	game.TeamSnapshot
}

// BuildTeamDocument captures a team for export.
func BuildTeamDocument(t *game.Team) TeamDocument {
	return TeamDocument{
		Version:      TeamDocumentVersion,
		TeamSnapshot: game.TakeTeamSnapshot(t),
	}
}

// SaveTeamDocument writes the team document as pretty JSON.
func SaveTeamDocument(doc TeamDocument, path string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal team document: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write team document: %w", err)
	}
	return nil
}
