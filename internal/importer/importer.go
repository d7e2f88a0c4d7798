// Package importer loads team documents from disk, by explicit path or
// from a watched drop directory, and applies them to a session team.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lukia82-netizen/LALK-Stats/internal/export"
	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// ErrMalformedImport wraps every rejection of a team document: bad
// JSON, missing fields, duplicate numbers. The session it would have
// been applied to is left untouched.
var ErrMalformedImport = errors.New("malformed team document")

// ImportTeam reads and validates a team document file.
func ImportTeam(path string) (export.TeamDocument, error) {
	var doc export.TeamDocument

	data, err := os.ReadFile(path)
	if err != nil {
		return doc, fmt.Errorf("read team document: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if err := validate(doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func validate(doc export.TeamDocument) error {
	if strings.TrimSpace(doc.Name) == "" {
		return fmt.Errorf("%w: team name is empty", ErrMalformedImport)
	}
	if len(doc.Players) == 0 {
		return fmt.Errorf("%w: roster is empty", ErrMalformedImport)
	}
	seen := make(map[string]bool, len(doc.Players))
	for _, p := range doc.Players {
		number := strings.TrimSpace(p.Number)
		if number == "" {
			return fmt.Errorf("%w: player without a jersey number", ErrMalformedImport)
		}
		if seen[number] {
			return fmt.Errorf("%w: duplicate jersey number %s", ErrMalformedImport, number)
		}
		seen[number] = true
	}
	return nil
}

// ApplyTeam replaces a team with the document's contents: name, roster,
// counters and timeouts, with the player court flags as exported.
// Documents written before a field existed get the snapshot's
// compatibility defaults.
func ApplyTeam(doc export.TeamDocument, t *game.Team) {
	*t = *doc.TeamSnapshot.Restore()
	t.Name = strings.TrimSpace(t.Name)
}
