package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lukia82-netizen/LALK-Stats/internal/game"
)

// ErrGameNotFound is returned when the archive holds no game with the
// requested id.
var ErrGameNotFound = errors.New("game not found in archive")

// ArchivedGame is one row of the completed-game archive.
type ArchivedGame struct {
	ID         int64
	PlayedAt   time.Time
	TeamA      string
	TeamB      string
	FinalScore string
	Encrypted  bool
}

// Archive stores completed games, optionally encrypting the snapshot
// document with a passphrase.
type Archive struct {
	db         *DB
	encryption *EncryptionConfig // nil = store plaintext
}

// NewArchive creates an archive on the given database. A nil encryption
// config stores documents in plaintext.
func NewArchive(db *DB, encryption *EncryptionConfig) *Archive {
	return &Archive{db: db, encryption: encryption}
}

// Store archives a finished game snapshot and returns its id.
func (a *Archive) Store(ctx context.Context, snap *game.Snapshot, playedAt time.Time) (int64, error) {
	document, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("marshal game document: %w", err)
	}

	encrypted := false
	if a.encryption != nil {
		document, err = EncryptData(document, a.encryption)
		if err != nil {
			return 0, fmt.Errorf("encrypt game document: %w", err)
		}
		encrypted = true
	}

	finalScore := fmt.Sprintf("%d - %d", snap.TeamA.Score, snap.TeamB.Score)
	query := `
		INSERT INTO games (played_at, team_a, team_b, final_score, encrypted, document)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := a.db.Conn().ExecContext(ctx, query,
		playedAt.UTC().Format(time.RFC3339),
		snap.TeamA.Name, snap.TeamB.Name, finalScore, encrypted, document)
	if err != nil {
		return 0, fmt.Errorf("archive game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("archive game id: %w", err)
	}
	return id, nil
}

// List returns the archived games, newest first, without documents.
func (a *Archive) List(ctx context.Context) ([]ArchivedGame, error) {
	query := `
		SELECT id, played_at, team_a, team_b, final_score, encrypted
		FROM games
		ORDER BY played_at DESC, id DESC
	`
	rows, err := a.db.Conn().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var games []ArchivedGame
	for rows.Next() {
		var g ArchivedGame
		var playedAt string
		if err := rows.Scan(&g.ID, &playedAt, &g.TeamA, &g.TeamB, &g.FinalScore, &g.Encrypted); err != nil {
			return nil, fmt.Errorf("scan game row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, playedAt); err == nil {
			g.PlayedAt = t
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate game rows: %w", err)
	}
	return games, nil
}

// Load reads an archived game back into a snapshot, decrypting if the
// row was stored encrypted.
func (a *Archive) Load(ctx context.Context, id int64) (*game.Snapshot, error) {
	var document []byte
	var encrypted bool
	query := `SELECT document, encrypted FROM games WHERE id = ?`
	err := a.db.Conn().QueryRowContext(ctx, query, id).Scan(&document, &encrypted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}

	if encrypted {
		if a.encryption == nil {
			return nil, fmt.Errorf("game %d is encrypted and no passphrase is configured", id)
		}
		document, err = DecryptData(document, a.encryption)
		if err != nil {
			return nil, fmt.Errorf("decrypt game document: %w", err)
		}
	}

	var snap game.Snapshot
	if err := json.Unmarshal(document, &snap); err != nil {
		return nil, fmt.Errorf("decode game document: %w", err)
	}
	return &snap, nil
}

// Delete removes an archived game.
func (a *Archive) Delete(ctx context.Context, id int64) error {
	res, err := a.db.Conn().ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrGameNotFound
	}
	return nil
}
