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

// CurrentSlot is the snapshot slot the session controller autosaves to.
const CurrentSlot = "current"

// ErrNoSnapshot is returned when the requested slot holds no snapshot.
var ErrNoSnapshot = errors.New("no snapshot in slot")

// SnapshotStore persists live session snapshots.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a snapshot store on the given database.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save upserts the snapshot into the named slot.
func (s *SnapshotStore) Save(ctx context.Context, slot string, snap *game.Snapshot) error {
	document, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (slot, document, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			document = excluded.document,
			updated_at = excluded.updated_at
	`
	if _, err := s.db.Conn().ExecContext(ctx, query, slot, document, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot from the named slot.
func (s *SnapshotStore) Load(ctx context.Context, slot string) (*game.Snapshot, error) {
	var document []byte
	query := `SELECT document FROM snapshots WHERE slot = ?`
	err := s.db.Conn().QueryRowContext(ctx, query, slot).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(document, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Delete drops the snapshot in the named slot, if any.
func (s *SnapshotStore) Delete(ctx context.Context, slot string) error {
	if _, err := s.db.Conn().ExecContext(ctx, `DELETE FROM snapshots WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
