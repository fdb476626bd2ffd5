package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoSave is returned by GetSave when the slot holds nothing.
var ErrNoSave = errors.New("storage: no saved state")

// SaveSlot is one stored game state.
type SaveSlot struct {
	Owner     string
	Slot      string
	GameID    string
	Data      []byte
	UpdatedAt time.Time
}

// PutSave writes data into the owner's slot, replacing whatever was there.
func (s *Store) PutSave(owner, slot, gameID string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (owner, slot, game_id, data, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(owner, slot) DO UPDATE SET
			game_id = excluded.game_id,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		owner, slot, gameID, string(data),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write save %s/%s: %w", owner, slot, err)
	}
	return nil
}

// GetSave reads the owner's slot. It returns ErrNoSave if the slot is empty.
func (s *Store) GetSave(owner, slot string) (SaveSlot, error) {
	out := SaveSlot{Owner: owner, Slot: slot}
	var data string
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT game_id, data, updated_at FROM saves WHERE owner = ? AND slot = ?`,
		owner, slot,
	).Scan(&out.GameID, &data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SaveSlot{}, ErrNoSave
	}
	if err != nil {
		return SaveSlot{}, fmt.Errorf("storage: cannot read save %s/%s: %w", owner, slot, err)
	}

	out.Data = []byte(data)
	out.UpdatedAt = parseTime(updatedAt)
	return out, nil
}

// ListSaves returns the owner's slots ordered by slot name. An empty owner
// lists every owner's slots.
func (s *Store) ListSaves(owner string) ([]SaveSlot, error) {
	query := `SELECT owner, slot, game_id, data, updated_at FROM saves`
	var args []any
	if owner != "" {
		query += ` WHERE owner = ?`
		args = append(args, owner)
	}
	query += ` ORDER BY owner, slot`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot list saves: %w", err)
	}
	defer rows.Close()

	var slots []SaveSlot
	for rows.Next() {
		var sl SaveSlot
		var data string
		var updatedAt any
		if err := rows.Scan(&sl.Owner, &sl.Slot, &sl.GameID, &data, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan save row: %w", err)
		}
		sl.Data = []byte(data)
		sl.UpdatedAt = parseTime(updatedAt)
		slots = append(slots, sl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return slots, nil
}

// DeleteSave removes the owner's slot. It reports whether a slot was removed.
func (s *Store) DeleteSave(owner, slot string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM saves WHERE owner = ? AND slot = ?`, owner, slot)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete save %s/%s: %w", owner, slot, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot count deleted saves: %w", err)
	}
	return n > 0, nil
}

// DeleteSaves removes every slot belonging to owner and returns how many
// were removed.
func (s *Store) DeleteSaves(owner string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM saves WHERE owner = ?`, owner)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear saves for %s: %w", owner, err)
	}
	return res.RowsAffected()
}
