package db

import (
	"fmt"
	"time"

	"cricketarcade/internal/engine"
)

type ShotEvent struct {
	SessionID  string
	X          float64
	Y          float64
	Overs      int
	RecordedAt time.Time
}

func (d *DB) BatchRecordShots(events []ShotEvent) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO shots (session_id, x, y, overs, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		if _, err := stmt.Exec(ev.SessionID, ev.X, ev.Y, ev.Overs, ev.RecordedAt); err != nil {
			return fmt.Errorf("recording shot in batch: %w", err)
		}
	}

	return tx.Commit()
}

// ShotHistory returns a session's landing positions in the order they were
// recorded.
func (d *DB) ShotHistory(sessionID string) ([]engine.Vec, error) {
	rows, err := d.conn.Query(`
		SELECT x, y FROM shots
		WHERE session_id = $1
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying shots: %w", err)
	}
	defer rows.Close()

	var history []engine.Vec
	for rows.Next() {
		var v engine.Vec
		if err := rows.Scan(&v.X, &v.Y); err != nil {
			return nil, fmt.Errorf("scanning shot: %w", err)
		}
		history = append(history, v)
	}
	return history, rows.Err()
}
