package db

import "fmt"

type ScoreRecord struct {
	Name  string
	Score int
}

// UpsertBestScore keeps the higher of the stored and the reported score.
func (d *DB) UpsertBestScore(name string, score int) error {
	_, err := d.conn.Exec(`
		INSERT INTO scores (name, best_score)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE
		SET best_score = GREATEST(scores.best_score, EXCLUDED.best_score),
		    updated_at = now()
	`, name, score)
	if err != nil {
		return fmt.Errorf("upserting score: %w", err)
	}
	return nil
}

func (d *DB) TopScores(limit int) ([]ScoreRecord, error) {
	rows, err := d.conn.Query(`
		SELECT name, best_score FROM scores
		ORDER BY best_score DESC, name ASC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreRecord
	for rows.Next() {
		var r ScoreRecord
		if err := rows.Scan(&r.Name, &r.Score); err != nil {
			return nil, fmt.Errorf("scanning score: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
