package db

import "fmt"

func (d *DB) CreateSession(id string) error {
	_, err := d.conn.Exec(`
		INSERT INTO sessions (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, id)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

func (d *DB) SessionExists(id string) (bool, error) {
	var exists bool
	err := d.conn.QueryRow(`SELECT EXISTS (SELECT 1 FROM sessions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("looking up session: %w", err)
	}
	return exists, nil
}
