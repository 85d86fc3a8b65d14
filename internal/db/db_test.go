package db

import (
	"context"
	"os"
	"testing"
	"time"

	"cricketarcade/internal/engine"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database tests")
	}
	database, err := Connect(dsn)
	if err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := database.Migrate(); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	t.Cleanup(func() {
		// Clean up test data
		database.conn.Exec("DELETE FROM shots")
		database.conn.Exec("DELETE FROM sessions")
		database.conn.Exec("DELETE FROM scores")
		database.Close()
	})
	return database
}

func TestConnect(t *testing.T) {
	database := getTestDB(t)
	if err := database.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	database := getTestDB(t)

	// Running twice must be harmless
	if err := database.Migrate(); err != nil {
		t.Fatalf("second Migrate() error: %v", err)
	}

	tables := []string{"sessions", "shots", "scores"}
	for _, table := range tables {
		var exists bool
		err := database.conn.QueryRow(`
			SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = $1)
		`, table).Scan(&exists)
		if err != nil {
			t.Errorf("checking table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("table %s does not exist", table)
		}
	}

	var fks int
	err := database.conn.QueryRow(`
		SELECT count(*) FROM information_schema.table_constraints
		WHERE table_name = 'shots' AND constraint_type = 'FOREIGN KEY'
	`).Scan(&fks)
	if err != nil {
		t.Fatalf("checking shots constraints: %v", err)
	}
	if fks != 0 {
		t.Errorf("shots has %d foreign keys, want none", fks)
	}
}

func TestUpsertBestScore(t *testing.T) {
	database := getTestDB(t)

	for _, score := range []int{10, 4, 16} {
		if err := database.UpsertBestScore("Alice", score); err != nil {
			t.Fatalf("UpsertBestScore(%d) error: %v", score, err)
		}
	}
	database.UpsertBestScore("Bob", 20)

	top, err := database.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("TopScores() returned %d rows, want 2", len(top))
	}
	if top[0] != (ScoreRecord{"Bob", 20}) || top[1] != (ScoreRecord{"Alice", 16}) {
		t.Errorf("TopScores() = %+v", top)
	}
}

func TestTopScores_Limit(t *testing.T) {
	database := getTestDB(t)

	for i, name := range []string{"a", "b", "c"} {
		database.UpsertBestScore(name, i)
	}
	top, err := database.TopScores(2)
	if err != nil {
		t.Fatalf("TopScores() error: %v", err)
	}
	if len(top) != 2 || top[0].Name != "c" {
		t.Errorf("TopScores(2) = %+v", top)
	}
}

func TestBatchRecordShots(t *testing.T) {
	database := getTestDB(t)

	sessionID := "550e8400-e29b-41d4-a716-446655440000"
	if err := database.CreateSession(sessionID); err != nil {
		t.Fatalf("CreateSession() error: %v", err)
	}
	// duplicate ids are ignored
	if err := database.CreateSession(sessionID); err != nil {
		t.Fatalf("CreateSession() repeat error: %v", err)
	}

	now := time.Now()
	events := []ShotEvent{
		{SessionID: sessionID, X: 300, Y: 420, Overs: 0, RecordedAt: now},
		{SessionID: sessionID, X: -5, Y: 200, Overs: 0, RecordedAt: now},
		{SessionID: sessionID, X: 610, Y: 10, Overs: 1, RecordedAt: now},
	}
	if err := database.BatchRecordShots(events); err != nil {
		t.Fatalf("BatchRecordShots() error: %v", err)
	}

	history, err := database.ShotHistory(sessionID)
	if err != nil {
		t.Fatalf("ShotHistory() error: %v", err)
	}
	want := []engine.Vec{{X: 300, Y: 420}, {X: -5, Y: 200}, {X: 610, Y: 10}}
	if len(history) != len(want) {
		t.Fatalf("ShotHistory() = %v, want %v", history, want)
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history[%d] = %v, want %v", i, history[i], want[i])
		}
	}

	ok, err := database.SessionExists(sessionID)
	if err != nil || !ok {
		t.Errorf("SessionExists() = %v, %v", ok, err)
	}
	if ok, _ := database.SessionExists("missing"); ok {
		t.Error("SessionExists(missing) should be false")
	}
}

func TestBatchRecordShots_UnknownSession(t *testing.T) {
	database := getTestDB(t)

	// a shot whose session row never landed must not sink the batch
	events := []ShotEvent{
		{SessionID: "missing", X: 1, Y: 2, RecordedAt: time.Now()},
		{SessionID: "also-missing", X: 3, Y: 4, RecordedAt: time.Now()},
	}
	if err := database.BatchRecordShots(events); err != nil {
		t.Fatalf("BatchRecordShots() error: %v", err)
	}
	history, err := database.ShotHistory("missing")
	if err != nil {
		t.Fatalf("ShotHistory() error: %v", err)
	}
	if len(history) != 1 || history[0] != (engine.Vec{X: 1, Y: 2}) {
		t.Errorf("ShotHistory(missing) = %v", history)
	}
}
