package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "HOST_PORT", "DATABASE_URL", "SERVICE_URL", "SESSION_ID", "PLAYER_NAME",
		"ASSET_DIR", "VARIANT", "TICK_HZ", "OUTCOME_DELAY_MS", "LEADERBOARD_INTERVAL_MS",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.HostPort != "8090" {
		t.Errorf("HostPort = %q, want %q", cfg.HostPort, "8090")
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want %q", cfg.DatabaseURL, "")
	}
	if cfg.SessionID != "" {
		t.Errorf("SessionID = %q, want empty", cfg.SessionID)
	}
	if cfg.PlayerName != "Player 1" {
		t.Errorf("PlayerName = %q, want %q", cfg.PlayerName, "Player 1")
	}
	if cfg.Variant != "canvas" {
		t.Errorf("Variant = %q, want %q", cfg.Variant, "canvas")
	}
	if cfg.TickHz != 60 {
		t.Errorf("TickHz = %d, want %d", cfg.TickHz, 60)
	}
	if cfg.OutcomeDelay != 2*time.Second {
		t.Errorf("OutcomeDelay = %v, want %v", cfg.OutcomeDelay, 2*time.Second)
	}
	if cfg.LeaderboardInterval != 5*time.Second {
		t.Errorf("LeaderboardInterval = %v, want %v", cfg.LeaderboardInterval, 5*time.Second)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("SERVICE_URL", "http://planner:3000")
	t.Setenv("SESSION_ID", "123456")
	t.Setenv("VARIANT", "arena")
	t.Setenv("TICK_HZ", "30")
	t.Setenv("OUTCOME_DELAY_MS", "250")
	t.Setenv("LEADERBOARD_INTERVAL_MS", "0")

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "3000")
	}
	if cfg.ServiceURL != "http://planner:3000" {
		t.Errorf("ServiceURL = %q", cfg.ServiceURL)
	}
	if cfg.SessionID != "123456" {
		t.Errorf("SessionID = %q, want %q", cfg.SessionID, "123456")
	}
	if cfg.Variant != "arena" {
		t.Errorf("Variant = %q, want %q", cfg.Variant, "arena")
	}
	if cfg.TickHz != 30 {
		t.Errorf("TickHz = %d, want %d", cfg.TickHz, 30)
	}
	if cfg.OutcomeDelay != 250*time.Millisecond {
		t.Errorf("OutcomeDelay = %v, want 250ms", cfg.OutcomeDelay)
	}
	if cfg.LeaderboardInterval != 0 {
		t.Errorf("LeaderboardInterval = %v, want 0", cfg.LeaderboardInterval)
	}
}

func TestLoad_InvalidNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("TICK_HZ", "abc")
	t.Setenv("OUTCOME_DELAY_MS", "-5")

	cfg := Load()

	if cfg.TickHz != 60 {
		t.Errorf("TickHz = %d, want %d (fallback)", cfg.TickHz, 60)
	}
	if cfg.OutcomeDelay != 2*time.Second {
		t.Errorf("OutcomeDelay = %v, want fallback", cfg.OutcomeDelay)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("PLAYER_NAME")
	t.Cleanup(func() { os.Unsetenv("PLAYER_NAME") })

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PLAYER_NAME=Dotenv Dan\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	cfg := Load()

	if cfg.PlayerName != "Dotenv Dan" {
		t.Errorf("PlayerName = %q, want value from .env", cfg.PlayerName)
	}
}
