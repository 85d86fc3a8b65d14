package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string // reference service
	HostPort            string // game host renderer API
	DatabaseURL         string
	ServiceURL          string
	SessionID           string
	PlayerName          string
	AssetDir            string
	Variant             string // "canvas" or "arena"
	TickHz              int
	OutcomeDelay        time.Duration
	LeaderboardInterval time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] .env not loaded: %v\n", err)
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		HostPort:            getEnv("HOST_PORT", "8090"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		ServiceURL:          getEnv("SERVICE_URL", "http://localhost:8080"),
		SessionID:           os.Getenv("SESSION_ID"),
		PlayerName:          getEnv("PLAYER_NAME", "Player 1"),
		AssetDir:            os.Getenv("ASSET_DIR"),
		Variant:             getEnv("VARIANT", "canvas"),
		TickHz:              getEnvInt("TICK_HZ", 60),
		OutcomeDelay:        getEnvMillis("OUTCOME_DELAY_MS", 2*time.Second),
		LeaderboardInterval: getEnvMillis("LEADERBOARD_INTERVAL_MS", 5*time.Second),
	}
	if cfg.TickHz <= 0 {
		cfg.TickHz = 60
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvMillis(key string, fallback time.Duration) time.Duration {
	if ms := getEnvInt(key, -1); ms >= 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return fallback
}
