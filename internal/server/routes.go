package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cricketarcade/internal/broadcast"
	"cricketarcade/internal/config"
	"cricketarcade/internal/db"
	"cricketarcade/internal/engine"
	"cricketarcade/internal/events"
	"cricketarcade/internal/fieldplan"
	"cricketarcade/internal/host"
	"cricketarcade/internal/match"
	"cricketarcade/internal/planner"
	"cricketarcade/internal/players"
	"cricketarcade/internal/scoreboard"
	"cricketarcade/internal/sessions"
)

// Run starts the reference planner and scoreboard service.
func Run() error {
	appCfg := config.Load()

	srv := &Server{
		Sessions: sessions.NewStore(),
		Planner:  fieldplan.New(rand.NewSource(time.Now().UnixNano())),
		Scores:   memoryScores{store: players.NewStore()},
	}

	// Optional database connection
	if appCfg.DatabaseURL != "" {
		database, err := db.Connect(appCfg.DatabaseURL)
		if err != nil {
			log.Printf("[DB] Failed to connect: %v (running without database)\n", err)
		} else {
			if err := database.Migrate(); err != nil {
				log.Printf("[DB] Migration failed: %v\n", err)
			}
			srv.DB = database
			srv.Archive = database
			srv.Scores = dbScores{db: database}
			srv.ShotBuffer = make(chan db.ShotEvent, 1000)
			go shotBatchWriter(database, srv.ShotBuffer)
			log.Println("[DB] Database connected and migrations applied")
		}
	} else {
		log.Println("[DB] DATABASE_URL not set, running without database")
	}

	addr := "0.0.0.0:" + appCfg.Port
	fmt.Printf("Service listening on http://localhost:%s\n", appCfg.Port)
	return http.ListenAndServe(addr, srv.routes())
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /session", s.handleSession)
	mux.HandleFunc("POST /plan-next-delivery", s.handlePlanNextDelivery)
	mux.HandleFunc("POST /update-score", s.handleUpdateScore)
	mux.HandleFunc("GET /leaderboard", s.handleLeaderboard)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

// RunHost starts a game host: one match driven at the configured tick rate,
// talking to the service at SERVICE_URL and serving renderers on HOST_PORT.
func RunHost() error {
	appCfg := config.Load()

	tuning, err := engine.Preset(appCfg.Variant)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := planner.NewClient(appCfg.ServiceURL, nil)
	sessionID := appCfg.SessionID
	if sessionID == "" {
		id, err := client.NewSession(ctx)
		if err != nil {
			log.Printf("[Planner] Could not open a session: %v\n", err)
		}
		sessionID = id
	}

	m, err := match.New(match.Config{
		SessionID:    sessionID,
		PlayerName:   appCfg.PlayerName,
		OutcomeDelay: appCfg.OutcomeDelay,
	}, engine.New(tuning, rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		log.Println("[Host] Critical Error: No session ID.")
		return err
	}

	var loaders []host.Loader
	if appCfg.AssetDir != "" {
		loaders = host.ImageLoaders(appCfg.AssetDir)
	}

	bus := events.NewBus()
	b := broadcast.NewBroadcaster(bus)
	h := host.New(m, client, scoreboard.NewClient(appCfg.ServiceURL, nil), bus, b, host.Options{
		TickHz:              appCfg.TickHz,
		LeaderboardInterval: appCfg.LeaderboardInterval,
		Loaders:             loaders,
	})
	gs := NewGameServer(h, b)

	go h.Run(ctx)

	httpSrv := &http.Server{Addr: "0.0.0.0:" + appCfg.HostPort, Handler: gs.routes()}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpSrv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Game host (%s, session %s) listening on http://localhost:%s\n", appCfg.Variant, sessionID, appCfg.HostPort)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (gs *GameServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", gs.handleWS)
	mux.HandleFunc("GET /events", gs.handleEvents)
	mux.HandleFunc("GET /state", gs.handleState)
	mux.HandleFunc("GET /health", gs.handleHealth)
	return mux
}

func shotBatchWriter(database *db.DB, buffer chan db.ShotEvent) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]db.ShotEvent, 0, 50)

	for {
		select {
		case ev := <-buffer:
			batch = append(batch, ev)
			if len(batch) >= 50 {
				if err := database.BatchRecordShots(batch); err != nil {
					log.Printf("[DB] BatchRecordShots error: %v\n", err)
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := database.BatchRecordShots(batch); err != nil {
					log.Printf("[DB] BatchRecordShots error: %v\n", err)
				}
				batch = batch[:0]
			}
		}
	}
}
