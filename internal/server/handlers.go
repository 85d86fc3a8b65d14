package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"cricketarcade/internal/db"
	"cricketarcade/internal/engine"
	"cricketarcade/internal/fieldplan"
	"cricketarcade/internal/planner"
	"cricketarcade/internal/players"
	"cricketarcade/internal/scoreboard"
	"cricketarcade/internal/sessions"
)

const leaderboardSize = 10

// ScoreStore keeps each player's best score.
type ScoreStore interface {
	RecordScore(name string, score int) error
	TopScores(n int) ([]players.Player, error)
}

// SessionArchive holds sessions and shots beyond the life of the in-memory
// store.
type SessionArchive interface {
	SessionExists(id string) (bool, error)
	ShotHistory(id string) ([]engine.Vec, error)
}

// Server is the reference delivery planner and scoreboard service.
type Server struct {
	Sessions   *sessions.Store
	Planner    *fieldplan.Planner
	Scores     ScoreStore
	Archive    SessionArchive    // nil if no database configured
	DB         *db.DB            // nil if no database configured
	ShotBuffer chan db.ShotEvent // nil if no database configured
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
	Sessions int    `json:"sessions"`
}

type updateScoreRequest struct {
	Name  string `json:"name"`
	Score *int   `json:"score"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println(err)
	}
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Create()
	if err != nil {
		log.Println(err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{"Internal server error"})
		return
	}
	if s.DB != nil {
		if err := s.DB.CreateSession(sess.ID); err != nil {
			log.Printf("[DB] CreateSession error: %v\n", err)
		}
	}
	sessionsCreated.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"sessionId": sess.ID})
}

func (s *Server) handlePlanNextDelivery(w http.ResponseWriter, r *http.Request) {
	reqID := r.Header.Get("X-Request-ID")

	var req planner.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[Planner] Request %s: bad body: %v\n", reqID, err)
		writeJSON(w, http.StatusBadRequest, errorResponse{"Invalid request"})
		return
	}
	if req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{"Invalid session"})
		return
	}

	history, ok := s.Sessions.RecordShot(req.SessionID, req.LastShotLandingPos)
	if !ok && s.Archive != nil {
		history, ok = s.restoreSession(req.SessionID, req.LastShotLandingPos)
	}
	if !ok {
		log.Printf("[Planner] Request %s: unknown session %q\n", reqID, req.SessionID)
		writeJSON(w, http.StatusBadRequest, errorResponse{"Invalid session"})
		return
	}

	if s.ShotBuffer != nil && req.LastShotLandingPos != nil {
		select {
		case s.ShotBuffer <- db.ShotEvent{
			SessionID:  req.SessionID,
			X:          req.LastShotLandingPos.X,
			Y:          req.LastShotLandingPos.Y,
			Overs:      req.Overs,
			RecordedAt: time.Now(),
		}:
		default:
			log.Println("[DB] Shot buffer full, dropping event")
		}
	}

	plan := s.Planner.Plan(req.Overs, history)
	plansServed.WithLabelValues(string(plan.BallType)).Inc()
	writeJSON(w, http.StatusOK, plan)
}

// restoreSession brings back a session the memory store no longer holds,
// after a restart or an idle sweep, with the shots persisted for it.
func (s *Server) restoreSession(id string, landing *engine.Vec) ([]engine.Vec, bool) {
	known, err := s.Archive.SessionExists(id)
	if err != nil {
		log.Printf("[DB] SessionExists error: %v\n", err)
		return nil, false
	}
	if !known {
		return nil, false
	}
	shots, err := s.Archive.ShotHistory(id)
	if err != nil {
		log.Printf("[DB] ShotHistory error: %v\n", err)
		return nil, false
	}
	s.Sessions.Restore(id, shots)
	log.Printf("[DB] Restored session %s with %d shots\n", id, len(shots))
	return s.Sessions.RecordShot(id, landing)
}

func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request) {
	var req updateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Score == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "Invalid data"})
		return
	}
	if err := s.Scores.RecordScore(req.Name, *req.Score); err != nil {
		log.Printf("[Score] RecordScore error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "message": "Could not save score"})
		return
	}
	scoreUpdates.Inc()
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	top, err := s.Scores.TopScores(leaderboardSize)
	if err != nil {
		log.Printf("[Score] TopScores error: %v\n", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{"Internal server error"})
		return
	}
	ranking := make(scoreboard.Ranking, 0, len(top))
	for _, p := range top {
		ranking = append(ranking, scoreboard.Entry{Name: p.Name, Score: p.Score})
	}
	writeJSON(w, http.StatusOK, ranking)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Sessions: s.Sessions.Count()}
	if s.DB != nil {
		if err := s.DB.Ping(r.Context()); err != nil {
			resp.Status, resp.Error = "db_error", err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type memoryScores struct {
	store *players.Store
}

func (m memoryScores) RecordScore(name string, score int) error {
	m.store.Record(name, score)
	return nil
}

func (m memoryScores) TopScores(n int) ([]players.Player, error) {
	return m.store.Top(n), nil
}

type dbScores struct {
	db *db.DB
}

func (d dbScores) RecordScore(name string, score int) error {
	return d.db.UpsertBestScore(name, score)
}

func (d dbScores) TopScores(n int) ([]players.Player, error) {
	rows, err := d.db.TopScores(n)
	if err != nil {
		return nil, err
	}
	out := make([]players.Player, 0, len(rows))
	for _, r := range rows {
		out = append(out, players.Player{Name: r.Name, Score: r.Score})
	}
	return out, nil
}
