package sessions

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"cricketarcade/internal/engine"
)

const staleTTL = 1 * time.Hour

type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	s := &Store{
		sessions: make(map[string]*Session),
	}
	go s.sweepStale()
	return s
}

func (s *Store) Create() (*Session, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}
	now := time.Now()
	sess := &Session{ID: id.String(), CreatedAt: now, LastSeen: now}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Restore puts a session known elsewhere (the database) back into the store
// with the given shot history. An existing entry is left alone.
func (s *Store) Restore(id string, shots []engine.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; ok {
		return
	}
	now := time.Now()
	s.sessions[id] = &Session{
		ID:        id,
		CreatedAt: now,
		LastSeen:  now,
		Shots:     append([]engine.Vec(nil), shots...),
	}
}

// RecordShot appends a landing position to the session's history and returns
// a copy of the full history. ok is false for an unknown session.
func (s *Store) RecordShot(id string, landing *engine.Vec) (history []engine.Vec, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	sess.LastSeen = time.Now()
	if landing != nil {
		sess.Shots = append(sess.Shots, *landing)
	}
	return append([]engine.Vec(nil), sess.Shots...), true
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions that have not been used for more than an hour before
// now and reports how many were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.LastSeen) > staleTTL {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) sweepStale() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for now := range ticker.C {
		s.Sweep(now)
	}
}
