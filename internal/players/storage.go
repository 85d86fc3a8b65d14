package players

import (
	"sort"
	"sync"
)

// Store keeps each player's best reported score.
type Store struct {
	mu      sync.Mutex
	players map[string]*Player
}

func NewStore() *Store {
	return &Store{
		players: make(map[string]*Player),
	}
}

// Record stores score if it beats the player's best so far and returns the
// best score after the update.
func (s *Store) Record(name string, score int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.players[name]
	if !ok {
		p = &Player{Name: name, Score: score}
		s.players[name] = p
	} else if score > p.Score {
		p.Score = score
	}
	return p.Score
}

// Top returns up to n players by descending score. Ties keep name order so
// the ranking is stable between calls.
func (s *Store) Top(n int) []Player {
	s.mu.Lock()
	list := make([]Player, 0, len(s.players))
	for _, p := range s.players {
		list = append(list, *p)
	}
	s.mu.Unlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].Name < list[j].Name
	})
	if n >= 0 && len(list) > n {
		list = list[:n]
	}
	return list
}
