package sessions

import (
	"time"

	"cricketarcade/internal/engine"
)

type Session struct {
	ID        string
	CreatedAt time.Time
	LastSeen  time.Time // last create, restore or plan request
	Shots     []engine.Vec
}
