package planner

import "cricketarcade/internal/engine"

// Request asks the service for the next delivery plan.
type Request struct {
	SessionID          string      `json:"sessionId"`
	LastShotLandingPos *engine.Vec `json:"lastShotLandingPos"`
	Overs              int         `json:"overs"`
	IsNewOver          bool        `json:"isNewOver"`
}

// Plan is valid for exactly one upcoming delivery.
type Plan struct {
	Fielders []engine.Fielder `json:"fielders"`
	BallType engine.BallType  `json:"ballType"`
}

type planResponse struct {
	Plan
	Error string `json:"error,omitempty"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}
