package match

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"cricketarcade/internal/engine"
	"cricketarcade/internal/planner"
)

var ErrNoSession = errors.New("no session ID")

// ConnectivityError is the banner shown when the planner cannot be reached.
const ConnectivityError = "Error: Could not connect to game server."

// Match is the gameplay state machine. It owns the ball, the fielders and the
// stats, performs no I/O, and is driven from a single goroutine.
type Match struct {
	cfg Config
	eng *engine.Engine

	state       State
	power       float64
	pointer     engine.Vec
	stats       Stats
	ball        *engine.Ball
	fielders    []engine.Fielder
	nextType    engine.BallType
	lastLanding *engine.Vec
	lastOutcome engine.Outcome

	message string
	errMsg  string
	fatal   bool

	planSeq int
	epoch   int
}

func New(cfg Config, eng *engine.Engine) (*Match, error) {
	if cfg.SessionID == "" {
		return nil, ErrNoSession
	}
	if cfg.PlayerName == "" {
		cfg.PlayerName = DefaultConfig().PlayerName
	}
	return &Match{
		cfg:      cfg,
		eng:      eng,
		state:    StateLoading,
		pointer:  eng.Tuning.Batter,
		nextType: engine.Fast,
	}, nil
}

func (m *Match) State() State { return m.state }

func (m *Match) Stats() Stats { return m.stats }

func (m *Match) Power() float64 { return m.power }

func (m *Match) LastOutcome() engine.Outcome { return m.lastOutcome }

// Begin issues the initial plan request. Assets must already be loaded.
func (m *Match) Begin() []Effect {
	if m.state != StateLoading || m.fatal {
		return nil
	}
	return []Effect{m.fetchPlan(true)}
}

// Fatal leaves the match in LOADING with a permanent error banner.
func (m *Match) Fatal(msg string) {
	m.fatal = true
	m.errMsg = msg
}

// Point records the pointer position used to aim the next release.
func (m *Match) Point(p engine.Vec) {
	m.pointer = p
}

// Press begins charging. Ignored outside READY.
func (m *Match) Press() bool {
	if m.state != StateReady {
		return false
	}
	m.state = StateCharging
	return true
}

// Release swings at the current pointer. A pointer resting exactly on the
// batter creates no ball and leaves the match charging.
func (m *Match) Release() bool {
	if m.state != StateCharging {
		return false
	}
	ball, ok := m.eng.Launch(m.pointer, m.power, m.nextType)
	if !ok {
		return false
	}

	m.ball = ball
	m.power = 0
	m.stats.Balls++
	if m.stats.Balls%6 == 0 {
		m.stats.Overs++
	}
	landing := ball.Pos
	m.lastLanding = &landing
	m.state = StateBallInPlay
	return true
}

// Tick advances one frame.
func (m *Match) Tick() []Effect {
	switch m.state {
	case StateCharging:
		m.power = math.Min(m.power+m.eng.Tuning.ChargePerTick, m.eng.Tuning.MaxPower)
	case StateBallInPlay:
		if m.ball == nil {
			return nil
		}
		if o := m.eng.Step(m.ball, m.fielders); o.Terminal() {
			return m.resolve(o)
		}
	}
	return nil
}

func (m *Match) resolve(o engine.Outcome) []Effect {
	var effects []Effect

	landing := o.Landing
	m.lastLanding = &landing

	switch o.Kind {
	case engine.Caught:
		m.stats.Wickets++
	case engine.Runs:
		m.stats.Score += o.Runs
		effects = append(effects, PostScore{Name: m.cfg.PlayerName, Score: m.stats.Score})
	}

	m.ball = nil
	m.lastOutcome = o
	m.message = o.Message()
	m.state = StateOutcome
	m.epoch++

	return append(effects,
		ScheduleReady{Epoch: m.epoch, After: m.cfg.OutcomeDelay},
		m.fetchPlan(false),
	)
}

// OutcomeElapsed ends the outcome display. Timers from an earlier outcome
// are ignored.
func (m *Match) OutcomeElapsed(epoch int) bool {
	if m.state != StateOutcome || epoch != m.epoch {
		return false
	}
	m.state = StateReady
	m.message = ""
	return true
}

func (m *Match) fetchPlan(initial bool) FetchPlan {
	m.planSeq++
	req := planner.Request{
		SessionID: m.cfg.SessionID,
		Overs:     m.stats.Overs,
		IsNewOver: !initial && m.stats.Balls > 0 && m.stats.Balls%6 == 0,
	}
	if m.lastLanding != nil {
		landing := *m.lastLanding
		req.LastShotLandingPos = &landing
	}
	return FetchPlan{Seq: m.planSeq, Request: req}
}

// PlanResult applies the outcome of a FetchPlan. Results for anything but the
// latest request are dropped. A failure keeps the previous plan and raises
// the connectivity banner.
func (m *Match) PlanResult(seq int, plan planner.Plan, err error) bool {
	if seq != m.planSeq {
		return false
	}
	if err != nil {
		if !m.fatal {
			m.errMsg = ConnectivityError
		}
		return false
	}

	m.fielders = append([]engine.Fielder(nil), plan.Fielders...)
	if plan.BallType != "" {
		m.nextType = plan.BallType
	}
	m.lastLanding = nil
	if !m.fatal {
		m.errMsg = ""
		if m.state == StateLoading {
			m.state = StateReady
		}
	}
	return true
}

func (m *Match) Snapshot() Snapshot {
	s := Snapshot{
		State:        m.state,
		Power:        m.power,
		Pointer:      m.pointer,
		Batter:       m.eng.Tuning.Batter,
		Stats:        m.stats,
		Over:         m.stats.OverString(),
		Fielders:     append([]engine.Fielder{}, m.fielders...),
		NextBallType: m.nextType,
		HUDSpeed:     "-",
		Message:      m.message,
		Error:        m.errMsg,
	}
	if m.ball != nil {
		s.Ball = &BallView{
			Pos:    m.ball.Pos,
			Radius: m.ball.Radius,
			Type:   m.ball.Type,
			Speed:  m.ball.Speed,
			Trail:  m.ball.Trail.Points(),
		}
		s.HUDSpeed = fmt.Sprintf("%d km/h", m.ball.Speed)
	}
	switch {
	case m.state == StateBallInPlay && m.ball != nil:
		s.HUDType = strings.ToUpper(string(m.ball.Type))
	case m.state == StateReady:
		s.HUDType = "-"
	default:
		s.HUDType = strings.ToUpper(string(m.nextType))
	}
	return s
}
