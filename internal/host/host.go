package host

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"cricketarcade/internal/broadcast"
	"cricketarcade/internal/engine"
	"cricketarcade/internal/events"
	"cricketarcade/internal/match"
	"cricketarcade/internal/planner"
	"cricketarcade/internal/scoreboard"
)

type Planner interface {
	NextPlan(ctx context.Context, req planner.Request) (planner.Plan, error)
}

type Scoreboard interface {
	PostScore(ctx context.Context, name string, score int) error
	Leaderboard(ctx context.Context) (scoreboard.Ranking, error)
}

// Renderer input. Send these through Input.
type (
	Move    struct{ Pos engine.Vec }
	Press   struct{}
	Release struct{}
)

// Frame is what renderers receive every tick.
type Frame struct {
	match.Snapshot
	Leaderboard scoreboard.Ranking `json:"leaderboard"`
}

type Options struct {
	TickHz              int
	LeaderboardInterval time.Duration
	Loaders             []Loader
}

// results posted back to the loop
type assetsLoaded struct{ err error }

type planResult struct {
	seq  int
	plan planner.Plan
	err  error
}

type leaderboardResult struct {
	ranking scoreboard.Ranking
	err     error
}

type readyElapsed struct{ epoch int }

// Host owns a Match and drives it from one goroutine. Everything that blocks
// runs elsewhere and reports back through the inbox.
type Host struct {
	match   *match.Match
	planner Planner
	scores  Scoreboard
	bus     *events.Bus
	out     *broadcast.Broadcaster
	opts    Options

	inbox chan any
	done  chan struct{}

	// owned by the Run goroutine
	leaderboard scoreboard.Ranking
	timers      map[int]*time.Timer
	poll        *time.Ticker
	lastState   match.State

	mu    sync.RWMutex
	frame Frame
}

// New wires a host. scores, bus and out may be nil.
func New(m *match.Match, p Planner, scores Scoreboard, bus *events.Bus, out *broadcast.Broadcaster, opts Options) *Host {
	if opts.TickHz <= 0 {
		opts.TickHz = 60
	}
	if opts.LeaderboardInterval <= 0 {
		opts.LeaderboardInterval = 5 * time.Second
	}
	h := &Host{
		match:     m,
		planner:   p,
		scores:    scores,
		bus:       bus,
		out:       out,
		opts:      opts,
		inbox:     make(chan any, 64),
		done:      make(chan struct{}),
		timers:    make(map[int]*time.Timer),
		lastState: m.State(),
	}
	h.frame = Frame{Snapshot: m.Snapshot()}
	return h
}

// Input queues renderer input for the next loop iteration. It returns false
// once the host has stopped.
func (h *Host) Input(msg any) bool {
	return h.post(msg)
}

// Frame returns the most recently published frame.
func (h *Host) Frame() Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame
}

// Run blocks until ctx is cancelled.
func (h *Host) Run(ctx context.Context) error {
	defer close(h.done)
	defer h.stopTimers()

	go h.preload(ctx)

	ticker := time.NewTicker(time.Second / time.Duration(h.opts.TickHz))
	defer ticker.Stop()

	h.publish()
	for {
		var pollC <-chan time.Time
		if h.poll != nil {
			pollC = h.poll.C
		}

		select {
		case <-ctx.Done():
			return nil
		case msg := <-h.inbox:
			h.handle(ctx, msg)
		case <-ticker.C:
			h.apply(ctx, h.match.Tick())
		case <-pollC:
			h.fetchLeaderboard(ctx)
			continue
		}
		h.observe(ctx)
		h.publish()
	}
}

func (h *Host) post(msg any) bool {
	select {
	case <-h.done:
		return false
	default:
	}
	select {
	case h.inbox <- msg:
		return true
	case <-h.done:
		return false
	}
}

func (h *Host) preload(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	for _, load := range h.opts.Loaders {
		g.Go(func() error { return load(gctx) })
	}
	h.post(assetsLoaded{err: g.Wait()})
}

func (h *Host) handle(ctx context.Context, msg any) {
	switch m := msg.(type) {
	case assetsLoaded:
		if m.err != nil {
			log.Printf("[Host] Asset preload failed: %v\n", m.err)
			h.match.Fatal(m.err.Error())
			return
		}
		h.apply(ctx, h.match.Begin())
	case planResult:
		if m.err != nil {
			planFailuresTotal.Inc()
			log.Printf("[Planner] Plan request %d failed: %v\n", m.seq, m.err)
		}
		h.match.PlanResult(m.seq, m.plan, m.err)
	case leaderboardResult:
		if m.err != nil {
			log.Printf("[Score] Failed to update leaderboard: %v\n", m.err)
			return
		}
		h.leaderboard = m.ranking
	case readyElapsed:
		delete(h.timers, m.epoch)
		h.match.OutcomeElapsed(m.epoch)
	case Move:
		h.match.Point(m.Pos)
	case Press:
		h.match.Press()
	case Release:
		h.match.Release()
	default:
		log.Printf("[Host] Unknown inbox message %T\n", msg)
	}
}

// apply executes effects without blocking the loop.
func (h *Host) apply(ctx context.Context, effects []match.Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case match.FetchPlan:
			go func() {
				plan, err := h.planner.NextPlan(ctx, e.Request)
				h.post(planResult{seq: e.Seq, plan: plan, err: err})
			}()
		case match.PostScore:
			if h.scores == nil {
				continue
			}
			go func() {
				if err := h.scores.PostScore(ctx, e.Name, e.Score); err != nil {
					log.Printf("[Score] Failed to post score: %v\n", err)
				}
			}()
		case match.ScheduleReady:
			h.timers[e.Epoch] = time.AfterFunc(e.After, func() {
				h.post(readyElapsed{epoch: e.Epoch})
			})
		}
	}
}

// observe reports state transitions and starts leaderboard polling once the
// match has left LOADING for the first time.
func (h *Host) observe(ctx context.Context) {
	state := h.match.State()
	if state == h.lastState {
		return
	}
	from := h.lastState
	h.lastState = state

	if h.bus != nil {
		h.bus.PublishState(events.StateChangeEvent{From: string(from), To: string(state)})
	}

	if state == match.StateOutcome {
		o := h.match.LastOutcome()
		stats := h.match.Stats()
		deliveriesTotal.WithLabelValues(o.Kind.String()).Inc()
		if h.bus != nil {
			h.bus.PublishOutcome(events.OutcomeEvent{
				Kind:    o.Kind.String(),
				Runs:    o.Runs,
				Message: o.Message(),
				Score:   stats.Score,
				Wickets: stats.Wickets,
				Over:    stats.OverString(),
			})
		}
	}

	if h.poll == nil && from == match.StateLoading && h.scores != nil {
		h.poll = time.NewTicker(h.opts.LeaderboardInterval)
		h.fetchLeaderboard(ctx)
	}
}

func (h *Host) fetchLeaderboard(ctx context.Context) {
	go func() {
		r, err := h.scores.Leaderboard(ctx)
		h.post(leaderboardResult{ranking: r, err: err})
	}()
}

func (h *Host) publish() {
	f := Frame{Snapshot: h.match.Snapshot(), Leaderboard: h.leaderboard}
	h.mu.Lock()
	h.frame = f
	h.mu.Unlock()
	if h.out != nil {
		h.out.BroadcastJSON("state", f)
	}
}

func (h *Host) stopTimers() {
	for epoch, t := range h.timers {
		t.Stop()
		delete(h.timers, epoch)
	}
	if h.poll != nil {
		h.poll.Stop()
	}
}
