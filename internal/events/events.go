package events

// StateChangeEvent is emitted whenever the match moves between states.
type StateChangeEvent struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// OutcomeEvent is emitted once per resolved delivery.
type OutcomeEvent struct {
	Kind    string `json:"kind"`
	Runs    int    `json:"runs,omitempty"`
	Message string `json:"message"`
	Score   int    `json:"score"`
	Wickets int    `json:"wickets"`
	Over    string `json:"over"`
}

type Bus struct {
	StateChanges chan StateChangeEvent
	Outcomes     chan OutcomeEvent
}

func NewBus() *Bus {
	return &Bus{
		StateChanges: make(chan StateChangeEvent, 10),
		Outcomes:     make(chan OutcomeEvent, 10),
	}
}

// PublishState queues a state change without blocking the caller. It reports
// false when the buffer is full and the event was dropped.
func (b *Bus) PublishState(ev StateChangeEvent) bool {
	select {
	case b.StateChanges <- ev:
		return true
	default:
		return false
	}
}

func (b *Bus) PublishOutcome(ev OutcomeEvent) bool {
	select {
	case b.Outcomes <- ev:
		return true
	default:
		return false
	}
}
