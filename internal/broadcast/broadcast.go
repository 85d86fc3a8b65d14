package broadcast

import (
	"encoding/json"
	"log"
	"sync"

	"cricketarcade/internal/events"
)

// Message is one renderer-bound event. Data is already JSON encoded.
type Message struct {
	Event string
	Data  []byte
}

type Broadcaster struct {
	Mu      sync.Mutex
	Clients map[chan Message]bool
}

// NewBroadcaster fans messages out to subscribers and forwards everything
// published on the bus as "scene" and "outcome" events.
func NewBroadcaster(bus *events.Bus) *Broadcaster {
	b := &Broadcaster{
		Clients: make(map[chan Message]bool),
	}
	go func() {
		for ev := range bus.StateChanges {
			b.BroadcastJSON("scene", ev)
		}
	}()
	go func() {
		for ev := range bus.Outcomes {
			b.BroadcastJSON("outcome", ev)
		}
	}()
	return b
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 10)
	b.Mu.Lock()
	b.Clients[ch] = true
	b.Mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.Mu.Lock()
	delete(b.Clients, ch)
	b.Mu.Unlock()
	close(ch)
}

func (b *Broadcaster) Broadcast(event string, data []byte) {
	b.Mu.Lock()
	defer b.Mu.Unlock()
	for ch := range b.Clients {
		select {
		case ch <- Message{Event: event, Data: data}:
		default:
			// skip clients with full data channels
		}
	}
}

func (b *Broadcaster) BroadcastJSON(event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("[Broadcast] Marshal %s error: %v\n", event, err)
		return
	}
	b.Broadcast(event, data)
}
