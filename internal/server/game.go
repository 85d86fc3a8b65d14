package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"cricketarcade/internal/broadcast"
	"cricketarcade/internal/engine"
	"cricketarcade/internal/host"
	"cricketarcade/internal/wshub"
)

// GameServer exposes a running Host to renderers over WebSocket and SSE.
type GameServer struct {
	Host        *host.Host
	Broadcaster *broadcast.Broadcaster
	Hub         *wshub.Hub
}

func NewGameServer(h *host.Host, b *broadcast.Broadcaster) *GameServer {
	gs := &GameServer{
		Host:        h,
		Broadcaster: b,
		Hub:         wshub.NewHub(),
	}
	go gs.forward(b.Subscribe())
	return gs
}

// forward relays every broadcast to the WebSocket hub.
func (gs *GameServer) forward(ch chan broadcast.Message) {
	for msg := range ch {
		gs.Hub.Broadcast(wshub.ServerMessage{Type: msg.Event, Data: msg.Data})
	}
}

func (gs *GameServer) dispatch(msg wshub.ClientMessage) {
	switch msg.Type {
	case "move":
		gs.Host.Input(host.Move{Pos: engine.Vec{X: msg.X, Y: msg.Y}})
	case "press":
		gs.Host.Input(host.Press{})
	case "release":
		gs.Host.Input(host.Release{})
	default:
		log.Printf("[WSHub] Unknown message type %q\n", msg.Type)
	}
}

func (gs *GameServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("[WSHub] Accept error: %v\n", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	frame, err := json.Marshal(gs.Host.Frame())
	if err != nil {
		log.Printf("[WSHub] Marshal error: %v\n", err)
		return
	}
	if err := wshub.WriteJSON(ctx, conn, wshub.ServerMessage{Type: "state", Data: frame}); err != nil {
		return
	}

	c := &wshub.Client{ID: uuid.NewString(), Conn: conn, Send: make(chan []byte, 32)}
	gs.Hub.Register(c)
	defer gs.Hub.Unregister(c.ID)
	log.Printf("[WSHub] Renderer %s connected\n", c.ID)

	go c.WritePump(ctx)
	err = c.ReadPump(ctx, gs.dispatch)
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
	default:
		if ctx.Err() == nil {
			log.Printf("[WSHub] Renderer %s dropped: %v\n", c.ID, err)
		}
	}
}

func (gs *GameServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	msgChan := gs.Broadcaster.Subscribe()
	defer gs.Broadcaster.Unsubscribe(msgChan)

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-msgChan:
			fmt.Fprintf(w, "event: %s\n", msg.Event)
			fmt.Fprintf(w, "data: %s\n\n", msg.Data)
			flusher.Flush()
		}
	}
}

func (gs *GameServer) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, gs.Host.Frame())
}

func (gs *GameServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	f := gs.Host.Frame()
	fmt.Fprintf(w, `{"status":"ok","state":"%s","renderers":%d}`, f.State, gs.Hub.Len())
}
