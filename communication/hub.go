package communication

import (
	"encoding/json"
	"sync"
	"time"

	"feud/engine"

	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type turnPayload struct {
	Turn  string `json:"turn"`
	Phase string `json:"phase"`
}

type finishedPayload struct {
	Winner string `json:"winner"`
}

// hub fans controller events out to websocket clients.
type hub struct {
	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

type wsClient struct {
	send chan []byte
}

func newHub() *hub {
	return &hub{clients: make(map[*wsClient]struct{})}
}

// register sends the greeting before any event reaches the new client.
func (h *hub) register(c *wsClient, greeting func() wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	c.sendJSON(greeting())
	h.clients[c] = struct{}{}
}

func (h *hub) unregister(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// publish is a controller subscriber.
func (h *hub) publish(e engine.Event) {
	msg, ok := eventMessage(e)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
}

func eventMessage(e engine.Event) (wsMessage, bool) {
	switch e := e.(type) {
	case engine.TileChanged:
		return wsMessage{Type: "tile", Payload: mustMarshal(e.Piece.View())}, true
	case engine.TurnChanged:
		return wsMessage{Type: "turn", Payload: mustMarshal(turnPayload{Turn: e.Turn.String(), Phase: e.Phase.String()})}, true
	case engine.GameFinished:
		return wsMessage{Type: "finished", Payload: mustMarshal(finishedPayload{Winner: e.Winner.String()})}, true
	default:
		return wsMessage{}, false
	}
}

// sendJSON drops the message when the client is not keeping up.
func (c *wsClient) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	pingPayload := mustMarshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, pingPayload); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
