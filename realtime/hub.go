// Package realtime bridges per-connection client intents and the task store,
// and fans resulting facts out to every connected observer.
package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	sessionBuffer = 64
	writeTimeout  = 5 * time.Second
)

// session is one connected observer. Outbound messages are queued on send and
// drained by a single writer goroutine, so per-connection delivery order
// matches enqueue order.
type session struct {
	id   string
	conn *websocket.Conn
	out  chan []byte
	done chan struct{}
}

// send enqueues without blocking. A saturated session drops the message; the
// sync snapshot on reconnect is the catch-up mechanism.
func (s *session) send(data []byte) bool {
	select {
	case s.out <- data:
		return true
	default:
		return false
	}
}

func (s *session) writeLoop() {
	for {
		select {
		case <-s.done:
			return
		case data := <-s.out:
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := s.conn.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}
		}
	}
}

// Hub is the registry of active sessions and the broadcast fan-out.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*session
	logger   *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{sessions: make(map[string]*session), logger: logger}
}

func (h *Hub) add(conn *websocket.Conn) *session {
	s := &session{
		id:   uuid.NewString(),
		conn: conn,
		out:  make(chan []byte, sessionBuffer),
		done: make(chan struct{}),
	}
	h.mu.Lock()
	h.sessions[s.id] = s
	n := len(h.sessions)
	h.mu.Unlock()
	go s.writeLoop()
	h.logger.WithFields(log.Fields{"session": s.id, "connected": n}).Info("client connected")
	return s
}

func (h *Hub) remove(s *session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.id]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s.id)
	n := len(h.sessions)
	h.mu.Unlock()

	close(s.done)
	_ = s.conn.Close(websocket.StatusNormalClosure, "")
	h.logger.WithFields(log.Fields{"session": s.id, "connected": n}).Info("client disconnected")
}

// Broadcast marshals the event once and enqueues it to every session before
// returning, so observers receive facts in the order mutations were applied.
func (h *Hub) Broadcast(event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		h.logger.Errorf("marshal %s: %v", event, err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		if !s.send(data) {
			h.logger.Warnf("session %s outbound buffer full, dropping %s", s.id, event)
		}
	}
}

// Count returns the number of connected sessions.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}
