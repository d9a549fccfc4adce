package realtime

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/coder/websocket"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/domain"
	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/storage"
)

// Engine routes client intents to the store and broadcasts the resulting
// facts. Failures are reported to the originating session only.
type Engine struct {
	store  *storage.Store
	hub    *Hub
	logger *log.Logger

	// dispatch serializes each intent's store access with its broadcast
	// enqueue, so no intent interleaves with another's and fact order equals
	// mutation order.
	dispatch sync.Mutex
}

func NewEngine(store *storage.Store, hub *Hub, logger *log.Logger) *Engine {
	return &Engine{store: store, hub: hub, logger: logger}
}

// Handler returns the echo handler that upgrades the request to a WebSocket
// and services the connection until it closes.
func (e *Engine) Handler() echo.HandlerFunc {
	return func(c echo.Context) error {
		conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
			OriginPatterns: []string{"*"},
		})
		if err != nil {
			return err
		}
		e.serve(c.Request().Context(), conn)
		return nil
	}
}

func (e *Engine) serve(ctx context.Context, conn *websocket.Conn) {
	// Registration and the full-collection snapshot share one critical
	// section. A session registered outside it could receive a concurrent
	// intent's broadcast before its snapshot; inside it, the first message is
	// always sync:tasks and no fact is ever for a mutation already folded
	// into the snapshot.
	e.dispatch.Lock()
	s := e.hub.add(conn)
	e.sendTo(s, EventSyncTasks, e.store.ListAll())
	e.dispatch.Unlock()
	defer e.hub.remove(s)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		e.handle(s, data)
	}
}

// Reset clears the board and resyncs every observer with the empty list.
func (e *Engine) Reset() {
	e.dispatch.Lock()
	defer e.dispatch.Unlock()
	e.store.Reset()
	e.hub.Broadcast(EventSyncTasks, e.store.ListAll())
}

func (e *Engine) handle(s *session, raw []byte) {
	var env Envelope
	if err := sonic.ConfigStd.Unmarshal(raw, &env); err != nil {
		e.sendError(s, "invalid message")
		return
	}

	e.dispatch.Lock()
	defer e.dispatch.Unlock()

	switch env.Event {
	case EventTaskCreate:
		var draft domain.TaskDraft
		if err := sonic.ConfigStd.Unmarshal(env.Data, &draft); err != nil {
			e.sendError(s, "invalid payload")
			return
		}
		task := e.store.Create(draft)
		e.hub.Broadcast(EventTaskCreated, task)
		e.logger.Infof("Task created: %d - %s", task.ID, task.Title)

	case EventTaskUpdate:
		var p updatePayload
		if err := sonic.ConfigStd.Unmarshal(env.Data, &p); err != nil {
			e.sendError(s, "invalid payload")
			return
		}
		if p.Status != nil && !p.Status.Valid() {
			e.sendError(s, "invalid status: "+string(*p.Status))
			return
		}
		task, err := e.store.Update(p.ID, p.TaskPatch)
		if err != nil {
			e.sendError(s, "Task not found")
			return
		}
		e.hub.Broadcast(EventTaskUpdated, task)
		e.logger.Infof("Task updated: %d", task.ID)

	case EventTaskMove:
		var p movePayload
		if err := sonic.ConfigStd.Unmarshal(env.Data, &p); err != nil {
			e.sendError(s, "invalid payload")
			return
		}
		if !p.NewStatus.Valid() {
			e.sendError(s, "invalid status: "+string(p.NewStatus))
			return
		}
		if err := e.store.Move(p.TaskID, p.NewStatus); err != nil {
			e.sendError(s, "Task not found")
			return
		}
		e.hub.Broadcast(EventTaskMoved, p)
		e.logger.Infof("Task moved: %d to %s", p.TaskID, p.NewStatus)

	case EventTaskDelete:
		var id int
		if err := sonic.ConfigStd.Unmarshal(env.Data, &id); err != nil {
			e.sendError(s, "invalid payload")
			return
		}
		if err := e.store.Delete(id); err != nil {
			e.sendError(s, "Task not found")
			return
		}
		e.hub.Broadcast(EventTaskDeleted, id)
		e.logger.Infof("Task deleted: %d", id)

	default:
		e.sendError(s, "unknown event: "+env.Event)
	}
}

func (e *Engine) sendError(s *session, msg string) {
	e.sendTo(s, EventError, errorPayload{Message: msg})
}

func (e *Engine) sendTo(s *session, event string, payload any) {
	data, err := encode(event, payload)
	if err != nil {
		e.logger.Errorf("marshal %s: %v", event, err)
		return
	}
	if !s.send(data) {
		e.logger.Warnf("session %s outbound buffer full, dropping %s", s.id, event)
	}
}
