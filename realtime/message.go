package realtime

import (
	"github.com/bytedance/sonic"

	"github.com/gtushar8055/WebSocket-Based-Kanban-Board/domain"
)

// Wire event names. Intents arrive from clients, facts are sent by the server.
const (
	EventSyncTasks   = "sync:tasks"
	EventTaskCreate  = "task:create"
	EventTaskCreated = "task:created"
	EventTaskUpdate  = "task:update"
	EventTaskUpdated = "task:updated"
	EventTaskMove    = "task:move"
	EventTaskMoved   = "task:moved"
	EventTaskDelete  = "task:delete"
	EventTaskDeleted = "task:deleted"
	EventError       = "error"
)

// Envelope frames every message in both directions.
type Envelope struct {
	Event string                 `json:"event"`
	Data  sonic.NoCopyRawMessage `json:"data,omitempty"`
}

// movePayload is both the task:move intent and the task:moved fact.
type movePayload struct {
	TaskID    int           `json:"taskId"`
	NewStatus domain.Status `json:"newStatus"`
}

// updatePayload is the task:update intent: the target id plus the partial
// fields to merge.
type updatePayload struct {
	ID int `json:"id"`
	domain.TaskPatch
}

type errorPayload struct {
	Message string `json:"message"`
}

func encode(event string, payload any) ([]byte, error) {
	data, err := sonic.ConfigStd.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return sonic.ConfigStd.Marshal(Envelope{Event: event, Data: data})
}
