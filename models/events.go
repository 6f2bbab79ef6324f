package models

import "encoding/json"

// 客户端发出的事件类型
const (
	EventJoinProject   = "join-project"
	EventCreateTask    = "create-task"
	EventUpdateTask    = "update-task"
	EventDeleteTask    = "delete-task"
	EventMoveTask      = "move-task"
	EventCreateColumn  = "create-column"
	EventUpdateColumn  = "update-column"
	EventDeleteColumn  = "delete-column"
	EventUpdateProject = "update-project"
	EventTyping        = "typing"
	EventJoinTask      = "join-task"
	EventLeaveTask     = "leave-task"
)

// 广播形式的事件类型
const (
	EventUsersOnline    = "users-online"
	EventUserJoined     = "user-joined"
	EventUserLeft       = "user-left"
	EventTaskCreated    = "task-created"
	EventTaskUpdated    = "task-updated"
	EventTaskDeleted    = "task-deleted"
	EventTaskMoved      = "task-moved"
	EventColumnCreated  = "column-created"
	EventColumnUpdated  = "column-updated"
	EventColumnDeleted  = "column-deleted"
	EventProjectUpdated = "project-updated"
	EventNotification   = "notification"
	EventUserTyping     = "user-typing"
)

// Event 协作通道上的事件信封
type Event struct {
	Type      string          `json:"type"`
	ClientID  string          `json:"clientId"`
	ProjectID string          `json:"projectId"`
	Payload   json.RawMessage `json:"payload"`
}

// NormalizeEventType 把动词形式的事件类型转换为广播形式。
// 纯pub/sub通道没有中转服务器改写事件名，
// 对端会直接收到动词形式，统一转换后再处理
func NormalizeEventType(t string) string {
	switch t {
	case EventCreateTask:
		return EventTaskCreated
	case EventUpdateTask:
		return EventTaskUpdated
	case EventDeleteTask:
		return EventTaskDeleted
	case EventMoveTask:
		return EventTaskMoved
	case EventCreateColumn:
		return EventColumnCreated
	case EventUpdateColumn:
		return EventColumnUpdated
	case EventDeleteColumn:
		return EventColumnDeleted
	case EventUpdateProject:
		return EventProjectUpdated
	case EventTyping:
		return EventUserTyping
	default:
		return t
	}
}

// JoinProjectPayload 加入项目事件负载
type JoinProjectPayload struct {
	ProjectID string `json:"projectId"`
	User      User   `json:"user"`
}

// TaskPayload 任务创建/更新事件负载，附带操作者标识
type TaskPayload struct {
	Task
	CreatedBy string `json:"createdBy,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty"`
}

// DeleteTaskPayload 任务删除事件负载
type DeleteTaskPayload struct {
	TaskID    string `json:"taskId"`
	DeletedBy string `json:"deletedBy,omitempty"`
}

// MoveTaskPayload 任务移动事件负载
type MoveTaskPayload struct {
	TaskID       string `json:"taskId"`
	FromColumnID string `json:"fromColumnId"`
	ToColumnID   string `json:"toColumnId"`
	NewIndex     int    `json:"newIndex"`
	MovedBy      string `json:"movedBy,omitempty"`
}

// ColumnPayload 列创建/更新事件负载
type ColumnPayload struct {
	Column
	CreatedBy string `json:"createdBy,omitempty"`
	UpdatedBy string `json:"updatedBy,omitempty"`
}

// DeleteColumnPayload 列删除事件负载
type DeleteColumnPayload struct {
	ColumnID  string `json:"columnId"`
	DeletedBy string `json:"deletedBy,omitempty"`
}

// ProjectPayload 项目更新事件负载
type ProjectPayload struct {
	Project
	UpdatedBy string `json:"updatedBy,omitempty"`
}

// TypingPayload 输入状态事件负载
type TypingPayload struct {
	TaskID   string `json:"taskId"`
	IsTyping bool   `json:"isTyping"`
	UserID   string `json:"userId"`
}

// TaskPresencePayload 进入/离开任务事件负载
type TaskPresencePayload struct {
	TaskID string `json:"taskId"`
	UserID string `json:"userId"`
}

// UserLeftPayload 用户离开事件负载
type UserLeftPayload struct {
	UserID string `json:"userId"`
}

// NotificationPayload 服务端推送的通知负载
type NotificationPayload struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
