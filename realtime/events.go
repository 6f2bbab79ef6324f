package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sandrogomez-dev/Task-Flow/config"
	"github.com/sandrogomez-dev/Task-Flow/models"
)

const publishTimeout = 5 * time.Second

// handleEvent 处理远端事件，转换为与本地操作完全相同的动作写入Store。
// 带操作者标识的事件在操作者是本地用户时不弹出提示，
// 避免同一用户的多个窗口互相打扰
func (c *Client) handleEvent(event models.Event) {
	// 纯pub/sub通道会把自己发布的事件原样送回，直接丢弃
	if event.ClientID == c.clientID {
		return
	}

	localUserID := c.currentUserID()

	switch models.NormalizeEventType(event.Type) {
	case models.EventJoinProject:
		var p models.JoinProjectPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.addOnlineUser(p.User)
		if p.User.ID != localUserID {
			c.dispatcher.ShowNotification(fmt.Sprintf("%s 加入了项目", displayName(p.User)), models.NotificationInfo, true)
		}

	case models.EventUsersOnline:
		var users []models.User
		if err := json.Unmarshal(event.Payload, &users); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.setOnlineUsers(users)

	case models.EventUserJoined:
		var user models.User
		if err := json.Unmarshal(event.Payload, &user); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.addOnlineUser(user)
		if user.ID != localUserID {
			c.dispatcher.ShowNotification(fmt.Sprintf("%s 加入了项目", displayName(user)), models.NotificationInfo, true)
		}

	case models.EventUserLeft:
		var p models.UserLeftPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.removeOnlineUser(p.UserID)

	case models.EventTaskCreated:
		var p models.TaskPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.AddTask{Task: p.Task})
		if p.CreatedBy != localUserID {
			c.dispatcher.ShowNotification(fmt.Sprintf("新任务: %s", p.Title), models.NotificationInfo, true)
		}

	case models.EventTaskUpdated:
		var p models.TaskPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.UpdateTask{Task: p.Task})

	case models.EventTaskDeleted:
		var p models.DeleteTaskPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.DeleteTask{TaskID: p.TaskID})
		if p.DeletedBy != localUserID {
			c.dispatcher.ShowNotification("任务已删除", models.NotificationInfo, true)
		}

	case models.EventTaskMoved:
		var p models.MoveTaskPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.MoveTask{
			TaskID:       p.TaskID,
			FromColumnID: p.FromColumnID,
			ToColumnID:   p.ToColumnID,
			NewIndex:     p.NewIndex,
		})
		if p.MovedBy != "" && p.MovedBy != localUserID {
			c.dispatcher.ShowNotification(fmt.Sprintf("%s 移动了一个任务", p.MovedBy), models.NotificationInfo, true)
		}

	case models.EventColumnCreated:
		var p models.ColumnPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.AddColumn{Column: p.Column})
		if p.CreatedBy != localUserID {
			c.dispatcher.ShowNotification(fmt.Sprintf("新列: %s", p.Title), models.NotificationInfo, true)
		}

	case models.EventColumnUpdated:
		var p models.ColumnPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.UpdateColumn{Column: p.Column})

	case models.EventColumnDeleted:
		var p models.DeleteColumnPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.DeleteColumn{ColumnID: p.ColumnID})
		if p.DeletedBy != localUserID {
			c.dispatcher.ShowNotification("列已删除", models.NotificationWarning, true)
		}

	case models.EventProjectUpdated:
		var p models.ProjectPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.Dispatch(models.UpdateProject{Project: p.Project})

	case models.EventNotification:
		var p models.NotificationPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		c.dispatcher.ShowNotification(p.Message, p.Type, true)

	case models.EventUserTyping:
		var p models.TypingPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil {
			c.logBadPayload(event, err)
			return
		}
		if c.OnTyping != nil {
			c.OnTyping(p.UserID, p.TaskID, p.IsTyping)
		}

	case models.EventJoinTask, models.EventLeaveTask:
		// 任务级在场状态暂不入库，仅记录
		config.Logger.Debugw("任务在场事件", "type", event.Type)

	default:
		config.Logger.Debugw("忽略未知协作事件", "type", event.Type)
	}
}

func (c *Client) logBadPayload(event models.Event, err error) {
	config.Logger.Warnw("协作事件负载格式错误", "type", event.Type, "error", err)
}

func displayName(user models.User) string {
	if user.Name != "" {
		return user.Name
	}
	return user.ID
}

// publish 仅在已连接状态下发布事件，未连接时静默丢弃（不排队）
func (c *Client) publish(eventType string, payload interface{}) {
	c.mu.Lock()
	connected := c.state == StateConnected
	projectID := c.projectID
	c.mu.Unlock()

	if !connected {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		config.Logger.Errorw("序列化协作事件失败", "error", err, "type", eventType)
		return
	}

	event := models.Event{
		Type:      eventType,
		ClientID:  c.clientID,
		ProjectID: projectID,
		Payload:   data,
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := c.transport.Publish(ctx, event); err != nil {
		config.Logger.Warnw("发布协作事件失败", "error", err, "type", eventType)
	}
}

// EmitTaskCreate 广播任务创建
func (c *Client) EmitTaskCreate(task models.Task) {
	c.publish(models.EventCreateTask, models.TaskPayload{Task: task, CreatedBy: c.currentUserID()})
}

// EmitTaskUpdate 广播任务更新
func (c *Client) EmitTaskUpdate(task models.Task) {
	c.publish(models.EventUpdateTask, models.TaskPayload{Task: task, UpdatedBy: c.currentUserID()})
}

// EmitTaskDelete 广播任务删除
func (c *Client) EmitTaskDelete(taskID string) {
	c.publish(models.EventDeleteTask, models.DeleteTaskPayload{TaskID: taskID, DeletedBy: c.currentUserID()})
}

// EmitTaskMove 广播任务移动
func (c *Client) EmitTaskMove(taskID, fromColumnID, toColumnID string, newIndex int) {
	c.publish(models.EventMoveTask, models.MoveTaskPayload{
		TaskID:       taskID,
		FromColumnID: fromColumnID,
		ToColumnID:   toColumnID,
		NewIndex:     newIndex,
		MovedBy:      c.currentUserID(),
	})
}

// EmitColumnCreate 广播列创建
func (c *Client) EmitColumnCreate(column models.Column) {
	c.publish(models.EventCreateColumn, models.ColumnPayload{Column: column, CreatedBy: c.currentUserID()})
}

// EmitColumnUpdate 广播列更新
func (c *Client) EmitColumnUpdate(column models.Column) {
	c.publish(models.EventUpdateColumn, models.ColumnPayload{Column: column, UpdatedBy: c.currentUserID()})
}

// EmitColumnDelete 广播列删除
func (c *Client) EmitColumnDelete(columnID string) {
	c.publish(models.EventDeleteColumn, models.DeleteColumnPayload{ColumnID: columnID, DeletedBy: c.currentUserID()})
}

// EmitProjectUpdate 广播项目更新
func (c *Client) EmitProjectUpdate(project models.Project) {
	c.publish(models.EventUpdateProject, models.ProjectPayload{Project: project, UpdatedBy: c.currentUserID()})
}

// EmitTyping 广播输入状态
func (c *Client) EmitTyping(taskID string, isTyping bool) {
	c.publish(models.EventTyping, models.TypingPayload{TaskID: taskID, IsTyping: isTyping, UserID: c.currentUserID()})
}

// EmitJoinTask 广播进入任务
func (c *Client) EmitJoinTask(taskID string) {
	c.publish(models.EventJoinTask, models.TaskPresencePayload{TaskID: taskID, UserID: c.currentUserID()})
}

// EmitLeaveTask 广播离开任务
func (c *Client) EmitLeaveTask(taskID string) {
	c.publish(models.EventLeaveTask, models.TaskPresencePayload{TaskID: taskID, UserID: c.currentUserID()})
}
