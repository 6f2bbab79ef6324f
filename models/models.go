package models

import (
	"time"
)

// 项目状态
const (
	ProjectStatusActive    = "active"
	ProjectStatusPlanning  = "planning"
	ProjectStatusPaused    = "paused"
	ProjectStatusCompleted = "completed"
	ProjectStatusCancelled = "cancelled"
)

// 任务优先级
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// 通知类型
const (
	NotificationSuccess = "success"
	NotificationError   = "error"
	NotificationWarning = "warning"
	NotificationInfo    = "info"
)

// Project 项目模型
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Template    string     `json:"template"`
	Columns     []Column   `json:"columns,omitempty"`
	Progress    int        `json:"progress"`
}

// Task 任务模型
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	ColumnID    string     `json:"columnId"`
	ProjectID   string     `json:"projectId"`
	Assignee    string     `json:"assignee,omitempty"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	Order       int        `json:"order"`     // 列内排序位置
	TimeSpent   int        `json:"timeSpent"` // 累计耗时（秒）
}

// Column 看板列模型，列集合当前是全局的而非按项目隔离
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// Notification 通知模型，默认5秒后自动清除
type Notification struct {
	ID         int64  `json:"id"` // 基于时间戳生成，单调递增
	Message    string `json:"message"`
	Type       string `json:"type"`
	AutoRemove bool   `json:"autoRemove"`
	Read       bool   `json:"read"`
}

// Settings 用户设置，本地持久化，LOGOUT时保留
type Settings struct {
	Theme         string `json:"theme" mapstructure:"theme"`
	Notifications bool   `json:"notifications" mapstructure:"notifications"`
	AutoSave      bool   `json:"autoSave" mapstructure:"autoSave"`
}

// AsPatch 把完整设置转换为整体覆盖的补丁
func (s Settings) AsPatch() SettingsPatch {
	theme := s.Theme
	notifications := s.Notifications
	autoSave := s.AutoSave
	return SettingsPatch{
		Theme:         &theme,
		Notifications: &notifications,
		AutoSave:      &autoSave,
	}
}

// SettingsPatch 设置的部分更新，nil字段表示不修改
type SettingsPatch struct {
	Theme         *string `json:"theme,omitempty"`
	Notifications *bool   `json:"notifications,omitempty"`
	AutoSave      *bool   `json:"autoSave,omitempty"`
}

// User 用户模型
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// DefaultColumns 返回默认看板列
func DefaultColumns() []Column {
	return []Column{
		{ID: "todo", Title: "待办", Color: "#6c757d"},
		{ID: "in-progress", Title: "进行中", Color: "#ffc107"},
		{ID: "review", Title: "待审核", Color: "#fd7e14"},
		{ID: "done", Title: "已完成", Color: "#198754"},
	}
}

// DefaultSettings 返回默认设置
func DefaultSettings() Settings {
	return Settings{
		Theme:         "light",
		Notifications: true,
		AutoSave:      true,
	}
}
