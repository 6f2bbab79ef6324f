package models

// Action 状态变更动作的闭合集合，
// reducer通过类型分发处理，集合外的值原样返回不报错
type Action interface {
	isAction()
}

// SetLoading 设置加载状态
type SetLoading struct {
	Loading bool
}

// SetError 记录错误信息，同时结束加载状态
type SetError struct {
	Error string
}

// ClearError 清除错误信息
type ClearError struct{}

// SetUser 设置当前用户
type SetUser struct {
	User *User
}

// Logout 重置全部状态，设置除外
type Logout struct{}

// SetProjects 整体替换项目集合
type SetProjects struct {
	Projects []Project
}

// AddProject 追加项目，不做重复ID检查
type AddProject struct {
	Project Project
}

// UpdateProject 按ID整体替换项目，找不到时静默跳过
type UpdateProject struct {
	Project Project
}

// DeleteProject 按ID删除项目，不级联删除其任务
type DeleteProject struct {
	ProjectID string
}

// SetCurrentProject 切换当前项目，nil表示无当前项目
type SetCurrentProject struct {
	Project *Project
}

// SetTasks 整体替换任务集合
type SetTasks struct {
	Tasks []Task
}

// AddTask 追加任务，不做重复ID检查
type AddTask struct {
	Task Task
}

// UpdateTask 按ID整体替换任务，找不到时静默跳过
type UpdateTask struct {
	Task Task
}

// DeleteTask 按ID删除任务，重复删除是安全的空操作
type DeleteTask struct {
	TaskID string
}

// MoveTask 移动任务到目标列的指定位置，
// 只修改目标任务的columnId和order，不重排其他任务
type MoveTask struct {
	TaskID       string
	FromColumnID string
	ToColumnID   string
	NewIndex     int
}

// SetColumns 整体替换列集合
type SetColumns struct {
	Columns []Column
}

// AddColumn 追加列
type AddColumn struct {
	Column Column
}

// UpdateColumn 按ID整体替换列
type UpdateColumn struct {
	Column Column
}

// DeleteColumn 按ID删除列，引用该列的任务保持原样
type DeleteColumn struct {
	ColumnID string
}

// AddNotification 追加通知
type AddNotification struct {
	Notification Notification
}

// RemoveNotification 按ID删除通知，重复删除是空操作
type RemoveNotification struct {
	NotificationID int64
}

// UpdateSettings 合并设置补丁
type UpdateSettings struct {
	Settings SettingsPatch
}

func (SetLoading) isAction()         {}
func (SetError) isAction()           {}
func (ClearError) isAction()         {}
func (SetUser) isAction()            {}
func (Logout) isAction()             {}
func (SetProjects) isAction()        {}
func (AddProject) isAction()         {}
func (UpdateProject) isAction()      {}
func (DeleteProject) isAction()      {}
func (SetCurrentProject) isAction()  {}
func (SetTasks) isAction()           {}
func (AddTask) isAction()            {}
func (UpdateTask) isAction()         {}
func (DeleteTask) isAction()         {}
func (MoveTask) isAction()           {}
func (SetColumns) isAction()         {}
func (AddColumn) isAction()          {}
func (UpdateColumn) isAction()       {}
func (DeleteColumn) isAction()       {}
func (AddNotification) isAction()    {}
func (RemoveNotification) isAction() {}
func (UpdateSettings) isAction()     {}
