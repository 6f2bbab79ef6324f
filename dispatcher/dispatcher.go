package dispatcher

import (
	"sync"
	"time"

	"github.com/sandrogomez-dev/Task-Flow/config"
	"github.com/sandrogomez-dev/Task-Flow/models"
	"github.com/sandrogomez-dev/Task-Flow/store"
)

const defaultNotificationTTL = 5 * time.Second

// SettingsPersister 设置持久化接口
type SettingsPersister interface {
	Save(settings models.Settings) error
}

// TaskLoader 项目任务加载接口
type TaskLoader interface {
	LoadProjectTasks(projectID string) ([]models.Task, error)
}

// Dispatcher 唯一的变更入口。
// 本地用户操作和远端协作事件都经由这里写入Store，
// 通知、持久化等副作用也在这一层触发，reducer保持纯函数
type Dispatcher struct {
	store     *store.Store
	persister SettingsPersister
	loader    TaskLoader

	notificationTTL time.Duration

	mu     sync.Mutex
	lastID int64
}

// New 创建Dispatcher，persister和loader可以为nil（不触发对应副作用）
func New(s *store.Store, persister SettingsPersister, loader TaskLoader) *Dispatcher {
	return &Dispatcher{
		store:           s,
		persister:       persister,
		loader:          loader,
		notificationTTL: defaultNotificationTTL,
	}
}

// SetNotificationTTL 覆盖通知自动清除时间，测试用
func (d *Dispatcher) SetNotificationTTL(ttl time.Duration) {
	d.notificationTTL = ttl
}

// Dispatch 应用一个动作并触发相应副作用
func (d *Dispatcher) Dispatch(action models.Action) {
	d.store.Dispatch(action)

	// 设置变更后立即持久化
	if _, ok := action.(models.UpdateSettings); ok && d.persister != nil {
		if err := d.persister.Save(d.store.State().Settings); err != nil {
			config.Logger.Errorw("保存设置失败", "error", err)
		}
	}
}

// State 返回当前状态快照
func (d *Dispatcher) State() store.AppState {
	return d.store.State()
}

// nextNotificationID 生成基于时间戳的单调递增ID，
// 同一毫秒内的多条通知依次加一避免碰撞
func (d *Dispatcher) nextNotificationID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= d.lastID {
		id = d.lastID + 1
	}
	d.lastID = id
	return id
}

// ShowNotification 追加一条通知，autoRemove为true时到期自动清除
func (d *Dispatcher) ShowNotification(message, notificationType string, autoRemove bool) {
	n := models.Notification{
		ID:         d.nextNotificationID(),
		Message:    message,
		Type:       notificationType,
		AutoRemove: autoRemove,
	}
	d.Dispatch(models.AddNotification{Notification: n})

	if autoRemove {
		// 删除是幂等的，用户手动关闭后定时器触发也只是空操作
		time.AfterFunc(d.notificationTTL, func() {
			d.Dispatch(models.RemoveNotification{NotificationID: n.ID})
		})
	}
}

// AddNotification ShowNotification的别名，兼容旧调用方
func (d *Dispatcher) AddNotification(message, notificationType string, autoRemove bool) {
	d.ShowNotification(message, notificationType, autoRemove)
}

// SetLoading 设置加载状态
func (d *Dispatcher) SetLoading(loading bool) {
	d.Dispatch(models.SetLoading{Loading: loading})
}

// SetError 记录错误并弹出错误通知
func (d *Dispatcher) SetError(message string) {
	d.Dispatch(models.SetError{Error: message})

	if message != "" {
		d.ShowNotification(message, models.NotificationError, true)
	}
}

// ClearError 清除错误
func (d *Dispatcher) ClearError() {
	d.Dispatch(models.ClearError{})
}

// SetCurrentProject 切换当前项目。
// 新项目还没有任何已加载任务时，异步触发一次任务加载
func (d *Dispatcher) SetCurrentProject(project *models.Project) {
	d.Dispatch(models.SetCurrentProject{Project: project})

	if project == nil {
		return
	}

	loaded := false
	for _, t := range d.store.State().Tasks {
		if t.ProjectID == project.ID {
			loaded = true
			break
		}
	}
	if !loaded {
		go d.LoadProjectTasks(project.ID)
	}
}

// LoadProjectTasks 加载项目任务，失败时弹出错误通知
func (d *Dispatcher) LoadProjectTasks(projectID string) {
	if d.loader == nil {
		return
	}

	d.SetLoading(true)
	defer d.SetLoading(false)

	tasks, err := d.loader.LoadProjectTasks(projectID)
	if err != nil {
		config.Logger.Errorw("加载项目任务失败", "error", err, "projectId", projectID)
		d.SetError("加载项目任务失败")
		return
	}

	d.Dispatch(models.SetTasks{Tasks: tasks})
}

// AddProject 创建项目
func (d *Dispatcher) AddProject(project models.Project) {
	d.Dispatch(models.AddProject{Project: project})
	d.ShowNotification("项目创建成功", models.NotificationSuccess, true)
}

// UpdateProject 更新项目
func (d *Dispatcher) UpdateProject(project models.Project) {
	d.Dispatch(models.UpdateProject{Project: project})
	d.ShowNotification("项目更新成功", models.NotificationSuccess, true)
}

// DeleteProject 删除项目。任务不会被级联删除，
// 遗留任务仍可按projectId查询到
func (d *Dispatcher) DeleteProject(projectID string) {
	d.Dispatch(models.DeleteProject{ProjectID: projectID})
	d.ShowNotification("项目删除成功", models.NotificationSuccess, true)
}

// UpdateUser 更新用户资料
func (d *Dispatcher) UpdateUser(user *models.User) {
	d.Dispatch(models.SetUser{User: user})
	d.ShowNotification("个人资料更新成功", models.NotificationSuccess, true)
}
