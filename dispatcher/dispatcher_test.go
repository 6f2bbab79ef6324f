package dispatcher_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrogomez-dev/Task-Flow/dispatcher"
	"github.com/sandrogomez-dev/Task-Flow/models"
	"github.com/sandrogomez-dev/Task-Flow/storage"
	"github.com/sandrogomez-dev/Task-Flow/store"
)

type fakePersister struct {
	mu    sync.Mutex
	saved []models.Settings
	err   error
}

func (p *fakePersister) Save(settings models.Settings) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, settings)
	return p.err
}

func (p *fakePersister) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saved)
}

type fakeLoader struct {
	tasks []models.Task
	err   error
}

func (l *fakeLoader) LoadProjectTasks(projectID string) ([]models.Task, error) {
	if l.err != nil {
		return nil, l.err
	}
	tasks := make([]models.Task, len(l.tasks))
	copy(tasks, l.tasks)
	for i := range tasks {
		tasks[i].ProjectID = projectID
	}
	return tasks, nil
}

func TestNotificationAutoExpiry(t *testing.T) {
	d := dispatcher.New(store.New(), nil, nil)
	d.SetNotificationTTL(30 * time.Millisecond)

	d.ShowNotification("保存成功", models.NotificationSuccess, true)

	state := d.State()
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, "保存成功", state.Notifications[0].Message)

	assert.Eventually(t, func() bool {
		return len(d.State().Notifications) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestNotificationWithoutAutoRemoveSurvives(t *testing.T) {
	d := dispatcher.New(store.New(), nil, nil)
	d.SetNotificationTTL(10 * time.Millisecond)

	d.ShowNotification("需要手动关闭", models.NotificationWarning, false)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, d.State().Notifications, 1)
}

func TestManualRemoveBeforeExpiryIsSafe(t *testing.T) {
	d := dispatcher.New(store.New(), nil, nil)
	d.SetNotificationTTL(30 * time.Millisecond)

	d.ShowNotification("稍后自动清除", models.NotificationInfo, true)
	state := d.State()
	require.Len(t, state.Notifications, 1)

	// 手动关闭后定时器触发只是幂等的空操作
	d.Dispatch(models.RemoveNotification{NotificationID: state.Notifications[0].ID})
	assert.Empty(t, d.State().Notifications)

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, d.State().Notifications)
}

func TestNotificationIDsAreMonotonic(t *testing.T) {
	d := dispatcher.New(store.New(), nil, nil)
	d.SetNotificationTTL(time.Minute)

	for i := 0; i < 10; i++ {
		d.ShowNotification("通知", models.NotificationInfo, true)
	}

	notifications := d.State().Notifications
	require.Len(t, notifications, 10)
	for i := 1; i < len(notifications); i++ {
		assert.Greater(t, notifications[i].ID, notifications[i-1].ID)
	}
}

func TestSetCurrentProjectLoadsTasksOnce(t *testing.T) {
	loader := &fakeLoader{tasks: []models.Task{
		{ID: "t1", Title: "任务一", ColumnID: "todo"},
		{ID: "t2", Title: "任务二", ColumnID: "done"},
	}}
	d := dispatcher.New(store.New(), nil, loader)

	project := models.Project{ID: "p1", Name: "示例项目"}
	d.SetCurrentProject(&project)

	require.Eventually(t, func() bool {
		return len(d.State().Tasks) == 2
	}, time.Second, 5*time.Millisecond)

	state := d.State()
	assert.False(t, state.Loading)
	for _, task := range state.Tasks {
		assert.Equal(t, "p1", task.ProjectID)
	}
}

func TestSetCurrentProjectNilSkipsLoading(t *testing.T) {
	d := dispatcher.New(store.New(), nil, &fakeLoader{tasks: []models.Task{{ID: "t1"}}})

	d.SetCurrentProject(nil)

	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, d.State().CurrentProject)
	assert.Empty(t, d.State().Tasks)
}

func TestLoadProjectTasksFailureSetsError(t *testing.T) {
	d := dispatcher.New(store.New(), nil, &fakeLoader{err: errors.New("接口超时")})
	d.SetNotificationTTL(time.Minute)

	d.LoadProjectTasks("p1")

	state := d.State()
	assert.Equal(t, "加载项目任务失败", state.Error)
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, models.NotificationError, state.Notifications[0].Type)
}

func TestSetErrorAddsErrorNotification(t *testing.T) {
	d := dispatcher.New(store.New(), nil, nil)
	d.SetNotificationTTL(time.Minute)

	d.SetError("出错了")

	state := d.State()
	assert.Equal(t, "出错了", state.Error)
	assert.False(t, state.Loading)
	require.Len(t, state.Notifications, 1)
	assert.Equal(t, models.NotificationError, state.Notifications[0].Type)

	d.ClearError()
	assert.Empty(t, d.State().Error)
}

func TestUpdateSettingsTriggersPersistence(t *testing.T) {
	persister := &fakePersister{}
	d := dispatcher.New(store.New(), persister, nil)

	theme := "dark"
	d.Dispatch(models.UpdateSettings{Settings: models.SettingsPatch{Theme: &theme}})

	require.Equal(t, 1, persister.count())
	assert.Equal(t, "dark", persister.saved[0].Theme)

	// 其他动作不触发持久化
	d.Dispatch(models.SetLoading{Loading: true})
	assert.Equal(t, 1, persister.count())
}

func TestSettingsRoundTripThroughStorage(t *testing.T) {
	dir := t.TempDir()
	d := dispatcher.New(store.New(), storage.NewSettingsStorage(dir), nil)

	theme := "dark"
	d.Dispatch(models.UpdateSettings{Settings: models.SettingsPatch{Theme: &theme}})

	// 重新从磁盘读取，模拟进程重启
	loaded, err := storage.NewSettingsStorage(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", loaded.Theme)
}

func TestProjectOperationsNotify(t *testing.T) {
	d := dispatcher.New(store.New(), nil, nil)
	d.SetNotificationTTL(time.Minute)

	project := models.Project{ID: "p1", Name: "示例项目"}
	d.AddProject(project)
	d.UpdateProject(models.Project{ID: "p1", Name: "改名"})
	d.DeleteProject("p1")

	state := d.State()
	assert.Empty(t, state.Projects)
	require.Len(t, state.Notifications, 3)
	for _, n := range state.Notifications {
		assert.Equal(t, models.NotificationSuccess, n.Type)
	}
}
