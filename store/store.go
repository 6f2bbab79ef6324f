package store

import (
	"sync"

	"github.com/sandrogomez-dev/Task-Flow/models"
)

// AppState 应用全局状态
type AppState struct {
	User           *models.User
	Projects       []models.Project
	CurrentProject *models.Project
	Tasks          []models.Task
	Columns        []models.Column
	Loading        bool
	Error          string
	Notifications  []models.Notification
	Settings       models.Settings
}

// InitialState 返回初始状态
func InitialState() AppState {
	return AppState{
		Columns:  models.DefaultColumns(),
		Settings: models.DefaultSettings(),
	}
}

// Apply 纯函数reducer：对状态应用一个动作并返回新状态。
// 传入的状态不会被修改，集合都是写时复制；
// 无法识别的动作原样返回，永远不会panic
func Apply(state AppState, action models.Action) AppState {
	switch a := action.(type) {
	case models.SetLoading:
		state.Loading = a.Loading
		return state

	case models.SetError:
		state.Error = a.Error
		state.Loading = false
		return state

	case models.ClearError:
		state.Error = ""
		return state

	case models.SetUser:
		state.User = a.User
		return state

	case models.Logout:
		// 除设置外全部重置
		next := InitialState()
		next.Settings = state.Settings
		return next

	case models.SetProjects:
		state.Projects = a.Projects
		return state

	case models.AddProject:
		state.Projects = appendProject(state.Projects, a.Project)
		return state

	case models.UpdateProject:
		projects := make([]models.Project, len(state.Projects))
		for i, p := range state.Projects {
			if p.ID == a.Project.ID {
				projects[i] = a.Project
			} else {
				projects[i] = p
			}
		}
		state.Projects = projects
		// 当前项目被更新时同步刷新指针
		if state.CurrentProject != nil && state.CurrentProject.ID == a.Project.ID {
			updated := a.Project
			state.CurrentProject = &updated
		}
		return state

	case models.DeleteProject:
		projects := make([]models.Project, 0, len(state.Projects))
		for _, p := range state.Projects {
			if p.ID != a.ProjectID {
				projects = append(projects, p)
			}
		}
		state.Projects = projects
		if state.CurrentProject != nil && state.CurrentProject.ID == a.ProjectID {
			state.CurrentProject = nil
		}
		return state

	case models.SetCurrentProject:
		state.CurrentProject = a.Project
		return state

	case models.SetTasks:
		state.Tasks = a.Tasks
		return state

	case models.AddTask:
		state.Tasks = appendTask(state.Tasks, a.Task)
		return state

	case models.UpdateTask:
		tasks := make([]models.Task, len(state.Tasks))
		for i, t := range state.Tasks {
			if t.ID == a.Task.ID {
				tasks[i] = a.Task
			} else {
				tasks[i] = t
			}
		}
		state.Tasks = tasks
		return state

	case models.DeleteTask:
		tasks := make([]models.Task, 0, len(state.Tasks))
		for _, t := range state.Tasks {
			if t.ID != a.TaskID {
				tasks = append(tasks, t)
			}
		}
		state.Tasks = tasks
		return state

	case models.MoveTask:
		tasks := make([]models.Task, len(state.Tasks))
		for i, t := range state.Tasks {
			if t.ID == a.TaskID {
				t.ColumnID = a.ToColumnID
				t.Order = a.NewIndex
			}
			tasks[i] = t
		}
		state.Tasks = tasks
		return state

	case models.SetColumns:
		state.Columns = a.Columns
		return state

	case models.AddColumn:
		columns := make([]models.Column, 0, len(state.Columns)+1)
		columns = append(columns, state.Columns...)
		columns = append(columns, a.Column)
		state.Columns = columns
		return state

	case models.UpdateColumn:
		columns := make([]models.Column, len(state.Columns))
		for i, c := range state.Columns {
			if c.ID == a.Column.ID {
				columns[i] = a.Column
			} else {
				columns[i] = c
			}
		}
		state.Columns = columns
		return state

	case models.DeleteColumn:
		columns := make([]models.Column, 0, len(state.Columns))
		for _, c := range state.Columns {
			if c.ID != a.ColumnID {
				columns = append(columns, c)
			}
		}
		state.Columns = columns
		return state

	case models.AddNotification:
		notifications := make([]models.Notification, 0, len(state.Notifications)+1)
		notifications = append(notifications, state.Notifications...)
		notifications = append(notifications, a.Notification)
		state.Notifications = notifications
		return state

	case models.RemoveNotification:
		notifications := make([]models.Notification, 0, len(state.Notifications))
		for _, n := range state.Notifications {
			if n.ID != a.NotificationID {
				notifications = append(notifications, n)
			}
		}
		state.Notifications = notifications
		return state

	case models.UpdateSettings:
		settings := state.Settings
		if a.Settings.Theme != nil {
			settings.Theme = *a.Settings.Theme
		}
		if a.Settings.Notifications != nil {
			settings.Notifications = *a.Settings.Notifications
		}
		if a.Settings.AutoSave != nil {
			settings.AutoSave = *a.Settings.AutoSave
		}
		state.Settings = settings
		return state

	default:
		return state
	}
}

func appendProject(projects []models.Project, p models.Project) []models.Project {
	next := make([]models.Project, 0, len(projects)+1)
	next = append(next, projects...)
	return append(next, p)
}

func appendTask(tasks []models.Task, t models.Task) []models.Task {
	next := make([]models.Task, 0, len(tasks)+1)
	next = append(next, tasks...)
	return append(next, t)
}

// Store 持有状态的可注入实例。
// 本地操作和网络回调都经由Dispatch串行写入，保证单一变更路径
type Store struct {
	mu    sync.Mutex
	state AppState
}

// New 创建带初始状态的Store
func New() *Store {
	return &Store{state: InitialState()}
}

// Dispatch 应用一个动作
func (s *Store) Dispatch(action models.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Apply(s.state, action)
}

// State 返回当前状态快照
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
