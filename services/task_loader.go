package services

import (
	"time"

	"github.com/sandrogomez-dev/Task-Flow/models"
	"github.com/sandrogomez-dev/Task-Flow/utils"
)

// TaskLoader 项目任务加载接口。
// 后端就绪之前由内置示例数据实现，接入真实API时替换这里即可
type TaskLoader interface {
	LoadProjectTasks(projectID string) ([]models.Task, error)
}

// SampleTaskLoader 返回内置示例任务，模拟从API加载
type SampleTaskLoader struct{}

// LoadProjectTasks 加载项目任务
func (l *SampleTaskLoader) LoadProjectTasks(projectID string) ([]models.Task, error) {
	due1 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	due3 := time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{
			ID:          "task-1",
			Title:       "搭建项目结构",
			Description: "完成项目的初始目录与基础配置",
			ColumnID:    "done",
			ProjectID:   projectID,
			Assignee:    "John Doe",
			Priority:    models.PriorityMedium,
			DueDate:     &due1,
			Tags:        []string{"setup", "初始化"},
			CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Order:       0,
			TimeSpent:   7200, // 2小时
		},
		{
			ID:          "task-2",
			Title:       "实现看板视图",
			Description: "实现支持拖拽的看板组件",
			ColumnID:    "in-progress",
			ProjectID:   projectID,
			Assignee:    "Jane Smith",
			Priority:    models.PriorityHigh,
			DueDate:     &due2,
			Tags:        []string{"开发", "kanban"},
			CreatedAt:   time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Order:       0,
			TimeSpent:   14400, // 4小时
		},
		{
			ID:          "task-3",
			Title:       "设计甘特图",
			Description: "设计可交互的甘特图组件",
			ColumnID:    "todo",
			ProjectID:   projectID,
			Assignee:    "Bob Johnson",
			Priority:    models.PriorityMedium,
			DueDate:     &due3,
			Tags:        []string{"设计", "gantt"},
			CreatedAt:   time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			Order:       0,
			TimeSpent:   0,
		},
	}
	return tasks, nil
}

// SeedDemoProject 生成演示项目，首次启动时自动创建
func SeedDemoProject() models.Project {
	now := time.Now()
	return models.Project{
		ID:          utils.GenerateID(),
		Name:        "演示项目",
		Description: "用于演示实时协作的示例项目",
		Status:      models.ProjectStatusActive,
		CreatedAt:   now,
		Template:    "kanban",
		Progress:    0,
	}
}
