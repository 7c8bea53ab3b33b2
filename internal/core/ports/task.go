package ports

import (
	"context"
	"time"

	"taskboard/internal/core/domain"
)

type TaskRepository interface {
	List(ctx context.Context, ownerID uint64, query domain.TaskQuery, now time.Time) (domain.TaskPage, error)
	FindByID(ctx context.Context, taskID uint64) (domain.Task, error)
	Create(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error)
	Update(ctx context.Context, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	Delete(ctx context.Context, taskID uint64) error
}

type TaskStatisticsReader interface {
	Statistics(ctx context.Context, ownerID uint64, now time.Time) (domain.TaskStatistics, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, ownerID uint64, filters domain.TaskFilters) (domain.TaskPage, error)
	GetTask(ctx context.Context, ownerID, taskID uint64) (domain.Task, error)
	CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, ownerID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, ownerID, taskID uint64) error
	Statistics(ctx context.Context, ownerID uint64) (domain.TaskStatistics, error)
}
