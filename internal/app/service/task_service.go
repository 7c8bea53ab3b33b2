package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

type TaskService struct {
	taskRepository   ports.TaskRepository
	statisticsReader ports.TaskStatisticsReader
	now              func() time.Time
}

func NewTaskService(taskRepository ports.TaskRepository, statisticsReader ports.TaskStatisticsReader, now func() time.Time) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		taskRepository:   taskRepository,
		statisticsReader: statisticsReader,
		now:              now,
	}
}

func (s *TaskService) clock() time.Time {
	return s.now().UTC()
}

func (s *TaskService) ListTasks(ctx context.Context, ownerID uint64, filters domain.TaskFilters) (domain.TaskPage, error) {
	query := domain.NewTaskQuery(filters)
	if len(query.Normalized) > 0 {
		zap.L().Debug("task listing parameters normalized",
			zap.Uint64("owner_id", ownerID),
			zap.Strings("params", query.Normalized),
		)
	}
	return s.taskRepository.List(ctx, ownerID, query, s.clock())
}

func (s *TaskService) GetTask(ctx context.Context, ownerID, taskID uint64) (domain.Task, error) {
	return s.ownedTask(ctx, ownerID, taskID)
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	return s.taskRepository.Create(ctx, ownerID, input)
}

func (s *TaskService) UpdateTask(ctx context.Context, ownerID, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.ownedTask(ctx, ownerID, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if input.Empty() {
		return task, nil
	}
	return s.taskRepository.Update(ctx, taskID, input)
}

func (s *TaskService) DeleteTask(ctx context.Context, ownerID, taskID uint64) error {
	if _, err := s.ownedTask(ctx, ownerID, taskID); err != nil {
		return err
	}
	return s.taskRepository.Delete(ctx, taskID)
}

func (s *TaskService) Statistics(ctx context.Context, ownerID uint64) (domain.TaskStatistics, error) {
	return s.statisticsReader.Statistics(ctx, ownerID, s.clock())
}

// ownedTask loads a task and rejects access by anyone but its owner. A missing
// task and a foreign task stay distinguishable.
func (s *TaskService) ownedTask(ctx context.Context, ownerID, taskID uint64) (domain.Task, error) {
	task, err := s.taskRepository.FindByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	if task.OwnerID != ownerID {
		return domain.Task{}, fmt.Errorf("task %d: %w", taskID, domain.ErrForbidden)
	}
	return task, nil
}

var _ ports.TaskService = (*TaskService)(nil)
