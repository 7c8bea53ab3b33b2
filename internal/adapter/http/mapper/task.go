package mapper

import (
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task, now time.Time) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task, now))
	}
	return items
}

// ToTaskItem renders a task for the wire; now decides is_overdue.
func ToTaskItem(task domain.Task, now time.Time) dto.TaskItem {
	item := dto.TaskItem{
		ID:        task.ID,
		Title:     task.Title,
		Status:    string(task.Status),
		Priority:  task.Priority.String(),
		IsOverdue: task.IsOverdue(now),
		CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(domain.DateLayout)
		item.DueDate = &value
	}

	if task.Owner != nil {
		item.User = &dto.TaskOwner{
			ID:   task.Owner.ID,
			Name: task.Owner.Name,
		}
	}

	return item
}

func ToTaskListResponse(page domain.TaskPage, now time.Time) dto.TaskListResponse {
	return dto.TaskListResponse{
		Data: ToTaskItems(page.Tasks, now),
		Meta: dto.PageMeta{
			CurrentPage: page.CurrentPage,
			LastPage:    page.LastPage,
			PerPage:     page.PerPage,
			Total:       page.Total,
		},
	}
}

func ToTaskStatistics(stats domain.TaskStatistics) dto.TaskStatistics {
	return dto.TaskStatistics{
		Total:      stats.Total,
		Pending:    stats.Pending,
		InProgress: stats.InProgress,
		Completed:  stats.Completed,
		Overdue:    stats.Overdue,
	}
}
