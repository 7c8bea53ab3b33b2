package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// likeEscape is portable across MySQL and SQLite, unlike a backslash.
const likeEscape = "!"

const relevanceOrder = `CASE
  WHEN LOWER(title) LIKE ? ESCAPE '!' THEN 1
  WHEN LOWER(description) LIKE ? ESCAPE '!' THEN 2
  ELSE 3
END ASC`

type TaskRepository struct {
	db *gorm.DB
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) List(ctx context.Context, ownerID uint64, query domain.TaskQuery, now time.Time) (domain.TaskPage, error) {
	var total int64
	if err := r.filtered(ctx, ownerID, query, now).Count(&total).Error; err != nil {
		return domain.TaskPage{}, fmt.Errorf("count tasks: %w", err)
	}

	var rows []taskModel
	err := r.filtered(ctx, ownerID, query, now).
		Clauses(orderClause(query)).
		Preload("User").
		Limit(query.PerPage).
		Offset(query.Offset()).
		Find(&rows).Error
	if err != nil {
		return domain.TaskPage{}, fmt.Errorf("list tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskModelToDomainTask(row))
	}

	return domain.NewTaskPage(tasks, query, total), nil
}

// filtered scopes to the owner first; soft-deleted rows are excluded by gorm.
// A due date is overdue once its midnight is before now.
func (r *TaskRepository) filtered(ctx context.Context, ownerID uint64, query domain.TaskQuery, now time.Time) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&taskModel{}).Where("user_id = ?", ownerID)

	if query.Status != nil {
		tx = tx.Where("status = ?", string(*query.Status))
	}

	if query.DueDate != nil {
		day := domain.DateOf(*query.DueDate)
		tx = tx.Where("due_date >= ? AND due_date < ?", day, day.AddDate(0, 0, 1))
	}

	if query.Overdue {
		tx = tx.Where("due_date IS NOT NULL AND due_date < ? AND status <> ?",
			now.UTC(), string(domain.TaskStatusCompleted))
	}

	if query.Priority != nil {
		if query.Priority.Known {
			tx = tx.Where("priority = ?", int(query.Priority.Value))
		} else {
			// MySQL would coerce the raw string to 0 and match low priorities.
			tx = tx.Where("1 = 0")
		}
	}

	if query.Search != "" {
		pattern := likePattern(query.Search)
		tx = tx.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	}

	return tx
}

// orderClause builds the whole ORDER BY as one expression. The sort column only
// ever comes from the domain whitelist.
func orderClause(query domain.TaskQuery) clause.OrderBy {
	direction := "DESC"
	if query.SortOrder == domain.SortAsc {
		direction = "ASC"
	}

	parts := []string{fmt.Sprintf("%s %s", query.SortBy, direction)}
	var vars []interface{}

	if query.UseRelevance() {
		pattern := likePattern(query.Search)
		parts = append(parts, relevanceOrder)
		vars = append(vars, pattern, pattern)
	}

	parts = append(parts, "id "+direction)

	return clause.OrderBy{Expression: clause.Expr{SQL: strings.Join(parts, ", "), Vars: vars}}
}

func likePattern(term string) string {
	replacer := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return "%" + replacer.Replace(strings.ToLower(term)) + "%"
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint64) (domain.Task, error) {
	var row taskModel
	err := r.db.WithContext(ctx).Preload("User").First(&row, "id = ?", taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, fmt.Errorf("find task: %w", err)
	}
	return mapTaskModelToDomainTask(row), nil
}

func (r *TaskRepository) Create(ctx context.Context, ownerID uint64, input domain.CreateTaskInput) (domain.Task, error) {
	row := taskModel{
		UserID:      ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      string(input.Status),
		Priority:    int(input.Priority),
	}
	if input.DueDate != nil {
		value := domain.DateOf(*input.DueDate)
		row.DueDate = &value
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	return r.FindByID(ctx, row.ID)
}

func (r *TaskRepository) Update(ctx context.Context, taskID uint64, input domain.UpdateTaskInput) (domain.Task, error) {
	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.DescriptionSet {
		updates["description"] = input.Description
	}
	if input.Status != nil {
		updates["status"] = string(*input.Status)
	}
	if input.Priority != nil {
		updates["priority"] = int(*input.Priority)
	}
	if input.DueDateSet {
		if input.DueDate == nil {
			updates["due_date"] = nil
		} else {
			updates["due_date"] = domain.DateOf(*input.DueDate)
		}
	}

	if len(updates) > 0 {
		err := r.db.WithContext(ctx).Model(&taskModel{}).Where("id = ?", taskID).Updates(updates).Error
		if err != nil {
			return domain.Task{}, fmt.Errorf("update task: %w", err)
		}
	}

	return r.FindByID(ctx, taskID)
}

func (r *TaskRepository) Delete(ctx context.Context, taskID uint64) error {
	result := r.db.WithContext(ctx).Delete(&taskModel{}, taskID)
	if result.Error != nil {
		return fmt.Errorf("delete task: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
