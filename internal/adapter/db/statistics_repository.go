package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
)

// Same scoping and overdue predicate as TaskRepository.List: owner first,
// soft-deleted rows excluded.
const taskStatisticsQuery = `
SELECT
  COUNT(*) AS total,
  COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
  COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress,
  COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0) AS completed,
  COALESCE(SUM(CASE WHEN due_date IS NOT NULL AND due_date < ? AND status <> 'completed' THEN 1 ELSE 0 END), 0) AS overdue
FROM tasks
WHERE user_id = ? AND deleted_at IS NULL
`

type TaskStatisticsRepository struct {
	db *sqlx.DB
}

type taskStatisticsRow struct {
	Total      int64 `db:"total"`
	Pending    int64 `db:"pending"`
	InProgress int64 `db:"in_progress"`
	Completed  int64 `db:"completed"`
	Overdue    int64 `db:"overdue"`
}

var _ ports.TaskStatisticsReader = (*TaskStatisticsRepository)(nil)

func NewTaskStatisticsRepository(db *sqlx.DB) *TaskStatisticsRepository {
	return &TaskStatisticsRepository{db: db}
}

func (r *TaskStatisticsRepository) Statistics(ctx context.Context, ownerID uint64, now time.Time) (domain.TaskStatistics, error) {
	var row taskStatisticsRow
	if err := r.db.GetContext(ctx, &row, taskStatisticsQuery, now.UTC(), ownerID); err != nil {
		return domain.TaskStatistics{}, fmt.Errorf("task statistics: %w", err)
	}

	return domain.TaskStatistics{
		Total:      row.Total,
		Pending:    row.Pending,
		InProgress: row.InProgress,
		Completed:  row.Completed,
		Overdue:    row.Overdue,
	}, nil
}
