package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

const (
	TitleMaxLength       = 255
	DescriptionMaxLength = 1000
	DateLayout           = "2006-01-02"
)

// TaskStatuses lists every valid status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

func (s TaskStatus) Valid() bool {
	for _, status := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uint64
	OwnerID     uint64
	Title       string
	Description *string
	Status      TaskStatus
	Priority    Priority
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Owner       *Owner
}

// Owner is the public part of the user a task belongs to.
type Owner struct {
	ID   uint64
	Name string
}

// IsOverdue reports whether the start of the due date has passed and the task
// is not completed. A task due today is overdue for the rest of the day.
func (t Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return DateOf(*t.DueDate).Before(now)
}

type CreateTaskInput struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    Priority
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial update. Nil pointers leave the stored value
// untouched; the *Set flags distinguish "clear to null" from "not supplied" for
// nullable columns.
type UpdateTaskInput struct {
	Title          *string
	Description    *string
	DescriptionSet bool
	Status         *TaskStatus
	Priority       *Priority
	DueDate        *time.Time
	DueDateSet     bool
}

func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil &&
		!in.DescriptionSet &&
		in.Status == nil &&
		in.Priority == nil &&
		!in.DueDateSet
}

type TaskStatistics struct {
	Total      int64
	Pending    int64
	InProgress int64
	Completed  int64
	Overdue    int64
}

// DateOf drops the time of day, keeping the calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
