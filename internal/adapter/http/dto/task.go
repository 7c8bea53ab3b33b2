package dto

type TaskOwner struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

type TaskItem struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *string    `json:"due_date"`
	IsOverdue   bool       `json:"is_overdue"`
	User        *TaskOwner `json:"user,omitempty"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

type TaskListResponse struct {
	Data []TaskItem `json:"data"`
	Meta PageMeta   `json:"meta"`
}

type TaskResponse struct {
	Data TaskItem `json:"data"`
}

type TaskMessageResponse struct {
	Message string   `json:"message"`
	Data    TaskItem `json:"data"`
}

type TaskStatistics struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

type TaskStatisticsResponse struct {
	Data TaskStatistics `json:"data"`
}

// CreateTaskRequest accepts priority as either an ordinal or a name, so it is
// decoded loosely and checked by the validation package. A zero ordinal is a
// valid priority, so presence is checked there too.
type CreateTaskRequest struct {
	Title       *string     `json:"title" validate:"required,max=255"`
	Description *string     `json:"description" validate:"omitempty,max=1000"`
	Status      *string     `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
	Priority    interface{} `json:"priority"`
	DueDate     *string     `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateTaskRequest struct {
	Title       *string     `json:"title" validate:"omitempty,max=255"`
	Description *string     `json:"description" validate:"omitempty,max=1000"`
	Status      *string     `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority    interface{} `json:"priority"`
	DueDate     *string     `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}
