package taskclient

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Owner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task is the wire form of a task. Provisional tasks created by a Board carry a
// negative ID until the server confirms them.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"due_date"`
	IsOverdue   bool      `json:"is_overdue"`
	User        *Owner    `json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (t Task) Provisional() bool {
	return t.ID < 0
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
}

type TaskPage struct {
	Data []Task   `json:"data"`
	Meta PageMeta `json:"meta"`
}

type Statistics struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Overdue    int64 `json:"overdue"`
}

type AuthResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// TaskInput is the body of a create call. Priority is a name ("low", "medium",
// "high"); DueDate is YYYY-MM-DD.
type TaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`
}

// TaskPatch is a partial update. Nil fields are left untouched; the Clear flags
// send an explicit null for the nullable fields.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *string
	Priority         *string
	DueDate          *string
	ClearDueDate     bool
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription &&
		p.Status == nil && p.Priority == nil && p.DueDate == nil && !p.ClearDueDate
}

func (p TaskPatch) MarshalJSON() ([]byte, error) {
	body := map[string]interface{}{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.ClearDescription {
		body["description"] = nil
	} else if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Status != nil {
		body["status"] = *p.Status
	}
	if p.Priority != nil {
		body["priority"] = *p.Priority
	}
	if p.ClearDueDate {
		body["due_date"] = nil
	} else if p.DueDate != nil {
		body["due_date"] = *p.DueDate
	}
	return json.Marshal(body)
}

// apply merges the patch into t the way the server would.
func (p TaskPatch) apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.ClearDescription {
		t.Description = nil
	} else if p.Description != nil {
		value := *p.Description
		t.Description = &value
	}
	if p.Status != nil {
		t.Status = *p.Status
		if t.Status == StatusCompleted {
			t.IsOverdue = false
		}
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = nil
		t.IsOverdue = false
	} else if p.DueDate != nil {
		value := *p.DueDate
		t.DueDate = &value
	}
	return t
}

// ListParams are the list filters. Zero values are not sent.
type ListParams struct {
	Status    string
	Priority  string
	DueDate   string
	Overdue   bool
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

func (p ListParams) Values() url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set("status", p.Status)
	set("priority", p.Priority)
	set("due_date", p.DueDate)
	set("search", p.Search)
	set("sort_by", p.SortBy)
	set("sort_order", p.SortOrder)
	if p.Overdue {
		values.Set("overdue", "true")
	}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(p.PerPage))
	}
	return values
}
