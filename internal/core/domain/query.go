package domain

import (
	"strconv"
	"strings"
	"time"
)

type SortColumn string

const (
	SortByCreatedAt SortColumn = "created_at"
	SortByDueDate   SortColumn = "due_date"
	SortByPriority  SortColumn = "priority"
	SortByStatus    SortColumn = "status"
	SortByTitle     SortColumn = "title"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// sortColumns is the only source of column names placed in an ORDER BY clause.
var sortColumns = map[string]SortColumn{
	string(SortByCreatedAt): SortByCreatedAt,
	string(SortByDueDate):   SortByDueDate,
	string(SortByPriority):  SortByPriority,
	string(SortByStatus):    SortByStatus,
	string(SortByTitle):     SortByTitle,
}

// TaskFilters holds raw listing parameters as received from a caller.
type TaskFilters struct {
	Status    string
	DueDate   string
	Overdue   string
	Priority  string
	Search    string
	SortBy    string
	SortOrder string
	Page      string
	PerPage   string
}

// PriorityFilter is the priority predicate after translation. Unknown symbolic
// values are kept verbatim in Raw and compared as-is.
type PriorityFilter struct {
	Value Priority
	Raw   string
	Known bool
}

// TaskQuery is the normalized form of TaskFilters.
type TaskQuery struct {
	Status       *TaskStatus
	DueDate      *time.Time
	Overdue      bool
	Priority     *PriorityFilter
	Search       string
	SortBy       SortColumn
	SortOrder    SortOrder
	SortExplicit bool
	Page         int
	PerPage      int

	// Normalized names every parameter whose value was ignored or replaced by a
	// default.
	Normalized []string
}

// UseRelevance reports whether search relevance is appended as a secondary sort.
func (q TaskQuery) UseRelevance() bool {
	return q.Search != "" && !q.SortExplicit
}

// Offset is the number of rows skipped before the current page.
func (q TaskQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// NewTaskQuery normalizes raw filters. It never fails: invalid values are dropped
// or replaced by their defaults.
func NewTaskQuery(f TaskFilters) TaskQuery {
	q := TaskQuery{}
	mark := func(name string) { q.Normalized = append(q.Normalized, name) }

	if status := strings.TrimSpace(f.Status); status != "" {
		if s := TaskStatus(status); s.Valid() {
			q.Status = &s
		} else {
			mark("status")
		}
	}

	if due := strings.TrimSpace(f.DueDate); due != "" {
		if parsed, err := time.Parse(DateLayout, due); err == nil {
			q.DueDate = &parsed
		} else {
			mark("due_date")
		}
	}

	q.Overdue = parseFlag(f.Overdue)

	if priority := strings.TrimSpace(f.Priority); priority != "" {
		if p, ok := ParsePriority(priority); ok {
			q.Priority = &PriorityFilter{Value: p, Known: true}
		} else {
			q.Priority = &PriorityFilter{Raw: priority}
		}
	}

	q.Search = strings.ToLower(strings.TrimSpace(f.Search))

	var normalized bool
	q.SortExplicit = strings.TrimSpace(f.SortBy) != ""
	if q.SortBy, normalized = NormalizeSortColumn(f.SortBy); normalized && q.SortExplicit {
		mark("sort_by")
	}
	if q.SortOrder, normalized = NormalizeSortOrder(f.SortOrder); normalized && strings.TrimSpace(f.SortOrder) != "" {
		mark("sort_order")
	}
	if q.Page, normalized = normalizePositive(f.Page, 1, 0); normalized && f.Page != "" {
		mark("page")
	}
	if q.PerPage, normalized = normalizePositive(f.PerPage, DefaultPerPage, MaxPerPage); normalized && f.PerPage != "" {
		mark("per_page")
	}

	return q
}

// NormalizeSortColumn resolves sort_by against the whitelist, falling back to
// created_at.
func NormalizeSortColumn(value string) (SortColumn, bool) {
	if column, ok := sortColumns[strings.TrimSpace(value)]; ok {
		return column, false
	}
	return SortByCreatedAt, true
}

// NormalizeSortOrder accepts asc or desc, falling back to desc.
func NormalizeSortOrder(value string) (SortOrder, bool) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(value))) {
	case SortAsc:
		return SortAsc, false
	case SortDesc:
		return SortDesc, false
	}
	return SortDesc, true
}

func normalizePositive(value string, fallback, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return fallback, true
	}
	if max > 0 && n > max {
		return max, true
	}
	return n, false
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// TaskPage is one page of a listing.
type TaskPage struct {
	Tasks       []Task
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int64
}

// NewTaskPage computes pagination metadata for total matching rows.
func NewTaskPage(tasks []Task, q TaskQuery, total int64) TaskPage {
	lastPage := int((total + int64(q.PerPage) - 1) / int64(q.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return TaskPage{
		Tasks:       tasks,
		CurrentPage: q.Page,
		LastPage:    lastPage,
		PerPage:     q.PerPage,
		Total:       total,
	}
}
