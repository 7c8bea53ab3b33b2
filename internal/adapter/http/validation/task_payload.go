package validation

import (
	"encoding/json"
	"strings"
	"time"

	"taskboard/internal/adapter/http/dto"
	"taskboard/internal/core/domain"
	"taskboard/pkg/apierrors"
)

var taskUpdateFields = []string{"title", "description", "status", "priority", "due_date"}

func BuildCreateTaskInput(req dto.CreateTaskRequest, today time.Time) (domain.CreateTaskInput, error) {
	errs := Errors{}
	if err := checkStruct(req, errs); err != nil {
		return domain.CreateTaskInput{}, err
	}

	var input domain.CreateTaskInput

	if !errs.has("title") {
		input.Title = strings.TrimSpace(*req.Title)
		if input.Title == "" {
			errs.add("title", apierrors.MsgFieldRequired, "")
		}
	}

	input.Description = req.Description

	if !errs.has("status") {
		input.Status = domain.TaskStatus(*req.Status)
	}

	if req.Priority == nil {
		errs.add("priority", apierrors.MsgFieldRequired, "")
	} else if priority, ok := parsePriority(req.Priority); ok {
		input.Priority = priority
	} else {
		errs.add("priority", apierrors.MsgFieldIn, "")
	}

	if req.DueDate != nil && !errs.has("due_date") {
		input.DueDate = parseDueDate(*req.DueDate, today, errs)
	}

	if err := errs.orNil(); err != nil {
		return domain.CreateTaskInput{}, err
	}
	return input, nil
}

// BuildUpdateTaskInput validates a partial update. An explicit null clears
// description and due_date and is rejected for the other fields.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage, today time.Time) (domain.UpdateTaskInput, error) {
	errs := Errors{}
	if !hasTaskUpdateFields(raw) {
		errs.add(BodyField, apierrors.MsgFieldNoFields, "")
		return domain.UpdateTaskInput{}, errs
	}

	for _, field := range []string{"title", "status", "priority"} {
		if hasJSONField(raw, field) && isJSONNull(raw[field]) {
			errs.add(field, apierrors.MsgFieldRequired, "")
		}
	}

	if err := checkStruct(req, errs); err != nil {
		return domain.UpdateTaskInput{}, err
	}

	var input domain.UpdateTaskInput

	if req.Title != nil && !errs.has("title") {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			errs.add("title", apierrors.MsgFieldRequired, "")
		} else {
			input.Title = &title
		}
	}

	if hasJSONField(raw, "description") {
		input.DescriptionSet = true
		input.Description = req.Description
	}

	if req.Status != nil && !errs.has("status") {
		status := domain.TaskStatus(*req.Status)
		input.Status = &status
	}

	if req.Priority != nil && !errs.has("priority") {
		if priority, ok := parsePriority(req.Priority); ok {
			input.Priority = &priority
		} else {
			errs.add("priority", apierrors.MsgFieldIn, "")
		}
	}

	if hasJSONField(raw, "due_date") {
		input.DueDateSet = true
		if req.DueDate != nil && !errs.has("due_date") {
			input.DueDate = parseDueDate(*req.DueDate, today, errs)
		}
	}

	if err := errs.orNil(); err != nil {
		return domain.UpdateTaskInput{}, err
	}
	return input, nil
}

func hasTaskUpdateFields(raw map[string]json.RawMessage) bool {
	for _, field := range taskUpdateFields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

// parsePriority accepts an ordinal or a symbolic name and rejects anything that
// would need normalizing.
func parsePriority(value interface{}) (domain.Priority, bool) {
	priority, normalized := domain.NormalizePriority(value)
	return priority, !normalized
}

func parseDueDate(value string, today time.Time, errs Errors) *time.Time {
	due, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		errs.add("due_date", apierrors.MsgFieldDate, "")
		return nil
	}
	if due.Before(domain.DateOf(today)) {
		errs.add("due_date", apierrors.MsgFieldAfterOrEqualToday, "")
		return nil
	}
	return &due
}
