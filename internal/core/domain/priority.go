package domain

import (
	"strconv"
	"strings"
)

// Priority is stored as an ordinal and exposed by name.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

func (p Priority) Valid() bool {
	_, ok := priorityNames[p]
	return ok
}

// String returns the symbolic name. Out of range values encode as "low".
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return priorityNames[PriorityLow]
}

// ParsePriority decodes a lower-case symbolic name or an ordinal ("0".."2").
// Names are matched exactly, so "HIGH" is not a priority.
func ParsePriority(value string) (Priority, bool) {
	value = strings.TrimSpace(value)
	for p, name := range priorityNames {
		if name == value {
			return p, true
		}
	}
	if n, err := strconv.Atoi(value); err == nil && Priority(n).Valid() {
		return Priority(n), true
	}
	return PriorityLow, false
}

// NormalizePriority maps any representation onto a valid priority. Unknown input
// falls back to PriorityLow and reports normalized=true.
func NormalizePriority(value any) (p Priority, normalized bool) {
	switch v := value.(type) {
	case Priority:
		if v.Valid() {
			return v, false
		}
	case int:
		if Priority(v).Valid() {
			return Priority(v), false
		}
	case int64:
		if Priority(v).Valid() {
			return Priority(v), false
		}
	case float64:
		if v == float64(int(v)) && Priority(int(v)).Valid() {
			return Priority(int(v)), false
		}
	case string:
		if parsed, ok := ParsePriority(v); ok {
			return parsed, false
		}
	}
	return PriorityLow, true
}
