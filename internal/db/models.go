package db

import (
	"time"
)

// Priority orders tasks from most to least urgent. Lower value means more
// urgent, matching the CHECK constraint on the tasks table.
type Priority int

const (
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Valid reports whether p is one of the enumerated priorities.
func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return "unknown"
	}
}

// Task represents a single to-do item
type Task struct {
	ID          int64
	Description string
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
