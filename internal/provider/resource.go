package provider

import (
	"fmt"
	"strconv"
	"strings"
)

// TasksPath is the collection segment all task resources live under.
const TasksPath = "tasks"

// Kind classifies a resource reference.
type Kind int

const (
	// KindUnknown is any path that matches neither registered shape.
	KindUnknown Kind = iota
	// KindCollection addresses the whole set of tasks.
	KindCollection
	// KindItem addresses exactly one task by ID.
	KindItem
)

// Resource is a parsed reference to either the task collection or a single
// task. Construct one with Tasks, Task, or Parse; the zero value is unknown.
type Resource struct {
	Kind Kind
	ID   int64 // set only for KindItem
}

// Tasks returns the collection resource.
func Tasks() Resource {
	return Resource{Kind: KindCollection}
}

// Task returns the item resource for the given task ID.
func Task(id int64) Resource {
	return Resource{Kind: KindItem, ID: id}
}

// Parse classifies a raw path into a resource. Exactly two shapes are
// recognized: "tasks" and "tasks/<digits>". Everything else, including
// extra segments or a non-numeric key, classifies as unknown rather than
// erroring, so every input maps to exactly one kind.
func Parse(raw string) Resource {
	raw = strings.Trim(raw, "/")

	if raw == TasksPath {
		return Tasks()
	}

	rest, ok := strings.CutPrefix(raw, TasksPath+"/")
	if !ok {
		return Resource{}
	}

	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id < 0 {
		return Resource{}
	}

	return Task(id)
}

// Collection returns the collection resource containing r. For the
// collection itself this is the identity.
func (r Resource) Collection() Resource {
	return Tasks()
}

func (r Resource) String() string {
	switch r.Kind {
	case KindCollection:
		return TasksPath
	case KindItem:
		return fmt.Sprintf("%s/%d", TasksPath, r.ID)
	default:
		return "<unknown>"
	}
}
