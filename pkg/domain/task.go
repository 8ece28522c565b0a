package domain

import "time"

// TaskState is the lifecycle state of a queued task
type TaskState string

const (
	TaskPending TaskState = "pending"
	TaskRunning TaskState = "running"
	TaskDone    TaskState = "done"
	TaskDead    TaskState = "dead" // failed permanently, kept for inspection
)

// Task is a unit of work persisted in the task queue
type Task struct {
	ID         string
	Name       string
	Args       string // json-encoded handler arguments
	State      TaskState
	Attempts   int
	LastError  string
	RunAt      time.Time
	EnqueuedAt time.Time
	UpdatedAt  time.Time
}
