package models

import "time"

// TaskType distinguishes help requests from offers in the marketplace.
type TaskType string

const (
	TaskRequest TaskType = "request"
	TaskOffer   TaskType = "offer"
)

func (t TaskType) Valid() bool {
	return t == TaskRequest || t == TaskOffer
}

// TaskStatus is the lifecycle state of a marketplace task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "open"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskClosed     TaskStatus = "closed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskOpen, TaskInProgress, TaskCompleted, TaskClosed:
		return true
	}
	return false
}

// Task represents a marketplace task
type Task struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"userId" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Subject     string     `json:"subject" db:"subject"`
	Type        TaskType   `json:"type" db:"type"`
	Price       float64    `json:"price" db:"price"`
	DueDate     *time.Time `json:"dueDate,omitempty" db:"due_date"`
	Status      TaskStatus `json:"status" db:"status"`
	FileURL     *string    `json:"fileUrl,omitempty" db:"file_url"`
	FileName    *string    `json:"fileName,omitempty" db:"file_name"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// TaskView is a task joined with its author profile.
type TaskView struct {
	Task
	Author Author `json:"author"`
}
