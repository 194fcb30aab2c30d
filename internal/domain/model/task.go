package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the production task lifecycle state.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskBlocked    TaskStatus = "BLOCKED"
)

// SignoffType is the kind of signoff recorded against a task.
type SignoffType string

const (
	SignoffStart    SignoffType = "START"
	SignoffComplete SignoffType = "COMPLETE"
)

// ProductionTask is one scheduled unit of work for an order.
// DependsOnID holds the single predecessor task, if any; a task created with
// an unsatisfied predecessor starts out BLOCKED.
type ProductionTask struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderID         primitive.ObjectID  `bson:"order_id" json:"order_id"`
	TaskType        string              `bson:"task_type" json:"task_type"`
	ScheduledDate   time.Time           `bson:"scheduled_date" json:"scheduled_date"`
	DurationMinutes int                 `bson:"duration_minutes" json:"duration_minutes"`
	Status          TaskStatus          `bson:"status" json:"status"`
	AssignedToID    *primitive.ObjectID `bson:"assigned_to_id,omitempty" json:"assigned_to_id,omitempty"`
	DependsOnID     *primitive.ObjectID `bson:"depends_on_id,omitempty" json:"depends_on_id,omitempty"`
	CreatedAt       time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `bson:"updated_at" json:"updated_at"`
}

// TaskSignoff is an append-only log entry tied to a task. Signoffs drive task
// status but are never deleted or mutated.
type TaskSignoff struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TaskID   primitive.ObjectID `bson:"task_id" json:"task_id"`
	Type     SignoffType        `bson:"type" json:"type"`
	SignedBy string             `bson:"signed_by,omitempty" json:"signed_by,omitempty"`
	SignedAt time.Time          `bson:"signed_at" json:"signed_at"`
}

// TaskTemplate describes one task the scheduler stamps out per order.
// DaysBefore is an independent offset from the order's event date, not a
// cumulative one. DependsOn names the predecessor template's task type.
type TaskTemplate struct {
	TaskType        string
	DurationMinutes int
	DaysBefore      int
	DependsOn       string
}

// DefaultTaskTemplates is the standard production pipeline for a tiered order.
var DefaultTaskTemplates = []TaskTemplate{
	{TaskType: "PREP", DurationMinutes: 60, DaysBefore: 3},
	{TaskType: "BAKE", DurationMinutes: 120, DaysBefore: 2, DependsOn: "PREP"},
	{TaskType: "FILL", DurationMinutes: 45, DaysBefore: 1, DependsOn: "BAKE"},
	{TaskType: "STACK", DurationMinutes: 60, DaysBefore: 1, DependsOn: "FILL"},
	{TaskType: "DECORATE", DurationMinutes: 180, DaysBefore: 1, DependsOn: "STACK"},
	{TaskType: "PACK", DurationMinutes: 30, DaysBefore: 0, DependsOn: "DECORATE"},
}
