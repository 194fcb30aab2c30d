package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
	"github.com/ovenline/bakeops/internal/events"
	"github.com/ovenline/bakeops/internal/metrics"
	"github.com/ovenline/bakeops/internal/repository"
)

// TaskService generates production tasks and processes signoffs.
type TaskService interface {
	// GenerateTasks stamps the template pipeline onto the order, skipping task
	// types that already exist. A non-zero scheduleBase overrides the order's
	// event date as the offset anchor. Returns only the newly created tasks.
	GenerateTasks(ctx context.Context, orderID primitive.ObjectID, scheduleBase time.Time) ([]model.ProductionTask, error)
	// Signoff records a start or complete signoff against the task and applies
	// the resulting status transition.
	Signoff(ctx context.Context, taskID primitive.ObjectID, signoffType model.SignoffType, signedBy string) (*model.ProductionTask, error)
	TasksForOrder(ctx context.Context, orderID primitive.ObjectID) ([]model.ProductionTask, error)
	SignoffHistory(ctx context.Context, taskID primitive.ObjectID) ([]model.TaskSignoff, error)
}

// TaskScheduler implements TaskService.
type TaskScheduler struct {
	tasks     repository.TaskRepositoryInterface
	orders    repository.OrderRepositoryInterface
	publisher events.Publisher
	templates []model.TaskTemplate

	// orderLocks serializes signoff-driven rollups per order so a concurrent
	// pair of completions cannot leave the order status stale.
	orderLocks sync.Map
}

// SchedulerOption configures a TaskScheduler.
type SchedulerOption func(*TaskScheduler)

// WithTemplates overrides the default task pipeline.
func WithTemplates(templates []model.TaskTemplate) SchedulerOption {
	return func(s *TaskScheduler) { s.templates = templates }
}

// WithTaskPublisher sets the event publisher for task transitions.
func WithTaskPublisher(p events.Publisher) SchedulerOption {
	return func(s *TaskScheduler) { s.publisher = p }
}

// NewTaskScheduler creates a scheduler over the given repositories.
func NewTaskScheduler(tasks repository.TaskRepositoryInterface, orders repository.OrderRepositoryInterface, opts ...SchedulerOption) *TaskScheduler {
	s := &TaskScheduler{
		tasks:     tasks,
		orders:    orders,
		publisher: events.NoopPublisher{},
		templates: model.DefaultTaskTemplates,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateTasks implements TaskService. Generation is idempotent per task
// type: templates whose type already has a task on the order are skipped, and
// dependencies resolve against existing tasks as well as new ones.
func (s *TaskScheduler) GenerateTasks(ctx context.Context, orderID primitive.ObjectID, scheduleBase time.Time) ([]model.ProductionTask, error) {
	order, err := s.orders.Order(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID.Hex())
	}

	base := order.EventDate
	if !scheduleBase.IsZero() {
		base = scheduleBase
	}
	if base.IsZero() {
		return nil, fmt.Errorf("%w: order has no event date and no schedule base was given", ErrInvalidInput)
	}

	existing, err := s.tasks.TasksByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("load existing tasks: %w", err)
	}

	// byType tracks the id and status of each task type's task so templates
	// can depend on tasks from a previous generation run.
	type taskRef struct {
		id     primitive.ObjectID
		status model.TaskStatus
	}
	byType := make(map[string]taskRef, len(existing)+len(s.templates))
	for _, t := range existing {
		byType[t.TaskType] = taskRef{id: t.ID, status: t.Status}
	}

	now := time.Now().UTC()
	var created []model.ProductionTask
	for _, tpl := range s.templates {
		if _, ok := byType[tpl.TaskType]; ok {
			continue
		}

		task := model.ProductionTask{
			ID:              primitive.NewObjectID(),
			OrderID:         orderID,
			TaskType:        tpl.TaskType,
			ScheduledDate:   base.AddDate(0, 0, -tpl.DaysBefore),
			DurationMinutes: tpl.DurationMinutes,
			Status:          model.TaskPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if tpl.DependsOn != "" {
			dep, ok := byType[tpl.DependsOn]
			if ok {
				depID := dep.id
				task.DependsOnID = &depID
				if dep.status != model.TaskCompleted {
					task.Status = model.TaskBlocked
				}
			} else {
				log.Warn().
					Str("order_id", orderID.Hex()).
					Str("task_type", tpl.TaskType).
					Str("depends_on", tpl.DependsOn).
					Msg("Task template dependency not present, scheduling unblocked")
			}
		}

		byType[tpl.TaskType] = taskRef{id: task.ID, status: task.Status}
		created = append(created, task)
	}

	if len(created) == 0 {
		return nil, nil
	}
	if err := s.tasks.InsertTasks(ctx, created); err != nil {
		return nil, fmt.Errorf("insert tasks: %w", err)
	}

	metrics.RecordTasksGenerated(len(created))
	log.Info().
		Str("order_id", orderID.Hex()).
		Int("count", len(created)).
		Msg("Production tasks generated")
	return created, nil
}

// TasksForOrder implements TaskService.
func (s *TaskScheduler) TasksForOrder(ctx context.Context, orderID primitive.ObjectID) ([]model.ProductionTask, error) {
	return s.tasks.TasksByOrder(ctx, orderID)
}

// SignoffHistory implements TaskService.
func (s *TaskScheduler) SignoffHistory(ctx context.Context, taskID primitive.ObjectID) ([]model.TaskSignoff, error) {
	return s.tasks.SignoffsByTask(ctx, taskID)
}

// Signoff implements TaskService. START moves PENDING to IN_PROGRESS; COMPLETE
// moves IN_PROGRESS to COMPLETED, unblocks dependents, and rolls the order's
// production status up. Any other combination is rejected without recording
// the signoff.
func (s *TaskScheduler) Signoff(ctx context.Context, taskID primitive.ObjectID, signoffType model.SignoffType, signedBy string) (*model.ProductionTask, error) {
	task, err := s.signoff(ctx, taskID, signoffType, signedBy)
	metrics.RecordSignoff(string(signoffType), err)
	return task, err
}

func (s *TaskScheduler) signoff(ctx context.Context, taskID primitive.ObjectID, signoffType model.SignoffType, signedBy string) (*model.ProductionTask, error) {
	task, err := s.tasks.Task(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("load task: %w", err)
	}
	if task == nil {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID.Hex())
	}

	actual, _ := s.orderLocks.LoadOrStore(task.OrderID.Hex(), &sync.Mutex{})
	mu := actual.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	var next model.TaskStatus
	switch signoffType {
	case model.SignoffStart:
		if task.Status != model.TaskPending {
			return nil, fmt.Errorf("%w: cannot start task in status %s", ErrInvalidTransition, task.Status)
		}
		next = model.TaskInProgress
	case model.SignoffComplete:
		if task.Status != model.TaskInProgress {
			return nil, fmt.Errorf("%w: cannot complete task in status %s", ErrInvalidTransition, task.Status)
		}
		next = model.TaskCompleted
	default:
		return nil, fmt.Errorf("%w: unknown signoff type %q", ErrInvalidInput, signoffType)
	}

	if err := s.tasks.RecordSignoff(ctx, &model.TaskSignoff{
		ID:       primitive.NewObjectID(),
		TaskID:   taskID,
		Type:     signoffType,
		SignedBy: signedBy,
		SignedAt: time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("record signoff: %w", err)
	}
	if err := s.tasks.UpdateStatus(ctx, taskID, next); err != nil {
		return nil, fmt.Errorf("update task status: %w", err)
	}

	prev := task.Status
	task.Status = next
	s.publishTransition(ctx, task, prev)

	if next == model.TaskCompleted {
		unblocked, err := s.tasks.UnblockDependents(ctx, taskID)
		if err != nil {
			log.Warn().Err(err).Str("task_id", taskID.Hex()).Msg("Failed to unblock dependent tasks")
		} else {
			for i := range unblocked {
				s.publishTransition(ctx, &unblocked[i], model.TaskBlocked)
			}
		}
	}

	if err := s.rollupOrderStatus(ctx, task.OrderID); err != nil {
		log.Warn().Err(err).Str("order_id", task.OrderID.Hex()).Msg("Failed to roll up order production status")
	}
	return task, nil
}

// rollupOrderStatus derives the order's production status from its tasks:
// READY when every task is completed, IN_PRODUCTION once any has started.
func (s *TaskScheduler) rollupOrderStatus(ctx context.Context, orderID primitive.ObjectID) error {
	tasks, err := s.tasks.TasksByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	allCompleted := true
	anyTouched := false
	for _, t := range tasks {
		if t.Status != model.TaskCompleted {
			allCompleted = false
		}
		if t.Status != model.TaskPending && t.Status != model.TaskBlocked {
			anyTouched = true
		}
	}

	status := model.ProductionNotStarted
	switch {
	case allCompleted:
		status = model.ProductionReady
	case anyTouched:
		status = model.ProductionInProgress
	}
	return s.orders.UpdateProductionStatus(ctx, orderID, status)
}

func (s *TaskScheduler) publishTransition(ctx context.Context, task *model.ProductionTask, from model.TaskStatus) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishTaskStatusChanged(ctx, events.TaskStatusChanged{
		TaskID:    task.ID.Hex(),
		OrderID:   task.OrderID.Hex(),
		TaskType:  task.TaskType,
		From:      string(from),
		To:        string(task.Status),
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("task_id", task.ID.Hex()).Msg("Failed to publish task event")
	}
}
