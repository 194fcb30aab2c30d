// Package repository provides data access for production tasks and signoffs.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ovenline/bakeops/internal/domain/model"
)

// TaskRepository provides production task and signoff persistence.
type TaskRepository struct {
	tasks    *mongo.Collection
	signoffs *mongo.Collection
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *MongoDB) *TaskRepository {
	return &TaskRepository{
		tasks:    db.ProductionTasks,
		signoffs: db.TaskSignoffs,
	}
}

// Task returns the task by id, or (nil, nil) when absent.
func (r *TaskRepository) Task(ctx context.Context, id primitive.ObjectID) (*model.ProductionTask, error) {
	return findOne[model.ProductionTask](ctx, r.tasks, bson.M{"_id": id})
}

// TasksByOrder returns the order's tasks ordered by scheduled date.
func (r *TaskRepository) TasksByOrder(ctx context.Context, orderID primitive.ObjectID) ([]model.ProductionTask, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_date", Value: 1}, {Key: "created_at", Value: 1}})
	cursor, err := r.tasks.Find(ctx, bson.M{"order_id": orderID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var tasks []model.ProductionTask
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// InsertTasks inserts the batch of generated tasks.
func (r *TaskRepository) InsertTasks(ctx context.Context, tasks []model.ProductionTask) error {
	if len(tasks) == 0 {
		return nil
	}
	docs := make([]interface{}, len(tasks))
	for i := range tasks {
		docs[i] = tasks[i]
	}
	_, err := r.tasks.InsertMany(ctx, docs)
	return err
}

// UpdateStatus sets the task's status.
func (r *TaskRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.TaskStatus) error {
	_, err := r.tasks.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		},
	})
	return err
}

// UnblockDependents transitions BLOCKED tasks depending on completedID to
// PENDING and returns the tasks it transitioned.
func (r *TaskRepository) UnblockDependents(ctx context.Context, completedID primitive.ObjectID) ([]model.ProductionTask, error) {
	filter := bson.M{
		"depends_on_id": completedID,
		"status":        model.TaskBlocked,
	}

	blocked, err := findAll[model.ProductionTask](ctx, r.tasks, filter)
	if err != nil {
		return nil, err
	}
	if len(blocked) == 0 {
		return nil, nil
	}

	_, err = r.tasks.UpdateMany(ctx, filter, bson.M{
		"$set": bson.M{
			"status":     model.TaskPending,
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return nil, err
	}

	for i := range blocked {
		blocked[i].Status = model.TaskPending
	}
	return blocked, nil
}

// RecordSignoff appends the signoff to the log.
func (r *TaskRepository) RecordSignoff(ctx context.Context, s *model.TaskSignoff) error {
	_, err := r.signoffs.InsertOne(ctx, s)
	return err
}

// SignoffsByTask returns the task's signoffs ordered by signed time.
func (r *TaskRepository) SignoffsByTask(ctx context.Context, taskID primitive.ObjectID) ([]model.TaskSignoff, error) {
	opts := options.Find().SetSort(bson.M{"signed_at": 1})
	cursor, err := r.signoffs.Find(ctx, bson.M{"task_id": taskID}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var signoffs []model.TaskSignoff
	if err := cursor.All(ctx, &signoffs); err != nil {
		return nil, err
	}
	return signoffs, nil
}
