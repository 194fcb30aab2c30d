//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

func TestTaskRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewTaskRepository(db)

	orderID := primitive.NewObjectID()
	now := time.Now().Truncate(time.Millisecond)

	prep := model.ProductionTask{
		ID:              primitive.NewObjectID(),
		OrderID:         orderID,
		TaskType:        "PREP",
		ScheduledDate:   now.AddDate(0, 0, -3),
		DurationMinutes: 60,
		Status:          model.TaskPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	bake := model.ProductionTask{
		ID:              primitive.NewObjectID(),
		OrderID:         orderID,
		TaskType:        "BAKE",
		ScheduledDate:   now.AddDate(0, 0, -2),
		DurationMinutes: 120,
		Status:          model.TaskBlocked,
		DependsOnID:     &prep.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	t.Run("insert and list by order", func(t *testing.T) {
		require.NoError(t, repo.InsertTasks(ctx, []model.ProductionTask{bake, prep}))

		tasks, err := repo.TasksByOrder(ctx, orderID)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "PREP", tasks[0].TaskType)
		assert.Equal(t, "BAKE", tasks[1].TaskType)
	})

	t.Run("insert empty batch is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.InsertTasks(ctx, nil))
	})

	t.Run("task by id", func(t *testing.T) {
		got, err := repo.Task(ctx, bake.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.TaskBlocked, got.Status)
		require.NotNil(t, got.DependsOnID)
		assert.Equal(t, prep.ID, *got.DependsOnID)
	})

	t.Run("missing task returns nil without error", func(t *testing.T) {
		got, err := repo.Task(ctx, primitive.NewObjectID())
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("update status", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, prep.ID, model.TaskCompleted))

		got, err := repo.Task(ctx, prep.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, model.TaskCompleted, got.Status)
	})

	t.Run("unblock dependents", func(t *testing.T) {
		unblocked, err := repo.UnblockDependents(ctx, prep.ID)
		require.NoError(t, err)
		require.Len(t, unblocked, 1)
		assert.Equal(t, bake.ID, unblocked[0].ID)
		assert.Equal(t, model.TaskPending, unblocked[0].Status)

		got, err := repo.Task(ctx, bake.ID)
		require.NoError(t, err)
		assert.Equal(t, model.TaskPending, got.Status)
	})

	t.Run("unblock with no dependents", func(t *testing.T) {
		unblocked, err := repo.UnblockDependents(ctx, bake.ID)
		require.NoError(t, err)
		assert.Empty(t, unblocked)
	})
}

func TestTaskRepository_Signoffs_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewTaskRepository(db)

	taskID := primitive.NewObjectID()
	base := time.Now().Truncate(time.Millisecond)

	complete := &model.TaskSignoff{
		ID:       primitive.NewObjectID(),
		TaskID:   taskID,
		Type:     model.SignoffComplete,
		SignedBy: "lena",
		SignedAt: base.Add(time.Hour),
	}
	start := &model.TaskSignoff{
		ID:       primitive.NewObjectID(),
		TaskID:   taskID,
		Type:     model.SignoffStart,
		SignedBy: "lena",
		SignedAt: base,
	}
	require.NoError(t, repo.RecordSignoff(ctx, complete))
	require.NoError(t, repo.RecordSignoff(ctx, start))

	signoffs, err := repo.SignoffsByTask(ctx, taskID)
	require.NoError(t, err)
	require.Len(t, signoffs, 2)
	assert.Equal(t, model.SignoffStart, signoffs[0].Type)
	assert.Equal(t, model.SignoffComplete, signoffs[1].Type)

	other, err := repo.SignoffsByTask(ctx, primitive.NewObjectID())
	require.NoError(t, err)
	assert.Empty(t, other)
}
