// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

type MockTaskRepositoryInterface struct {
	mock.Mock
}

func (m *MockTaskRepositoryInterface) Task(ctx context.Context, id primitive.ObjectID) (*model.ProductionTask, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductionTask), args.Error(1)
}

func (m *MockTaskRepositoryInterface) TasksByOrder(ctx context.Context, orderID primitive.ObjectID) ([]model.ProductionTask, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductionTask), args.Error(1)
}

func (m *MockTaskRepositoryInterface) InsertTasks(ctx context.Context, tasks []model.ProductionTask) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskRepositoryInterface) UpdateStatus(ctx context.Context, id primitive.ObjectID, status model.TaskStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTaskRepositoryInterface) UnblockDependents(ctx context.Context, completedID primitive.ObjectID) ([]model.ProductionTask, error) {
	args := m.Called(ctx, completedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductionTask), args.Error(1)
}

func (m *MockTaskRepositoryInterface) RecordSignoff(ctx context.Context, s *model.TaskSignoff) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockTaskRepositoryInterface) SignoffsByTask(ctx context.Context, taskID primitive.ObjectID) ([]model.TaskSignoff, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskSignoff), args.Error(1)
}
