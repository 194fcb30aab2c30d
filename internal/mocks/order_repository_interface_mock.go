// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

type MockOrderRepositoryInterface struct {
	mock.Mock
}

func (m *MockOrderRepositoryInterface) Order(ctx context.Context, id primitive.ObjectID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepositoryInterface) Orders(ctx context.Context, ids []primitive.ObjectID) ([]model.Order, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepositoryInterface) SaveCosting(ctx context.Context, orderID primitive.ObjectID, breakdown *model.CostBreakdown) error {
	args := m.Called(ctx, orderID, breakdown)
	return args.Error(0)
}

func (m *MockOrderRepositoryInterface) LatestCosting(ctx context.Context, orderID primitive.ObjectID) (*model.CostBreakdown, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CostBreakdown), args.Error(1)
}

func (m *MockOrderRepositoryInterface) UpdateProductionStatus(ctx context.Context, orderID primitive.ObjectID, status model.ProductionStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}
