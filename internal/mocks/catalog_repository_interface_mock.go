// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

type MockCatalogRepositoryInterface struct {
	mock.Mock
}

func (m *MockCatalogRepositoryInterface) Recipe(ctx context.Context, id primitive.ObjectID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) RecipesByType(ctx context.Context, t model.RecipeType) ([]model.Recipe, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) Ingredient(ctx context.Context, id primitive.ObjectID) (*model.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) TierSize(ctx context.Context, id primitive.ObjectID) (*model.TierSize, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TierSize), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) LaborRole(ctx context.Context, id primitive.ObjectID) (*model.LaborRole, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LaborRole), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) DecorationTechnique(ctx context.Context, id primitive.ObjectID) (*model.DecorationTechnique, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DecorationTechnique), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) Packaging(ctx context.Context, id primitive.ObjectID) (*model.Packaging, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Packaging), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) DeliveryZones(ctx context.Context) ([]model.DeliveryZone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DeliveryZone), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) VolumeBreakpoints(ctx context.Context, menuItemID, productTypeID *primitive.ObjectID) ([]model.VolumeBreakpoint, error) {
	args := m.Called(ctx, menuItemID, productTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VolumeBreakpoint), args.Error(1)
}

func (m *MockCatalogRepositoryInterface) Vendor(ctx context.Context, id primitive.ObjectID) (*model.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vendor), args.Error(1)
}
