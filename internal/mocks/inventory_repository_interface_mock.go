// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ovenline/bakeops/internal/domain/model"
)

type MockInventoryRepositoryInterface struct {
	mock.Mock
}

func (m *MockInventoryRepositoryInterface) LotsBySKU(ctx context.Context, sku string) ([]model.InventoryLot, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InventoryLot), args.Error(1)
}
