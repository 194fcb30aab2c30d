// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ovenline/bakeops/internal/domain/model"
)

type MockQuoteRepositoryInterface struct {
	mock.Mock
}

func (m *MockQuoteRepositoryInterface) Quote(ctx context.Context, id primitive.ObjectID) (*model.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteRepositoryInterface) QuotesInChain(ctx context.Context, rootID primitive.ObjectID) ([]model.Quote, error) {
	args := m.Called(ctx, rootID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Quote), args.Error(1)
}

func (m *MockQuoteRepositoryInterface) InsertRevision(ctx context.Context, q *model.Quote) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}
