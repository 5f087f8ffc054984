package complaint_test

import (
	"context"

	"ecosync/backend/internal/events"
	"ecosync/backend/internal/query"
	"ecosync/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Select(ctx context.Context, q *query.Query) ([]storage.Row, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Row), args.Error(1)
}

func (m *MockStorage) Insert(ctx context.Context, collection string, row storage.Row) ([]storage.Row, error) {
	args := m.Called(ctx, collection, row)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Row), args.Error(1)
}

func (m *MockStorage) Update(ctx context.Context, q *query.Query, values storage.Row) ([]storage.Row, error) {
	args := m.Called(ctx, q, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Row), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, q *query.Query) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockStorage) Call(ctx context.Context, procedure string, params storage.Row) error {
	args := m.Called(ctx, procedure, params)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, e events.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
