package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/model"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/repository"
)

type MessageRepository struct {
	mock.Mock
}

func (m *MessageRepository) InsertIfAbsent(ctx context.Context, message *model.Message) (bool, error) {
	args := m.Called(ctx, message)
	return args.Bool(0), args.Error(1)
}

func (m *MessageRepository) Query(ctx context.Context, filters repository.Filters, limit, offset int) ([]model.Message, int64, error) {
	args := m.Called(ctx, filters, limit, offset)
	return args.Get(0).([]model.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MessageRepository) Aggregate(ctx context.Context) (repository.AggregateResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(repository.AggregateResult), args.Error(1)
}

func (m *MessageRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
