package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/constants"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/repository"
)

type StatsService interface {
	Stats(ctx context.Context) (repository.AggregateResult, error)
}

type stats struct {
	messageRepo repository.MessageRepository
	logger      *zap.Logger
}

func NewStatsService(messageRepo repository.MessageRepository, logger *zap.Logger) StatsService {
	return &stats{messageRepo: messageRepo, logger: logger}
}

func (s *stats) Stats(ctx context.Context) (repository.AggregateResult, error) {
	result, err := s.messageRepo.Aggregate(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrStorageUnavailable) {
			return repository.AggregateResult{},
				NewServiceError(constants.ErrCodeStorageUnavailable, err)
		}

		s.logger.Error("Failed to aggregate messages", zap.Error(err))
		return repository.AggregateResult{},
			NewServiceError(constants.ErrCodeInternalError, err)
	}

	if result.PerSender == nil {
		result.PerSender = []repository.SenderCount{}
	}

	return result, nil
}
