package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/constants"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/model"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

type QueryService interface {
	ListMessages(ctx context.Context, params ListMessagesParams) (ListMessagesResult, error)
}

type query struct {
	messageRepo repository.MessageRepository
	logger      *zap.Logger
}

func NewQueryService(messageRepo repository.MessageRepository, logger *zap.Logger) QueryService {
	return &query{messageRepo: messageRepo, logger: logger}
}

// ListMessages validates pagination, composes the filters and returns one
// page plus the total match count. Out-of-range limit/offset values are
// rejected, never clamped, so callers cannot silently lose records.
func (q *query) ListMessages(ctx context.Context, params ListMessagesParams) (ListMessagesResult, error) {
	limit := defaultLimit
	if params.Limit != "" {
		v, err := strconv.Atoi(params.Limit)
		if err != nil || v < 1 || v > maxLimit {
			return ListMessagesResult{},
				NewServiceError(constants.ErrCodeInvalidQuery,
					fmt.Errorf("limit must be an integer between 1 and %d", maxLimit))
		}
		limit = v
	}

	offset := 0
	if params.Offset != "" {
		v, err := strconv.Atoi(params.Offset)
		if err != nil || v < 0 {
			return ListMessagesResult{},
				NewServiceError(constants.ErrCodeInvalidQuery,
					errors.New("offset must be a non-negative integer"))
		}
		offset = v
	}

	filters := repository.Filters{From: params.From, Q: params.Q}
	if params.Since != "" {
		since, err := time.Parse(time.RFC3339, params.Since)
		if err != nil {
			return ListMessagesResult{},
				NewServiceError(constants.ErrCodeInvalidQuery,
					errors.New("since must be an ISO-8601 UTC timestamp"))
		}
		utc := since.UTC()
		filters.Since = &utc
	}

	messages, total, err := q.messageRepo.Query(ctx, filters, limit, offset)
	if err != nil {
		if errors.Is(err, repository.ErrStorageUnavailable) {
			return ListMessagesResult{},
				NewServiceError(constants.ErrCodeStorageUnavailable, err)
		}

		q.logger.Error("Failed to query messages", zap.Error(err))
		return ListMessagesResult{}, NewServiceError(constants.ErrCodeInternalError, err)
	}

	if messages == nil {
		messages = []model.Message{}
	}

	return ListMessagesResult{
		Messages: messages,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}
