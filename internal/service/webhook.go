package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/constants"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/model"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/repository"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/signature"
)

type WebhookService interface {
	Ingest(ctx context.Context, rawBody []byte, signatureHeader string) (IngestResult, error)
}

type webhook struct {
	verifier    *signature.Verifier
	messageRepo repository.MessageRepository
	logger      *zap.Logger
}

func NewWebhookService(verifier *signature.Verifier, messageRepo repository.MessageRepository,
	logger *zap.Logger) WebhookService {
	return &webhook{verifier: verifier, messageRepo: messageRepo, logger: logger}
}

// Ingest runs verify, decode, validate and the dedup insert in that order,
// short-circuiting on the first failure. A redelivered message_id is a
// success classified duplicate; nothing is written for it.
func (w *webhook) Ingest(ctx context.Context, rawBody []byte, signatureHeader string) (IngestResult, error) {
	if err := w.verifier.Verify(rawBody, signatureHeader); err != nil {
		w.logger.Warn("Rejected webhook with invalid signature")
		return IngestResult{}, NewServiceError(constants.ErrCodeInvalidSignature, err)
	}

	var payload WebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		w.logger.Warn("Failed to decode webhook body", zap.Error(err))
		return IngestResult{}, NewServiceError(constants.ErrCodeInvalidRequestBody, err)
	}

	ts, err := validatePayload(payload)
	if err != nil {
		w.logger.Warn("Webhook payload failed validation",
			zap.Error(err),
			zap.String("messageID", payload.MessageID))
		return IngestResult{MessageID: payload.MessageID},
			NewServiceError(constants.ErrCodeValidationFailed, err)
	}

	message := model.Message{
		MessageID:  payload.MessageID,
		FromMSISDN: payload.From,
		ToMSISDN:   payload.To,
		TS:         ts,
		Text:       payload.Text,
		ReceivedAt: time.Now().UTC(),
	}

	created, err := w.messageRepo.InsertIfAbsent(ctx, &message)
	if err != nil {
		if errors.Is(err, repository.ErrStorageUnavailable) {
			w.logger.Error("Storage unavailable during ingestion",
				zap.String("messageID", payload.MessageID))
			return IngestResult{MessageID: payload.MessageID},
				NewServiceError(constants.ErrCodeStorageUnavailable, err)
		}

		w.logger.Error("Failed to insert message",
			zap.Error(err),
			zap.String("messageID", payload.MessageID))
		return IngestResult{MessageID: payload.MessageID},
			NewServiceError(constants.ErrCodeInternalError, err)
	}

	result := IngestResult{Result: ResultCreated, MessageID: payload.MessageID}
	if !created {
		result.Result = ResultDuplicate
		w.logger.Info("Duplicate message delivery",
			zap.String("messageID", payload.MessageID),
			zap.String("from", payload.From))
		return result, nil
	}

	w.logger.Info("Message ingested",
		zap.String("messageID", payload.MessageID),
		zap.String("from", payload.From),
		zap.String("to", payload.To))

	return result, nil
}
