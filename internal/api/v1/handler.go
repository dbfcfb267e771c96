package v1

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pushpitkamboj/lyftrAI-assignment/internal/api/middleware"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/model"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/repository"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/service"
	"github.com/pushpitkamboj/lyftrAI-assignment/internal/signature"
)

type Handler struct {
	logger      *zap.Logger
	webhook     service.WebhookService
	query       service.QueryService
	stats       service.StatsService
	verifier    *signature.Verifier
	messageRepo repository.MessageRepository
}

func NewHandler(logger *zap.Logger, webhook service.WebhookService, query service.QueryService,
	stats service.StatsService, verifier *signature.Verifier,
	messageRepo repository.MessageRepository) *Handler {
	return &Handler{
		logger:      logger,
		webhook:     webhook,
		query:       query,
		stats:       stats,
		verifier:    verifier,
		messageRepo: messageRepo,
	}
}

func (h *Handler) Live(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{Status: "live"})
}

// Ready reports whether the service can actually serve: the webhook
// secret must be configured and the store reachable.
func (h *Handler) Ready(c *fiber.Ctx) error {
	if !h.verifier.Configured() {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(HealthResponse{Status: "not ready"})
	}

	if err := h.messageRepo.Ping(c.UserContext()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).
			JSON(HealthResponse{Status: "not ready"})
	}

	return c.JSON(HealthResponse{Status: "ready"})
}

// Webhook hands the raw body bytes and signature header to the ingestion
// pipeline. The signature was computed over those exact bytes, so no
// parsing happens before verification.
func (h *Handler) Webhook(c *fiber.Ctx) error {
	result, err := h.webhook.Ingest(c.UserContext(), c.Body(), c.Get(headerSignature))

	if result.MessageID != "" {
		c.Locals(middleware.LocalMessageID, result.MessageID)
	}
	if err != nil {
		return err
	}

	c.Locals(middleware.LocalResult, result.Result)
	c.Locals(middleware.LocalDuplicate, result.Duplicate())

	return c.JSON(WebhookResponse{Status: "ok"})
}

func (h *Handler) Messages(c *fiber.Ctx) error {
	params := service.ListMessagesParams{
		Limit:  c.Query("limit"),
		Offset: c.Query("offset"),
		From:   c.Query("from"),
		Since:  c.Query("since"),
		Q:      c.Query("q"),
	}

	result, err := h.query.ListMessages(c.UserContext(), params)
	if err != nil {
		return err
	}

	data := make([]MessageResponse, 0, len(result.Messages))
	for _, m := range result.Messages {
		data = append(data, toMessageResponse(m))
	}

	return c.JSON(GetMessagesResponse{
		Data:   data,
		Total:  result.Total,
		Limit:  result.Limit,
		Offset: result.Offset,
	})
}

func (h *Handler) Stats(c *fiber.Ctx) error {
	result, err := h.stats.Stats(c.UserContext())
	if err != nil {
		return err
	}

	perSender := make([]SenderCountResponse, 0, len(result.PerSender))
	for _, s := range result.PerSender {
		perSender = append(perSender, SenderCountResponse{From: s.From, Count: s.Count})
	}

	return c.JSON(StatsResponse{
		TotalMessages:     result.TotalMessages,
		SendersCount:      result.SendersCount,
		MessagesPerSender: perSender,
		FirstMessageTS:    formatTS(result.FirstTS),
		LastMessageTS:     formatTS(result.LastTS),
	})
}

func toMessageResponse(m model.Message) MessageResponse {
	return MessageResponse{
		MessageID: m.MessageID,
		From:      m.FromMSISDN,
		To:        m.ToMSISDN,
		TS:        m.TS.UTC().Format(time.RFC3339),
		Text:      m.Text,
	}
}

func formatTS(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
