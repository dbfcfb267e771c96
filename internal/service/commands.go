package service

import "github.com/pushpitkamboj/lyftrAI-assignment/internal/model"

// WebhookPayload is the decoded webhook body. Decoding happens strictly
// after the signature over the raw bytes has been verified.
type WebhookPayload struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	TS        string  `json:"ts"`
	Text      *string `json:"text"`
}

const (
	ResultCreated   = "created"
	ResultDuplicate = "duplicate"
)

type IngestResult struct {
	Result    string
	MessageID string
}

func (r IngestResult) Duplicate() bool {
	return r.Result == ResultDuplicate
}

// ListMessagesParams carries the raw query-string values; the query
// service parses and validates them.
type ListMessagesParams struct {
	Limit  string
	Offset string
	From   string
	Since  string
	Q      string
}

type ListMessagesResult struct {
	Messages []model.Message
	Total    int64
	Limit    int
	Offset   int
}
