package v1

type WebhookResponse struct {
	Status string `json:"status"`
}

type MessageResponse struct {
	MessageID string  `json:"message_id"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	TS        string  `json:"ts"`
	Text      *string `json:"text"`
}

type GetMessagesResponse struct {
	Data   []MessageResponse `json:"data"`
	Total  int64             `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type SenderCountResponse struct {
	From  string `json:"from"`
	Count int64  `json:"count"`
}

type StatsResponse struct {
	TotalMessages     int64                 `json:"total_messages"`
	SendersCount      int64                 `json:"senders_count"`
	MessagesPerSender []SenderCountResponse `json:"messages_per_sender"`
	FirstMessageTS    *string               `json:"first_message_ts"`
	LastMessageTS     *string               `json:"last_message_ts"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
