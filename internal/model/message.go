package model

import "time"

// Message is a delivery notification received on the webhook. Rows are
// append-only: a message is written once on first delivery of its
// message_id and never updated.
type Message struct {
	MessageID  string    `gorm:"column:message_id;primaryKey;size:128"`
	FromMSISDN string    `gorm:"column:from_msisdn;size:32;index:idx_messages_from"`
	ToMSISDN   string    `gorm:"column:to_msisdn;size:32"`
	TS         time.Time `gorm:"column:ts;index:idx_messages_ts"`
	Text       *string   `gorm:"column:text;type:text"`
	ReceivedAt time.Time `gorm:"column:received_at"`
}

func (Message) TableName() string {
	return "messages"
}
