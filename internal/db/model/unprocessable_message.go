package model

import "time"

// UnprocessableMessageDocument is a queued ledger command that was rejected
// and parked for inspection. ReceivedAt keeps replays in arrival order,
// which matters because ledger operations do not commute.
type UnprocessableMessageDocument struct {
	MessageBody string `bson:"message_body"`
	Receipt     string `bson:"receipt"`
	ReceivedAt  int64  `bson:"received_at"` // unix milliseconds
}

func NewUnprocessableMessageDocument(messageBody, receipt string) *UnprocessableMessageDocument {
	return &UnprocessableMessageDocument{
		MessageBody: messageBody,
		Receipt:     receipt,
		ReceivedAt:  time.Now().UnixMilli(),
	}
}
