// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package chat stores direct messages between two users, optionally about a product.

A conversation is every message sent either way between the caller and the
other user, oldest first. Both routes require authentication.
*/
package chat

import (
	"context"
	"time"
)

// Message is one chat line.
type Message struct {
	ID         int64     `json:"id"`
	SenderID   int64     `json:"sender_id"`
	ReceiverID int64     `json:"receiver_id"`
	ProductID  *int64    `json:"product_id"`
	Message    string    `json:"message"`
	SentAt     time.Time `json:"sent_at"`
}

// SendInput is the body of a new message.
type SendInput struct {
	Message   string `json:"message"`
	ProductID *int64 `json:"product_id"`
}

const (
	FieldMessage = "message"

	MessageMaxLen = 2000

	MsgMessageRequired = "Message required"
	MsgSent            = "Sent"
)

// Repository defines the persistence contract for chat messages.
type Repository interface {
	// Conversation returns the messages between two users ordered by sent_at.
	Conversation(ctx context.Context, userID, otherID int64) ([]*Message, error)

	/*
		Send stores a message.

		Returns:
		  - error: wraps dberr.ErrForeignKey when the receiver or product does not exist
	*/
	Send(ctx context.Context, message *Message) error
}
