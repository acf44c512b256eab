// Copyright (c) 2026 EasyBuy. All rights reserved.

package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/easybuy/api/internal/platform/apperr"
	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/sec"
	"github.com/easybuy/api/internal/platform/validate"
)

// constraintProduct is the foreign key from chat_messages to products.
const constraintProduct = "chat_messages_product_id_fkey"

// Service implements the chat business logic.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new chat [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// Conversation returns the caller's messages with another user.
func (service *Service) Conversation(ctx context.Context, identity *sec.Identity, otherID int64) ([]*Message, error) {
	messages, err := service.repository.Conversation(ctx, identity.ID, otherID)
	if err != nil {
		return nil, fmt.Errorf("chat_service_conversation_failed: %w", err)
	}
	return messages, nil
}

/*
Send stores a message from the caller to another user.

Returns:
  - *Message: The stored message
  - error: 400 when the message is blank or too long, 404 when the receiver
    (or the referenced product) does not exist
*/
func (service *Service) Send(ctx context.Context, identity *sec.Identity, receiverID int64, input SendInput) (*Message, error) {
	text := strings.TrimSpace(input.Message)
	if text == "" {
		return nil, validate.FieldError(FieldMessage, MsgMessageRequired)
	}

	validator := &validate.Validator{}
	validator.MaxLen(FieldMessage, text, MessageMaxLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	message := &Message{
		SenderID:   identity.ID,
		ReceiverID: receiverID,
		ProductID:  input.ProductID,
		Message:    text,
	}
	if err := service.repository.Send(ctx, message); err != nil {
		if foreignKeyError, ok := dberr.AsForeignKey(err); ok {
			if foreignKeyError.Constraint == constraintProduct {
				return nil, apperr.NotFound("Product")
			}
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("chat_service_send_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "chat_message_sent",
		slog.Int64("message_id", message.ID),
		slog.Int64("receiver_id", receiverID),
	)

	return message, nil
}
