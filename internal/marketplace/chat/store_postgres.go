// Copyright (c) 2026 EasyBuy. All rights reserved.

package chat

import (
	"context"

	"github.com/easybuy/api/internal/platform/dberr"
	"github.com/easybuy/api/internal/platform/postgres"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db postgres.DB
}

// NewPostgresRepository creates a new Postgres implementation for chat messages.
func NewPostgresRepository(db postgres.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Conversation implements [Repository].
func (repository *PostgresRepository) Conversation(ctx context.Context, userID, otherID int64) ([]*Message, error) {
	const query = `
		SELECT id, sender_id, receiver_id, product_id, message, sent_at
		FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY sent_at ASC, id ASC`

	rows, err := repository.db.Query(ctx, query, userID, otherID)
	if err != nil {
		return nil, dberr.Wrap(err, "postgres_chat_repo_conversation_failed")
	}
	defer rows.Close()

	messages := []*Message{}
	for rows.Next() {
		message := &Message{}
		if err := rows.Scan(
			&message.ID, &message.SenderID, &message.ReceiverID,
			&message.ProductID, &message.Message, &message.SentAt,
		); err != nil {
			return nil, dberr.Wrap(err, "postgres_chat_repo_scan_failed")
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "postgres_chat_repo_conversation_failed")
	}

	return messages, nil
}

// Send implements [Repository].
func (repository *PostgresRepository) Send(ctx context.Context, message *Message) error {
	const query = `
		INSERT INTO chat_messages (sender_id, receiver_id, product_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, sent_at`

	err := repository.db.QueryRow(ctx, query, message.SenderID, message.ReceiverID, message.ProductID, message.Message).
		Scan(&message.ID, &message.SentAt)
	return dberr.Wrap(err, "postgres_chat_repo_send_failed")
}
