package messages

import (
	"context"
	"fmt"

	"github.com/Samayank/Renal-Tumor-Detection/internal/dbx"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the message and fills in the store-assigned id and
// creation timestamp. The single INSERT .. RETURNING keeps id/timestamp
// assignment atomic under concurrent writers.
func (r *PostgresRepository) Create(ctx context.Context, msg *models.Message) (*models.Message, error) {

	query :=
		`INSERT INTO messages (sender_id, content, message_type, channel)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		msg.Sender.ID, msg.Content, msg.MessageType, msg.Channel).Scan(&msg.ID, &msg.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

// ListByChannel returns the channel's messages in creation order with the
// sender identity resolved.
func (r *PostgresRepository) ListByChannel(ctx context.Context, channel string) ([]*models.Message, error) {
	query :=
		`SELECT m.id, m.sender_id, u.name, m.content, m.message_type, m.channel, m.created_at
		 FROM messages m
		 JOIN users u ON u.id = m.sender_id
		 WHERE m.channel = $1
		 ORDER BY m.created_at, m.id
		 `

	rows, err := r.db.QueryContext(ctx, query, channel)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var msgs []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		if err := rows.Scan(&msg.ID, &msg.Sender.ID, &msg.Sender.Name,
			&msg.Content, &msg.MessageType, &msg.Channel, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msgs, nil
}

func (r *PostgresRepository) DeleteByChannel(ctx context.Context, channel string) error {
	query := `DELETE FROM messages WHERE channel = $1`

	if _, err := r.db.ExecContext(ctx, query, channel); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) error {
	query := `DELETE FROM messages`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
