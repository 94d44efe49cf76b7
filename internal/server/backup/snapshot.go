// Package backup produces daily JSON archives of the chat history and
// ships them to S3-compatible blob storage. One artifact is written per
// channel per calendar day; channels with no history are skipped.
package backup

import (
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

// Snapshot is the archived artifact for one channel.
type Snapshot struct {
	Channel       string            `json:"channel"`
	Timestamp     time.Time         `json:"timestamp"`
	MessagesCount int               `json:"messagesCount"`
	Messages      []SnapshotMessage `json:"messages"`
}

// SnapshotMessage flattens the sender to a display name; archived records
// do not reference user ids.
type SnapshotMessage struct {
	Sender      string    `json:"sender"`
	Content     string    `json:"content"`
	MessageType string    `json:"messageType"`
	CreatedAt   time.Time `json:"createdAt"`
}

// BuildSnapshot converts the channel history into an archive artifact,
// preserving message order.
func BuildSnapshot(channel string, messages []*models.Message, at time.Time) *Snapshot {
	return &Snapshot{
		Channel:       channel,
		Timestamp:     at,
		MessagesCount: len(messages),
		Messages: lo.Map(messages, func(m *models.Message, _ int) SnapshotMessage {
			return SnapshotMessage{
				Sender:      m.Sender.Name,
				Content:     m.Content,
				MessageType: m.MessageType,
				CreatedAt:   m.CreatedAt,
			}
		}),
	}
}

// ObjectKey builds the storage key for a channel's daily artifact.
// date must be formatted as YYYY-MM-DD.
func ObjectKey(prefix, channel, date string) string {
	key := fmt.Sprintf("chat-backup-%s-%s.json", channel, date)
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}
