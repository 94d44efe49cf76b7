package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/messages"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/repositories/users"
)

// MessageService is the message store: a durable, ordered log of chat
// messages per channel. The database is the single source of truth; the
// per-channel cache is advisory, filled on read and dropped on every write
// to that channel. Returned slices must be treated as read-only.
type MessageService struct {
	users    users.Repository
	messages messages.Repository

	mu    sync.Mutex
	cache map[string][]*models.Message
}

func NewMessageService(usersRepo users.Repository, messagesRepo messages.Repository) *MessageService {
	return &MessageService{
		users:    usersRepo,
		messages: messagesRepo,
		cache:    make(map[string][]*models.Message),
	}
}

// Append validates, persists and returns the stored message with the sender
// identity resolved. Unknown senders and empty fields are ErrorValidation;
// the store is left unchanged in that case.
func (s *MessageService) Append(ctx context.Context, senderID, channel, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" || channel == "" || senderID == "" {
		return nil, fmt.Errorf("%w: senderId, channel and content are required", common.ErrorValidation)
	}
	if !models.ValidChannel(channel) {
		return nil, fmt.Errorf("%w: unknown channel %q", common.ErrorValidation, channel)
	}

	sender, err := s.users.GetByID(ctx, senderID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: unknown sender %q", common.ErrorValidation, senderID)
		}
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}

	msg := &models.Message{
		Sender:      models.UserRef{ID: sender.ID, Name: sender.Name},
		Content:     content,
		MessageType: models.MessageTypeText,
		Channel:     channel,
	}

	stored, err := s.messages.Create(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}

	s.invalidate(channel)

	return stored, nil
}

// List returns the channel's messages in creation order, serving repeated
// reads from the cache until the next write invalidates it. Only the fixed
// channel set is cacheable; anything else is ErrorValidation.
func (s *MessageService) List(ctx context.Context, channel string) ([]*models.Message, error) {
	if !models.ValidChannel(channel) {
		return nil, fmt.Errorf("%w: unknown channel %q", common.ErrorValidation, channel)
	}

	s.mu.Lock()
	if cached, ok := s.cache[channel]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	msgs, err := s.messages.ListByChannel(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}

	s.mu.Lock()
	s.cache[channel] = msgs
	s.mu.Unlock()

	return msgs, nil
}

// Clear deletes all messages, scoped to one channel when channel is
// non-empty. Irreversible.
func (s *MessageService) Clear(ctx context.Context, channel string) error {
	if channel == "" {
		if err := s.messages.DeleteAll(ctx); err != nil {
			return fmt.Errorf("%w: %s", common.ErrorStorage, err)
		}
		s.invalidateAll()
		return nil
	}

	if err := s.messages.DeleteByChannel(ctx, channel); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorStorage, err)
	}
	s.invalidate(channel)
	return nil
}

func (s *MessageService) invalidate(channel string) {
	s.mu.Lock()
	delete(s.cache, channel)
	s.mu.Unlock()
}

func (s *MessageService) invalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string][]*models.Message)
	s.mu.Unlock()
}
