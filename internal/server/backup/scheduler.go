package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Samayank/Renal-Tumor-Detection/internal/common"
	"github.com/Samayank/Renal-Tumor-Detection/internal/logging"
	"github.com/Samayank/Renal-Tumor-Detection/internal/server/models"
)

// MessageLister reads the full history of one channel.
type MessageLister interface {
	List(ctx context.Context, channel string) ([]*models.Message, error)
}

// Uploader ships one artifact to blob storage.
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte) error
}

// Scheduler runs the daily archival cycle. It arms a single timer for the
// next trigger time instead of polling, and keeps a per-day completion set
// so a channel is archived at most once per calendar day. A channel is
// marked complete only after its upload succeeded, so failed uploads are
// retried on the next trigger.
type Scheduler struct {
	lister   MessageLister
	uploader Uploader
	logger   logging.Logger

	hour    int
	prefix  string
	timeout time.Duration

	now func() time.Time

	doneDate string
	done     map[string]struct{}
}

func NewScheduler(lister MessageLister, uploader Uploader, logger logging.Logger, hour int, prefix string, timeout time.Duration) *Scheduler {
	return &Scheduler{
		lister:   lister,
		uploader: uploader,
		logger:   logger.With("module", "backup_scheduler"),
		hour:     hour,
		prefix:   prefix,
		timeout:  timeout,
		now:      time.Now,
		done:     make(map[string]struct{}),
	}
}

// Run blocks until ctx is cancelled, firing one archival cycle at each
// trigger time.
func (s *Scheduler) Run(ctx context.Context) {
	for {
		next := s.nextTrigger(s.now())
		s.logger.Info(ctx, "next backup scheduled", "at", next)

		timer := time.NewTimer(next.Sub(s.now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.runOnce(ctx)
		}
	}
}

// nextTrigger returns the first configured-hour boundary strictly after now.
func (s *Scheduler) nextTrigger(now time.Time) time.Time {
	trigger := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !trigger.After(now) {
		trigger = trigger.Add(24 * time.Hour)
	}
	return trigger
}

// runOnce archives every channel that still needs it for today's date.
// Failures affect only the failing channel.
func (s *Scheduler) runOnce(ctx context.Context) {
	now := s.now()
	date := now.Format("2006-01-02")
	if s.doneDate != date {
		s.doneDate = date
		s.done = make(map[string]struct{})
	}

	for _, channel := range models.Channels {
		if _, ok := s.done[channel]; ok {
			continue
		}
		if err := s.archiveChannel(ctx, channel, date, now); err != nil {
			s.logger.Error(ctx, "channel backup failed", "channel", channel, "error", err)
			continue
		}
		s.done[channel] = struct{}{}
	}
}

func (s *Scheduler) archiveChannel(ctx context.Context, channel, date string, now time.Time) error {
	messages, err := s.lister.List(ctx, channel)
	if err != nil {
		return fmt.Errorf("%w: list %s: %s", common.ErrorBackup, channel, err)
	}
	if len(messages) == 0 {
		s.logger.Debug(ctx, "channel empty, skipping", "channel", channel)
		return nil
	}

	body, err := json.MarshalIndent(BuildSnapshot(channel, messages, now), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %s", common.ErrorBackup, channel, err)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	key := ObjectKey(s.prefix, channel, date)
	if err := s.uploader.Upload(uploadCtx, key, body); err != nil {
		return fmt.Errorf("%w: %s", common.ErrorBackup, err)
	}

	s.logger.Info(ctx, "channel archived", "channel", channel, "key", key, "messages", len(messages))
	return nil
}
