// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/dalemusser/tetsupaint/internal/app/system/mailer"
	"github.com/dalemusser/tetsupaint/internal/app/system/ratelimit"
	"github.com/dalemusser/tetsupaint/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/jobs"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// LimiterSweepJob creates a job that forgets rate-limit buckets unused for idle.
func LimiterSweepJob(lim *ratelimit.Limiter, logger *zap.Logger, idle time.Duration) *jobs.ScheduledJob {
	return &jobs.ScheduledJob{
		Name:     "ratelimit-sweep",
		Interval: 10 * time.Minute,
		Timeout:  30 * time.Second,
		Handler: func(ctx context.Context) error {
			if n := lim.Sweep(idle); n > 0 {
				logger.Debug("swept idle rate-limit buckets", zap.Int("count", n), zap.Int("remaining", lim.Len()))
			}
			return nil
		},
	}
}

// UnnotifiedInquiries is the inquiry store as seen by the retry job.
type UnnotifiedInquiries interface {
	ListUnnotified(ctx context.Context, createdBefore, createdAfter time.Time, limit int) ([]models.Inquiry, error)
	MarkNotified(ctx context.Context, id primitive.ObjectID) error
}

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, e mailer.Email) error
}

// NotifyRetry configures InquiryNotifyRetryJob.
type NotifyRetry struct {
	Inbox    string
	SiteName string
	MinAge   time.Duration // leave fresh inquiries to the request that created them
	MaxAge   time.Duration // give up on inquiries older than this
	Batch    int
}

// InquiryNotifyRetryJob creates a job that resends notifications for
// inquiries whose email failed when they were submitted.
func InquiryNotifyRetryJob(store UnnotifiedInquiries, sender Sender, cfg NotifyRetry, logger *zap.Logger) *jobs.ScheduledJob {
	return &jobs.ScheduledJob{
		Name:     "inquiry-notify-retry",
		Interval: 15 * time.Minute,
		Timeout:  2 * time.Minute,
		Handler: func(ctx context.Context) error {
			return retryNotifications(ctx, store, sender, cfg, time.Now(), logger)
		},
	}
}

func retryNotifications(ctx context.Context, store UnnotifiedInquiries, sender Sender, cfg NotifyRetry, now time.Time, logger *zap.Logger) error {
	pending, err := store.ListUnnotified(ctx, now.Add(-cfg.MinAge), now.Add(-cfg.MaxAge), cfg.Batch)
	if err != nil {
		return err
	}

	sent := 0
	for _, in := range pending {
		if err := sender.Send(ctx, mailer.InquiryNotification(in, cfg.SiteName, cfg.Inbox)); err != nil {
			// The relay is likely still down; try again next run.
			logger.Warn("inquiry notification retry failed",
				zap.String("reference", in.Reference), zap.Error(err))
			break
		}
		if err := store.MarkNotified(ctx, in.ID); err != nil {
			return err
		}
		sent++
	}

	if sent > 0 {
		logger.Info("resent inquiry notifications", zap.Int("count", sent), zap.Int("pending", len(pending)))
	}
	return nil
}
