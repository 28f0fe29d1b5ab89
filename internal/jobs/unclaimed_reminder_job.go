package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/Info-FreshDrop/freshdrop-sub001/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ReminderStaleAfter is how long an order may sit unclaimed before the sweep
// re-announces it to operators.
const ReminderStaleAfter = 15 * time.Minute

// UnclaimedReminderJob periodically re-announces stale unclaimed orders on
// the event bus. An order that no operator picked up after the initial
// payment_confirmed event would otherwise sit invisible until someone
// happens to browse the pool.
type UnclaimedReminderJob struct {
	uowFactory ports.UnitOfWorkFactory
	dispatcher ports.NotificationDispatcher
	cron       *cron.Cron
	logger     *slog.Logger
	now        func() time.Time
}

// NewUnclaimedReminderJob creates the re-notification sweep.
// The repository is used outside a transaction; the sweep only reads.
func NewUnclaimedReminderJob(
	uowFactory ports.UnitOfWorkFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) *UnclaimedReminderJob {
	return &UnclaimedReminderJob{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "unclaimed_reminder_job"),
		now:        time.Now,
	}
}

// Start begins the sweep, running every five minutes.
func (j *UnclaimedReminderJob) Start() error {
	_, err := j.cron.AddFunc("0 */5 * * * *", j.sweep)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unclaimed reminder job started (running every 5 minutes)")
	return nil
}

// Stop stops the sweep.
func (j *UnclaimedReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Unclaimed reminder job stopped")
}

func (j *UnclaimedReminderJob) sweep() {
	ctx := context.Background()

	orders, err := j.uowFactory.Create().OrderRepository().GetAllUnclaimed(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Unclaimed reminder sweep failed", "error", err)
		return
	}

	cutoff := j.now().Add(-ReminderStaleAfter)

	for _, o := range orders {
		if o.CreatedAt().After(cutoff) {
			continue
		}

		event := ports.NotificationEvent{
			OrderID:  o.ID(),
			Kind:     ports.EventPaymentConfirmed,
			Audience: ports.AudienceEligibleOperators,
			Zip:      o.Zip(),
			Data: map[string]string{
				"status":   o.Status().String(),
				"reminder": "true",
			},
		}

		if err = j.dispatcher.Notify(ctx, event); err != nil {
			j.logger.WarnContext(ctx, "Failed to dispatch unclaimed reminder",
				"order_id", o.ID().String(), "error", err)
		}
	}
}
