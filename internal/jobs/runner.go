package jobs

import (
	"context"
	"time"
)

const jobTimeout = 5 * time.Minute

// Runner holds the dependencies of scheduled jobs. Jobs only emit notifications;
// they never change bookings or payments.
type Runner struct {
	bookings  BookingLister
	payments  PaymentChecker
	equipment EquipmentReader
	notifier  Notifier
	window    time.Duration
	metrics   Metrics
	logger    Logger
	now       func() time.Time
}

func NewRunner(
	bookings BookingLister,
	payments PaymentChecker,
	equipment EquipmentReader,
	notifier Notifier,
	window time.Duration,
	metrics Metrics,
	logger Logger,
) *Runner {
	return &Runner{
		bookings:  bookings,
		payments:  payments,
		equipment: equipment,
		notifier:  notifier,
		window:    window,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// run executes job with a deadline and turns a panic into a logged failure,
// so one broken run never stops the scheduler.
func (r *Runner) run(name string, job func(ctx context.Context) (int, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Job %s panicked: %v", name, rec)
			r.metrics.JobResult(name, "panic")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := r.now()
	r.logger.Info("Job %s started", name)
	sent, err := job(ctx)
	if err != nil {
		r.logger.Error("Job %s failed after %d notifications: %v", name, sent, err)
		r.metrics.JobResult(name, "error")
		return
	}
	r.logger.Info("Job %s completed: %d notifications in %s", name, sent, r.now().Sub(start))
	r.metrics.JobResult(name, "ok")
}
