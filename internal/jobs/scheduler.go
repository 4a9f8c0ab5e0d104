package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Specs are six-field cron expressions (with seconds), evaluated in UTC.
type Specs struct {
	PaymentReminder     string
	RentalStartReminder string
}

type Scheduler struct {
	cron   *cron.Cron
	logger Logger
}

// NewScheduler registers the reminder jobs of runner. An invalid spec is an error.
func NewScheduler(runner *Runner, specs Specs, logger Logger) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	if _, err := c.AddFunc(specs.PaymentReminder, runner.SendPaymentReminders); err != nil {
		return nil, err
	}
	if _, err := c.AddFunc(specs.RentalStartReminder, runner.SendRentalStartReminders); err != nil {
		return nil, err
	}

	logger.Info("Scheduler: registered %d jobs", len(c.Entries()))
	return &Scheduler{cron: c, logger: logger}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler: stopped")
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
