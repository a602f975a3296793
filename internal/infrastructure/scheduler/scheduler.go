package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiryRunner closes stale pending payment attempts.
type ExpiryRunner interface {
	ExpireStaleAttempts(ctx context.Context) (int, error)
}

// Scheduler manages the cron jobs.
type Scheduler struct {
	cron     *cron.Cron
	expiry   ExpiryRunner
	schedule string
	timeout  time.Duration
	log      *zap.Logger
}

func NewScheduler(expiry ExpiryRunner, schedule string, log *zap.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(zap.NewStdLog(log))
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger))),
		expiry:   expiry,
		schedule: schedule,
		timeout:  time.Minute,
		log:      log,
	}
}

// Start registers the jobs and starts the cron scheduler.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.ExpirePayments); err != nil {
		s.log.Error("failed to schedule payment expiry job", zap.Error(err))
		return err
	}
	s.log.Info("scheduled payment expiry job", zap.String("schedule", s.schedule))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler; the returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) ExpirePayments() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	n, err := s.expiry.ExpireStaleAttempts(ctx)
	if err != nil {
		s.log.Error("payment expiry job finished with errors", zap.Int("expired", n), zap.Error(err))
		return
	}
	s.log.Info("payment expiry job finished", zap.Int("expired", n), zap.Duration("took", time.Since(start)))
}
