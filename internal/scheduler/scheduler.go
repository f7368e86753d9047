// Package scheduler wraps robfig/cron for the unattended daily backup.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
)

// dailySpec fires once per day at midnight in the host's time zone.
const dailySpec = "0 0 * * *"

type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
	}
}

// Daily registers job to run once per day at midnight. Registration returns
// immediately; the job only fires after Start.
func (s *Scheduler) Daily(job func(context.Context) error) error {
	return s.AddJob(dailySpec, job)
}

// AddJob registers job under an arbitrary cron spec. A job error never
// propagates past the trigger boundary; the job is expected to log it.
func (s *Scheduler) AddJob(spec string, job func(context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		_ = job(context.Background())
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
