// internal/app/system/tasks/scheduler.go
package tasks

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/pantry/jobs"
	"go.uber.org/zap"
)

// NewScheduler registers js on a pantry scheduler. Each handler is wrapped
// so a panic becomes a failed run, logged by the scheduler, instead of
// ending the process. Nothing runs until Start.
func NewScheduler(logger *zap.Logger, js ...*jobs.ScheduledJob) (*jobs.Scheduler, error) {
	s := jobs.NewScheduler(logger)
	for _, j := range js {
		j.Handler = guard(j.Name, j.Handler)
		if err := s.Add(j); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func guard(name string, fn func(context.Context) error) func(context.Context) error {
	return func(ctx context.Context) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("job %s panicked: %v", name, rec)
			}
		}()
		return fn(ctx)
	}
}
