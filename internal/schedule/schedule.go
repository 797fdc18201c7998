// Package schedule runs a job on a cron schedule until its context ends.
package schedule

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	appLog "termcal/internal/log"
)

// Validate reports whether spec is a standard five-field cron expression
// (descriptors such as @daily are accepted too).
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// Run calls job on every tick of spec until ctx is canceled. A tick that
// arrives while the previous job is still running is skipped.
func Run(ctx context.Context, spec string, job func(context.Context)) error {
	if err := Validate(spec); err != nil {
		return err
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	id, err := c.AddFunc(spec, func() {
		if ctx.Err() != nil {
			return
		}
		job(ctx)
	})
	if err != nil {
		return err
	}

	c.Start()
	appLog.Info("schedule started", "spec", spec, "next", c.Entry(id).Next)

	<-ctx.Done()

	// Wait for a running job to finish before returning.
	<-c.Stop().Done()
	appLog.Info("schedule stopped", "spec", spec)
	return nil
}
