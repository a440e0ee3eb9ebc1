package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/tasks"
	"github.com/urfave/cli/v3"
)

func batchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "batch",
		Usage: "Batch profile refresh operations",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Refresh every registered profile once",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Pretty-print the run summary"},
					&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "Suppress per-tenant progress output"},
				},
				Action: r.BatchRun,
			},
			{
				Name:      "refresh",
				Usage:     "Refresh a single profile immediately",
				ArgsUsage: "<uid>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Pretty-print JSON output"},
				},
				Action: r.BatchRefresh,
			},
		},
	}
}

// BatchRun executes one full refresh cycle over all registered profiles and
// prints the run summary. Per-tenant progress streams to the terminal unless
// --quiet is set.
func (r *Runner) BatchRun(ctx context.Context, cmd *cli.Command) error {
	c, err := r.buildCore()
	if err != nil {
		return err
	}

	var progress chan tasks.ProgressUpdate
	done := make(chan struct{})
	if !cmd.Bool("quiet") {
		progress = make(chan tasks.ProgressUpdate, 64)
		go func() {
			defer close(done)
			for update := range progress {
				r.writePlainln("%s", update.Message)
			}
		}()
	} else {
		close(done)
	}

	summary := c.scheduler.RunBatch(ctx, progress)
	if progress != nil {
		close(progress)
	}
	<-done

	return r.writeJSON(summary, cmd.Bool("pretty"))
}

// BatchRefresh forces an immediate refresh of a single profile, bypassing the
// scheduled cadence.
func (r *Runner) BatchRefresh(ctx context.Context, cmd *cli.Command) error {
	uid := cmd.Args().First()
	if uid == "" {
		return fmt.Errorf("%w: tenant uid", shared.ErrMissingArgument)
	}

	c, err := r.buildCore()
	if err != nil {
		return err
	}

	tenant, err := c.tenants.GetByUID(uid)
	if err != nil {
		return fmt.Errorf("failed to find profile: %w", err)
	}

	result, err := c.scheduler.RefreshOne(ctx, tenant)
	if err != nil {
		return fmt.Errorf("refresh failed for %s: %w", uid, err)
	}

	return r.writeJSON(result, cmd.Bool("pretty"))
}
