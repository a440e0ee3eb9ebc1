package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

func fetchCommand(r *Runner) *cli.Command {
	flags := []cli.Flag{
		&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Pretty-print JSON output"},
	}

	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch profile data for a single artist",
		Commands: []*cli.Command{
			{
				Name:      "releases",
				Usage:     "Fetch the release catalog with matched streams",
				ArgsUsage: "<uid>",
				Flags:     flags,
				Action:    r.FetchReleases,
			},
			{
				Name:      "tracks",
				Usage:     "Fetch standalone streaming tracks",
				ArgsUsage: "<uid>",
				Flags:     flags,
				Action:    r.FetchTracks,
			},
			{
				Name:      "events",
				Usage:     "Fetch upcoming events",
				ArgsUsage: "<uid>",
				Flags:     flags,
				Action:    r.FetchEvents,
			},
			{
				Name:      "all",
				Usage:     "Fetch the full aggregated profile",
				ArgsUsage: "<uid>",
				Flags:     flags,
				Action:    r.FetchAll,
			},
		},
	}
}

func (r *Runner) resolveTenant(uid string) (*core, *models.Tenant, error) {
	if uid == "" {
		return nil, nil, fmt.Errorf("%w: tenant uid", shared.ErrMissingArgument)
	}

	c, err := r.buildCore()
	if err != nil {
		return nil, nil, err
	}

	tenant, err := c.tenants.GetByUID(uid)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return c, tenant, nil
}

// FetchReleases prints the tenant's release catalog as JSON.
func (r *Runner) FetchReleases(ctx context.Context, cmd *cli.Command) error {
	c, tenant, err := r.resolveTenant(cmd.Args().First())
	if err != nil {
		return err
	}

	releases, err := c.aggregator.GetReleases(ctx, tenant)
	if err != nil {
		return fmt.Errorf("failed to fetch releases: %w", err)
	}

	return r.writeJSON(releases, cmd.Bool("pretty"))
}

// FetchTracks prints the tenant's standalone streaming tracks as JSON.
func (r *Runner) FetchTracks(ctx context.Context, cmd *cli.Command) error {
	c, tenant, err := r.resolveTenant(cmd.Args().First())
	if err != nil {
		return err
	}

	tracks, err := c.aggregator.GetStreamingTracks(ctx, tenant)
	if err != nil {
		return fmt.Errorf("failed to fetch tracks: %w", err)
	}

	return r.writeJSON(tracks, cmd.Bool("pretty"))
}

// FetchEvents prints the tenant's upcoming events as JSON.
func (r *Runner) FetchEvents(ctx context.Context, cmd *cli.Command) error {
	c, tenant, err := r.resolveTenant(cmd.Args().First())
	if err != nil {
		return err
	}

	events, err := c.aggregator.GetEvents(ctx, tenant)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	return r.writeJSON(events, cmd.Bool("pretty"))
}

// FetchAll prints the tenant's full aggregated profile as JSON.
func (r *Runner) FetchAll(ctx context.Context, cmd *cli.Command) error {
	c, tenant, err := r.resolveTenant(cmd.Args().First())
	if err != nil {
		return err
	}

	result, err := c.aggregator.GetAll(ctx, tenant)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	return r.writeJSON(result, cmd.Bool("pretty"))
}
