package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/providers"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

func tenantsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tenants",
		Usage: "Manage synchronized artist profiles",
		Commands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Register an artist profile",
				ArgsUsage: "<uid>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "artist", Aliases: []string{"a"}, Usage: "Artist display name", Required: true},
					&cli.IntFlag{Name: "discogs-artist", Usage: "Discogs artist ID"},
					&cli.StringFlag{Name: "discogs-token", Usage: "Discogs personal access token"},
					&cli.StringFlag{Name: "soundcloud-user", Usage: "SoundCloud user ID"},
					&cli.IntFlag{Name: "songkick-artist", Usage: "Songkick artist ID"},
					&cli.BoolFlag{Name: "no-cache", Usage: "Disable the in-memory cache for this profile"},
					&cli.IntFlag{Name: "ttl", Usage: "Cache TTL in seconds for all collections"},
				},
				Action: r.TenantAdd,
			},
			{
				Name:  "list",
				Usage: "List registered artist profiles",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pretty", Aliases: []string{"p"}, Usage: "Pretty-print JSON output"},
				},
				Action: r.TenantList,
			},
			{
				Name:      "remove",
				Usage:     "Remove an artist profile",
				ArgsUsage: "<uid>",
				Action:    r.TenantRemove,
			},
		},
	}
}

// tenantView is the JSON shape printed for a profile.
type tenantView struct {
	UID        string     `json:"uid"`
	ArtistName string     `json:"artist_name"`
	Sources    []string   `json:"sources"`
	CacheUse   bool       `json:"cache_enabled"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

func viewOf(t *models.Tenant) tenantView {
	srcs := []string{}
	for _, s := range []string{"discogs", "soundcloud", "songkick"} {
		if t.HasCapability(s) {
			srcs = append(srcs, s)
		}
	}
	return tenantView{
		UID:        t.UID(),
		ArtistName: t.ArtistName(),
		Sources:    srcs,
		CacheUse:   t.Policy().Use,
		CreatedAt:  t.CreatedAt(),
		UpdatedAt:  t.UpdatedAt(),
		DeletedAt:  t.DeletedAt(),
	}
}

// TenantAdd registers a new artist profile with the credentials supplied via flags.
func (r *Runner) TenantAdd(ctx context.Context, cmd *cli.Command) error {
	uid := cmd.Args().First()
	if uid == "" {
		return fmt.Errorf("%w: tenant uid", shared.ErrMissingArgument)
	}

	tenant := models.NewTenant(uid, cmd.String("artist"))

	if id := cmd.Int("discogs-artist"); id > 0 {
		tenant.SetDiscogs(&models.DiscogsAuth{ArtistID: id, Token: cmd.String("discogs-token")})
	}
	if id := cmd.String("soundcloud-user"); id != "" {
		tenant.SetSoundCloud(&models.SoundCloudAuth{UserID: id})
	}
	if id := cmd.Int("songkick-artist"); id > 0 {
		tenant.SetSongkick(&models.SongkickAuth{ArtistID: id})
	}

	policy := models.CachePolicy{Use: !cmd.Bool("no-cache")}
	if ttl := cmd.Int("ttl"); ttl > 0 {
		policy.TTL = map[string]int{
			providers.CollectionReleases: int(ttl),
			providers.CollectionTracks:   int(ttl),
			providers.CollectionEvents:   int(ttl),
		}
	}
	tenant.SetPolicy(policy)

	if err := tenant.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	c, err := r.buildCore()
	if err != nil {
		return err
	}

	if err := c.tenants.Create(tenant); err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.logger.Info("profile registered", "uid", uid, "artist", tenant.ArtistName())
	return r.writeJSON(viewOf(tenant), true)
}

// TenantList prints every registered profile as JSON.
func (r *Runner) TenantList(ctx context.Context, cmd *cli.Command) error {
	c, err := r.buildCore()
	if err != nil {
		return err
	}

	tenants, err := c.tenants.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}

	views := make([]tenantView, 0, len(tenants))
	for _, t := range tenants {
		views = append(views, viewOf(t))
	}

	return r.writeJSON(views, cmd.Bool("pretty"))
}

// TenantRemove soft-deletes the profile with the given uid.
func (r *Runner) TenantRemove(ctx context.Context, cmd *cli.Command) error {
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

	if err := c.tenants.Delete(tenant.ID()); err != nil {
		return fmt.Errorf("failed to remove profile: %w", err)
	}

	r.logger.Info("profile removed", "uid", uid)
	return r.writePlainln("removed %s", uid)
}
