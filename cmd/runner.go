package main

import (
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/alerts"
	"github.com/desertthunder/encore/internal/cache"
	"github.com/desertthunder/encore/internal/match"
	"github.com/desertthunder/encore/internal/providers"
	"github.com/desertthunder/encore/internal/repositories"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/desertthunder/encore/internal/sources"
	"github.com/desertthunder/encore/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	core *core
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
}

// core bundles the wired pipeline: database, repositories, cache, providers,
// aggregator and scheduler. Built lazily by commands that need it.
type core struct {
	db         *sql.DB
	tenants    *repositories.TenantRepository
	snapshots  *repositories.SnapshotRepository
	store      *cache.MemoryStore
	aggregator *tasks.Aggregator
	scheduler  *tasks.Scheduler
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, tenantsCommand, fetchCommand, batchCommand, serveCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// buildCore wires the full pipeline once per process.
func (r *Runner) buildCore() (*core, error) {
	if r.core != nil {
		return r.core, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	srcs := r.config.Sources
	catalog := sources.NewDiscogsClient(srcs.Discogs.BaseURL, srcs.Discogs.UserAgent,
		time.Duration(srcs.Discogs.TimeoutMS)*time.Millisecond)
	streaming := sources.NewSoundCloudClient(srcs.SoundCloud.BaseURL, srcs.SoundCloud.ClientID,
		srcs.SoundCloud.ClientSecret, srcs.SoundCloud.TokenURL,
		time.Duration(srcs.SoundCloud.TimeoutMS)*time.Millisecond)
	events := sources.NewSongkickClient(srcs.Songkick.BaseURL, srcs.Songkick.APIKey,
		time.Duration(srcs.Songkick.TimeoutMS)*time.Millisecond)

	defaultTTL := time.Duration(r.config.Cache.DefaultTTLSeconds) * time.Second
	store := cache.NewMemoryStore(defaultTTL)
	snapshots := repositories.NewSnapshotRepository(db)
	tenants := repositories.NewTenantRepository(db)

	pipeline := providers.NewPipeline(store, snapshots, r.logger)
	pipeline.DefaultTTL = defaultTTL

	matcher := match.New(streaming, shared.WithLogger(r.logger, "component", "matcher"))

	aggregator := tasks.NewAggregator(
		providers.NewReleaseProvider(pipeline, catalog, streaming, matcher),
		providers.NewTrackProvider(pipeline, streaming),
		providers.NewEventProvider(pipeline, events),
		shared.WithLogger(r.logger, "component", "aggregator"),
	)

	var notifier alerts.Notifier = alerts.Nop{}
	if len(r.config.Alerts.URLs) > 0 {
		n, err := alerts.NewShoutrrrNotifier(r.config.Alerts.URLs, r.logger)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to configure alerts: %w", err)
		}
		notifier = n
	}

	scheduler := tasks.NewScheduler(aggregator, tenants, notifier,
		shared.WithLogger(r.logger, "component", "scheduler"),
		tasks.SchedulerOpts{
			Interval:   r.config.Batch.Interval(),
			NumWorkers: r.config.Batch.NumWorkers,
			RateLimit:  r.config.Batch.RateLimit,
			WarmupURLs: r.config.Batch.WarmupURLs,
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		})

	r.core = &core{
		db:         db,
		tenants:    tenants,
		snapshots:  snapshots,
		store:      store,
		aggregator: aggregator,
		scheduler:  scheduler,
	}

	return r.core, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
