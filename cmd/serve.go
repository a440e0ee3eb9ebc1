package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/encore/internal/server"
	"github.com/desertthunder/encore/internal/shared"
	"github.com/urfave/cli/v3"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API and the batch scheduler",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "host", Usage: "Bind address (overrides config)"},
			&cli.IntFlag{Name: "port", Usage: "Listen port (overrides config)"},
			&cli.BoolFlag{Name: "no-scheduler", Usage: "Serve the API without the background refresh loop"},
		},
		Action: r.Serve,
	}
}

// Serve starts the HTTP API and, unless disabled, the background batch
// scheduler. Blocks until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	c, err := r.buildCore()
	if err != nil {
		return err
	}

	host := r.config.Server.Host
	if flagHost := cmd.String("host"); flagHost != "" {
		host = flagHost
	}
	port := r.config.Server.Port
	if flagPort := cmd.Int("port"); flagPort > 0 {
		port = flagPort
	}
	if port == 0 {
		port = 8080
	}

	router := server.NewBasicRouter()
	router.Use(server.Logging(shared.WithLogger(r.logger, "component", "http")))

	handler := server.NewProfileHandler(c.aggregator, c.scheduler, c.tenants,
		shared.WithLogger(r.logger, "component", "http"))
	handler.Register(router)

	if !cmd.Bool("no-scheduler") {
		go c.scheduler.Start(ctx)
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	r.logger.Info("http server listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
