package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Start an HTTP server exposing analysis, matching, ranking and catalog endpoints.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cat, closeCatalog, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer closeCatalog()
			if cat == nil {
				a.logger.Warn("no job catalog configured; matching endpoints will fail")
			}

			engine, tiered := a.newEngine(ctx, cat, true)
			if tiered != nil {
				defer tiered.Close() //nolint:errcheck // shutdown path
				go tiered.RunCleanup(ctx, cleanupInterval)
			}

			fetcher, err := a.newFetcher(ctx, false)
			if err != nil {
				return err
			}

			srv := server.New(engine, server.Config{
				Port:         a.cfg.Server.Port,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
				CORSOrigins:  a.cfg.Server.CORSOrigins,
				RateLimit:    a.cfg.RateLimiter(),
				Fetcher:      fetcher,
			}, a.logger)

			a.logger.Info("serving", zap.Int("port", a.cfg.Server.Port))
			return srv.Start(ctx)
		},
	}
	cmd.Flags().Int("port", 8080, "Port to listen on")
	return cmd
}
