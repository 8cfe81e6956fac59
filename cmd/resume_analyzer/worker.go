package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/worker"
)

func newWorkerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume analysis jobs from AMQP and publish results",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cat, closeCatalog, err := a.openCatalog(ctx)
			if err != nil {
				return err
			}
			defer closeCatalog()

			engine, tiered := a.newEngine(ctx, cat, true)
			if tiered != nil {
				defer tiered.Close() //nolint:errcheck // shutdown path
				go tiered.RunCleanup(ctx, cleanupInterval)
			}

			fetcher, err := a.newFetcher(ctx, false)
			if err != nil {
				return err
			}

			conn, err := amqp.Dial(a.cfg.Queue.URL)
			if err != nil {
				return fmt.Errorf("failed to connect to AMQP broker: %w", err)
			}
			defer conn.Close() //nolint:errcheck // shutdown path

			publisher, err := worker.NewAMQPPublisher(conn, a.cfg.Queue.Exchange)
			if err != nil {
				return err
			}
			defer publisher.Close() //nolint:errcheck // shutdown path

			processor := worker.NewProcessor(engine, fetcher, publisher, a.logger)
			consumer := worker.NewConsumer(conn, a.cfg.Queue.Queue, a.cfg.Queue.Workers, processor, a.logger)

			a.logger.Info("worker started",
				zap.String("queue", a.cfg.Queue.Queue),
				zap.Int("workers", a.cfg.Queue.Workers))
			return consumer.Run(ctx)
		},
	}
	cmd.Flags().Int("workers", 4, "Number of concurrent analysis workers")
	return cmd
}
