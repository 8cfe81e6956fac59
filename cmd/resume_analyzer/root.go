package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/cache"
	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/config"
	"github.com/jonathan/resume-analyzer/internal/db"
	"github.com/jonathan/resume-analyzer/internal/fetch"
	"github.com/jonathan/resume-analyzer/internal/logger"
	"github.com/jonathan/resume-analyzer/internal/pipeline"
)

// flagKeys binds command flags to configuration keys so that a flag set on
// the command line overrides the environment and the config file.
var flagKeys = map[string]string{
	"debug":        "log.debug",
	"json":         "log.json",
	"port":         "server.port",
	"workers":      "queue.workers",
	"catalog":      "catalog.path",
	"sqlite":       "catalog.sqlite_path",
	"database-url": "catalog.database_url",
}

// app carries the state shared by every subcommand.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "resume_analyzer",
		Short: "Resume analysis and job matching engine",
		Long: "resume_analyzer extracts structured profiles from PDF, DOC and DOCX resumes, " +
			"scores them, and matches them against a job catalog.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Log in JSON format")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a JSON or YAML job catalog file")
	rootCmd.PersistentFlags().String("sqlite", "", "Path to a SQLite job catalog")
	rootCmd.PersistentFlags().String("database-url", "", "PostgreSQL job catalog URL")

	rootCmd.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newMatchCmd(a),
		newRankCmd(a),
		newCatalogCmd(a),
		newWorkerCmd(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	v := config.NewViper()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", a.cfgFile, err)
		}
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger, err = logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	return nil
}

// openCatalog opens the configured catalog backend. It returns a nil catalog
// when none is configured, which limits the engine to analysis.
func (a *app) openCatalog(ctx context.Context) (catalog.Catalog, func(), error) {
	noop := func() {}
	c := a.cfg.Catalog

	switch {
	case c.SQLitePath != "":
		store, err := catalog.OpenSQLite(ctx, c.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		a.logger.Debug("using sqlite catalog", zap.String("path", c.SQLitePath))
		return store, func() { _ = store.Close() }, nil

	case c.DatabaseURL != "":
		store, err := a.openPostgres(ctx)
		if err != nil {
			return nil, noop, err
		}
		return catalog.NewPostgres(store), store.Close, nil

	case c.Path != "":
		static, err := catalog.LoadFile(c.Path)
		if err != nil {
			return nil, noop, err
		}
		a.logger.Debug("loaded catalog file", zap.String("path", c.Path), zap.Int("postings", static.Len()))
		return static, noop, nil
	}
	return nil, noop, nil
}

func (a *app) openPostgres(ctx context.Context) (*db.DB, error) {
	store, err := db.Connect(ctx, a.cfg.Catalog.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// requireCatalog is openCatalog for commands that cannot run without postings.
func (a *app) requireCatalog(ctx context.Context) (catalog.Catalog, func(), error) {
	cat, closeFn, err := a.openCatalog(ctx)
	if err != nil {
		return nil, closeFn, err
	}
	if cat == nil {
		return nil, closeFn, fmt.Errorf("no job catalog configured (use --catalog, --sqlite or --database-url)")
	}
	return cat, closeFn, nil
}

// newEngine builds the analysis engine. The cache is attached when enabled.
func (a *app) newEngine(ctx context.Context, cat catalog.Catalog, withCache bool) (*pipeline.Engine, *cache.Tiered) {
	params := a.cfg.ScoringParams()
	weights := a.cfg.MatchWeights()
	opts := pipeline.Options{
		MaxBytes:    a.cfg.Limits.MaxUploadBytes,
		Scoring:     &params,
		Weights:     &weights,
		Concurrency: a.cfg.Limits.Concurrency,
		Logger:      a.logger,
	}
	var tiered *cache.Tiered
	if withCache && a.cfg.Cache.Enabled {
		tiered = cache.New(ctx, a.cfg.CacheSettings(), a.logger)
		opts.Cache = tiered
	}
	return pipeline.New(cat, opts), tiered
}

// newFetcher builds the document fetcher. For the server and worker, http(s)
// references are fetched only when storage.allow_http is set. local marks
// CLI use, where the operator supplies the reference and any address may be
// fetched. S3 is enabled when a region or endpoint is configured.
func (a *app) newFetcher(ctx context.Context, local bool) (fetch.Source, error) {
	opts := a.cfg.FetchOptions()
	router := &fetch.Router{}
	switch {
	case local:
		opts.AllowPrivateNetworks = true
		router.HTTP = fetch.NewHTTPSource(opts, a.logger)
	case a.cfg.Storage.AllowHTTP:
		router.HTTP = fetch.NewHTTPSource(opts, a.logger)
	}

	s3cfg := a.cfg.S3()
	if s3cfg.Region != "" || s3cfg.Endpoint != "" {
		client, err := fetch.NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, err
		}
		router.S3 = fetch.NewS3Source(client, opts, a.logger)
	}
	return router, nil
}

// cleanupInterval is how often expired cache entries are swept.
const cleanupInterval = time.Minute
