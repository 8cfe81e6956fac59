package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/catalog"
	"github.com/jonathan/resume-analyzer/internal/observability"
)

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage and inspect the job catalog",
	}
	cmd.AddCommand(newCatalogImportCmd(a), newCatalogTrendsCmd(a))
	return cmd
}

func newCatalogImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import postings from a JSON or YAML file into SQLite or PostgreSQL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			source, err := catalog.LoadFile(file)
			if err != nil {
				return err
			}
			postings, err := source.ListPostings(ctx, catalog.Filter{})
			if err != nil {
				return err
			}

			var importer catalog.Importer
			switch {
			case a.cfg.Catalog.SQLitePath != "":
				store, err := catalog.OpenSQLite(ctx, a.cfg.Catalog.SQLitePath)
				if err != nil {
					return err
				}
				defer store.Close() //nolint:errcheck // import already committed
				importer = store
			case a.cfg.Catalog.DatabaseURL != "":
				store, err := a.openPostgres(ctx)
				if err != nil {
					return err
				}
				defer store.Close()
				importer = catalog.NewPostgres(store)
			default:
				return fmt.Errorf("an import target is required (--sqlite or --database-url)")
			}

			written, err := importer.Import(ctx, postings)
			if err != nil {
				return err
			}
			a.logger.Info("imported catalog",
				zap.String("file", file),
				zap.Int("postings", len(postings)),
				zap.Int("written", written))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d postings\n", written, len(postings))
			return err
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Catalog file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newCatalogTrendsCmd(a *app) *cobra.Command {
	var (
		out     string
		verbose bool
	)
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Print market statistics for the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cat, closeCatalog, err := a.requireCatalog(ctx)
			if err != nil {
				return err
			}
			defer closeCatalog()

			engine, _ := a.newEngine(ctx, cat, false)
			trends, err := engine.Trends(ctx)
			if err != nil {
				return err
			}
			if verbose {
				observability.NewPrinter(cmd.ErrOrStderr()).PrintTrends(&trends)
			}
			return writeJSON(cmd.OutOrStdout(), out, trends)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write JSON output to this file instead of stdout")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print a human-readable summary to stderr")
	return cmd
}
