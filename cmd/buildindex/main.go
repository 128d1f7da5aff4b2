// Command buildindex rebuilds the full-text search index from the records
// file written by extract.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pdfquery/internal/config"
	"pdfquery/internal/extract"
	"pdfquery/internal/index"
	"pdfquery/internal/logger"
	"pdfquery/internal/models"
)

const verifyLimit = 5

type options struct {
	recordsPath string
	dbPath      string
	postgresURL string
	verify      string
	logLevel    string
	logJSON     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newCommand(config.Load()).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newCommand(cfg *config.Config) *cobra.Command {
	opts := options{}

	cmd := &cobra.Command{
		Use:   "buildindex",
		Short: "Rebuild the full-text search index from the records file",
		Long: `Read the records file and rebuild the search index from scratch.

By default the index is a SQLite database with an FTS5 table; any existing
file at --db is deleted first. With --postgres the same schema is recreated in
Postgres instead, using a generated tsvector column.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.recordsPath, "records", cfg.RecordsPath, "records file to read")
	flags.StringVar(&opts.dbPath, "db", cfg.IndexPath, "SQLite index file to (re)create")
	flags.StringVar(&opts.postgresURL, "postgres", cfg.IndexDatabaseURL, "Postgres connection URL; overrides --db")
	flags.StringVar(&opts.verify, "verify", "", "run this FTS5 query against the new SQLite index and print the hits")
	flags.StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&opts.logJSON, "log-json", cfg.LogJSON, "emit logs as JSON")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts options) error {
	log := logger.Setup(opts.logLevel, opts.logJSON)

	records, err := extract.ReadRecords(opts.recordsPath)
	if err != nil {
		log.Error("reading records failed", "path", opts.recordsPath, "error", err)
		return err
	}

	if opts.postgresURL != "" {
		return buildPostgres(ctx, cmd, log, opts, records)
	}
	return buildSQLite(ctx, cmd, log, opts, records)
}

func buildSQLite(ctx context.Context, cmd *cobra.Command, log *slog.Logger, opts options, records []models.Record) error {
	builder := index.NewSQLiteBuilder(opts.dbPath)
	n, err := index.Build(ctx, builder, records)
	if err != nil {
		logBuildError(log, err)
		return err
	}
	log.Info("index built", "store", "sqlite", "path", builder.Path(), "records", n)
	fmt.Fprintf(cmd.OutOrStdout(), "Built index at %s\n", builder.Path())

	if opts.verify == "" {
		return nil
	}
	hits, err := builder.Search(ctx, opts.verify, verifyLimit)
	if err != nil {
		log.Error("verification query failed", "query", opts.verify, "error", err)
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d hits for %q\n", len(hits), opts.verify)
	for _, h := range hits {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-14s %-40s %s\n", h.CaseID, h.Title, h.Source)
	}
	return nil
}

func buildPostgres(ctx context.Context, cmd *cobra.Command, log *slog.Logger, opts options, records []models.Record) error {
	if opts.verify != "" {
		log.Warn("--verify is only supported for the SQLite index; ignoring")
	}

	builder, err := index.NewPostgresBuilder(ctx, opts.postgresURL)
	if err != nil {
		log.Error("connecting to postgres failed", "error", err)
		return err
	}
	defer builder.Close()

	n, err := index.Build(ctx, builder, records)
	if err != nil {
		logBuildError(log, err)
		return err
	}
	log.Info("index built", "store", "postgres", "records", n)
	fmt.Fprintf(cmd.OutOrStdout(), "Built Postgres index with %d records\n", n)
	return nil
}

func logBuildError(log *slog.Logger, err error) {
	if errors.Is(err, index.ErrNoRecords) {
		log.Error("records file is empty; run extract first")
		return
	}
	log.Error("building index failed", "error", err)
}
