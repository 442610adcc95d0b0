package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/akenore24/sawasew-keyboard/internal/adapter/postgres"
	"github.com/akenore24/sawasew-keyboard/internal/adapter/postgres/wordcatalog"
	"github.com/akenore24/sawasew-keyboard/internal/config"
)

// Options are command-line overrides applied on top of the loaded config.
// Empty strings and false leave the config value untouched.
type Options struct {
	ConfigPath      string
	DryRun          bool
	OldDict         string
	NewDict         string
	MergedOutput    string
	RootFormsOutput string
}

// Setup reads configuration, applies opts, validates the result and creates
// the logger writing to w. It logs startup information under command.
func Setup(command string, opts Options, w io.Writer) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Read(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	applyOptions(cfg, opts)
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config: validate: %w", err)
	}

	logger := NewLogger(cfg.Log, w)
	logger.Info("starting "+command,
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.Bool("dry_run", cfg.Run.DryRun),
		slog.Bool("catalog", cfg.Catalog.Enabled()),
	)

	return cfg, logger, nil
}

func applyOptions(cfg *config.Config, opts Options) {
	if opts.DryRun {
		cfg.Run.DryRun = true
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Paths.OldDict, opts.OldDict)
	set(&cfg.Paths.NewDict, opts.NewDict)
	set(&cfg.Paths.MergedOutput, opts.MergedOutput)
	set(&cfg.Paths.RootFormsOutput, opts.RootFormsOutput)
}

// OpenCatalog connects to the word catalog and applies pending migrations.
// It returns a nil repo and a no-op close func when the catalog is disabled
// or the run is a dry run.
func OpenCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) (*wordcatalog.Repo, func(), error) {
	noop := func() {}
	if !cfg.Catalog.Enabled() || cfg.Run.DryRun {
		return nil, noop, nil
	}

	if _, err := postgres.Migrate(ctx, cfg.Catalog.DSN, log); err != nil {
		return nil, noop, fmt.Errorf("migrate catalog: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Catalog)
	if err != nil {
		return nil, noop, err
	}

	log.Info("word catalog connected")
	repo := wordcatalog.New(pool, postgres.NewTxManager(pool), cfg.Catalog.BatchSize)
	return repo, pool.Close, nil
}
