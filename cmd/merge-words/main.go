// Command merge-words merges the legacy word list (mobile_dict.json) and the
// root/forms dictionary (amharic_root_forms_dictionary.json) into one
// normalized, deduplicated, sorted list written as {"words": [...]}.
//
// Flags:
//
//	--config    path to YAML config file (default: $CONFIG_PATH or ./config.yaml)
//	--dry-run   run the merge and log counts without writing anything
//	--old       legacy word list path (overrides paths.old_dict)
//	--new       root/forms dictionary path (overrides paths.new_dict)
//	--out       output path (overrides paths.merged_output)
//
// When catalog.dsn is set the merged list is also published to PostgreSQL.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/akenore24/sawasew-keyboard/internal/adapter/postgres/wordcatalog"
	"github.com/akenore24/sawasew-keyboard/internal/app"
	"github.com/akenore24/sawasew-keyboard/internal/app/wordmerge"
)

// Compile-time interface assertion.
var _ wordmerge.Publisher = (*wordcatalog.Repo)(nil)

func main() {
	configFlag := flag.String("config", "", "path to YAML config file")
	dryRunFlag := flag.Bool("dry-run", false, "merge without writing the output file")
	oldFlag := flag.String("old", "", "legacy word list path")
	newFlag := flag.String("new", "", "root/forms dictionary path")
	outFlag := flag.String("out", "", "merged word list output path")
	flag.Parse()

	cfg, logger, err := app.Setup("merge-words", app.Options{
		ConfigPath:   *configFlag,
		DryRun:       *dryRunFlag,
		OldDict:      *oldFlag,
		NewDict:      *newFlag,
		MergedOutput: *outFlag,
	}, os.Stdout)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Run.Timeout)
	defer cancel()

	repo, closeCatalog, err := app.OpenCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Error("open word catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeCatalog()

	var pub wordmerge.Publisher
	if repo != nil {
		pub = repo
	}

	if _, err := wordmerge.Run(ctx, cfg, pub, logger); err != nil {
		logger.Error("merge failed", slog.String("error", err.Error()))
		closeCatalog()
		os.Exit(1)
	}
}
