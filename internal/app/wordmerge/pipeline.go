package wordmerge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akenore24/sawasew-keyboard/internal/adapter/jsonfile"
	"github.com/akenore24/sawasew-keyboard/internal/app/dictsource"
	"github.com/akenore24/sawasew-keyboard/internal/config"
	"github.com/akenore24/sawasew-keyboard/pkg/ctxutil"
)

// Publisher receives the merged list after the output file is written.
type Publisher interface {
	ReplaceWordList(ctx context.Context, words []string) (int, error)
}

// Result holds merge statistics.
type Result struct {
	OldWords        int
	NewWords        int
	RejectedEntries int
	RejectedWords   int
	Merged          int
	Written         bool
	Published       int
	Duration        time.Duration
}

// Run loads both dictionaries, merges them and writes the merged list to
// cfg.Paths.MergedOutput. A missing or unparsable input aborts the run
// before anything is written. pub may be nil.
func Run(ctx context.Context, cfg *config.Config, pub Publisher, log *slog.Logger) (Result, error) {
	start := time.Now()
	ctx, runID := ctxutil.EnsureRunID(ctx)
	log = log.With(slog.String("run_id", runID.String()), slog.String("pipeline", "merge-words"))

	log.Info("loading dictionaries",
		slog.String("old", cfg.Paths.OldDict),
		slog.String("new", cfg.Paths.NewDict),
	)
	src, err := dictsource.Load(cfg.Paths, log)
	if err != nil {
		log.Error("cannot proceed, fix file paths and try again")
		return Result{}, err
	}

	log.Info("extracting words")
	oldWords := dictsource.OldWords(src.Old, cfg.Paths.OldDict, log)

	entries, err := src.New.Entries()
	if err != nil {
		log.Warn("new dictionary has no 'words' key, contributing no words",
			slog.String("path", cfg.Paths.NewDict),
		)
	}

	norm := cfg.Normalize.Normalizer()
	newWords := CollectNewWords(entries, norm)

	result := Result{
		OldWords:        len(oldWords),
		NewWords:        len(newWords),
		RejectedEntries: len(src.New.Rejected),
		RejectedWords:   len(src.Old.Rejected),
	}
	log.Info("words extracted",
		slog.Int("old_words", result.OldWords),
		slog.Int("new_words", result.NewWords),
	)

	log.Info("cleaning and merging")
	merged := Merge(oldWords, newWords, norm)
	result.Merged = len(merged)
	log.Info("merged words", slog.Int("total", result.Merged))

	if cfg.Run.DryRun {
		result.Duration = time.Since(start)
		log.Info("dry-run mode: output not written", slog.String("path", cfg.Paths.MergedOutput))
		return result, nil
	}

	log.Info("saving output", slog.String("path", cfg.Paths.MergedOutput))
	if err := jsonfile.WriteJSON(cfg.Paths.MergedOutput, jsonfile.WordsDocument{Words: merged}); err != nil {
		return result, fmt.Errorf("write merged list: %w", err)
	}
	result.Written = true

	if pub != nil {
		n, err := pub.ReplaceWordList(ctx, merged)
		if err != nil {
			return result, fmt.Errorf("publish merged list: %w", err)
		}
		result.Published = n
		log.Info("word list published", slog.Int("rows", n))
	}

	result.Duration = time.Since(start)
	log.Info("merge complete",
		slog.Int("words", result.Merged),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}
