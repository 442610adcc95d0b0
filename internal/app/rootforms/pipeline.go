package rootforms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akenore24/sawasew-keyboard/internal/adapter/jsonfile"
	"github.com/akenore24/sawasew-keyboard/internal/app/dictsource"
	"github.com/akenore24/sawasew-keyboard/internal/config"
	"github.com/akenore24/sawasew-keyboard/internal/domain"
	"github.com/akenore24/sawasew-keyboard/pkg/ctxutil"
)

// Publisher receives the map after the output file is written.
type Publisher interface {
	ReplaceRootForms(ctx context.Context, m *domain.RootFormsMap) (int, error)
}

// Result holds build statistics.
type Result struct {
	Build           BuildStats
	Overlay         OverlayStats
	OldWords        int
	RejectedEntries int
	RejectedWords   int
	Roots           int
	Written         bool
	Published       int
	Duration        time.Duration
}

// Run builds the root → forms map and writes it to
// cfg.Paths.RootFormsOutput. Missing or unparsable inputs, and a new
// dictionary without a "words" array, abort the run before anything is
// written. pub may be nil.
func Run(ctx context.Context, cfg *config.Config, pub Publisher, log *slog.Logger) (Result, error) {
	start := time.Now()
	ctx, runID := ctxutil.EnsureRunID(ctx)
	log = log.With(slog.String("run_id", runID.String()), slog.String("pipeline", "root-forms"))

	log.Info("loading dictionaries",
		slog.String("old", cfg.Paths.OldDict),
		slog.String("new", cfg.Paths.NewDict),
	)
	src, err := dictsource.Load(cfg.Paths, log)
	if err != nil {
		log.Error("cannot build root forms map")
		return Result{}, err
	}

	entries, err := src.New.Entries()
	if errors.Is(err, domain.ErrMissingWordsKey) {
		log.Error("new dictionary has no 'words' key", slog.String("path", cfg.Paths.NewDict))
		log.Error("cannot build root forms map")
		return Result{}, domain.NewSourceError(cfg.Paths.NewDict, err)
	}

	norm := cfg.Normalize.Normalizer()
	result := Result{
		RejectedEntries: len(src.New.Rejected),
		RejectedWords:   len(src.Old.Rejected),
	}

	log.Info("building root forms mapping", slog.Int("entries", len(entries)))
	m, buildStats := Build(entries, norm)
	result.Build = buildStats
	if buildStats.EmptyRoots > 0 {
		log.Warn("entries with empty root skipped", slog.Int("count", buildStats.EmptyRoots))
	}
	if buildStats.Overwritten > 0 {
		log.Info("duplicate roots replaced by later entries", slog.Int("count", buildStats.Overwritten))
	}

	log.Info("merging old dictionary words")
	oldWords := dictsource.OldWords(src.Old, cfg.Paths.OldDict, log)
	result.OldWords = len(oldWords)
	result.Overlay = Overlay(m, oldWords, norm)
	result.Roots = m.Len()
	log.Info("old words merged",
		slog.Int("old_words", result.OldWords),
		slog.Int("new_roots", result.Overlay.Added),
		slog.Int("appended", result.Overlay.Appended),
	)

	if cfg.Run.DryRun {
		result.Duration = time.Since(start)
		log.Info("dry-run mode: output not written",
			slog.String("path", cfg.Paths.RootFormsOutput),
			slog.Int("total_roots", result.Roots),
		)
		return result, nil
	}

	log.Info("saving root forms map", slog.String("path", cfg.Paths.RootFormsOutput))
	if err := jsonfile.WriteJSON(cfg.Paths.RootFormsOutput, m); err != nil {
		return result, fmt.Errorf("write root forms map: %w", err)
	}
	result.Written = true

	if pub != nil {
		n, err := pub.ReplaceRootForms(ctx, m)
		if err != nil {
			return result, fmt.Errorf("publish root forms map: %w", err)
		}
		result.Published = n
		log.Info("root forms published", slog.Int("rows", n))
	}

	result.Duration = time.Since(start)
	log.Info("root forms map complete",
		slog.Int("total_roots", result.Roots),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}
