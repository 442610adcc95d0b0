// Package dictsource loads the old and new dictionaries for a pipeline run
// and reports load problems through the run logger.
package dictsource

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/akenore24/sawasew-keyboard/internal/adapter/jsonfile"
	"github.com/akenore24/sawasew-keyboard/internal/config"
	"github.com/akenore24/sawasew-keyboard/internal/domain"
)

// maxRejectedLogged caps per-entry warnings; the total is always logged.
const maxRejectedLogged = 20

// Sources holds both loaded dictionaries.
type Sources struct {
	Old domain.OldDictionary
	New domain.NewDictionary
}

// Load reads both dictionaries named in paths. Both files are attempted so
// every missing or malformed input is reported in one run; the returned
// error joins all load failures.
func Load(paths config.PathsConfig, log *slog.Logger) (Sources, error) {
	var (
		src  Sources
		errs []error
		err  error
	)

	src.Old, err = jsonfile.LoadOldDictionary(paths.OldDict)
	if err != nil {
		logLoadError(log, err)
		errs = append(errs, fmt.Errorf("load old dictionary: %w", err))
	}

	src.New, err = jsonfile.LoadNewDictionary(paths.NewDict)
	if err != nil {
		logLoadError(log, err)
		errs = append(errs, fmt.Errorf("load new dictionary: %w", err))
	}

	if len(errs) > 0 {
		return Sources{}, errors.Join(errs...)
	}

	logRejected(log, paths.OldDict, src.Old.Rejected)
	logRejected(log, paths.NewDict, src.New.Rejected)
	return src, nil
}

// OldWords extracts the old dictionary words. An unrecognized layout is
// logged as a warning and contributes no words.
func OldWords(old domain.OldDictionary, path string, log *slog.Logger) []string {
	words, err := old.Words()
	if errors.Is(err, domain.ErrUnexpectedShape) {
		log.Warn("unknown old dictionary format, expected array or {\"words\": [...]}",
			slog.String("path", path),
		)
		return nil
	}
	return words
}

func logLoadError(log *slog.Logger, err error) {
	path := ""
	var srcErr *domain.SourceError
	if errors.As(err, &srcErr) {
		path = srcErr.Path
	}

	switch {
	case errors.Is(err, domain.ErrMissingFile):
		log.Error("file not found", slog.String("path", path))
	default:
		log.Error("json decode error", slog.String("path", path), slog.String("error", err.Error()))
	}
}

func logRejected(log *slog.Logger, path string, rejected []domain.RejectedEntry) {
	if len(rejected) == 0 {
		return
	}
	for i, r := range rejected {
		if i == maxRejectedLogged {
			break
		}
		log.Warn("skipping malformed entry",
			slog.String("path", path),
			slog.Int("index", r.Index),
			slog.String("reason", r.Reason),
		)
	}
	log.Warn("malformed entries skipped", slog.String("path", path), slog.Int("count", len(rejected)))
}
