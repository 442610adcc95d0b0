// Package wordcatalog publishes the prepared word artifacts to PostgreSQL.
// Every publish replaces the previous content of its table in one
// transaction and records a row in word_catalog_runs.
package wordcatalog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akenore24/sawasew-keyboard/internal/adapter/postgres"
	"github.com/akenore24/sawasew-keyboard/internal/domain"
	"github.com/akenore24/sawasew-keyboard/pkg/ctxutil"
)

// Run kinds stored in word_catalog_runs.kind.
const (
	KindWordList  = "word_list"
	KindRootForms = "root_forms"
)

const defaultBatchSize = 500

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Run is one recorded publish.
type Run struct {
	ID        uuid.UUID
	Kind      string
	ItemCount int
	CreatedAt time.Time
}

// Repo provides word catalog persistence backed by PostgreSQL.
type Repo struct {
	pool      *pgxpool.Pool
	txm       *postgres.TxManager
	batchSize int
}

// New creates a new word catalog repository. batchSize bounds the number of
// rows queued per pgx.Batch; values <= 0 use the default.
func New(pool *pgxpool.Pool, txm *postgres.TxManager, batchSize int) *Repo {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Repo{pool: pool, txm: txm, batchSize: batchSize}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ReplaceWordList replaces dict_words with words, keeping their order in
// the position column. Returns the number of rows inserted.
func (r *Repo) ReplaceWordList(ctx context.Context, words []string) (int, error) {
	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.deleteAll(ctx, "dict_words"); err != nil {
			return err
		}

		for start := 0; start < len(words); start += r.batchSize {
			end := min(start+r.batchSize, len(words))

			batch := &pgx.Batch{}
			for i, w := range words[start:end] {
				batch.Queue(
					`INSERT INTO dict_words (word, position) VALUES ($1, $2)`,
					w, start+i,
				)
			}

			n, err := postgres.SendBatchExec(ctx, r.pool, batch)
			inserted += n
			if err != nil {
				return postgres.MapError(err, "insert words")
			}
		}

		return r.recordRun(ctx, KindWordList, inserted)
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// ReplaceRootForms replaces dict_root_forms with m, keeping its key order in
// the position column. Returns the number of rows inserted.
func (r *Repo) ReplaceRootForms(ctx context.Context, m *domain.RootFormsMap) (int, error) {
	roots := m.Keys()

	var inserted int
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.deleteAll(ctx, "dict_root_forms"); err != nil {
			return err
		}

		for start := 0; start < len(roots); start += r.batchSize {
			end := min(start+r.batchSize, len(roots))

			batch := &pgx.Batch{}
			for i, root := range roots[start:end] {
				forms, _ := m.Forms(root)
				if forms == nil {
					forms = []string{}
				}
				batch.Queue(
					`INSERT INTO dict_root_forms (root, forms, position) VALUES ($1, $2, $3)`,
					root, forms, start+i,
				)
			}

			n, err := postgres.SendBatchExec(ctx, r.pool, batch)
			inserted += n
			if err != nil {
				return postgres.MapError(err, "insert root forms")
			}
		}

		return r.recordRun(ctx, KindRootForms, inserted)
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *Repo) deleteAll(ctx context.Context, table string) error {
	query, args, err := psql.Delete(table).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", table, err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "clear "+table)
	}
	return nil
}

// recordRun stores the publish under the run ID carried by ctx, or a fresh
// one when the caller has none.
func (r *Repo) recordRun(ctx context.Context, kind string, count int) error {
	id, ok := ctxutil.RunIDFromCtx(ctx)
	if !ok {
		id = uuid.New()
	}

	query, args, err := psql.Insert("word_catalog_runs").
		Columns("id", "kind", "item_count").
		Values(id, kind, count).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert run: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "record run "+id.String())
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListWords returns the published word list in its stored order.
func (r *Repo) ListWords(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("word").
		From("dict_words").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list words: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list words")
	}

	words, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, postgres.MapError(err, "list words")
	}
	return words, nil
}

// RootForms returns the published root → forms map in its stored order.
func (r *Repo) RootForms(ctx context.Context) (*domain.RootFormsMap, error) {
	query, args, err := psql.Select("root", "forms").
		From("dict_root_forms").
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list root forms: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "list root forms")
	}
	defer rows.Close()

	m := domain.NewRootFormsMap()
	for rows.Next() {
		var (
			root  string
			forms []string
		)
		if err := rows.Scan(&root, &forms); err != nil {
			return nil, postgres.MapError(err, "scan root forms")
		}
		m.Set(root, forms)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "list root forms")
	}
	return m, nil
}

// LastRun returns the most recent publish of kind.
// Returns domain.ErrNotFound if nothing was published yet.
func (r *Repo) LastRun(ctx context.Context, kind string) (Run, error) {
	query, args, err := psql.Select("id", "kind", "item_count", "created_at").
		From("word_catalog_runs").
		Where(sq.Eq{"kind": kind}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return Run{}, fmt.Errorf("build last run: %w", err)
	}

	var run Run
	q := postgres.QuerierFromCtx(ctx, r.pool)
	err = q.QueryRow(ctx, query, args...).Scan(&run.ID, &run.Kind, &run.ItemCount, &run.CreatedAt)
	if err != nil {
		return Run{}, postgres.MapError(err, "last "+kind+" run")
	}
	return run, nil
}
