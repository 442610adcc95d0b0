package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akenore24/sawasew-keyboard/internal/config"
)

// ApplicationName tags catalog sessions in pg_stat_activity unless the DSN
// already sets application_name.
const ApplicationName = "sawasew-wordprep"

// NewPool opens the catalog pool and pings it so a bad DSN fails the run
// before any output is published.
func NewPool(ctx context.Context, cfg config.CatalogConfig) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open catalog pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}

	return pool, nil
}

func poolConfig(cfg config.CatalogConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse catalog DSN: %w", err)
	}

	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns >= 0 && cfg.MinConns <= pc.MaxConns {
		pc.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	params := pc.ConnConfig.RuntimeParams
	if params == nil {
		params = make(map[string]string)
		pc.ConnConfig.RuntimeParams = params
	}
	if params["application_name"] == "" {
		params["application_name"] = ApplicationName
	}

	return pc, nil
}
