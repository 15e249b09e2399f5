package data

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/nodesearch/data/config"
)

// OpenPool opens db with the given database/sql driver name, applies the
// pool configuration and verifies the connection with a ping.
func OpenPool(ctx context.Context, sqlDriver string, cfg *config.Database) (*sql.DB, error) {
	if cfg == nil || cfg.Source == "" {
		return nil, fmt.Errorf("connection source is empty")
	}

	db, err := sql.Open(sqlDriver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if cfg.MaxIdleConn > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConn)
	}
	if cfg.MaxOpenConn > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConn)
	}
	if cfg.ConnMaxLifeTime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifeTime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
