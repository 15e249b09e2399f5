// Package sqlite provides a SQLite driver for the node repository.
//
// This driver uses mattn/go-sqlite3 (github.com/mattn/go-sqlite3) as the underlying
// database/sql driver with CGO. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/nodesearch/data/sqlite"
//
// Common connection strings:
//
//	"file:nodes.db?cache=shared&mode=rwc"
//	"file::memory:?cache=shared"
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/data/config"
)

// sqlDriverName is the database/sql name of the SQLite driver with
// Unicode-aware LOWER/UPPER. The built-ins only fold ASCII letters.
const sqlDriverName = "sqlite3_nodesearch"

func registerFunctions(conn *sqlite3.SQLiteConn) error {
	if err := conn.RegisterFunc("lower", foldCase(strings.ToLower), true); err != nil {
		return err
	}
	return conn.RegisterFunc("upper", foldCase(strings.ToUpper), true)
}

// foldCase maps text and blobs, other values pass through unchanged
func foldCase(fn func(string) string) func(any) any {
	return func(v any) any {
		switch s := v.(type) {
		case string:
			return fn(s)
		case []byte:
			return fn(string(s))
		default:
			return v
		}
	}
}

// driver implements data.DatabaseDriver for SQLite.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "sqlite"
}

// Connect establishes a SQLite connection. Without explicit pool settings a
// single connection is used so in-memory databases are shared.
func (d *driver) Connect(ctx context.Context, cfg *config.Database) (*sql.DB, error) {
	if cfg != nil && cfg.MaxOpenConn == 0 {
		c := *cfg
		c.MaxOpenConn = 1
		c.MaxIdleConn = 1
		cfg = &c
	}

	db, err := data.OpenPool(ctx, sqlDriverName, cfg)
	if err != nil {
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return db, nil
}

func init() {
	sql.Register(sqlDriverName, &sqlite3.SQLiteDriver{ConnectHook: registerFunctions})
	data.RegisterDatabaseDriver(&driver{})
}
