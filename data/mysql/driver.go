// Package mysql provides a MySQL driver for the node repository.
//
// This driver uses the official MySQL driver (github.com/go-sql-driver/mysql)
// as the underlying database/sql driver. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/nodesearch/data/mysql"
package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/data/config"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// driver implements data.DatabaseDriver for MySQL.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "mysql"
}

// Connect establishes a MySQL connection.
//
// Example DSN format:
//
//	user:password@tcp(localhost:3306)/dbname?parseTime=true&charset=utf8mb4
func (d *driver) Connect(ctx context.Context, cfg *config.Database) (*sql.DB, error) {
	db, err := data.OpenPool(ctx, "mysql", cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	return db, nil
}

func init() {
	data.RegisterDatabaseDriver(&driver{})
}
