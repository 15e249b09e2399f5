package data

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/data/search"
)

// Driver interfaces define contracts for the two backend types.
// Following the design pattern of database/sql, drivers register themselves
// using init() functions and are looked up at runtime based on configuration.

// DatabaseDriver defines the interface for relational database drivers.
type DatabaseDriver interface {
	// Name returns the driver identifier (e.g., "postgres", "mysql", "sqlite")
	Name() string

	// Connect opens a pooled connection and verifies it with a ping.
	Connect(ctx context.Context, cfg *config.Database) (*sql.DB, error)
}

// SearchDriver defines the interface for search engine drivers.
type SearchDriver interface {
	// Name returns the driver identifier (e.g., "elasticsearch", "opensearch")
	Name() string

	// Connect builds an adapter for the configured cluster. It must not
	// block on the network; engines are probed on first query.
	Connect(ctx context.Context, cfg *config.Search) (search.Adapter, error)
}

var (
	databaseDrivers   = make(map[string]DatabaseDriver)
	databaseDriversMu sync.RWMutex

	searchDrivers   = make(map[string]SearchDriver)
	searchDriversMu sync.RWMutex
)

// RegisterDatabaseDriver makes a database driver available by the provided name.
// It is intended to be called from the init function in driver packages.
//
// Example usage in a driver package:
//
//	func init() {
//	    data.RegisterDatabaseDriver(&driver{})
//	}
//
// If RegisterDatabaseDriver is called twice with the same name or if driver is nil,
// it panics.
func RegisterDatabaseDriver(driver DatabaseDriver) {
	databaseDriversMu.Lock()
	defer databaseDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDatabaseDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterDatabaseDriver driver name is empty")
	}

	if _, exists := databaseDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDatabaseDriver called twice for driver %s", name))
	}

	databaseDrivers[name] = driver
}

// RegisterSearchDriver makes a search engine driver available by the provided name.
// It follows the same pattern as RegisterDatabaseDriver.
func RegisterSearchDriver(driver SearchDriver) {
	searchDriversMu.Lock()
	defer searchDriversMu.Unlock()

	if driver == nil {
		panic("data: RegisterSearchDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterSearchDriver driver name is empty")
	}

	if _, exists := searchDrivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterSearchDriver called twice for driver %s", name))
	}

	searchDrivers[name] = driver
}

// GetDatabaseDriver retrieves a registered database driver by name.
// It returns an error with helpful instructions if the driver is not found.
func GetDatabaseDriver(name string) (DatabaseDriver, error) {
	databaseDriversMu.RLock()
	defer databaseDriversMu.RUnlock()

	driver, ok := databaseDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: database driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/nodesearch/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, listLocked(databaseDrivers),
		)
	}

	return driver, nil
}

// GetSearchDriver retrieves a registered search engine driver by name.
func GetSearchDriver(name string) (SearchDriver, error) {
	searchDriversMu.RLock()
	defer searchDriversMu.RUnlock()

	driver, ok := searchDrivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: search driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/nodesearch/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, listLocked(searchDrivers),
		)
	}

	return driver, nil
}

// ListRegisteredDrivers returns a snapshot of all registered drivers.
// Useful for debugging and diagnostics.
func ListRegisteredDrivers() map[string][]string {
	result := make(map[string][]string)

	databaseDriversMu.RLock()
	result["database"] = listLocked(databaseDrivers)
	databaseDriversMu.RUnlock()

	searchDriversMu.RLock()
	result["search"] = listLocked(searchDrivers)
	searchDriversMu.RUnlock()

	return result
}

// listLocked returns sorted driver names; the caller holds the lock
func listLocked[D any](drivers map[string]D) []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
