package sqlite

import (
	"context"
	"testing"

	"github.com/ncobase/nodesearch/data"
	"github.com/ncobase/nodesearch/data/config"
)

func TestConnectInMemory(t *testing.T) {
	d, err := data.GetDatabaseDriver("sqlite")
	if err != nil {
		t.Fatalf("expected sqlite driver to be registered: %v", err)
	}

	db, err := d.Connect(context.Background(), &config.Database{Driver: "sqlite", Source: ":memory:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("expected single connection pool, got %d", got)
	}

	var one int
	if err := db.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("query failed: %v", err)
	}
}

func TestConnectRejectsEmptySource(t *testing.T) {
	if _, err := (&driver{}).Connect(context.Background(), &config.Database{}); err == nil {
		t.Fatalf("expected error for empty source")
	}
}

func TestLowerFoldsUnicode(t *testing.T) {
	db, err := (&driver{}).Connect(context.Background(), &config.Database{Driver: "sqlite", Source: ":memory:"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	var lower, upper string
	var null *string
	if err := db.QueryRow("SELECT LOWER('MÜNCHEN Straße'), UPPER('münchen'), LOWER(NULL)").Scan(&lower, &upper, &null); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if lower != "münchen straße" {
		t.Errorf("LOWER = %q", lower)
	}
	if upper != "MÜNCHEN" {
		t.Errorf("UPPER = %q", upper)
	}
	if null != nil {
		t.Errorf("LOWER(NULL) = %q, want NULL", *null)
	}
}
