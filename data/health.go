package data

import (
	"context"
	"database/sql"
	"time"

	"github.com/ncobase/nodesearch/data/search"
)

// Check is a named health probe
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// DatabaseCheck pings db
func DatabaseCheck(db *sql.DB) Check {
	return Check{Name: "database", Probe: func(ctx context.Context) error {
		return db.PingContext(ctx)
	}}
}

// SearchCheck reports the search client's circuit state
func SearchCheck(client *search.Client) Check {
	return Check{Name: "search", Probe: func(context.Context) error {
		return client.Healthy()
	}}
}

// Health runs every check and reports "healthy" or "degraded"
func Health(ctx context.Context, checks ...Check) map[string]any {
	services := make(map[string]any, len(checks))
	overallHealthy := true

	for _, c := range checks {
		start := time.Now()
		err := c.Probe(ctx)
		duration := time.Since(start)

		healthy := err == nil
		services[c.Name] = map[string]any{
			"healthy":     healthy,
			"response_ms": duration.Milliseconds(),
			"error":       getErrorString(err),
		}
		if !healthy {
			overallHealthy = false
		}
	}

	status := "healthy"
	if !overallHealthy {
		status = "degraded"
	}
	return map[string]any{
		"timestamp": time.Now(),
		"status":    status,
		"services":  services,
	}
}

func getErrorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
