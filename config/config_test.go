package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
app_name: nodesearch
server:
  port: 9090
logger:
  level: 5
  format: json
data:
  search:
    engine: opensearch
    index: neos-live
    opensearch:
      addresses: ["https://search:9200"]
  database:
    driver: sqlite
    source: ":memory:"
nodesearch:
  log_requests: true
  fall_back_on_empty_result: true
  search_strategies:
    Zeta:
      position: 10
      condition: '${term == "x"}'
      request:
        query:
          match:
            title: ARGUMENT_TERM
    alpha:
      position: 10
      condition: '${true}'
    middle:
      condition: '${false}'
      request:
        size: 5
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yaml", sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "nodesearch", cfg.AppName)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.Equal(t, 5, cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "opensearch", cfg.Data.Search.Engine)
	assert.Equal(t, "neos-live", cfg.Data.Search.Index)
	assert.Equal(t, []string{"https://search:9200"}, cfg.Data.Search.OpenSearch.Addresses)
	assert.True(t, cfg.Data.Database.IsSet())

	ns := cfg.NodeSearch
	assert.True(t, ns.LogRequests)
	assert.True(t, ns.FallBackOnEmptyResult)
	assert.Equal(t, 50, ns.FallbackLimit)
	assert.Equal(t, "live", ns.DefaultWorkspace)

	require.Len(t, ns.Strategies, 3)
	assert.Equal(t, "Zeta", ns.Strategies[0].Identifier)
	assert.Equal(t, "alpha", ns.Strategies[1].Identifier)
	assert.Equal(t, "middle", ns.Strategies[2].Identifier)
	assert.Equal(t, `${term == "x"}`, ns.Strategies[0].Condition)
	assert.Equal(t, map[string]any{
		"query": map[string]any{"match": map[string]any{"title": "ARGUMENT_TERM"}},
	}, ns.Strategies[0].Request)
	assert.False(t, ns.Strategies[1].HasTemplate())
	assert.Equal(t, 0, ns.Strategies[2].Position)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("NODESEARCH_SERVER_PORT", "7070")
	t.Setenv("NODESEARCH_DATA_SEARCH_INDEX", "neos-user-admin")

	cfg, err := LoadConfig(writeConfig(t, "config.yaml", sampleConfig))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "neos-user-admin", cfg.Data.Search.Index)
}

func TestLoadConfigJSONKeepsOrder(t *testing.T) {
	doc := `{"nodesearch":{"search_strategies":{"b":{"position":1,"condition":"true"},"a":{"position":1,"condition":"true"}}}}`

	cfg, err := LoadConfig(writeConfig(t, "config.json", doc))
	require.NoError(t, err)
	require.Len(t, cfg.NodeSearch.Strategies, 2)
	assert.Equal(t, "b", cfg.NodeSearch.Strategies[0].Identifier)
	assert.Equal(t, "a", cfg.NodeSearch.Strategies[1].Identifier)
}

func TestLoadConfigTOMLSortsByIdentifier(t *testing.T) {
	doc := `
[nodesearch.search_strategies.b]
position = 1
condition = "true"

[nodesearch.search_strategies.a]
position = 2
condition = "false"
`
	cfg, err := LoadConfig(writeConfig(t, "config.toml", doc))
	require.NoError(t, err)
	require.Len(t, cfg.NodeSearch.Strategies, 2)
	assert.Equal(t, "a", cfg.NodeSearch.Strategies[0].Identifier)
	assert.Equal(t, 2, cfg.NodeSearch.Strategies[0].Position)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "config.yaml", "nodesearch:\n  search_strategies: [1, 2]\n"))
	assert.Error(t, err)
}

func TestParseStrategiesWithoutSection(t *testing.T) {
	strategies, err := ParseStrategies([]byte("app_name: x\n"))
	require.NoError(t, err)
	assert.Nil(t, strategies)
}

func TestWatchReloads(t *testing.T) {
	path := writeConfig(t, "config.yaml", "server:\n  port: 1000\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	var port atomic.Int64
	cfg.Watch(func(next *Config) {
		port.Store(int64(next.Port))
	}, nil)

	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 2000\n"), 0o644))
	assert.Eventually(t, func() bool { return port.Load() == 2000 }, 5*time.Second, 20*time.Millisecond)
}
