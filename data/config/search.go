package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Search represents search engine configuration
type Search struct {
	// Engine selects the registered search driver, "elasticsearch" by default.
	Engine string `yaml:"engine" json:"engine"`
	// Index is the index queried by every strategy; empty means all indices.
	Index         string         `yaml:"index" json:"index"`
	IndexPrefix   string         `yaml:"index_prefix" json:"index_prefix"`
	Timeout       time.Duration  `yaml:"timeout" json:"timeout"`
	Breaker       *Breaker       `yaml:"breaker" json:"breaker"`
	Elasticsearch *Elasticsearch `yaml:"elasticsearch" json:"elasticsearch"`
	OpenSearch    *OpenSearch    `yaml:"opensearch" json:"opensearch"`
}

// Breaker configures the circuit breaker in front of the engine
type Breaker struct {
	Enabled      bool          `yaml:"enabled" json:"enabled"`
	MaxRequests  uint32        `yaml:"max_requests" json:"max_requests"`
	Interval     time.Duration `yaml:"interval" json:"interval"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
	MinRequests  uint32        `yaml:"min_requests" json:"min_requests"`
	FailureRatio float64       `yaml:"failure_ratio" json:"failure_ratio"`
}

// Elasticsearch elasticsearch config struct
type Elasticsearch struct {
	Addresses []string `json:"addresses" yaml:"addresses"`
	Username  string   `json:"username" yaml:"username"`
	Password  string   `json:"password" yaml:"password"`
}

// OpenSearch opensearch config struct
type OpenSearch struct {
	Addresses       []string `json:"addresses" yaml:"addresses"`
	Username        string   `json:"username" yaml:"username"`
	Password        string   `json:"password" yaml:"password"`
	InsecureSkipTLS bool     `json:"insecure_skip_tls" yaml:"insecure_skip_tls"`
}

// getSearchConfig reads search configurations
func getSearchConfig(v *viper.Viper) *Search {
	return &Search{
		Engine:        GetStringOrDefault(v, "data.search.engine", "elasticsearch"),
		Index:         v.GetString("data.search.index"),
		IndexPrefix:   getSearchIndexPrefix(v),
		Timeout:       GetDurationOrDefault(v, "data.search.timeout", 5*time.Second),
		Breaker:       getBreakerConfig(v),
		Elasticsearch: getElasticsearchConfigs(v),
		OpenSearch:    getOpenSearchConfigs(v),
	}
}

// getSearchIndexPrefix gets search index prefix
func getSearchIndexPrefix(v *viper.Viper) string {
	if v.IsSet("data.search.index_prefix") {
		return v.GetString("data.search.index_prefix")
	}
	return getDefaultIndexPrefix(v)
}

// getDefaultIndexPrefix builds default index prefix from app info.
// Only applies when use_app_prefix is enabled, content indices are usually
// shared with the CMS that writes them.
func getDefaultIndexPrefix(v *viper.Viper) string {
	if !v.GetBool("data.search.use_app_prefix") {
		return ""
	}

	appName := v.GetString("app_name")
	environment := v.GetString("environment")

	if appName != "" && environment != "" {
		return strings.ToLower(fmt.Sprintf("%s-%s", appName, environment))
	}

	return strings.ToLower(appName)
}

// getBreakerConfig reads circuit breaker settings
func getBreakerConfig(v *viper.Viper) *Breaker {
	return &Breaker{
		Enabled:      GetBoolOrDefault(v, "data.search.breaker.enabled", true),
		MaxRequests:  uint32(GetIntOrDefault(v, "data.search.breaker.max_requests", 100)),
		Interval:     GetDurationOrDefault(v, "data.search.breaker.interval", 5*time.Second),
		Timeout:      GetDurationOrDefault(v, "data.search.breaker.timeout", 3*time.Second),
		MinRequests:  uint32(GetIntOrDefault(v, "data.search.breaker.min_requests", 3)),
		FailureRatio: GetFloatOrDefault(v, "data.search.breaker.failure_ratio", 0.6),
	}
}

// getElasticsearchConfigs reads Elasticsearch configurations
func getElasticsearchConfigs(v *viper.Viper) *Elasticsearch {
	// Prefer `data.search.elasticsearch.*` but keep backward compatibility with `data.elasticsearch.*`.
	addresses := v.GetStringSlice("data.search.elasticsearch.addresses")
	if len(addresses) == 0 {
		addresses = v.GetStringSlice("data.elasticsearch.addresses")
	}

	username := v.GetString("data.search.elasticsearch.username")
	if username == "" {
		username = v.GetString("data.elasticsearch.username")
	}

	password := v.GetString("data.search.elasticsearch.password")
	if password == "" {
		password = v.GetString("data.elasticsearch.password")
	}

	return &Elasticsearch{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	}
}

// getOpenSearchConfigs reads OpenSearch configurations
func getOpenSearchConfigs(v *viper.Viper) *OpenSearch {
	addresses := v.GetStringSlice("data.search.opensearch.addresses")
	if len(addresses) == 0 {
		addresses = v.GetStringSlice("data.opensearch.addresses")
	}

	username := v.GetString("data.search.opensearch.username")
	if username == "" {
		username = v.GetString("data.opensearch.username")
	}

	password := v.GetString("data.search.opensearch.password")
	if password == "" {
		password = v.GetString("data.opensearch.password")
	}

	insecureSkipTLS := v.GetBool("data.search.opensearch.insecure_skip_tls")
	if !v.IsSet("data.search.opensearch.insecure_skip_tls") {
		insecureSkipTLS = v.GetBool("data.opensearch.insecure_skip_tls")
	}

	return &OpenSearch{
		Addresses:       addresses,
		Username:        username,
		Password:        password,
		InsecureSkipTLS: insecureSkipTLS,
	}
}
