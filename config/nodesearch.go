package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	dc "github.com/ncobase/nodesearch/data/config"
	"github.com/ncobase/nodesearch/nodesearch"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const strategiesKey = "nodesearch.search_strategies"

// NodeSearch node search config struct
type NodeSearch struct {
	LogRequests           bool                  `json:"log_requests" yaml:"log_requests"`
	FallBackOnEmptyResult bool                  `json:"fall_back_on_empty_result" yaml:"fall_back_on_empty_result"`
	FallbackLimit         int                   `json:"fallback_limit" yaml:"fallback_limit"`
	DefaultWorkspace      string                `json:"default_workspace" yaml:"default_workspace"`
	Strategies            nodesearch.Strategies `json:"search_strategies" yaml:"search_strategies"`
}

func getNodeSearchConfig(v *viper.Viper) (*NodeSearch, error) {
	strategies, err := getStrategies(v)
	if err != nil {
		return nil, err
	}

	return &NodeSearch{
		LogRequests:           v.GetBool("nodesearch.log_requests"),
		FallBackOnEmptyResult: v.GetBool("nodesearch.fall_back_on_empty_result"),
		FallbackLimit:         dc.GetIntOrDefault(v, "nodesearch.fallback_limit", 50),
		DefaultWorkspace:      dc.GetStringOrDefault(v, "nodesearch.default_workspace", "live"),
		Strategies:            strategies,
	}, nil
}

// getStrategies reads search strategies in declaration order. Viper maps
// lose key order, so YAML and JSON files are decoded again with yaml.v3;
// other formats fall back to identifier order.
func getStrategies(v *viper.Viper) (nodesearch.Strategies, error) {
	if !v.IsSet(strategiesKey) {
		return nil, nil
	}

	file := v.ConfigFileUsed()
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml", ".json":
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read search strategies: %w", err)
		}
		return ParseStrategies(raw)
	}

	var byID map[string]nodesearch.Strategy
	if err := v.UnmarshalKey(strategiesKey, &byID); err != nil {
		return nil, fmt.Errorf("failed to decode search strategies: %w", err)
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	strategies := make(nodesearch.Strategies, 0, len(ids))
	for _, id := range ids {
		s := byID[id]
		s.Identifier = id
		strategies = append(strategies, s)
	}
	return strategies, nil
}

// ParseStrategies extracts nodesearch.search_strategies from a YAML (or JSON)
// document, keeping the declaration order.
func ParseStrategies(doc []byte) (nodesearch.Strategies, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("failed to parse search strategies: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	for _, key := range strings.Split(strategiesKey, ".") {
		node = mappingValue(node, key)
		if node == nil {
			return nil, nil
		}
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("search_strategies must be a mapping, line %d", node.Line)
	}

	strategies := make(nodesearch.Strategies, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var s nodesearch.Strategy
		if err := node.Content[i+1].Decode(&s); err != nil {
			return nil, fmt.Errorf("search strategy %q: %w", node.Content[i].Value, err)
		}
		s.Identifier = node.Content[i].Value
		strategies = append(strategies, s)
	}
	return strategies, nil
}

// mappingValue returns the value for key in a mapping node; keys compare
// case-insensitively like viper's.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if strings.EqualFold(node.Content[i].Value, key) {
			return node.Content[i+1]
		}
	}
	return nil
}
