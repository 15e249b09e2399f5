// Package config loads the node search configuration using Viper with
// support for environment overrides and hot-reloading.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfig("./config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Without a path the file "config.{yaml,yml,json}" is searched in
// /etc/nodesearch, $HOME/.nodesearch, the working directory and the
// executable's directory.
//
// # Example
//
//	app_name: nodesearch
//	server:
//	  host: 0.0.0.0
//	  port: 8080
//	data:
//	  search:
//	    engine: elasticsearch
//	    index: neos-live
//	    elasticsearch:
//	      addresses: ["http://localhost:9200"]
//	  database:
//	    driver: sqlite
//	    source: file:nodes.db?cache=shared
//	nodesearch:
//	  log_requests: true
//	  fall_back_on_empty_result: true
//	  search_strategies:
//	    default:
//	      position: 100
//	      condition: '${true}'
//	      request:
//	        query:
//	          query_string:
//	            query: ARGUMENT_TERM
//
// Strategy order in search_strategies is preserved as declared; positions
// decide, declaration order breaks ties.
//
// # Environment Variables
//
// Override config values with NODESEARCH_ prefixed environment variables
// using underscores:
//
//	export NODESEARCH_SERVER_PORT=9000
//	export NODESEARCH_DATA_SEARCH_INDEX=neos-user-admin
//
// # Hot Reloading
//
//	cfg.Watch(func(next *config.Config) {
//	    // swap services built from next
//	}, func(err error) {
//	    log.Println(err)
//	})
package config
