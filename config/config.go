package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dc "github.com/ncobase/nodesearch/data/config"
	lc "github.com/ncobase/nodesearch/logging/logger/config"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides
const EnvPrefix = "NODESEARCH"

// Config represents the configuration implementation.
type Config struct {
	AppName     string
	RunMode     string
	Environment string
	Host        string
	Port        int
	Logger      *lc.Config
	Data        *dc.Config
	NodeSearch  *NodeSearch
	Viper       *viper.Viper
}

// Addr returns the HTTP listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig loads the configuration from the file.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		ex, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to get executable path: %w", err)
		}
		v.SetConfigName("config")
		v.AddConfigPath("/etc/nodesearch")
		v.AddConfigPath("$HOME/.nodesearch")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Dir(ex))
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	nodeSearch, err := getNodeSearchConfig(v)
	if err != nil {
		return nil, err
	}

	return &Config{
		AppName:     dc.GetStringOrDefault(v, "app_name", "nodesearch"),
		RunMode:     dc.GetStringOrDefault(v, "run_mode", "release"),
		Environment: v.GetString("environment"),
		Host:        dc.GetStringOrDefault(v, "server.host", "0.0.0.0"),
		Port:        dc.GetIntOrDefault(v, "server.port", 8080),
		Logger:      lc.GetConfig(v),
		Data:        dc.GetConfig(v),
		NodeSearch:  nodeSearch,
		Viper:       v,
	}, nil
}

// Watch watches the configuration file and calls callback with a freshly
// loaded configuration whenever it changes. Reload failures go to onError
// and leave the previous configuration in place.
func (c *Config) Watch(callback func(*Config), onError func(error)) {
	file := c.Viper.ConfigFileUsed()
	c.Viper.OnConfigChange(func(e fsnotify.Event) {
		next, err := LoadConfig(file)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("failed to reload config: %w", err))
			}
			return
		}
		callback(next)
	})
	c.Viper.WatchConfig()
}
