package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config configuration struct
type Config struct {
	Level      int    `json:"level" yaml:"level"`
	Format     string `json:"format" yaml:"format"`
	Output     string `json:"output" yaml:"output"`
	OutputFile string `json:"output_file" yaml:"output_file"`
	Version    string `json:"version" yaml:"version"`
}

// default level is logrus.InfoLevel
const defaultLevel = 4

// GetConfig returns the logger configuration
func GetConfig(v *viper.Viper) *Config {
	if !v.IsSet("logger") {
		return &Config{Level: defaultLevel, Format: "text", Output: "stdout"}
	}

	cfg := &Config{
		Level:      v.GetInt("logger.level"),
		Format:     strings.ToLower(v.GetString("logger.format")),
		Output:     strings.ToLower(v.GetString("logger.output")),
		OutputFile: v.GetString("logger.output_file"),
	}
	if !v.IsSet("logger.level") {
		cfg.Level = defaultLevel
	}
	return cfg
}
