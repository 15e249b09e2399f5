package config

import (
	"time"

	"github.com/spf13/viper"
)

// GetStringOrDefault returns the string at key, or def when it is unset
func GetStringOrDefault(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

// GetIntOrDefault returns the int at key, or def when it is unset
func GetIntOrDefault(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		return v.GetInt(key)
	}
	return def
}

// GetBoolOrDefault returns the bool at key, or def when it is unset
func GetBoolOrDefault(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}

func GetFloatOrDefault(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		return v.GetFloat64(key)
	}
	return def
}

// GetDurationOrDefault parses durations like "5s"
func GetDurationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	if v.IsSet(key) {
		return v.GetDuration(key)
	}
	return def
}
