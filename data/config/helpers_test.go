package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestGetOrDefault(t *testing.T) {
	v := viper.New()
	v.Set("app_name", "")
	v.Set("server.port", 9090)
	v.Set("breaker.enabled", false)
	v.Set("breaker.ratio", 0.25)
	v.Set("timeout", "2s")

	if got := GetStringOrDefault(v, "app_name", "nodesearch"); got != "" {
		t.Errorf("explicit empty string must win, got %q", got)
	}
	if got := GetStringOrDefault(v, "run_mode", "release"); got != "release" {
		t.Errorf("GetStringOrDefault = %q", got)
	}
	if got := GetIntOrDefault(v, "server.port", 8080); got != 9090 {
		t.Errorf("GetIntOrDefault = %d", got)
	}
	if got := GetIntOrDefault(v, "server.missing", 8080); got != 8080 {
		t.Errorf("GetIntOrDefault default = %d", got)
	}
	if GetBoolOrDefault(v, "breaker.enabled", true) {
		t.Errorf("explicit false must win")
	}
	if got := GetFloatOrDefault(v, "breaker.ratio", 0.6); got != 0.25 {
		t.Errorf("GetFloatOrDefault = %v", got)
	}
	if got := GetDurationOrDefault(v, "timeout", time.Second); got != 2*time.Second {
		t.Errorf("GetDurationOrDefault = %v", got)
	}
	if got := GetDurationOrDefault(v, "missing", time.Second); got != time.Second {
		t.Errorf("GetDurationOrDefault default = %v", got)
	}
}
