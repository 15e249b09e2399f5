package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyBuildInfo(t *testing.T) {
	info := Info{Version: "0.0.0", Branch: "unknown", Revision: "unknown", BuiltAt: "unknown"}
	applyBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	assert.Equal(t, "v1.4.0", info.Version)
	assert.Equal(t, "0123456", info.Revision)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuiltAt)
	assert.True(t, info.Modified)
	assert.Equal(t, "unknown", info.Branch)
}

func TestLdflagsValuesWin(t *testing.T) {
	info := Info{Version: "1.2.3", Revision: "abc", BuiltAt: "yesterday"}
	applyBuildInfo(&info, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "fff"}},
	})
	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc", info.Revision)
}

func TestFormats(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Contains(t, info.String(), "Go Version: "+runtime.Version())

	out, err := info.JSON()
	require.NoError(t, err)
	var decoded Info
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, info, decoded)
}
