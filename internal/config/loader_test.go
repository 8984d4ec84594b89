package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfmon/shelfmon/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
version: 1
api_url: ws://nas.local/websocket
refresh_interval: 15s
tasks:
  smart-scan:
    method: smart.test
    schedule: "0 3 * * 0"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ws://nas.local/websocket", cfg.APIURL)
	assert.Equal(t, 15*time.Second, cfg.RefreshInterval)

	task, ok := cfg.Tasks["smart-scan"]
	require.True(t, ok)
	ct, err := task.Crontab()
	require.NoError(t, err)
	assert.Equal(t, "0", ct.Minute)
	assert.Equal(t, "0", ct.DayOfWeek)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "api_url: [unclosed")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestLoad_NewerVersionRejected(t *testing.T) {
	path := writeConfig(t, "version: 99\napi_url: ws://x/websocket\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer")
}

func TestLoad_EmptyAPIURLRejected(t *testing.T) {
	path := writeConfig(t, "version: 1\napi_url: \"\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_url")
}

func TestLoadOrDefault_NoFileAnywhere(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv("HOME", filepath.Join(tmp, "home"))

	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().APIURL, cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
}

func TestFind_ExplicitMissing(t *testing.T) {
	_, err := Find(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFind_CurrentDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("version: 1\napi_url: ws://x\n"), 0o644))
	t.Chdir(tmp)

	found, err := Find("")
	require.NoError(t, err)
	assert.Equal(t, path, found)
}
