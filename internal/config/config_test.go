package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/groute/internal/config"
	"github.com/kittclouds/groute/pkg/sequencer"
)

func TestDefaultMatchesSequencerConstants(t *testing.T) {
	cfg := config.Default()
	assert.EqualValues(t, sequencer.DefaultSeed, cfg.Seed)
	assert.Equal(t, sequencer.DefaultTimeBudget, cfg.TimeBudget)
	assert.Empty(t, cfg.CachePath)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverridesSubsetOfFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groute.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 42\ntime_budget: 30s\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.EqualValues(t, 42, cfg.Seed)
	assert.Equal(t, 30*time.Second, cfg.TimeBudget)
	assert.Empty(t, cfg.CachePath, "unset fields keep the compiled-in default")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groute.yaml")
	require.NoError(t, os.WriteFile(path, []byte("time_budget: not-a-duration\n"), 0644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoadSetsCachePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "groute.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache_path: /tmp/groute-cache.db\n"), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/groute-cache.db", cfg.CachePath)
}
