package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanguosha/resolve/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Defaults()
	assert.Equal(t, 16, cfg.Resolution.MaxNullificationDepth)
	assert.Equal(t, 64, cfg.Resolution.MaxLoopIterations)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_OverridesOnlyGivenFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolution:\n  max_nullification_depth: 4\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Resolution.MaxNullificationDepth)
	assert.Equal(t, config.Defaults().Resolution.MaxBusDepth, cfg.Resolution.MaxBusDepth)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
