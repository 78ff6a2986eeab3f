package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 200, cfg.Search.MaxResults)
	assert.False(t, cfg.Search.Regex)
	assert.InDelta(t, 0.4, cfg.Panel.SplitRatio, 1e-9)
	assert.Equal(t, 100, cfg.References.MaxResults)
	assert.InDelta(t, 0.7, cfg.References.SplitRatio, 1e-9)
}

func TestLoadFromPathKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[search]\nregex = true\nmax_results = 50\n"), 0644))

	cfg, err := NewConfigServiceAt(path).Load()
	require.NoError(t, err)
	assert.True(t, cfg.Search.Regex)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.Equal(t, "git", cfg.Search.GitBinary)
	assert.InDelta(t, 0.4, cfg.Panel.SplitRatio, 1e-9)
}

func TestLoadMissingUserFileGivesDefaults(t *testing.T) {
	cfg, err := NewConfigServiceAt(filepath.Join(t.TempDir(), "nope.toml")).Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	svc := NewConfigServiceAt(path)

	cfg := DefaultConfig()
	cfg.Panel.SplitRatio = 0.5
	cfg.Log.File = "/tmp/gr.log"
	require.NoError(t, svc.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "[panel]")

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	svc := NewConfigServiceAt(filepath.Join(dir, "x.toml"))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[panel]\nsplit_ratio = 1.5\n"), 0644))
	_, err := svc.LoadFromPath(bad)
	assert.True(t, errors.Is(err, ErrInvalidConfig))

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[search\n"), 0644))
	_, err = svc.LoadFromPath(broken)
	assert.Error(t, err)

	_, err = svc.LoadFromPath(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.Search.MaxResults = 0
	assert.True(t, errors.Is(svc.SaveToPath(cfg, filepath.Join(dir, "out.toml")), ErrInvalidConfig))
}

func TestResolveOrder(t *testing.T) {
	project := t.TempDir()
	userPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(userPath, []byte("[search]\nmax_results = 10\n"), 0644))
	svc := NewConfigServiceAt(userPath)

	cfg, from, err := Resolve(svc, "", project)
	require.NoError(t, err)
	assert.Equal(t, "", from)
	assert.Equal(t, 10, cfg.Search.MaxResults)

	projectPath := filepath.Join(project, ProjectFileName)
	require.NoError(t, os.WriteFile(projectPath, []byte("[search]\nmax_results = 20\n"), 0644))
	cfg, from, err = Resolve(svc, "", project)
	require.NoError(t, err)
	assert.Equal(t, projectPath, from)
	assert.Equal(t, 20, cfg.Search.MaxResults)

	explicit := filepath.Join(t.TempDir(), "explicit.toml")
	require.NoError(t, os.WriteFile(explicit, []byte("[search]\nmax_results = 30\n"), 0644))
	cfg, from, err = Resolve(svc, explicit, project)
	require.NoError(t, err)
	assert.Equal(t, explicit, from)
	assert.Equal(t, 30, cfg.Search.MaxResults)
}
