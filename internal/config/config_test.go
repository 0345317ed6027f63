package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("MEETSYNC_MEMORY_ROOT", filepath.Join(dir, "memory"))
	t.Setenv("MEETSYNC_CACHE_PATH", "")
	t.Setenv("MEETSYNC_USER_EMAIL", "")
	t.Setenv("MEETSYNC_ORG_DOMAIN", "")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "memory"), cfg.MemoryRoot)
	assert.Contains(t, cfg.CachePath, "cache-v3.json")
	assert.Equal(t, 3, cfg.SyncDelayMinutes)
	assert.Equal(t, 10, cfg.CooldownSeconds)
	assert.Equal(t, 2, cfg.SettleSeconds)

	// The memory root is created on load.
	assert.DirExists(t, cfg.MemoryRoot)
}

func TestLoadDerivesOrgDomain(t *testing.T) {
	isolate(t)
	t.Setenv("MEETSYNC_USER_EMAIL", "me@Acme.COM")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "acme.com", cfg.OrgDomain)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := isolate(t)

	saved, err := Save(&Config{
		CachePath:        "/from/file/cache.json",
		MemoryRoot:       filepath.Join(dir, "memory"),
		UserEmail:        "file@acme.com",
		SyncDelayMinutes: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, saved, FilePath())

	t.Setenv("MEETSYNC_USER_EMAIL", "env@acme.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/from/file/cache.json", cfg.CachePath)
	assert.Equal(t, "env@acme.com", cfg.UserEmail)
	assert.Equal(t, 7, cfg.SyncDelayMinutes)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := isolate(t)

	in := &Config{
		CachePath:        "/somewhere/cache.json",
		MemoryRoot:       filepath.Join(dir, "memory"),
		UserEmail:        "me@acme.com",
		OrgDomain:        "acme.com",
		SyncDelayMinutes: 5,
		CooldownSeconds:  20,
		SettleSeconds:    4,
	}

	_, err := Save(in)
	require.NoError(t, err)

	out, err := Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
