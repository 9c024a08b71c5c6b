package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Test Biz", "client-1")
	cfg.Database.Path = "data/chart.db"

	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Business.Name, got.Business.Name)
	assert.Equal(t, cfg.Business.ClientID, got.Business.ClientID)
	assert.Equal(t, "data/chart.db", got.Database.Path)
	assert.Equal(t, cfg.Audit.Enabled, got.Audit.Enabled)
	assert.Equal(t, cfg.Audit.Dir, got.Audit.Dir)
	assert.Equal(t, cfg.Import.DefaultDisposition, got.Import.DefaultDisposition)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", "client-9")

	assert.Equal(t, "My Company", cfg.Business.Name)
	assert.Equal(t, "client-9", cfg.Business.ClientID)
	assert.Equal(t, "ledgerline.db", cfg.Database.Path)
	assert.True(t, cfg.Audit.Enabled)
	assert.Equal(t, "logs", cfg.Audit.Dir)
	assert.Equal(t, "inactive", cfg.Import.DefaultDisposition)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz", "client-1")
	path := filepath.Join(t.TempDir(), "ledgerline.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "client_id: client-1")
	assert.Contains(t, contents, "path: ledgerline.db")
	assert.Contains(t, contents, "default_disposition: inactive")
}
