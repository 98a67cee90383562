package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultChannel, cfg.Channel)
	assert.Equal(t, "localhost:6379", cfg.Address)
}

func TestLoadConfigFileChannelKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cnc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: valkey:6379\nchannel: fleet\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "fleet", cfg.Channel)
	assert.Equal(t, "valkey:6379", cfg.Address)
}
