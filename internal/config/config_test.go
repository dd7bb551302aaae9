package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "boutique-datastore", cfg.App.Name)
	assert.Equal(t, "sqlite", cfg.Backend.Type)
	assert.Equal(t, "file", cfg.Snapshot.Type)
	assert.Equal(t, 5*time.Minute, cfg.Cache.MaxAge)
	assert.Equal(t, 30*time.Second, cfg.Cache.MemoTTL)
	assert.True(t, cfg.Refresh.Enabled)
	assert.True(t, cfg.App.IsDevelopment())
	assert.False(t, cfg.App.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_TYPE", "mysql")
	t.Setenv("BACKEND_MYSQL_USER", "boutique")
	t.Setenv("BACKEND_MYSQL_PASS", "secret")
	t.Setenv("CACHE_MAX_AGE", "90s")
	t.Setenv("SNAPSHOT_TYPE", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Backend.Type)
	assert.Equal(t, 90*time.Second, cfg.Cache.MaxAge)
	assert.Equal(t, "redis", cfg.Snapshot.Type)
	assert.Equal(t, "boutique:secret@tcp(localhost:3306)/boutique?parseTime=true", cfg.Backend.MySQLDSN())
}

func TestRedisAddress(t *testing.T) {
	s := SnapshotConfig{RedisHost: "cache.internal", RedisPort: 6380}
	assert.Equal(t, "cache.internal:6380", s.RedisAddress())
}
