package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
database:
  dsn: "root:root@tcp(127.0.0.1:3306)/picgram?parseTime=true"
  max_open: 42
redis:
  addr: "redis:6379"
kafka:
  brokers: ["k1:9092", "k2:9092"]
kafka_like_consumer:
  topic: "canal.picgram.likes"
  group_id: "picgram-likes"
`

func TestLoadConfigFrom(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sampleYAML), 0o600))

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "root:root@tcp(127.0.0.1:3306)/picgram?parseTime=true", cfg.DB.DSN)
	assert.Equal(t, 42, cfg.DB.MaxOpen)
	assert.Equal(t, 10, cfg.DB.MaxIdle)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "canal.picgram.likes", cfg.KafkaLikeConsumer.Topic)
	assert.Equal(t, "@every 1m", cfg.Cron.PostCounter)
}

func TestLoadConfigFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.Addr)
	assert.Equal(t, "picgram-media", cfg.MinIO.Bucket)
	assert.Equal(t, "@daily", cfg.Cron.MediaOrphan)
}

func TestLoadConfigFrom_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(sampleYAML), 0o600))
	t.Setenv("PICGRAM_DATABASE_DSN", "override-dsn")

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "override-dsn", cfg.DB.DSN)
}

func TestLoadConfigFrom_BrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database: [unclosed"), 0o600))

	_, err := LoadConfigFrom(dir)
	assert.Error(t, err)
}
