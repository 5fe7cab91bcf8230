package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/flood-signal-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "raw-bmd-observations", cfg.KafkaSourceTopic)
	assert.Equal(t, "flood-labeled-observations", cfg.KafkaSinkTopic)
	assert.Equal(t, "flood-signal-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, 1100.0, cfg.CoastalThresholdMM)
	assert.Equal(t, 550.0, cfg.DeltaicThresholdMM)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, cfg.MonsoonMonths)
	assert.Empty(t, cfg.StationMapPath)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("COASTAL_THRESHOLD_MM", "1000")
	t.Setenv("DELTAIC_THRESHOLD_MM", "500")
	t.Setenv("MONSOON_MONTHS", "5,6,7,8,9,10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, 1000.0, cfg.CoastalThresholdMM)
	assert.Equal(t, 500.0, cfg.DeltaicThresholdMM)
	assert.Equal(t, []int{5, 6, 7, 8, 9, 10}, cfg.MonsoonMonths)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BatchSizeTooLarge(t *testing.T) {
	t.Setenv("BATCH_SIZE", "9999")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MonsoonMonthOutOfRange(t *testing.T) {
	t.Setenv("MONSOON_MONTHS", "6,13")
	_, err := Load()
	require.Error(t, err)
}

func TestLabelPolicy_FromConfig(t *testing.T) {
	t.Setenv("COASTAL_THRESHOLD_MM", "1000")
	t.Setenv("DELTAIC_THRESHOLD_MM", "500")

	cfg, err := Load()
	require.NoError(t, err)

	policy, err := cfg.LabelPolicy()
	require.NoError(t, err)
	assert.Equal(t, 1000.0, policy.Threshold(domain.RegionCoastal))
	assert.Equal(t, 500.0, policy.Threshold(domain.RegionDeltaic))
	assert.True(t, policy.MonsoonMonths[6])
	assert.False(t, policy.MonsoonMonths[5])
}

func TestStationMap_Default(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	m, err := cfg.StationMap()
	require.NoError(t, err)

	region, mapped := m.Resolve("Teknaf")
	assert.Equal(t, domain.RegionCoastal, region)
	assert.True(t, mapped)
}

func TestStationMap_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"coastal":["A"],"deltaic":["B"]}`), 0o600))
	t.Setenv("STATION_MAP_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	m, err := cfg.StationMap()
	require.NoError(t, err)

	region, mapped := m.Resolve("A")
	assert.Equal(t, domain.RegionCoastal, region)
	assert.True(t, mapped)

	_, mapped = m.Resolve("C")
	assert.False(t, mapped)
}

func TestStationMap_OverlapRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stations.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"coastal":["A"],"deltaic":["A"]}`), 0o600))
	t.Setenv("STATION_MAP_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.StationMap()
	require.Error(t, err)
}

func TestStationMap_MissingFile(t *testing.T) {
	t.Setenv("STATION_MAP_PATH", filepath.Join(t.TempDir(), "missing.json"))

	cfg, err := Load()
	require.NoError(t, err)

	_, err = cfg.StationMap()
	require.Error(t, err)
}
