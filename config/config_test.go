package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "LOTTO_PORT", "LOTTO_DATA_DIR", "DATABASE_URL", "LOTTO_LEDGER_STORE",
		"LOTTO_REFERENCE_URL", "LOTTO_REFERENCE_TIMEOUT", "LOTTO_DECOY_FRAMES",
		"LOTTO_RESHUFFLE_COSTS", "LOTTO_SEED", "LOTTO_LOG_LEVEL", "LOTTO_LOG_JSON",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, StoreFile, cfg.LedgerStore)
	assert.Equal(t, 5*time.Second, cfg.ReferenceTimeout)
	assert.Equal(t, 33, cfg.DecoyFrames)
	assert.True(t, cfg.ReshuffleCosts)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOTTO_PORT", "9090")
	t.Setenv("LOTTO_LEDGER_STORE", "Postgres")
	t.Setenv("LOTTO_REFERENCE_URL", " http://draws.local/latest ")
	t.Setenv("LOTTO_REFERENCE_TIMEOUT", "250ms")
	t.Setenv("LOTTO_DECOY_FRAMES", "0")
	t.Setenv("LOTTO_RESHUFFLE_COSTS", "false")
	t.Setenv("LOTTO_SEED", "42")
	t.Setenv("LOTTO_LOG_JSON", "true")

	cfg := Load()
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StorePostgres, cfg.LedgerStore)
	assert.Equal(t, "http://draws.local/latest", cfg.ReferenceURL)
	assert.Equal(t, 250*time.Millisecond, cfg.ReferenceTimeout)
	assert.Equal(t, 0, cfg.DecoyFrames)
	assert.False(t, cfg.ReshuffleCosts)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.True(t, cfg.LogJSON)
}

func TestLoad_PortPrecedenceAndBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("LOTTO_PORT", "9090")
	t.Setenv("LOTTO_DECOY_FRAMES", "-3")
	t.Setenv("LOTTO_REFERENCE_TIMEOUT", "soon")
	t.Setenv("LOTTO_LEDGER_STORE", "redis")

	cfg := Load()
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, 33, cfg.DecoyFrames)
	assert.Equal(t, 5*time.Second, cfg.ReferenceTimeout)
	assert.Equal(t, StoreFile, cfg.LedgerStore)
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)

	(&Config{LogLevel: "debug"}).ConfigureLogging()
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	(&Config{LogLevel: "shouty", LogJSON: true}).ConfigureLogging()
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)
	log.SetFormatter(&log.TextFormatter{})
}
