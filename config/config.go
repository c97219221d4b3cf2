package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Ledger store backends.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
)

type Config struct {
	Port             int
	DataDir          string
	DatabaseURL      string
	LedgerStore      string // "file" or "postgres"
	ReferenceURL     string // external reference draw source; empty = generate locally
	ReferenceTimeout time.Duration
	DecoyFrames      int  // animation frames returned before the final draw
	ReshuffleCosts   bool // reshuffling the reference draw costs one attempt
	Seed             *uint64
	LogLevel         string
	LogJSON          bool
}

func Load() *Config {
	port := 8081
	// Prefer PORT (PaaS convention) then LOTTO_PORT
	if p := os.Getenv("PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	} else if p := os.Getenv("LOTTO_PORT"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			port = v
		}
	}
	dataDir := os.Getenv("LOTTO_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	databaseURL := os.Getenv("DATABASE_URL")
	store := strings.ToLower(strings.TrimSpace(os.Getenv("LOTTO_LEDGER_STORE")))
	if store != StorePostgres {
		store = StoreFile
	}
	timeout := 5 * time.Second
	if v := os.Getenv("LOTTO_REFERENCE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}
	// 2.5s of 75ms animation ticks
	decoys := 33
	if v := os.Getenv("LOTTO_DECOY_FRAMES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			decoys = n
		}
	}
	reshuffleCosts := true
	if v := os.Getenv("LOTTO_RESHUFFLE_COSTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			reshuffleCosts = b
		}
	}
	var seed *uint64
	if v := os.Getenv("LOTTO_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			seed = &n
		}
	}
	logLevel := os.Getenv("LOTTO_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logJSON, _ := strconv.ParseBool(os.Getenv("LOTTO_LOG_JSON"))
	return &Config{
		Port:             port,
		DataDir:          dataDir,
		DatabaseURL:      databaseURL,
		LedgerStore:      store,
		ReferenceURL:     strings.TrimSpace(os.Getenv("LOTTO_REFERENCE_URL")),
		ReferenceTimeout: timeout,
		DecoyFrames:      decoys,
		ReshuffleCosts:   reshuffleCosts,
		Seed:             seed,
		LogLevel:         logLevel,
		LogJSON:          logJSON,
	}
}
