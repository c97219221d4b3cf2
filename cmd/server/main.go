package main

import (
	"fmt"

	lotto "github.com/Ashenafi-pixel/lotto-sphere"
	"github.com/Ashenafi-pixel/lotto-sphere/config"
	"github.com/Ashenafi-pixel/lotto-sphere/database"
	"github.com/Ashenafi-pixel/lotto-sphere/draw"
	"github.com/Ashenafi-pixel/lotto-sphere/ledger"
	"github.com/Ashenafi-pixel/lotto-sphere/reference"
	"github.com/Ashenafi-pixel/lotto-sphere/server"
	"github.com/Ashenafi-pixel/lotto-sphere/session"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// Load .env so DATABASE_URL is set: cwd .env or project root .env/.env.local
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")
	_ = godotenv.Load("../.env.local")
	cfg := config.Load()
	cfg.ConfigureLogging()

	opts, err := sessionOptions(cfg)
	if err != nil {
		log.Fatal(err)
	}
	srv := server.New(cfg, session.NewRegistry(opts))
	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}

func sessionOptions(cfg *config.Config) (session.Options, error) {
	opts := session.Options{
		FetchTimeout:   cfg.ReferenceTimeout,
		DecoyFrames:    cfg.DecoyFrames,
		ReshuffleCosts: cfg.ReshuffleCosts,
	}
	if cfg.Seed != nil {
		log.Warnf("using seeded random source (seed %d); draws are predictable", *cfg.Seed)
		opts.Source = draw.NewSeededSource(*cfg.Seed)
	}
	if cfg.ReferenceURL != "" {
		opts.Provider = reference.NewHTTPProvider(cfg.ReferenceURL, cfg.ReferenceTimeout)
	}

	switch cfg.LedgerStore {
	case config.StorePostgres:
		db, err := lotto.GetDB()
		if err != nil {
			return opts, fmt.Errorf("connect db: %w", err)
		}
		if db == nil {
			return opts, fmt.Errorf("LOTTO_LEDGER_STORE=postgres but DATABASE_URL is not set")
		}
		if err := database.MigrateUp(db); err != nil {
			return opts, err
		}
		opts.Store = ledger.NewPGStore(db)
	default:
		opts.Store = ledger.NewFileStore(cfg.DataDir)
	}
	return opts, nil
}
