package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	lotto "github.com/Ashenafi-pixel/lotto-sphere"
	"github.com/Ashenafi-pixel/lotto-sphere/config"
	"github.com/Ashenafi-pixel/lotto-sphere/database"
	"github.com/Ashenafi-pixel/lotto-sphere/draw"
	"github.com/Ashenafi-pixel/lotto-sphere/match"
	"github.com/Ashenafi-pixel/lotto-sphere/session"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const usage = `usage:
  lottoctl migrate up|status
  lottoctl migrate down <steps>
  lottoctl simulate [-plays N] [-seed S]`

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	cfg.ConfigureLogging()

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "migrate":
		err = runMigrate(os.Args[2:])
	case "simulate":
		err = runSimulate(os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func runMigrate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing migrate action\n%s", usage)
	}
	db, err := lotto.GetDB()
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	if db == nil {
		return fmt.Errorf("DATABASE_URL is not set; cannot connect to DB")
	}
	defer db.Close()

	switch args[0] {
	case "up":
		return database.MigrateUp(db)
	case "status":
		return database.MigrateStatus(db)
	case "down":
		if len(args) < 2 {
			return fmt.Errorf("migrate down needs a step count")
		}
		steps, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid steps value: %w", err)
		}
		return database.MigrateDown(db, steps)
	}
	return fmt.Errorf("unknown migrate action %q", args[0])
}

// runSimulate plays N rounds against one reference draw and prints the
// resulting ledger.
func runSimulate(args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	plays := fs.Int("plays", 10000, "number of plays")
	seed := fs.Uint64("seed", 0, "seed for a replicable run (0 = crypto source)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *plays <= 0 {
		return fmt.Errorf("-plays must be positive")
	}

	opts := session.Options{}
	if *seed != 0 {
		opts.Source = draw.NewSeededSource(*seed)
	}
	ctx := context.Background()
	s := session.New(uuid.New(), opts)
	ref, _, err := s.RefreshReference(ctx)
	if err != nil {
		return err
	}
	for i := 0; i < *plays; i++ {
		if _, err := s.Play(ctx); err != nil {
			return err
		}
	}

	board := s.Scoreboard()
	fmt.Printf("reference: %v + %d\n", ref.Primary, ref.Bonus)
	for _, t := range match.Tiers() {
		fmt.Printf("%-18s %d\n", t, board.Achievements[t.String()])
	}
	fmt.Printf("attempts: %d\nscore:    %d\n", board.TotalAttempts, board.Score)
	return nil
}
