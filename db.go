package lotto

import (
	"database/sql"
	"os"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

var (
	dbOnce sync.Once
	dbConn *sql.DB
	dbErr  error
)

// GetDB returns the shared Postgres handle for DATABASE_URL, or (nil, nil)
// when DATABASE_URL is unset.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbConn, dbErr = OpenDB(os.Getenv("DATABASE_URL"))
	})
	if dbErr != nil {
		return nil, dbErr
	}
	return dbConn, nil
}

// OpenDB opens and pings a pgx-backed *sql.DB. An empty dsn yields (nil, nil).
func OpenDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, nil
	}
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	// Simple protocol keeps PgBouncer-style poolers happy (no server-side prepared statements).
	config.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	db := stdlib.OpenDB(*config)
	db.SetConnMaxIdleTime(4 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
