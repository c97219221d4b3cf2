package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGStore keeps snapshots in the lotto_ledgers table (see database/migrations).
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Load(ctx context.Context, key string) (Snapshot, bool, error) {
	var (
		raw  []byte
		snap Snapshot
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT achievements, total_attempts FROM lotto_ledgers WHERE session_id = $1`, key,
	).Scan(&raw, &snap.TotalAttempts)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load ledger %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, &snap.Counts); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode ledger %s: %w", key, err)
	}
	return snap, true, nil
}

func (s *PGStore) Save(ctx context.Context, key string, snap Snapshot) error {
	raw, err := json.Marshal(snap.Counts)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lotto_ledgers (session_id, achievements, total_attempts, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id) DO UPDATE SET
			achievements = EXCLUDED.achievements,
			total_attempts = EXCLUDED.total_attempts,
			updated_at = NOW()`,
		key, raw, snap.TotalAttempts)
	if err != nil {
		return fmt.Errorf("save ledger %s: %w", key, err)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lotto_ledgers WHERE session_id = $1`, key); err != nil {
		return fmt.Errorf("delete ledger %s: %w", key, err)
	}
	return nil
}
