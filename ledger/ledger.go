package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Ashenafi-pixel/lotto-sphere/match"
)

var (
	ErrUnknownTier   = errors.New("unknown tier")
	ErrNegativeCount = errors.New("negative count")
)

// Point values. Combo tiers pay the primary count plus BonusMultiplier per
// matched primary ball, so 5+bonus is 5 + 500.
const (
	BonusOnlyPoints = 100
	BonusMultiplier = 100
	AttemptCost     = 1
)

// Snapshot is the persisted form of a ledger: tier name -> count plus the
// attempt counter. Every scoring tier is always present.
type Snapshot struct {
	Counts        map[string]int `json:"achievements"`
	TotalAttempts int            `json:"totalAttempts"`
}

// Ledger accumulates per-tier counts and attempts for one session. The zero
// value is an empty ledger. Safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	counts   map[match.Tier]int
	attempts int
}

// New returns an empty ledger.
func New() *Ledger { return &Ledger{} }

// RecordAttempt counts one play. None adds an attempt but no tier count.
func (l *Ledger) RecordAttempt(t match.Tier) Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts++
	if t != match.None {
		if l.counts == nil {
			l.counts = make(map[match.Tier]int)
		}
		l.counts[t]++
	}
	return l.snapshotLocked()
}

// Reset zeroes every count and the attempt counter.
func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts = nil
	l.attempts = 0
}

// Count returns the number of plays that landed in t.
func (l *Ledger) Count(t match.Tier) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[t]
}

// TotalAttempts returns the attempt counter.
func (l *Ledger) TotalAttempts() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts
}

// Score is ComputeScore over the current state.
func (l *Ledger) Score() int {
	return ComputeScore(l.Snapshot())
}

// Snapshot copies the ledger state.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

// snapshotLocked builds a Snapshot. Caller must hold l.mu.
func (l *Ledger) snapshotLocked() Snapshot {
	s := Snapshot{Counts: make(map[string]int, len(match.Tiers())), TotalAttempts: l.attempts}
	for _, t := range match.Tiers() {
		s.Counts[t.String()] = l.counts[t]
	}
	return s
}

// Restore replaces the ledger state with s. Missing tiers restore as zero.
func (l *Ledger) Restore(s Snapshot) error {
	counts := make(map[match.Tier]int, len(s.Counts))
	for name, c := range s.Counts {
		t, err := match.ParseTier(name)
		if err != nil || t == match.None {
			return fmt.Errorf("%w: %q", ErrUnknownTier, name)
		}
		if c < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeCount, name, c)
		}
		if c > 0 {
			counts[t] = c
		}
	}
	if s.TotalAttempts < 0 {
		return fmt.Errorf("%w: totalAttempts=%d", ErrNegativeCount, s.TotalAttempts)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts = counts
	l.attempts = s.TotalAttempts
	return nil
}

// Points is the score contribution of a single play in tier t.
func Points(t match.Tier) int {
	switch {
	case t == match.None:
		return 0
	case t == match.BonusOnly:
		return BonusOnlyPoints
	case t.HasBonus():
		return t.Matches() + BonusMultiplier*t.Matches()
	default:
		return t.Matches()
	}
}

// ComputeScore sums tier points, subtracts one point per attempt, and floors
// the result at zero. Unknown tier names contribute nothing.
func ComputeScore(s Snapshot) int {
	points := 0
	for name, c := range s.Counts {
		t, err := match.ParseTier(name)
		if err != nil {
			continue
		}
		points += c * Points(t)
	}
	points -= s.TotalAttempts * AttemptCost
	if points < 0 {
		return 0
	}
	return points
}
