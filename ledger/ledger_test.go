package ledger

import (
	"sync"
	"testing"

	"github.com/Ashenafi-pixel/lotto-sphere/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAttempt_None(t *testing.T) {
	l := New()
	snap := l.RecordAttempt(match.None)

	assert.Equal(t, 1, snap.TotalAttempts)
	for _, tier := range match.Tiers() {
		assert.Equal(t, 0, snap.Counts[tier.String()], tier.String())
	}
	assert.Equal(t, 0, l.Score())
}

func TestRecordAttempt_Counts(t *testing.T) {
	var l Ledger
	l.RecordAttempt(match.Two)
	l.RecordAttempt(match.Two)
	l.RecordAttempt(match.BonusOnly)

	assert.Equal(t, 2, l.Count(match.Two))
	assert.Equal(t, 1, l.Count(match.BonusOnly))
	assert.Equal(t, 3, l.TotalAttempts())
	// 2*2 + 100 - 3
	assert.Equal(t, 101, l.Score())
}

func TestComputeScore_Scenario(t *testing.T) {
	l := New()
	l.RecordAttempt(match.FivePlusBonus)
	l.RecordAttempt(match.One)
	assert.Equal(t, 504, l.Score())
}

func TestComputeScore_FloorAtZero(t *testing.T) {
	snap := Snapshot{
		Counts:        map[string]int{"ONE": 3, "TWO": 1},
		TotalAttempts: 1_000_000,
	}
	assert.Equal(t, 0, ComputeScore(snap))
}

func TestComputeScore_IgnoresUnknownNames(t *testing.T) {
	snap := Snapshot{Counts: map[string]int{"FOUR": 1, "bogus": 50}}
	assert.Equal(t, 4, ComputeScore(snap))
}

func TestPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		tier match.Tier
		want int
	}{
		{match.FivePlusBonus, 505},
		{match.FourPlusBonus, 404},
		{match.ThreePlusBonus, 303},
		{match.TwoPlusBonus, 202},
		{match.OnePlusBonus, 101},
		{match.BonusOnly, 100},
		{match.Five, 5},
		{match.Four, 4},
		{match.Three, 3},
		{match.Two, 2},
		{match.One, 1},
		{match.None, 0},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Points(tt.tier))
		})
	}
}

func TestReset(t *testing.T) {
	l := New()
	l.RecordAttempt(match.FourPlusBonus)
	l.RecordAttempt(match.None)
	require.NotZero(t, l.Score())

	l.Reset()
	snap := l.Snapshot()
	assert.Equal(t, 0, snap.TotalAttempts)
	for name, c := range snap.Counts {
		assert.Zero(t, c, name)
	}
	assert.Equal(t, 0, l.Score())
}

func TestSnapshotRestore(t *testing.T) {
	src := New()
	src.RecordAttempt(match.ThreePlusBonus)
	src.RecordAttempt(match.One)
	src.RecordAttempt(match.None)

	dst := New()
	require.NoError(t, dst.Restore(src.Snapshot()))
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
	assert.Equal(t, src.Score(), dst.Score())
	assert.Len(t, dst.Snapshot().Counts, 11)
}

func TestRestore_Rejects(t *testing.T) {
	l := New()
	l.RecordAttempt(match.One)

	assert.ErrorIs(t, l.Restore(Snapshot{Counts: map[string]int{"SIX": 1}}), ErrUnknownTier)
	assert.ErrorIs(t, l.Restore(Snapshot{Counts: map[string]int{"NONE": 1}}), ErrUnknownTier)
	assert.ErrorIs(t, l.Restore(Snapshot{Counts: map[string]int{"ONE": -1}}), ErrNegativeCount)
	assert.ErrorIs(t, l.Restore(Snapshot{TotalAttempts: -2}), ErrNegativeCount)

	// failed restores leave the ledger untouched
	assert.Equal(t, 1, l.Count(match.One))
	assert.Equal(t, 1, l.TotalAttempts())
}

func TestRecordAttempt_Concurrent(t *testing.T) {
	l := New()
	const workers, perWorker = 8, 500
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				l.RecordAttempt(match.One)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, workers*perWorker, l.TotalAttempts())
	assert.Equal(t, workers*perWorker, l.Count(match.One))
}
