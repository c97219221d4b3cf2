package draw

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand/v2"
	"sync"
)

// Source yields uniform integers in [lo, hi] (inclusive).
type Source interface {
	IntRange(lo, hi int) int
}

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
func NewCryptoSource() Source { return cryptoSource{} }

func (cryptoSource) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + secureIntn(hi-lo+1)
}

// secureIntn returns a uniform random int in [0, n) using crypto/rand.
// Falls back to math/rand if the system reader fails.
func secureIntn(n int) int {
	if n <= 0 {
		return 0
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return mrand.IntN(n)
	}
	return int(v.Int64())
}

// seededSource is a replicable PCG stream, for tests and simulations.
type seededSource struct {
	mu sync.Mutex
	r  *mrand.Rand
}

// NewSeededSource returns a deterministic Source. Safe for concurrent use.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: mrand.New(mrand.NewPCG(seed, 0))}
}

func (s *seededSource) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.r.IntN(hi-lo+1)
}
