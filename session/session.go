package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"
	"github.com/Ashenafi-pixel/lotto-sphere/ledger"
	"github.com/Ashenafi-pixel/lotto-sphere/match"
	"github.com/Ashenafi-pixel/lotto-sphere/metrics"
	"github.com/Ashenafi-pixel/lotto-sphere/reference"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// ErrReshuffleInFlight is returned when a reshuffle is requested while the
// reference draw is still loading.
var ErrReshuffleInFlight = errors.New("reference draw is loading")

// Options configure every session created from them.
type Options struct {
	Source         draw.Source        // nil: crypto source
	Provider       reference.Provider // nil: reference draws are generated locally
	FetchTimeout   time.Duration
	DecoyFrames    int
	ReshuffleCosts bool         // a reshuffle counts as an attempt
	Store          ledger.Store // nil: ledger is not persisted
}

// PlayResult is everything the presentation layer needs for one play.
type PlayResult struct {
	ID             uuid.UUID               `json:"id"`
	Decoys         []draw.Frame            `json:"decoys,omitempty"`
	Draw           draw.Draw               `json:"draw"`
	Reference      *draw.Draw              `json:"reference,omitempty"`
	Evaluated      bool                    `json:"evaluated"`
	PrimaryMatches [draw.PrimaryCount]bool `json:"primaryMatches"`
	BonusMatch     bool                    `json:"bonusMatch"`
	Tier           match.Tier              `json:"tier"`
	Achievement    *match.Tier             `json:"achievement,omitempty"`
	Score          int                     `json:"score"`
	TotalAttempts  int                     `json:"totalAttempts"`
}

// Scoreboard is the ledger as shown to the player.
type Scoreboard struct {
	Achievements  map[string]int `json:"achievements"`
	TotalAttempts int            `json:"totalAttempts"`
	Score         int            `json:"score"`
}

// ReferenceState is the reference draw as shown to the player.
type ReferenceState struct {
	Draw    *draw.Draw `json:"draw,omitempty"`
	Loading bool       `json:"loading"`
}

// Session is one player's game: a reference draw, a ledger and a random
// source. Plays are serialized so generate, evaluate and record never
// interleave with another play against the same ledger.
type Session struct {
	id             uuid.UUID
	mu             sync.Mutex
	src            draw.Source
	ledger         *ledger.Ledger
	refresher      *reference.Refresher
	store          ledger.Store
	decoys         int
	reshuffleCosts bool
	createdAt      time.Time
	retired        bool // deleted from its registry; guarded by mu
}

// New builds a session with an empty ledger and no reference draw yet.
func New(id uuid.UUID, opts Options) *Session {
	src := opts.Source
	if src == nil {
		src = draw.NewCryptoSource()
	}
	return &Session{
		id:             id,
		src:            src,
		ledger:         ledger.New(),
		refresher:      reference.NewRefresher(reference.NewCell(), opts.Provider, src, opts.FetchTimeout),
		store:          opts.Store,
		decoys:         opts.DecoyFrames,
		reshuffleCosts: opts.ReshuffleCosts,
		createdAt:      time.Now(),
	}
}

// Open builds a session and restores its ledger from opts.Store. The bool
// reports whether a stored ledger was found.
func Open(ctx context.Context, id uuid.UUID, opts Options) (*Session, bool, error) {
	s := New(id, opts)
	if s.store == nil {
		return s, false, nil
	}
	snap, ok, err := s.store.Load(ctx, id.String())
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return s, false, nil
	}
	if err := s.ledger.Restore(snap); err != nil {
		return nil, false, fmt.Errorf("restore ledger %s: %w", id, err)
	}
	return s, true, nil
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Play generates a draw, evaluates it against the reference captured at the
// start of the play, and records the attempt. While the reference is loading
// the attempt is still counted but not evaluated.
func (s *Session) Play(ctx context.Context) (PlayResult, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	res := PlayResult{
		ID:     uuid.New(),
		Decoys: draw.Decoys(s.src, s.decoys),
		Draw:   draw.Generate(s.src),
	}
	if ref, ok := s.refresher.Cell().Current(); ok {
		m, err := match.Evaluate(res.Draw, ref)
		if err != nil {
			return PlayResult{}, err
		}
		res.Reference = &ref
		res.Evaluated = true
		res.PrimaryMatches = m.PrimaryMatches
		res.BonusMatch = m.BonusMatch
		res.Tier = m.Tier
	}

	snap := s.ledger.RecordAttempt(res.Tier)
	if a, ok := res.Tier.Achievement(); ok {
		res.Achievement = &a
	}
	res.Score = ledger.ComputeScore(snap)
	res.TotalAttempts = snap.TotalAttempts
	s.persist(ctx, snap)

	metrics.RecordPlay(res.Tier.String(), time.Since(start))
	log.WithFields(log.Fields{
		"session":   s.id,
		"play":      res.ID,
		"tier":      res.Tier,
		"evaluated": res.Evaluated,
		"score":     res.Score,
	}).Debug("play recorded")
	return res, nil
}

// RefreshReference replaces the reference draw without touching the ledger.
func (s *Session) RefreshReference(ctx context.Context) (draw.Draw, reference.Origin, error) {
	return s.replaced(s.refresher.Refresh(ctx))
}

// Reshuffle is the player-initiated reference refresh. It is refused while a
// refresh is already in flight and, if configured, costs one attempt. The
// attempt is charged only once this call owns the refresh.
func (s *Session) Reshuffle(ctx context.Context) (draw.Draw, reference.Origin, error) {
	ticket, ok := s.refresher.Cell().TryBegin()
	if !ok {
		return draw.Draw{}, "", ErrReshuffleInFlight
	}
	if s.reshuffleCosts {
		s.mu.Lock()
		snap := s.ledger.RecordAttempt(match.None)
		s.persist(ctx, snap)
		s.mu.Unlock()
	}
	return s.replaced(s.refresher.Fill(ctx, ticket))
}

func (s *Session) replaced(d draw.Draw, origin reference.Origin, err error) (draw.Draw, reference.Origin, error) {
	if err != nil {
		return draw.Draw{}, origin, err
	}
	log.WithFields(log.Fields{"session": s.id, "origin": origin}).Info("reference draw replaced")
	return d, origin, nil
}

// ResetScore clears the ledger. Draws are left alone.
func (s *Session) ResetScore(ctx context.Context) Scoreboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Reset()
	snap := s.ledger.Snapshot()
	s.persist(ctx, snap)
	metrics.RecordScoreReset()
	return scoreboard(snap)
}

func (s *Session) Scoreboard() Scoreboard {
	return scoreboard(s.ledger.Snapshot())
}

func (s *Session) Reference() ReferenceState {
	cell := s.refresher.Cell()
	if d, ok := cell.Current(); ok {
		return ReferenceState{Draw: &d}
	}
	return ReferenceState{Loading: cell.Loading()}
}

func scoreboard(snap ledger.Snapshot) Scoreboard {
	return Scoreboard{
		Achievements:  snap.Counts,
		TotalAttempts: snap.TotalAttempts,
		Score:         ledger.ComputeScore(snap),
	}
}

// retire stops all further persistence. It waits for any play in progress.
func (s *Session) retire() {
	s.mu.Lock()
	s.retired = true
	s.mu.Unlock()
}

// persist saves snap. Failures are logged; the in-memory ledger stays
// authoritative.
func (s *Session) persist(ctx context.Context, snap ledger.Snapshot) {
	if s.store == nil || s.retired {
		return
	}
	if err := s.store.Save(ctx, s.id.String(), snap); err != nil {
		log.WithError(err).WithField("session", s.id).Warn("failed to persist ledger")
	}
}
