package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Ashenafi-pixel/lotto-sphere/metrics"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Registry holds live sessions by ID. Sessions whose ledger exists in the
// configured store are reopened on first access. Deleted IDs are remembered
// so a lookup racing a delete cannot bring the session back.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	deleted  map[uuid.UUID]struct{}
	opts     Options
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		deleted:  make(map[uuid.UUID]struct{}),
		opts:     opts,
	}
}

// Create starts a new session and loads its first reference draw.
func (r *Registry) Create(ctx context.Context) (*Session, error) {
	s := New(uuid.New(), r.opts)
	if _, _, err := s.RefreshReference(ctx); err != nil {
		return nil, err
	}
	s.persist(ctx, s.ledger.Snapshot())
	r.mu.Lock()
	r.sessions[s.ID()] = s
	n := len(r.sessions)
	r.mu.Unlock()
	metrics.SetActiveSessions(n)
	return s, nil
}

// Get returns the live session, reopening it from the store if needed.
func (r *Registry) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	_, gone := r.deleted[id]
	r.mu.RUnlock()
	if ok {
		return s, nil
	}
	if gone || r.opts.Store == nil {
		return nil, ErrNotFound
	}

	s, found, err := Open(ctx, id, r.opts)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	if _, _, err := s.RefreshReference(ctx); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[id]; ok {
		return existing, nil
	}
	if _, gone := r.deleted[id]; gone {
		return nil, ErrNotFound
	}
	r.sessions[id] = s
	metrics.SetActiveSessions(len(r.sessions))
	return s, nil
}

// Delete drops the session and its stored ledger. Callers still holding the
// session may keep playing, but nothing they do is persisted again.
func (r *Registry) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.retire()
		delete(r.sessions, id)
	}
	r.deleted[id] = struct{}{}
	metrics.SetActiveSessions(len(r.sessions))
	if r.opts.Store == nil {
		return nil
	}
	return r.opts.Store.Delete(ctx, id.String())
}

func (r *Registry) List() []uuid.UUID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uuid.UUID, 0, len(r.sessions))
	for id := range r.sessions {
		out = append(out, id)
	}
	return out
}
