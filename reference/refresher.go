package reference

import (
	"context"
	"errors"
	"time"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"
	"github.com/Ashenafi-pixel/lotto-sphere/metrics"

	log "github.com/sirupsen/logrus"
)

// ErrSuperseded is returned by Refresh when a newer refresh began before this
// one finished; the fetched draw was discarded.
var ErrSuperseded = errors.New("reference refresh superseded")

// Origin says where a reference draw came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

// Refresher fills a Cell from a Provider and falls back to a locally
// generated draw when the provider fails.
type Refresher struct {
	cell     *Cell
	provider Provider
	fallback draw.Source
	timeout  time.Duration
}

// NewRefresher wires cell to provider. A nil provider always uses the
// fallback source.
func NewRefresher(cell *Cell, provider Provider, fallback draw.Source, timeout time.Duration) *Refresher {
	if fallback == nil {
		fallback = draw.NewCryptoSource()
	}
	return &Refresher{cell: cell, provider: provider, fallback: fallback, timeout: timeout}
}

// Cell returns the cell this refresher writes to.
func (r *Refresher) Cell() *Cell { return r.cell }

// Refresh fetches a new reference draw and stores it unless a later refresh
// has started meanwhile.
func (r *Refresher) Refresh(ctx context.Context) (draw.Draw, Origin, error) {
	return r.Fill(ctx, r.cell.Begin())
}

// Fill fetches a draw for a ticket already taken from the cell (see
// Cell.TryBegin) and completes it.
func (r *Refresher) Fill(ctx context.Context, ticket Ticket) (draw.Draw, Origin, error) {
	d, origin := r.fetch(ctx)
	applied := r.cell.Complete(ticket, d)
	metrics.RecordReferenceRefresh(string(origin), applied)
	if !applied {
		return d, origin, ErrSuperseded
	}
	return d, origin, nil
}

func (r *Refresher) fetch(ctx context.Context) (draw.Draw, Origin) {
	if r.provider == nil {
		return draw.Generate(r.fallback), OriginFallback
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	d, err := r.provider.Fetch(ctx)
	if err == nil {
		err = d.Validate()
	}
	if err != nil {
		log.WithError(err).Warn("reference draw fetch failed, generating fallback")
		return draw.Generate(r.fallback), OriginFallback
	}
	return d, OriginRemote
}
