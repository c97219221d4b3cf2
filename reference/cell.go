package reference

import (
	"sync"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"
)

// Ticket identifies one in-flight replacement of the reference draw.
type Ticket uint64

// Cell holds the current reference ("winning") draw. A replacement is
// started with Begin and applied with Complete; only the most recent ticket
// may write, so a slow fetch never overwrites a newer one. While any
// replacement is in flight the cell reports no current draw.
type Cell struct {
	mu      sync.Mutex
	current draw.Draw
	has     bool
	latest  Ticket
	pending bool
}

func NewCell() *Cell { return &Cell{} }

// Current returns the reference draw by value, or false while loading or
// before the first draw has landed.
func (c *Cell) Current() (draw.Draw, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending || !c.has {
		return draw.Draw{}, false
	}
	return c.current, true
}

// Loading reports whether a replacement is in flight.
func (c *Cell) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Begin marks the cell as loading and returns the ticket for Complete.
func (c *Cell) Begin() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	c.pending = true
	return c.latest
}

// TryBegin is Begin that refuses to start while another replacement is in
// flight. The check and the ticket are taken under one lock.
func (c *Cell) TryBegin() (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return 0, false
	}
	c.latest++
	c.pending = true
	return c.latest, true
}

// Complete stores d if t is still the latest ticket and reports whether it did.
func (c *Cell) Complete(t Ticket, d draw.Draw) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t != c.latest {
		return false
	}
	c.current = d
	c.has = true
	c.pending = false
	return true
}

// Set replaces the reference immediately, superseding any in-flight ticket.
func (c *Cell) Set(d draw.Draw) {
	c.Complete(c.Begin(), d)
}
