package draw

import (
	"errors"
	"fmt"
	"slices"
)

// Ball domains.
const (
	PrimaryCount = 5
	PrimaryMin   = 1
	PrimaryMax   = 69
	BonusMin     = 1
	BonusMax     = 26
)

// ErrInvalidDraw is wrapped by every draw contract violation.
var ErrInvalidDraw = errors.New("invalid draw")

// Draw is one immutable combination: five distinct primary balls in ascending
// order plus a bonus ball from its own domain.
type Draw struct {
	Primary [PrimaryCount]int `json:"whiteBalls"`
	Bonus   int               `json:"powerball"`
}

// New builds a Draw from an arbitrary-order primary slice. The slice is
// copied and sorted; the result is validated.
func New(primary []int, bonus int) (Draw, error) {
	if len(primary) != PrimaryCount {
		return Draw{}, fmt.Errorf("%w: want %d primary balls, got %d", ErrInvalidDraw, PrimaryCount, len(primary))
	}
	var d Draw
	copy(d.Primary[:], primary)
	slices.Sort(d.Primary[:])
	d.Bonus = bonus
	if err := d.Validate(); err != nil {
		return Draw{}, err
	}
	return d, nil
}

// Validate checks ranges, distinctness and ascending order.
func (d Draw) Validate() error {
	if err := d.ValidateBalls(); err != nil {
		return err
	}
	if !slices.IsSorted(d.Primary[:]) {
		return fmt.Errorf("%w: primary balls must be ascending, got %v", ErrInvalidDraw, d.Primary)
	}
	return nil
}

// ValidateBalls checks ranges and distinctness but not ordering.
func (d Draw) ValidateBalls() error {
	var seen [PrimaryMax + 1]bool
	for _, v := range d.Primary {
		if v < PrimaryMin || v > PrimaryMax {
			return fmt.Errorf("%w: primary ball %d out of range [%d,%d]", ErrInvalidDraw, v, PrimaryMin, PrimaryMax)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate primary ball %d", ErrInvalidDraw, v)
		}
		seen[v] = true
	}
	if d.Bonus < BonusMin || d.Bonus > BonusMax {
		return fmt.Errorf("%w: bonus ball %d out of range [%d,%d]", ErrInvalidDraw, d.Bonus, BonusMin, BonusMax)
	}
	return nil
}

// Contains reports whether v is one of the primary balls.
func (d Draw) Contains(v int) bool {
	return slices.Contains(d.Primary[:], v)
}

// Generate draws 5 distinct primary balls without replacement (partial
// Fisher-Yates over the 69-ball pool) and an independent bonus ball.
func Generate(src Source) Draw {
	var pool [PrimaryMax]int
	for i := range pool {
		pool[i] = PrimaryMin + i
	}
	var d Draw
	for i := 0; i < PrimaryCount; i++ {
		j := src.IntRange(i, len(pool)-1)
		pool[i], pool[j] = pool[j], pool[i]
		d.Primary[i] = pool[i]
	}
	slices.Sort(d.Primary[:])
	d.Bonus = src.IntRange(BonusMin, BonusMax)
	return d
}
