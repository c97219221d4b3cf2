package match

import (
	"errors"
	"fmt"

	"github.com/Ashenafi-pixel/lotto-sphere/draw"
)

// ErrInvalidMatchCount is returned by Classify for k outside [0,5].
var ErrInvalidMatchCount = errors.New("match count out of range")

// Result is the comparison of a play draw against the reference draw.
type Result struct {
	PrimaryMatches [draw.PrimaryCount]bool `json:"primaryMatches"`
	BonusMatch     bool                    `json:"bonusMatch"`
	Tier           Tier                    `json:"tier"`
}

// MatchCount is the number of matched primary balls.
func (r Result) MatchCount() int {
	k := 0
	for _, m := range r.PrimaryMatches {
		if m {
			k++
		}
	}
	return k
}

var (
	withBonus    = [...]Tier{BonusOnly, OnePlusBonus, TwoPlusBonus, ThreePlusBonus, FourPlusBonus, FivePlusBonus}
	withoutBonus = [...]Tier{None, One, Two, Three, Four, Five}
)

// Classify maps (primary match count, bonus match) to exactly one tier.
func Classify(k int, bonus bool) (Tier, error) {
	if k < 0 || k > draw.PrimaryCount {
		return None, fmt.Errorf("%w: %d", ErrInvalidMatchCount, k)
	}
	if bonus {
		return withBonus[k], nil
	}
	return withoutBonus[k], nil
}

// Evaluate compares play against reference. Primary matches use set
// membership, so the order of either primary set is irrelevant. Both draws
// must have in-range, distinct balls.
func Evaluate(play, reference draw.Draw) (Result, error) {
	if err := play.ValidateBalls(); err != nil {
		return Result{}, fmt.Errorf("play: %w", err)
	}
	if err := reference.ValidateBalls(); err != nil {
		return Result{}, fmt.Errorf("reference: %w", err)
	}
	var winning [draw.PrimaryMax + 1]bool
	for _, v := range reference.Primary {
		winning[v] = true
	}
	var res Result
	for i, v := range play.Primary {
		res.PrimaryMatches[i] = winning[v]
	}
	res.BonusMatch = play.Bonus == reference.Bonus
	tier, err := Classify(res.MatchCount(), res.BonusMatch)
	if err != nil {
		return Result{}, err
	}
	res.Tier = tier
	return res, nil
}
