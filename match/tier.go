package match

import "fmt"

// Tier is the outcome bucket of one play.
type Tier int

const (
	None Tier = iota
	One
	Two
	Three
	Four
	Five
	BonusOnly
	OnePlusBonus
	TwoPlusBonus
	ThreePlusBonus
	FourPlusBonus
	FivePlusBonus
)

var tierNames = map[Tier]string{
	None:           "NONE",
	One:            "ONE",
	Two:            "TWO",
	Three:          "THREE",
	Four:           "FOUR",
	Five:           "FIVE",
	BonusOnly:      "BONUS_ONLY",
	OnePlusBonus:   "ONE_PLUS_BONUS",
	TwoPlusBonus:   "TWO_PLUS_BONUS",
	ThreePlusBonus: "THREE_PLUS_BONUS",
	FourPlusBonus:  "FOUR_PLUS_BONUS",
	FivePlusBonus:  "FIVE_PLUS_BONUS",
}

// Display order: bonus combos first, then primary-only tiers.
var scoring = []Tier{
	FivePlusBonus, FourPlusBonus, ThreePlusBonus, TwoPlusBonus, OnePlusBonus, BonusOnly,
	Five, Four, Three, Two, One,
}

// Tiers returns the eleven scoring tiers (everything except None).
func Tiers() []Tier {
	out := make([]Tier, len(scoring))
	copy(out, scoring)
	return out
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// ParseTier is the inverse of String.
func ParseTier(s string) (Tier, error) {
	for t, name := range tierNames {
		if name == s {
			return t, nil
		}
	}
	return None, fmt.Errorf("unknown tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	if _, ok := tierNames[t]; !ok {
		return nil, fmt.Errorf("unknown tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Matches is the number of primary balls the tier represents.
func (t Tier) Matches() int {
	switch t {
	case One, OnePlusBonus:
		return 1
	case Two, TwoPlusBonus:
		return 2
	case Three, ThreePlusBonus:
		return 3
	case Four, FourPlusBonus:
		return 4
	case Five, FivePlusBonus:
		return 5
	}
	return 0
}

// HasBonus reports whether the tier includes a bonus-ball match.
func (t Tier) HasBonus() bool { return t >= BonusOnly }

// Achievement returns the tier and true when it should raise an achievement
// (anything but None).
func (t Tier) Achievement() (Tier, bool) {
	if t == None {
		return None, false
	}
	return t, true
}
