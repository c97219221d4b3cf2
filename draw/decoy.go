package draw

// Frame is one cosmetic animation step shown before the final draw. Frames
// sample with replacement and are not sorted; they are never evaluated.
type Frame struct {
	Primary [PrimaryCount]int `json:"whiteBalls"`
	Bonus   int               `json:"powerball"`
}

// Decoys returns n animation frames.
func Decoys(src Source, n int) []Frame {
	if n <= 0 {
		return nil
	}
	frames := make([]Frame, n)
	for i := range frames {
		for j := range frames[i].Primary {
			frames[i].Primary[j] = src.IntRange(PrimaryMin, PrimaryMax)
		}
		frames[i].Bonus = src.IntRange(BonusMin, BonusMax)
	}
	return frames
}
