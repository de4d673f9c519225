package steg

// Slot order is derived from the seed with a small linear congruential
// generator. The constants, the traversal order of the shuffle, and the
// truncating float conversion are part of the wire contract: change any of
// them and existing carriers stop decoding.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

type lcg struct {
	state int64
}

// newLCG seeds the generator by summing the Unicode code points of the seed
// string. There is no bound on length or character set.
func newLCG(seed string) *lcg {
	g := &lcg{}
	for _, r := range seed {
		g.state += int64(r)
	}
	return g
}

func (g *lcg) next() float64 {
	g.state = (g.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(g.state) / lcgModulus
}

// permuteSlots returns the order in which the given slots are consumed for
// the given seed. The shuffle is a Fisher-Yates walk from the last index down
// to 1, permuting the slot values themselves. An empty seed returns the slots
// in their natural order. The input is never mutated.
func permuteSlots(slots []int, seed string) []int {
	out := make([]int, len(slots))
	copy(out, slots)
	if seed == "" {
		return out
	}

	g := newLCG(seed)
	for i := len(out) - 1; i > 0; i-- {
		j := int(g.next() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
