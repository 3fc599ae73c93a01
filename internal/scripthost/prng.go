package scripthost

import "worldground/internal/tile"

// xorshift64 is a deterministic, allocation-free PRNG. Seeded from
// (world_seed, tile_id, tick, phase), it gives every tile's rule
// evaluation a reproducible random stream independent of worker count or
// evaluation order.
type xorshift64 struct {
	state uint64
}

func newXorshift64(worldSeed int64, tileID int, tick uint64, phase tile.PhaseName) *xorshift64 {
	seed := mixSeed(worldSeed, tileID, tick, phase)
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	return &xorshift64{state: seed}
}

// mixSeed folds the four seed components together with a simple
// splitmix-style avalanche so nearby (tile_id, tick) pairs don't produce
// correlated streams.
func mixSeed(worldSeed int64, tileID int, tick uint64, phase tile.PhaseName) uint64 {
	h := uint64(worldSeed)
	h = mix(h ^ uint64(tileID)*0x9e3779b97f4a7c15)
	h = mix(h ^ tick*0xbf58476d1ce4e5b9)
	var phaseHash uint64
	for _, c := range phase {
		phaseHash = phaseHash*31 + uint64(c)
	}
	h = mix(h ^ phaseHash)
	return h
}

func mix(x uint64) uint64 {
	x ^= x >> 33
	x *= 0xff51afd7ed558ccd
	x ^= x >> 33
	x *= 0xc4ceb9fe1a85ec53
	x ^= x >> 33
	return x
}

func (x *xorshift64) next() uint64 {
	x.state ^= x.state << 13
	x.state ^= x.state >> 7
	x.state ^= x.state << 17
	return x.state
}

// float64 returns a value in [0, 1).
func (x *xorshift64) float64() float64 {
	return float64(x.next()>>11) / float64(1<<53)
}

// rangeFloat returns a value in [a, b).
func (x *xorshift64) rangeFloat(a, b float64) float64 {
	return a + x.float64()*(b-a)
}
