package crop

import (
	"math/rand"
)

/*
Generator produces reproducible random crops. Each attribute draws from its
own source seeded from the base seed, so adding a field never reshuffles the
others.
*/
type Generator struct {
	id          *rand.Rand
	temperature *rand.Rand
	moisture    *rand.Rand
	time        *rand.Rand
	kind        *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		id:          rand.New(rand.NewSource(seed)),
		temperature: rand.New(rand.NewSource(seed + 1)),
		moisture:    rand.New(rand.NewSource(seed + 2)),
		time:        rand.New(rand.NewSource(seed + 3)),
		kind:        rand.New(rand.NewSource(seed + 4)),
	}
}

func between(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func (g *Generator) Next() Crop {
	return Crop{
		ID:          between(g.id, MinCropID, MaxCropID),
		Temperature: between(g.temperature, MinTemp, MaxTemp),
		Moisture:    between(g.moisture, MinMoisture, MaxMoisture),
		Time:        TimeOfDay(between(g.time, int(Morning), int(Night))),
		Kind:        Kind(between(g.kind, int(Bean), int(Wheat))),
	}
}

// Fill inserts count generated crops into r and returns how many it accepted.
func (g *Generator) Fill(r interface{ Insert(Crop) bool }, count int) int {
	accepted := 0
	for i := 0; i < count; i++ {
		if r.Insert(g.Next()) {
			accepted++
		}
	}
	return accepted
}
