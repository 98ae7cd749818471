package fixture

import (
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// random draws values from gopter generators sharing one seeded parameter set,
// so a fixed Config.Seed replays the same sequence.
type random struct {
	params *gopter.GenParameters
}

func newRandom(seed uint64) *random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &random{params: gopter.DefaultGenParameters().CloneWithSeed(int64(seed))}
}

// draw samples g until it yields a value. Range generators never reject, so
// the loop only guards against sieved generators.
func (r *random) draw(g gopter.Gen) any {
	for {
		if v, ok := g(r.params).Retrieve(); ok {
			return v
		}
	}
}

func (r *random) bool() bool {
	return r.draw(gen.Bool()).(bool)
}

// uint64n returns a value in [1, upper].
func (r *random) uint64n(upper uint64) uint64 {
	return r.draw(gen.UInt64Range(1, upper)).(uint64)
}

func (r *random) int64n(upper int64) int64 {
	return r.draw(gen.Int64Range(0, upper-1)).(int64)
}

// fraction returns a value in [0, 1).
func (r *random) fraction() float64 {
	return r.draw(gen.Float64Range(0, 1)).(float64)
}

// Read fills p from the generator stream; it never fails.
func (r *random) Read(p []byte) (int, error) {
	bytes := r.draw(gen.SliceOfN(len(p), gen.UInt8())).([]uint8)
	copy(p, bytes)

	return len(p), nil
}
