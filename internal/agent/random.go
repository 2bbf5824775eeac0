package agent

import (
	"flight-env/internal/sim"

	"github.com/MichaelTJones/pcg"
)

// Random samples actions uniformly from the action space. Two Randoms
// with the same seed produce the same sequence.
type Random struct {
	r *pcg.PCG32
}

func NewRandom(seed int64) *Random {
	r := &Random{r: pcg.NewPCG32()}
	r.r.Seed(uint64(seed), 0xda3e39cb94b95bdb)
	return r
}

// float64 returns a value in [0, 1).
func (r *Random) float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}

func (r *Random) uniform(lo, hi float64) float64 {
	return lo + r.float64()*(hi-lo)
}

func (r *Random) Act(sim.Observation) sim.Action {
	lo, hi := sim.ActionBounds()
	return sim.Action{
		HeadingDeltaDeg: r.uniform(lo.HeadingDeltaDeg, hi.HeadingDeltaDeg),
		ThrottleDelta:   r.uniform(lo.ThrottleDelta, hi.ThrottleDelta),
		AltitudeDeltaM:  r.uniform(lo.AltitudeDeltaM, hi.AltitudeDeltaM),
	}
}
