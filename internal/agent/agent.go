// Package agent supplies action sources that drive a simulation and a
// loop that runs them for an episode. Any randomness used to choose
// actions lives here; the simulation itself is deterministic.
package agent

import (
	"context"
	"fmt"

	"flight-env/internal/sim"
)

// Policy chooses the next action from an observation.
type Policy interface {
	Act(obs sim.Observation) sim.Action
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(sim.Observation) sim.Action

func (f PolicyFunc) Act(obs sim.Observation) sim.Action { return f(obs) }

// Idle never changes heading, throttle or altitude.
var Idle Policy = PolicyFunc(func(sim.Observation) sim.Action { return sim.Action{} })

// Observer is notified of every step taken by RunEpisode.
type Observer interface {
	Observe(a sim.Action, r sim.StepResult)
}

// Summary describes a finished (or abandoned) episode.
type Summary struct {
	Steps       int
	TotalReward float64
	Phase       sim.Phase
	Final       sim.Observation
}

// RunEpisode resets e (with cfg if non-nil) and steps it with actions from
// p until the episode ends. ctx is checked between steps; if it is
// canceled the partial summary is returned along with ctx.Err(). obs may
// be nil.
func RunEpisode(ctx context.Context, e sim.Environment, p Policy, cfg *sim.Config, obs Observer) (Summary, error) {
	o, _, err := e.Reset(cfg)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Phase: sim.Running, Final: o}
	for !sum.Phase.Terminal() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		a := p.Act(sum.Final)
		v := a.Vector()
		r, err := e.Step(v[:])
		if err != nil {
			return sum, fmt.Errorf("step %d: %w", sum.Steps+1, err)
		}
		if obs != nil {
			obs.Observe(a, r)
		}

		sum.Steps++
		sum.TotalReward += r.Reward
		sum.Phase = r.Phase
		sum.Final = r.Observation
	}
	return sum, nil
}
