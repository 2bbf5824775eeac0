package sim

import (
	"fmt"

	"flight-env/internal/geometry/geo"

	"github.com/iancoleman/orderedmap"
)

// Environment is the episodic interface that drivers (agents, replay,
// servers) program against.
type Environment interface {
	Reset(cfg *Config) (Observation, *orderedmap.OrderedMap, error)
	Step(action []float64) (StepResult, error)
	Render() string
	Close() error
}

var _ Environment = (*Simulation)(nil)

// Simulation is a single flight episode. It is not safe for concurrent
// use; run one Simulation per concurrent episode.
type Simulation struct {
	cfg   Config
	state State
	sink  Sink

	// index of the storm the aircraft was in after the last step, or -1
	lastStorm int
	closed    bool
}

type Option func(*Simulation)

// WithSink routes simulation events to sink.
func WithSink(sink Sink) Option {
	return func(s *Simulation) {
		if sink != nil {
			s.sink = sink
		}
	}
}

// New validates cfg and returns a simulation positioned at the start of
// an episode. cfg is copied; later changes to it have no effect.
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulation{sink: NopSink}
	for _, opt := range opts {
		opt(s)
	}
	s.begin(cfg.Clone())
	return s, nil
}

func (s *Simulation) begin(cfg Config) {
	s.cfg = cfg
	s.state = InitialState(cfg)
	s.lastStorm = -1
	s.sink.Emit(Event{
		Kind:       EventReset,
		State:      s.state,
		DistanceKm: geo.HaversineKm(s.state.Position, s.cfg.Target),
	})
}

// Reset starts a new episode, discarding any episode in progress. A
// non-nil cfg replaces the configuration; if it is invalid the
// simulation is left untouched. The returned diagnostics map is empty.
func (s *Simulation) Reset(cfg *Config) (Observation, *orderedmap.OrderedMap, error) {
	if s.closed {
		return Observation{}, nil, ErrClosed
	}

	next := s.cfg
	if cfg != nil {
		if err := cfg.Validate(); err != nil {
			return Observation{}, nil, err
		}
		next = cfg.Clone()
	}
	s.begin(next)
	return observe(s.state, &s.cfg), orderedmap.New(), nil
}

// Step applies an untyped action vector. The vector must have exactly
// three components; values outside the action space are clamped.
func (s *Simulation) Step(action []float64) (StepResult, error) {
	a, err := ActionFromSlice(action)
	if err != nil {
		return StepResult{}, err
	}
	return s.StepAction(a)
}

// StepAction advances the episode by one time step.
func (s *Simulation) StepAction(a Action) (StepResult, error) {
	if s.closed {
		return StepResult{}, ErrClosed
	}
	if s.state.Phase.Terminal() {
		return StepResult{}, fmt.Errorf("%s after %d steps: %w", s.state.Phase, s.state.Step, ErrEpisodeOver)
	}

	next, fuelUsed := Advance(s.state, a)
	sc := score(next, fuelUsed, &s.cfg)
	next.Phase = sc.phase
	s.state = next

	s.emit(sc)

	return StepResult{
		Observation: observe(s.state, &s.cfg),
		Reward:      sc.reward,
		Terminated:  sc.phase.Terminal(),
		Truncated:   sc.phase == Truncated,
		Phase:       sc.phase,
		Diagnostics: sc.diag,
	}, nil
}

func (s *Simulation) emit(sc scored) {
	ev := Event{State: s.state, DistanceKm: sc.diag.DistanceToTargetKm}

	if sc.inStorm && sc.storm.Index != s.lastStorm {
		ev.Kind = EventStormEntered
		ev.StormIndex, ev.StormDistanceKm = sc.storm.Index, sc.storm.DistanceKm
		s.sink.Emit(ev)
	}
	s.lastStorm = -1
	if sc.inStorm {
		s.lastStorm = sc.storm.Index
	}

	switch sc.phase {
	case Succeeded:
		ev.Kind = EventTargetReached
	case FailedFuel:
		ev.Kind = EventOutOfFuel
	case Truncated:
		ev.Kind = EventStepBudgetExhausted
	default:
		return
	}
	s.sink.Emit(ev)
}

// Close releases the simulation. It is idempotent; Step and Reset fail
// with ErrClosed afterward.
func (s *Simulation) Close() error {
	s.closed = true
	return nil
}

// Config returns a copy of the active configuration.
func (s *Simulation) Config() Config { return s.cfg.Clone() }

func (s *Simulation) State() State { return s.state }

func (s *Simulation) Observation() Observation { return observe(s.state, &s.cfg) }
