package sim

import (
	"log/slog"

	"flight-env/internal/log"
)

type EventKind int

const (
	EventReset EventKind = iota
	EventStormEntered
	EventTargetReached
	EventOutOfFuel
	EventStepBudgetExhausted
)

func (k EventKind) String() string {
	switch k {
	case EventReset:
		return "reset"
	case EventStormEntered:
		return "storm entered"
	case EventTargetReached:
		return "target reached"
	case EventOutOfFuel:
		return "out of fuel"
	case EventStepBudgetExhausted:
		return "step budget exhausted"
	default:
		return "unknown"
	}
}

// Event is a notable moment in an episode. StormIndex and StormDistanceKm
// are only meaningful for EventStormEntered.
type Event struct {
	Kind            EventKind
	State           State
	DistanceKm      float64
	StormIndex      int
	StormDistanceKm float64
}

// Sink receives simulation events. Emit is called synchronously from
// Reset and Step and must not call back into the simulation.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// NopSink discards all events.
var NopSink Sink = nopSink{}

type nopSink struct{}

func (nopSink) Emit(Event) {}

// Sinks delivers each event to every sink, in order.
type Sinks []Sink

func (s Sinks) Emit(ev Event) {
	for _, sink := range s {
		sink.Emit(ev)
	}
}

// LogSink returns a sink that writes events to lg. Resets and storm
// entries are logged at debug level, episode endings at info.
func LogSink(lg *log.Logger) Sink {
	return SinkFunc(func(ev Event) {
		args := []any{
			slog.Int("step", ev.State.Step),
			slog.Float64("lat", ev.State.Position.Lat),
			slog.Float64("lon", ev.State.Position.Lon),
			slog.Float64("fuel", ev.State.FuelUnits),
			slog.Float64("distance_km", ev.DistanceKm),
		}
		switch ev.Kind {
		case EventReset:
			lg.Debug("Episode reset", args...)
		case EventStormEntered:
			lg.Debug("Entered storm", append(args, slog.Int("storm", ev.StormIndex),
				slog.Float64("storm_distance_km", ev.StormDistanceKm))...)
		case EventTargetReached:
			lg.Info("Target reached successfully", args...)
		case EventOutOfFuel:
			lg.Info("Out of fuel; simulation terminated", args...)
		case EventStepBudgetExhausted:
			lg.Info("Maximum steps reached; simulation terminated", args...)
		}
	})
}
