// Command flightenv runs flight simulation episodes driven by a built-in
// policy, optionally recording them, or replays a recorded episode to
// verify that it reproduces exactly.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"flight-env/internal/agent"
	"flight-env/internal/config"
	"flight-env/internal/log"
	"flight-env/internal/sim"
	"flight-env/internal/trace"

	"golang.org/x/sync/errgroup"
)

var (
	scenario = flag.String("scenario", "", "Scenario file (.json, .yaml); defaults to London-New York")
	episodes = flag.Int("episodes", 1, "Number of episodes to run")
	parallel = flag.Int("parallel", runtime.NumCPU(), "Maximum number of episodes to run concurrently")
	seed     = flag.Int64("seed", 1, "Seed for the random policy; episode i uses seed+i")
	policy   = flag.String("policy", "homing", "Policy driving the aircraft: random, homing or idle")
	record   = flag.String("record", "", "Directory to write episode traces to")
	replay   = flag.String("replay", "", "Trace file to replay and verify instead of running episodes")
	render   = flag.Bool("render", false, "Print the simulation status after every step (runs episodes sequentially)")
	logLevel = flag.String("loglevel", "info", "Logging level: debug, info, warn, error")
	logDir   = flag.String("logdir", "", "Directory for log files")
	verbose  = flag.Bool("v", false, "Also write log records to stderr")
)

func main() {
	flag.Parse()

	lg := log.New(*logLevel, *logDir, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if *replay != "" {
		err = replayTrace(*replay, lg)
	} else {
		err = run(ctx, lg)
	}
	if err != nil {
		lg.Error("flightenv failed", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "flightenv: %v\n", err)
		os.Exit(1)
	}
}

func newPolicy(name string, seed int64) (agent.Policy, error) {
	switch name {
	case "random":
		return agent.NewRandom(seed), nil
	case "homing":
		return agent.NewHoming(), nil
	case "idle":
		return agent.Idle, nil
	default:
		return nil, fmt.Errorf("%s: unknown policy", name)
	}
}

func run(ctx context.Context, lg *log.Logger) error {
	cfg := sim.DefaultConfig()
	if *scenario != "" {
		var err error
		if cfg, err = config.Load(*scenario); err != nil {
			return err
		}
	}
	if _, err := newPolicy(*policy, 0); err != nil {
		return err
	}
	if *episodes <= 0 {
		return fmt.Errorf("-episodes %d: must be positive", *episodes)
	}

	summaries := make([]agent.Summary, *episodes)

	eg, ctx := errgroup.WithContext(ctx)
	if *render {
		eg.SetLimit(1)
	} else {
		eg.SetLimit(max(1, *parallel))
	}

	var mu sync.Mutex // serializes stdout
	for i := range *episodes {
		eg.Go(func() error {
			sum, err := runEpisode(ctx, i, cfg, lg, &mu)
			summaries[i] = sum
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	var total float64
	succeeded := 0
	for _, s := range summaries {
		total += s.TotalReward
		if s.Phase == sim.Succeeded {
			succeeded++
		}
	}
	fmt.Printf("%d episodes, %d succeeded, mean reward %.2f\n", *episodes, succeeded, total/float64(*episodes))
	return nil
}

type observers []agent.Observer

func (o observers) Observe(a sim.Action, r sim.StepResult) {
	for _, ob := range o {
		ob.Observe(a, r)
	}
}

type renderer struct {
	s  *sim.Simulation
	mu *sync.Mutex
}

func (r renderer) Observe(sim.Action, sim.StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Println(r.s.Render())
}

func runEpisode(ctx context.Context, i int, cfg sim.Config, lg *log.Logger, mu *sync.Mutex) (agent.Summary, error) {
	p, err := newPolicy(*policy, *seed+int64(i))
	if err != nil {
		return agent.Summary{}, err
	}

	var rec *trace.Recorder
	var obs observers
	if *record != "" {
		rec = trace.NewRecorder(cfg, *policy)
		obs = append(obs, rec)
		lg = lg.With(slog.String("trace", rec.Trace.ID))
	}
	lg = lg.With(slog.Int("episode", i))

	s, err := sim.New(cfg, sim.WithSink(sim.LogSink(lg)))
	if err != nil {
		return agent.Summary{}, err
	}
	defer s.Close()

	if *render {
		obs = append(obs, renderer{s: s, mu: mu})
	}

	sum, err := agent.RunEpisode(ctx, s, p, nil, obs)
	if err != nil {
		return sum, fmt.Errorf("episode %d: %w", i, err)
	}

	lg.Info("Episode finished",
		slog.String("phase", sum.Phase.String()),
		slog.Int("steps", sum.Steps),
		slog.Float64("total_reward", sum.TotalReward))

	mu.Lock()
	fmt.Printf("episode %d: %s after %d steps, total reward %.2f\n", i, sum.Phase, sum.Steps, sum.TotalReward)
	mu.Unlock()

	if rec != nil {
		path, err := trace.SaveFile(*record, &rec.Trace)
		if err != nil {
			return sum, err
		}
		lg.Info("Saved trace", slog.String("path", path))
	}
	return sum, nil
}

func replayTrace(path string, lg *log.Logger) error {
	t, err := trace.LoadFile(path)
	if err != nil {
		return err
	}
	lg = lg.With(slog.String("trace", t.ID))
	if err := trace.Replay(t, sim.WithSink(sim.LogSink(lg))); err != nil {
		return err
	}
	fmt.Printf("%s: %d steps replayed identically, total reward %.2f\n", t.ID, len(t.Steps), t.TotalReward())
	return nil
}
