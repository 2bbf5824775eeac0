// Package trace records episodes, persists them and replays them to
// check that the simulation reproduces them exactly.
package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"flight-env/internal/sim"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Extension is the file name suffix used by SaveFile.
const Extension = ".trace.msgpack.zst"

var ErrDivergence = errors.New("replay diverged from recorded trace")

type Step struct {
	Action sim.Action     `msgpack:"action"`
	Result sim.StepResult `msgpack:"result"`
}

// Trace is one recorded episode: the configuration it ran under and every
// action taken along with its result.
type Trace struct {
	ID       string     `msgpack:"id"`
	Policy   string     `msgpack:"policy"`
	Recorded time.Time  `msgpack:"recorded"`
	Config   sim.Config `msgpack:"config"`
	Steps    []Step     `msgpack:"steps"`
}

func (t *Trace) TotalReward() float64 {
	var r float64
	for _, s := range t.Steps {
		r += s.Result.Reward
	}
	return r
}

// Recorder builds a Trace; it implements agent.Observer.
type Recorder struct {
	Trace Trace
}

// NewRecorder starts a trace for an episode flown under cfg.
func NewRecorder(cfg sim.Config, policy string) *Recorder {
	return &Recorder{Trace: Trace{
		ID:       uuid.NewString(),
		Policy:   policy,
		Recorded: time.Now().UTC(),
		Config:   cfg.Clone(),
	}}
}

func (r *Recorder) Observe(a sim.Action, res sim.StepResult) {
	r.Trace.Steps = append(r.Trace.Steps, Step{Action: a, Result: res})
}

// Save writes t to w as zstd-compressed msgpack.
func Save(w io.Writer, t *Trace) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	defer zw.Close()

	if err := msgpack.NewEncoder(zw).Encode(t); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close zstd writer: %w", err)
	}
	return nil
}

// Load reads a trace written by Save.
func Load(r io.Reader) (*Trace, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer zr.Close()

	var t Trace
	if err := msgpack.NewDecoder(zr).Decode(&t); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	return &t, nil
}

// SaveFile writes t to dir, naming the file after its ID, and returns the
// path.
func SaveFile(dir string, t *Trace) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, t.ID+Extension)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Save(f, t); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func LoadFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Replay runs t's actions through a fresh simulation built from t's
// configuration and fails with ErrDivergence at the first step whose
// result is not bit-for-bit identical to the recorded one.
func Replay(t *Trace, opts ...sim.Option) error {
	s, err := sim.New(t.Config, opts...)
	if err != nil {
		return err
	}
	defer s.Close()

	for i, st := range t.Steps {
		r, err := s.StepAction(st.Action)
		if err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if r != st.Result {
			return fmt.Errorf("step %d: reward %v (recorded %v), phase %v (recorded %v): %w",
				i+1, r.Reward, st.Result.Reward, r.Phase, st.Result.Phase, ErrDivergence)
		}
	}
	return nil
}
