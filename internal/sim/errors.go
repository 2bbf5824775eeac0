package sim

import "errors"

var (
	ErrConfiguration = errors.New("invalid simulation configuration")
	ErrActionShape   = errors.New("action must have exactly 3 components")
	ErrEpisodeOver   = errors.New("episode is over; reset to continue")
	ErrClosed        = errors.New("simulation is closed")
)
