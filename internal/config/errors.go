package config

import (
	"errors"
	"fmt"
	"strings"

	"flight-env/internal/sim"
)

// errorList collects validation errors while walking a scenario, tracking
// where in the document each was found.
type errorList struct {
	hierarchy []string
	errs      []error
}

func (e *errorList) push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *errorList) pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *errorList) errorf(format string, args ...any) {
	e.errs = append(e.errs, fmt.Errorf("%s: %s: %w", strings.Join(e.hierarchy, " / "),
		fmt.Sprintf(format, args...), sim.ErrConfiguration))
}

func (e *errorList) err() error {
	return errors.Join(e.errs...)
}
