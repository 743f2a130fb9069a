package pinger

import (
	"context"
	"errors"
	"fmt"
)

// PingError is returned for every failed run. Step names the operation
// that failed and From the last state reached before it.
type PingError struct {
	Step string
	From State
	Err  error
}

func (e *PingError) Error() string {
	return fmt.Sprintf("ping failed during %s: %v", e.Step, e.Err)
}

func (e *PingError) Unwrap() error {
	return e.Err
}

func fail(step string, from State, err error) *PingError {
	return &PingError{Step: step, From: from, Err: err}
}

// IsTimeout reports whether err was caused by a step running out of time.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
