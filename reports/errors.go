package reports

import (
	"errors"
	"fmt"
)

var (
	ErrTooManyRecords = errors.New("reports: too many records")
	ErrNoSource       = errors.New("reports: no record source configured")
	ErrUnknownKind    = errors.New("reports: unknown report kind")
)

// InputError is a request body that could not be read as records.
// It never fails a report: the empty-result page is rendered instead.
type InputError struct {
	Kind string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reports: invalid %s input: %v", e.Kind, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
